package heap

import (
	"unsafe"

	"github.com/cwbudde/ember/internal/runtime"
)

// ptrOf and cellSize isolate the one unsafe.Pointer arithmetic this
// package needs, for the address-range and alignment test Contains
// performs — the Go analogue of the reference allocator's pointer
// comparisons over a flat array of cells.
func ptrOf(o *runtime.Object) unsafe.Pointer { return unsafe.Pointer(o) }

func cellSize() uintptr { return unsafe.Sizeof(runtime.Object{}) }
