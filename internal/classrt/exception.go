package classrt

import (
	"fmt"

	"github.com/cwbudde/ember/internal/runtime"
)

// ExceptionData is the native payload of every Exception instance: a
// message plus an optional cause. The constructor every built-in exception
// class shares sets only the message.
type ExceptionData struct {
	Message string
	Cause   *runtime.Object
}

// NewException allocates an instance of class (which must descend from
// Exception) carrying message. Used by built-in raise sites (a type
// mismatch, an undeclared identifier, ...); language code that calls an
// exception class goes through New and the class's constructor instead.
func (b *Builtins) NewException(class *runtime.ClassDescriptor, message string) *runtime.Object {
	obj := b.heap.Allocate()
	obj.Class = class
	obj.Initialized = true
	obj.Native = &ExceptionData{Message: message}
	return obj
}

// ExceptionMessage extracts the message of an exception object, or "" if
// obj is not one.
func ExceptionMessage(obj *runtime.Object) string {
	if obj == nil {
		return ""
	}
	if data, ok := obj.Native.(*ExceptionData); ok {
		return data.Message
	}
	return ""
}

func (b *Builtins) TypeErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.TypeError, fmt.Sprintf(format, args...))
}
func (b *Builtins) NameErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.NameError, fmt.Sprintf(format, args...))
}
func (b *Builtins) AttributeErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.AttributeError, fmt.Sprintf(format, args...))
}
func (b *Builtins) ParameterErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.ParameterError, fmt.Sprintf(format, args...))
}
func (b *Builtins) ImportErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.ImportError, fmt.Sprintf(format, args...))
}
func (b *Builtins) ZeroDivisionErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.ZeroDivisionError, fmt.Sprintf(format, args...))
}
func (b *Builtins) ValueErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.ValueError, fmt.Sprintf(format, args...))
}
func (b *Builtins) GenericExceptionf(format string, args ...any) *runtime.Object {
	return b.NewException(b.Exception, fmt.Sprintf(format, args...))
}
func (b *Builtins) SyntaxErrorf(format string, args ...any) *runtime.Object {
	return b.NewException(b.SyntaxError, fmt.Sprintf(format, args...))
}

// notImplemented returns the dispatch-miss sentinel: one singleton
// NotImplementedError instance, built once during bootstrap and reused by
// every primitive operator body. Reusing a single Object lets
// IsNotImplemented distinguish "try the other side of the cascade" from a
// NotImplementedError a user deliberately raises (a distinct instance) by
// pointer identity alone, rather than by class membership.
func (b *Builtins) notImplemented() *runtime.Object {
	return b.notImplementedSentinel
}

// IsNotImplemented reports whether exc is the dispatch-miss sentinel
// rather than a genuinely raised exception.
func IsNotImplemented(b *Builtins, exc *runtime.Object) bool {
	return exc != nil && exc == b.notImplementedSentinel
}
