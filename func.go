package container

import (
	"fmt"
	"reflect"
	"runtime"
)

// Func represents a callable the container can auto-wire: a factory, a
// constructor, or an ad-hoc function passed to Invoke.
//
// A Func pairs the function with its extracted parameter set. Parameter names
// come from either explicit metadata (see ParameterNames), a signature
// override (see Signature), or the fields of a single struct argument. A
// function whose names cannot be determined is still callable; it simply
// receives no auto-wired values.
type Func struct {
	fn   reflect.Value
	sig  *paramSet
	name string
}

// NewFunc creates a new Func from the given function f.
//
// Additional opts can provide parameter-name metadata or a signature
// override. Explicit parameter values given here are ignored; those belong
// to the call site.
func NewFunc(f interface{}, opts ...Arg) (*Func, error) {
	args, err := newArgBuilder(opts...)
	if err != nil {
		return nil, err
	}

	return newFunc(f, args)
}

func newFunc(f interface{}, args *argBuilder) (*Func, error) {
	fv := reflect.ValueOf(f)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("callable should be a function, got %T", f)
	}

	// The signature override, when given, is the source of parameter names
	// in place of the function itself.
	sigType := fv.Type()
	if args.signature != nil {
		sigType = reflect.TypeOf(args.signature)
	}

	return &Func{
		fn:   fv,
		sig:  newParamSet(sigType, args.paramNames),
		name: args.funcName,
	}, nil
}

// Params returns the declared parameter names of this function, in order.
func (f *Func) Params() []string { return f.sig.names() }

// Func returns the function pointer that this Func is built around.
func (f *Func) Func() interface{} {
	return f.fn.Interface()
}

// Name returns the name of the function.
//
// This will return the configured name if one was given on NewFunc. If not,
// this will attempt to look up the function name using the pointer. If
// no friendly name can be found, then this will default to the function
// type signature.
func (f *Func) Name() string {
	// Use our set name first, if we have one
	name := f.name

	// Fall back to inspecting the program counter
	if name == "" {
		if rfunc := runtime.FuncForPC(f.fn.Pointer()); rfunc != nil {
			name = rfunc.Name()
		}

		// Final fallback is our type signature
		if name == "" {
			name = f.fn.String()
		}
	}

	return name
}

// String returns the name for this function. See Name.
func (f *Func) String() string {
	return f.Name()
}

// errType is used to detect a trailing error result.
var errType = reflect.TypeOf((*error)(nil)).Elem()
