package container

import (
	"reflect"

	"github.com/hashicorp/go-hclog"
)

// Invoke calls fn with auto-wired arguments and returns its result.
//
// Parameter names are extracted from a Signature override if one is given,
// else from fn itself (struct argument fields or ParameterNames metadata).
// Each name resolves with the precedence documented on resolveParam. The
// first result of fn is returned as-is; a trailing error result, when
// non-nil, is propagated instead.
func (c *Container) Invoke(fn interface{}, opts ...Arg) (interface{}, error) {
	args, err := newArgBuilderWith(c.logger, opts...)
	if err != nil {
		return nil, err
	}

	f, err := newFunc(fn, args)
	if err != nil {
		return nil, err
	}

	return c.call(f, args)
}

// call resolves f's parameters against the explicit values in args and the
// container's own registrations, then calls f.
func (c *Container) call(f *Func, args *argBuilder) (interface{}, error) {
	log := args.logger
	log.Trace("auto-wiring call", "func", f.Name(), "params", f.Params())

	in, err := c.buildArgs(log, f, args.named)
	if err != nil {
		return nil, err
	}

	var out []reflect.Value
	if f.fn.Type().IsVariadic() {
		out = f.fn.CallSlice(in)
	} else {
		out = f.fn.Call(in)
	}

	return resultValue(out)
}

// buildArgs produces the ordered argument list for f. Arguments that did
// not resolve keep the zero value of their type.
func (c *Container) buildArgs(log hclog.Logger, f *Func, named map[string]interface{}) ([]reflect.Value, error) {
	ft := f.fn.Type()
	ps := f.sig

	// Struct-argument form: populate a fresh struct value field by field.
	if ps.structType != nil && ft.NumIn() == 1 {
		sv := reflect.New(ps.structType).Elem()
		for _, p := range ps.params {
			v, ok, err := c.resolveParam(log, p, named)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			sv.Field(p.Index).Set(v)
		}

		arg := sv
		if ps.structPtr {
			arg = sv.Addr()
		}

		// A signature override may use a struct type that differs from the
		// function's own argument only in field tags; such types convert.
		if want := ft.In(0); arg.Type() != want {
			if !arg.Type().ConvertibleTo(want) {
				log.Trace("signature override incompatible with callable, using zero arguments")
				return []reflect.Value{reflect.Zero(want)}, nil
			}
			arg = arg.Convert(want)
		}

		return []reflect.Value{arg}, nil
	}

	// Positional form. Every slot starts at its zero value so that a
	// function whose names could not be extracted is still callable.
	in := make([]reflect.Value, ft.NumIn())
	for i := range in {
		in[i] = reflect.Zero(ft.In(i))
	}
	for _, p := range ps.params {
		if p.Index >= len(in) {
			continue
		}

		v, ok, err := c.resolveParam(log, p, named)
		if err != nil {
			return nil, err
		}
		if ok && v.Type().AssignableTo(ft.In(p.Index)) {
			in[p.Index] = v
		}
	}

	return in, nil
}

// resultValue adapts a reflect call result to a single pass-through value.
// A non-nil trailing error result takes over; otherwise the first remaining
// result (if any) is returned.
func resultValue(out []reflect.Value) (interface{}, error) {
	if len(out) == 0 {
		return nil, nil
	}

	final := out[len(out)-1]
	if final.Type() == errType {
		if !final.IsNil() {
			return nil, final.Interface().(error)
		}
		out = out[:len(out)-1]
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
