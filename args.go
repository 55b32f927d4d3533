package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Arg is an option to Invoke, Construct, BindFactory, and WithConstructor
// that sets the state for a call. This can be a direct explicit parameter,
// parameter-name metadata, or a signature override.
type Arg func(*argBuilder) error

type argBuilder struct {
	logger     hclog.Logger
	named      map[string]interface{}
	paramNames []string
	signature  interface{}
	funcName   string
}

func newArgBuilder(opts ...Arg) (*argBuilder, error) {
	return newArgBuilderWith(hclog.L(), opts...)
}

// newArgBuilderWith seeds the builder's logger before the opts apply, so a
// container can route call logs through its configured logger while
// WithCallLogger still overrides per call.
func newArgBuilderWith(logger hclog.Logger, opts ...Arg) (*argBuilder, error) {
	builder := &argBuilder{
		logger: logger,
		named:  make(map[string]interface{}),
	}

	var buildErr error
	for _, opt := range opts {
		if err := opt(builder); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}

	return builder, buildErr
}

// Named specifies an explicit parameter with the given value. An explicit
// parameter takes precedence over any container binding with the same name.
// Passing Unset as the value pins the parameter to its zero value even when
// a binding for the name exists.
func Named(n string, v interface{}) Arg {
	return func(a *argBuilder) error {
		a.named[strings.ToLower(n)] = v
		return nil
	}
}

// FromStruct specifies explicit parameters from the exported fields of a
// struct (or pointer to struct). Field names are lowercased; a `container`
// tag overrides the name and "-" skips the field.
func FromStruct(v interface{}) Arg {
	return func(a *argBuilder) error {
		sv := reflect.ValueOf(v)
		if sv.Kind() == reflect.Ptr {
			sv = sv.Elem()
		}
		if sv.Kind() != reflect.Struct {
			return fmt.Errorf("only struct or pointer to struct types are supported in FromStruct, got %T", v)
		}

		st := sv.Type()
		for i := 0; i < st.NumField(); i++ {
			sf := st.Field(i)
			if sf.PkgPath != "" {
				continue
			}

			name := sf.Name
			if tag := sf.Tag.Get("container"); tag != "" {
				if tag == "-" {
					continue
				}
				name = tag
			}

			a.named[strings.ToLower(name)] = sv.Field(i).Interface()
		}

		return nil
	}
}

// Signature overrides the callable the parameter names are extracted from.
// This is needed when the target callable is a wrapper whose own argument
// list no longer reflects the parameters of interest. The override must
// accept the same arguments as the target callable.
func Signature(fn interface{}) Arg {
	return func(a *argBuilder) error {
		if fn != nil {
			if k := reflect.TypeOf(fn).Kind(); k != reflect.Func {
				return fmt.Errorf("signature override should be a function, got %s", k)
			}
		}

		a.signature = fn
		return nil
	}
}

// ParameterNames supplies the declared parameter names of a callable whose
// arguments are plain positional values. Go reflection cannot recover
// argument names, so auto-wiring a multi-argument function requires this
// metadata. The names are paired positionally with the function's arguments
// and must match the argument count exactly; a mismatch degrades to an empty
// parameter list.
func ParameterNames(names ...string) Arg {
	return func(a *argBuilder) error {
		a.paramNames = make([]string, len(names))
		for i, n := range names {
			a.paramNames[i] = strings.ToLower(n)
		}
		return nil
	}
}

// WithName sets a friendly name for the callable, used in logs.
func WithName(name string) Arg {
	return func(a *argBuilder) error {
		a.funcName = name
		return nil
	}
}

// WithCallLogger sets the logger used during a single call. Defaults to
// the container's logger.
func WithCallLogger(l hclog.Logger) Arg {
	return func(a *argBuilder) error {
		a.logger = l
		return nil
	}
}
