package container

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

// Type describes a constructible struct type: the target type itself, an
// optional constructor function, and an optional parent descriptor mirroring
// a struct the target embeds.
//
// Go has no implicit type hierarchy to walk at runtime, so ancestry is
// declared explicitly per descriptor. Construct searches the chain from the
// target toward the root for the first declared constructor, matching the
// way a subtype without its own constructor inherits the nearest ancestor's.
type Type struct {
	target reflect.Type
	ctor   *Func
	parent *Type
}

// TypeOption configures a Type descriptor.
type TypeOption func(*Type) error

// NewType creates a descriptor for the struct type of v. v may be a value
// or a pointer to the type; only its type is retained.
func NewType(v interface{}, opts ...TypeOption) (*Type, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("type descriptor needs a concrete value, got nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("constructible type should be a struct, got %s", t.Kind())
	}

	result := &Type{target: t}

	var buildErr error
	for _, opt := range opts {
		if err := opt(result); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}
	if buildErr != nil {
		return nil, buildErr
	}

	return result, nil
}

// WithConstructor declares the type's explicit constructor. The function's
// parameter names are extracted the usual way, so opts typically carry
// ParameterNames metadata when fn takes plain positional arguments.
func WithConstructor(fn interface{}, opts ...Arg) TypeOption {
	return func(t *Type) error {
		f, err := NewFunc(fn, opts...)
		if err != nil {
			return err
		}

		t.ctor = f
		return nil
	}
}

// Extends declares the descriptor of the struct type the target embeds.
func Extends(parent *Type) TypeOption {
	return func(t *Type) error {
		t.parent = parent
		return nil
	}
}

// Name returns the name of the target type.
func (t *Type) Name() string { return t.target.Name() }

// Target returns the target struct type.
func (t *Type) Target() reflect.Type { return t.target }

// Construct creates a new value of the given type with auto-wired
// constructor parameters.
//
// The parameter list comes from the first explicit constructor found while
// walking from the type toward the root of its declared ancestry. When the
// constructor belongs to a strict ancestor, the ancestor is constructed and
// grafted into the target's corresponding embedded field, leaving the
// remaining fields at their zero values. When no ancestor declares a
// constructor the parameter list is empty and a zero value of the target
// type is produced.
//
// The returned form depends on the path taken: a constructor owned by the
// target type has its result passed through as-is (value or pointer, as the
// constructor returns it), while the ancestor and no-constructor paths
// always return a pointer to a new target value.
func (c *Container) Construct(t *Type, opts ...Arg) (interface{}, error) {
	args, err := newArgBuilderWith(c.logger, opts...)
	if err != nil {
		return nil, err
	}

	return c.construct(t, args)
}

func (c *Container) construct(t *Type, args *argBuilder) (interface{}, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot construct a nil type")
	}
	log := args.logger

	owner := t
	for owner != nil && owner.ctor == nil {
		owner = owner.parent
	}

	if owner == nil {
		log.Trace("no constructor declared, producing zero value", "type", t.Name())
		return reflect.New(t.target).Interface(), nil
	}

	log.Trace("constructing", "type", t.Name(), "constructor", owner.ctor.Name())

	value, err := c.call(owner.ctor, args)
	if err != nil {
		return nil, err
	}

	if owner == t {
		return value, nil
	}

	// The constructor belongs to an ancestor: build the target and graft
	// the constructed ancestor into its embedded field.
	out := reflect.New(t.target)
	path := embedPath(t.target, owner.target)
	if path == nil {
		log.Trace("ancestor type not embedded in target, leaving zero",
			"type", t.Name(), "ancestor", owner.Name())
		return out.Interface(), nil
	}

	setEmbedded(out.Elem().FieldByIndex(path), reflect.ValueOf(value))
	return out.Interface(), nil
}

// embedPath returns the field index path of the anonymous field of type
// inner (or *inner) inside outer, searching promoted fields breadth-first.
// Returns nil when outer does not embed inner.
func embedPath(outer, inner reflect.Type) []int {
	type node struct {
		typ  reflect.Type
		path []int
	}

	queue := []node{{typ: outer}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for i := 0; i < n.typ.NumField(); i++ {
			sf := n.typ.Field(i)
			if !sf.Anonymous {
				continue
			}

			base := sf.Type
			if base.Kind() == reflect.Ptr {
				base = base.Elem()
			}

			path := append(append([]int(nil), n.path...), i)
			if base == inner {
				return path
			}

			// Only descend through value embeds; a pointer embed would be
			// nil in a freshly constructed target.
			if sf.Type.Kind() == reflect.Struct {
				queue = append(queue, node{typ: sf.Type, path: path})
			}
		}
	}

	return nil
}

// setEmbedded assigns a constructed value to an embedded field, adapting
// between pointer and value forms as needed.
func setEmbedded(field, value reflect.Value) {
	// An unexported embedded field cannot be set through reflection.
	if !value.IsValid() || !field.CanSet() {
		return
	}

	switch {
	case value.Type().AssignableTo(field.Type()):
		field.Set(value)

	case field.Kind() == reflect.Ptr && value.Type().AssignableTo(field.Type().Elem()):
		p := reflect.New(field.Type().Elem())
		p.Elem().Set(value)
		field.Set(p)

	case value.Kind() == reflect.Ptr && !value.IsNil() && value.Elem().Type().AssignableTo(field.Type()):
		field.Set(value.Elem())
	}
}
