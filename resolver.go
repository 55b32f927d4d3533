package container

import (
	"reflect"

	"github.com/hashicorp/go-hclog"
)

// unsetType is the type of the Unset marker.
type unsetType struct{}

// Unset is the absence marker for a parameter that resolves to no value.
// A parameter left unset occupies its argument slot with the zero value of
// its type, the Go analog of letting the callable's own default apply.
//
// Passing Unset as an explicit parameter value pins the parameter to unset
// even when a container binding with the same name exists: presence of the
// key always wins over absence.
var Unset unsetType

// resolveParam turns a declared parameter into a concrete value.
//
// Precedence: an explicit parameter (including an explicit Unset), then a
// container binding, instance, or alias with the parameter's name, then
// unset. An unresolvable name is not an error; only a failing factory
// encountered during container resolution propagates.
//
// The second return is false when the parameter resolves to unset.
func (c *Container) resolveParam(log hclog.Logger, p *param, named map[string]interface{}) (reflect.Value, bool, error) {
	if raw, ok := named[p.Name]; ok {
		if raw == Unset {
			log.Trace("parameter explicitly unset", "param", p.Name)
			return reflect.Value{}, false, nil
		}

		v, ok := conform(raw, p.Type)
		if !ok {
			log.Trace("explicit parameter not assignable, leaving unset",
				"param", p.Name, "want", p.Type.String())
			return reflect.Value{}, false, nil
		}

		return v, true, nil
	}

	if c.Has(p.Name) {
		raw, err := c.Get(p.Name)
		if err != nil {
			return reflect.Value{}, false, err
		}

		v, ok := conform(raw, p.Type)
		if !ok {
			log.Trace("bound value not assignable, leaving unset",
				"param", p.Name, "want", p.Type.String())
			return reflect.Value{}, false, nil
		}

		return v, true, nil
	}

	log.Trace("parameter unresolved, leaving unset", "param", p.Name)
	return reflect.Value{}, false, nil
}

// conform adapts raw to a reflect.Value assignable to typ. A nil raw maps to
// the zero value of any nilable type.
func conform(raw interface{}, typ reflect.Type) (reflect.Value, bool) {
	if raw == nil {
		if nilable(typ) {
			return reflect.Zero(typ), true
		}
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(raw)
	if !v.Type().AssignableTo(typ) {
		return reflect.Value{}, false
	}

	return v, true
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}
