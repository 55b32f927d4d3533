package container

import (
	"reflect"
	"strings"
)

// paramSet is the signature extractor's output: the ordered list of declared
// parameter names of a callable, paired with the type each name must satisfy.
//
// Go reflection cannot recover the names of plain function arguments, so the
// set is derived from one of two structural sources: explicit parameter-name
// metadata paired positionally with the function's arguments, or the exported
// fields of a single struct argument. Extraction never fails; any shape that
// cannot be interpreted yields an empty set, and the callable is then invoked
// with zero auto-wired arguments.
type paramSet struct {
	// structType is non-nil when the callable takes a single struct (or
	// pointer to struct) argument whose fields are the parameters.
	structType reflect.Type

	// structPtr is set when the struct argument is passed by pointer.
	structPtr bool

	// params is the ordered list of declared parameters.
	params []*param
}

type param struct {
	// Name is the declared parameter name, always lowercase.
	Name string

	// Type is the value type this parameter accepts.
	Type reflect.Type

	// Index is the struct field index or the positional argument index
	// used to place the resolved value.
	Index int
}

// newParamSet extracts the parameter set of the function type ft. If names
// is non-empty it takes priority and is paired positionally with ft's
// arguments; the struct-field form is consulted only when no explicit names
// were supplied.
func newParamSet(ft reflect.Type, names []string) *paramSet {
	if len(names) > 0 {
		// Arity mismatch is a recoverable extraction failure, not an error.
		if len(names) != ft.NumIn() {
			return &paramSet{}
		}

		result := &paramSet{}
		for i := 0; i < ft.NumIn(); i++ {
			result.params = append(result.params, &param{
				Name:  strings.ToLower(names[i]),
				Type:  ft.In(i),
				Index: i,
			})
		}
		return result
	}

	if ft.NumIn() == 1 {
		t := ft.In(0)
		ptr := false
		if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct {
			t = t.Elem()
			ptr = true
		}
		if t.Kind() == reflect.Struct {
			return newParamSetFromStruct(t, ptr)
		}
	}

	return &paramSet{}
}

func newParamSetFromStruct(typ reflect.Type, ptr bool) *paramSet {
	result := &paramSet{
		structType: typ,
		structPtr:  ptr,
	}

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)

		// Ignore unexported fields
		if sf.PkgPath != "" {
			continue
		}

		// name is the name of the value to inject.
		name := sf.Name
		if tag := sf.Tag.Get("container"); tag != "" {
			if tag == "-" {
				continue
			}
			name = tag
		}

		result.params = append(result.params, &param{
			Name:  strings.ToLower(name),
			Type:  sf.Type,
			Index: i,
		})
	}

	return result
}

// names returns the declared parameter names in order.
func (p *paramSet) names() []string {
	result := make([]string, len(p.params))
	for i, pr := range p.params {
		result[i] = pr.Name
	}
	return result
}

func (p *paramSet) empty() bool {
	return p.structType == nil && len(p.params) == 0
}
