package container

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewParamSet(t *testing.T) {
	cases := []struct {
		Name     string
		Fn       interface{}
		Names    []string
		Expected []string
	}{
		{
			"struct argument fields",
			func(in struct {
				A string
				B int
			}) {
			},
			nil,
			[]string{"a", "b"},
		},

		{
			"pointer to struct argument",
			func(in *struct {
				A string
			}) {
			},
			nil,
			[]string{"a"},
		},

		{
			"tag renames, dash skips, unexported ignored",
			func(in struct {
				Conn  string `container:"db"`
				Skip  string `container:"-"`
				Other int
				x     bool
			}) {
			},
			nil,
			[]string{"db", "other"},
		},

		{
			"explicit names take priority over struct fields",
			func(in struct {
				A string
			}) {
			},
			[]string{"whole"},
			[]string{"whole"},
		},

		{
			"explicit names for positional arguments",
			func(a string, b int) {},
			[]string{"First", "Second"},
			[]string{"first", "second"},
		},

		{
			"name count mismatch degrades to empty",
			func(a string, b int) {},
			[]string{"only"},
			nil,
		},

		{
			"plain arguments without metadata degrade to empty",
			func(a string, b int) {},
			nil,
			nil,
		},

		{
			"single non-struct argument degrades to empty",
			func(a string) {},
			nil,
			nil,
		},

		{
			"no arguments",
			func() {},
			nil,
			nil,
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			ps := newParamSet(reflect.TypeOf(tt.Fn), tt.Names)
			if len(tt.Expected) == 0 {
				require.True(ps.empty())
				return
			}

			require.Equal(tt.Expected, ps.names())
		})
	}
}

func TestNewParamSet_paramTypes(t *testing.T) {
	require := require.New(t)

	ps := newParamSet(reflect.TypeOf(func(in struct {
		A string
		B int
	}) {
	}), nil)

	require.Len(ps.params, 2)
	require.Equal(reflect.TypeOf(""), ps.params[0].Type)
	require.Equal(reflect.TypeOf(0), ps.params[1].Type)
	require.Equal(0, ps.params[0].Index)
	require.Equal(1, ps.params[1].Index)
}
