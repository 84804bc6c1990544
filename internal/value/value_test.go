package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null{}, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(-42), "-42"},
		{"string", String("ab"), `"ab"`},
		{"empty list", List{}, "[]"},
		{"empty object", Object{}, "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonical_Nested(t *testing.T) {
	v := Object{
		"b": List{Bool(false), Null{}},
		"a": Object{"z": Int(1), "y": String("x")},
	}
	got, err := MarshalCanonical(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"y":"x","z":1},"b":[false,null]}`, string(got))
}

func TestMarshalCanonical_NoHTMLEscape(t *testing.T) {
	got, err := MarshalCanonical(String("<a&b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(got))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	// "e" + combining acute accent normalizes to U+00E9.
	got, err := MarshalCanonical(String("e\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(got))
}

func TestMarshalCanonical_LineSeparators(t *testing.T) {
	got, err := MarshalCanonical(String("a\u2028b\u2029c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(got))

	// A literal backslash followed by u2028 stays escaped.
	got, err = MarshalCanonical(String(`\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(got))
}

func TestMarshalCanonical_RejectsNil(t *testing.T) {
	_, err := MarshalCanonical(List{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list[0]")
	assert.Contains(t, Render(List{nil}), "unrenderable")
}

func TestSortedKeys_UTF16Order(t *testing.T) {
	// U+FF61 sorts before U+1F600 in UTF-8 but after it in UTF-16.
	obj := Object{"\U0001F600": Null{}, "\uFF61": Null{}, "a": Null{}}
	assert.Equal(t, []string{"a", "\U0001F600", "\uFF61"}, obj.SortedKeys())
}

func TestSortedUnique(t *testing.T) {
	got, err := SortedUnique([]Value{Bool(true), Bool(false), Bool(true), Int(2), Int(10)})
	require.NoError(t, err)
	assert.Equal(t, "[10,2,false,true]", Render(got))
}

func TestID(t *testing.T) {
	a := MustID(List{Bool(true)})
	b := MustID(List{Bool(true)})
	c := MustID(List{Bool(false)})

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err := ID(nil)
	assert.Error(t, err)
}
