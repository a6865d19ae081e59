package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Scalars(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		text string
		typ  Type
		want any
	}{
		{"int", "42", Int, 42},
		{"negative int", "-7", Int, -7},
		{"int with spaces", " 3 ", Int, 3},
		{"float", "2.5", Float, 2.5},
		{"float from int text", "3", Float, 3.0},
		{"bool true", "true", Bool, true},
		{"bool mixed case", " FaLsE ", Bool, false},
		{"plain string", "hello", String, "hello"},
		{"quoted string", `"hello world"`, String, "hello world"},
		{"empty quoted string", `""`, String, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Convert(tt.text, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_ScalarFailures(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		text string
		typ  Type
	}{
		{"int from word", "five", Int},
		{"int from float", "1.5", Int},
		{"float from word", "pi", Float},
		{"bool from yes", "yes", Bool},
		{"bool from number", "1", Bool},
		{"string open quote only", `"hello`, String},
		{"string close quote only", `hello"`, String},
		{"lone quote", `"`, String},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Convert(tt.text, tt.typ)
			require.Error(t, err)

			var convErr *Error
			require.True(t, errors.As(err, &convErr))
			assert.Equal(t, tt.text, convErr.Text)
			assert.Equal(t, tt.typ, convErr.Type)
		})
	}
}

func TestConvert_ListOfInt(t *testing.T) {
	r := NewRegistry()

	got, err := r.Convert("[1, 2, 3]", ListOf(Int))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)

	_, err = r.Convert("[1, two, 3]", ListOf(Int))
	require.Error(t, err)
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "two", convErr.Text)
}

func TestConvert_ListDefaultsToString(t *testing.T) {
	r := NewRegistry()

	got, err := r.Convert(`[sword, "magic staff", bow]`, List())
	require.NoError(t, err)
	assert.Equal(t, []any{"sword", "magic staff", "bow"}, got)
}

func TestConvert_NestedLists(t *testing.T) {
	r := NewRegistry()

	got, err := r.Convert("[[1, 2], [3], [4, 5, 6]]", ListOf(ListOf(Int)))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{1, 2}, []any{3}, []any{4, 5, 6}}, got)
}

func TestConvert_ListQuotedCommas(t *testing.T) {
	r := NewRegistry()

	got, err := r.Convert(`["a, b", c]`, ListOf(String))
	require.NoError(t, err)
	assert.Equal(t, []any{"a, b", "c"}, got)
}

func TestConvert_EmptyList(t *testing.T) {
	r := NewRegistry()

	got, err := r.Convert("[]", ListOf(Int))
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)

	got, err = r.Convert("[  ]", List())
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
}

func TestConvert_ListRequiresBrackets(t *testing.T) {
	r := NewRegistry()

	for _, text := range []string{"1, 2, 3", "[1, 2", "1]", "(1, 2)", ""} {
		t.Run(text, func(t *testing.T) {
			_, err := r.Convert(text, ListOf(Int))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "expected a list")
		})
	}
}

func TestRegistry_NamedConverter(t *testing.T) {
	r := NewRegistry()

	err := r.Register("Upper", func(text string) (any, error) {
		if text == "" {
			return nil, errors.New("empty")
		}
		return strings.ToUpper(text), nil
	})
	require.NoError(t, err)
	assert.True(t, r.Has(Named("upper")))
	assert.True(t, r.Has(ListOf(Named("UPPER"))))

	got, err := r.Convert("goblin", Named("upper"))
	require.NoError(t, err)
	assert.Equal(t, "GOBLIN", got)

	got, err = r.Convert("[orc, elf]", ListOf(Named("upper")))
	require.NoError(t, err)
	assert.Equal(t, []any{"ORC", "ELF"}, got)

	_, err = r.Convert("", Named("upper"))
	require.Error(t, err)
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "empty", convErr.Reason)
}

func TestRegistry_RegisterRejects(t *testing.T) {
	r := NewRegistry()
	noop := func(string) (any, error) { return nil, nil }

	assert.Error(t, r.Register("", noop))
	assert.Error(t, r.Register("int", noop))
	assert.Error(t, r.Register("list", noop))
	assert.Error(t, r.Register("dice", nil))

	require.NoError(t, r.Register("dice", noop))
	assert.Error(t, r.Register("DICE", noop))
}

func TestRegistry_UnknownNamedType(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Has(Named("dice")))
	_, err := r.Convert("2d6", Named("dice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no converter registered")
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewRegistry()
	c := r.Clone()

	require.NoError(t, c.Register("dice", func(s string) (any, error) { return s, nil }))
	assert.True(t, c.Has(Named("dice")))
	assert.False(t, r.Has(Named("dice")))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"", String},
		{"string", String},
		{"str", String},
		{"int", Int},
		{"Integer", Int},
		{"float", Float},
		{"bool", Bool},
		{"list", List()},
		{"list[int]", ListOf(Int)},
		{"list[list[float]]", ListOf(ListOf(Float))},
		{"dice", Named("dice")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}

	for _, bad := range []string{"list[int", "two words", "map[string]int"} {
		_, err := ParseType(bad)
		assert.Error(t, err, bad)
	}
}
