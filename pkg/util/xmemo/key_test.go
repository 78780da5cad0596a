package xmemo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ X, Y int }

func TestKey_Distinct(t *testing.T) {
	tests := []struct {
		name string
		a, b []any
	}{
		{"int vs string", []any{1}, []any{"1"}},
		{"int vs int64", []any{1}, []any{int64(1)}},
		{"int vs float", []any{1}, []any{1.0}},
		{"separator inside string", []any{"a", "b"}, []any{"a\", \"b"}},
		{"length prefix in string", []any{"1:a", "b"}, []any{"1", ":a", "b"}},
		{"split strings", []any{"ab", "c"}, []any{"a", "bc"}},
		{"nil vs string", []any{nil}, []any{"<nil>"}},
		{"arity", []any{1}, []any{1, 1}},
		{"no args vs empty string", []any{}, []any{""}},
		{"struct fields", []any{point{1, 2}}, []any{point{2, 1}}},
		{"slice vs array", []any{[]int{1}}, []any{[1]int{1}}},
		{"kwargs vs map", []any{Kwargs{"a": 1}}, []any{map[string]any{"a": 1}}},
		{"kwargs value type", []any{Kwargs{"a": 1}}, []any{Kwargs{"a": "1"}}},
		{"kwargs vs positional", []any{Kwargs{"a": 1}}, []any{"a", 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, Key("f", tt.a...), Key("f", tt.b...))
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key("f", 1, "x", point{1, 2}), Key("f", 1, "x", point{1, 2}))
	assert.Equal(t,
		Key("f", Kwargs{"a": 1, "b": 2, "c": 3}),
		Key("f", Kwargs{"c": 3, "a": 1, "b": 2}),
	)
	assert.Equal(t, Key("f", map[string]int{"b": 2, "a": 1}), Key("f", map[string]int{"a": 1, "b": 2}))
}

func TestKey_NameSeparatesFunctions(t *testing.T) {
	assert.NotEqual(t, Key("f", 1), Key("g", 1))
	assert.Equal(t, "f#", Key("f"))
}

func TestKey_Format(t *testing.T) {
	// "int=3" 长度为 5
	assert.Equal(t, "f#5:int=3", Key("f", 3))
}
