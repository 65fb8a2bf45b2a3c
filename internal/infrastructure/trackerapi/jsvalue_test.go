package trackerapi

import (
	"encoding/json"
	"testing"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"0", true},
		{json.Number("0"), false},
		{json.Number("-0.0"), false},
		{json.Number("2"), true},
		{[]any{}, true},
		{map[string]any{}, true},
	}
	for _, tc := range cases {
		if got := truthy(tc.v); got != tc.want {
			t.Fatalf("truthy(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestJSString(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{"abc", "abc"},
		{true, "true"},
		{json.Number("123"), "123"},
		{json.Number("1.0"), "1"},
		{json.Number("1.25"), "1.25"},
		{json.Number("1e21"), "1e+21"},
		{json.Number("1e-7"), "1e-7"},
		{[]any{json.Number("1"), nil, "a"}, "1,,a"},
		{map[string]any{"a": true}, "[object Object]"},
	}
	for _, tc := range cases {
		if got := jsString(tc.v); got != tc.want {
			t.Fatalf("jsString(%#v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
