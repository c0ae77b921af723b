package util

import "testing"

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "thousand dot decimal comma", input: "1.234,5", want: 1234.5},
		{name: "decimal comma", input: "2,5", want: 2.5},
		{name: "plain integer", input: "10", want: 10},
		{name: "thousand dot only", input: "1.000", want: 1000},
		{name: "trailing unit", input: "12 m", want: 12},
		{name: "garbage", input: "abc", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "nil", input: nil, want: 0},
		{name: "negative", input: "-3", want: -3},
		{name: "numeric cell", input: 7.25, want: 7.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseQuantity(tc.input); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(1234.5); got != "1234.5" {
		t.Fatalf("got %q", got)
	}
	if got := FormatQuantity(10); got != "10" {
		t.Fatalf("got %q", got)
	}
}
