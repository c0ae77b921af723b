package util

import "testing"

func TestCleanCode(t *testing.T) {
	if got := CleanCode(" 91.926/ab-01 "); got != "91926ab01" {
		t.Fatalf("got %q", got)
	}
	if got := CleanCode("ÇÃ-12"); got != "12" {
		t.Fatalf("non-ascii letters must be dropped, got %q", got)
	}
}

func TestDescriptionQuery(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		strict bool
		want   string
	}{
		{name: "paren", input: "CABO DE COBRE (2,5 MM2)", strict: true, want: "CABO DE COBRE"},
		{name: "dash", input: "DISJUNTOR MONOPOLAR - 10A", strict: true, want: "DISJUNTOR MONOPOLAR"},
		{name: "af strict", input: "ELETRODUTO RIGIDO AF_12/2015", strict: true, want: "ELETRODUTO RIGIDO"},
		{name: "af simple", input: "ELETRODUTO RIGIDO AF_12/2015", strict: false, want: "ELETRODUTO RIGIDO AF_12/2015"},
		{name: "dash before paren", input: "TOMADA - 2P+T (10A)", strict: true, want: "TOMADA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DescriptionQuery(tc.input, tc.strict); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestHeaderKey(t *testing.T) {
	if HeaderKey("Composição") != HeaderKey("COMPOSICAO") {
		t.Fatal("accent folding failed")
	}
	if got := HeaderKey(" ESPECIFICAÇÃO TÉCNICA "); got != "ESPECIFICACAO TECNICA" {
		t.Fatalf("got %q", got)
	}
}
