package render

import (
	"testing"
)

func TestTextItemsFromStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
(Hello World) Tj
[(Kerned) -120 (Pairs)] TJ
(Next line) '
(ignored, no operator)
100 200 Td
ET`)

	items := textItemsFromStream(stream)

	want := []string{"Hello World", "Kerned", "Pairs", "Next line"}
	if len(items) != len(want) {
		t.Fatalf("Expected %d items, got %d: %+v", len(want), len(items), items)
	}
	for i, w := range want {
		if items[i].Text != w {
			t.Errorf("item %d: expected %q, got %q", i, w, items[i].Text)
		}
	}
}

func TestTextItemsFromStream_SkipsWhitespaceOnlyLiterals(t *testing.T) {
	stream := []byte("(   ) Tj\n(real) Tj\n")

	items := textItemsFromStream(stream)

	if len(items) != 1 || items[0].Text != "real" {
		t.Errorf("Expected only the non-blank literal, got %+v", items)
	}
}

func TestTextItemsFromStream_NoTextOperators(t *testing.T) {
	stream := []byte("q\n1 0 0 1 50 50 cm\n/Im1 Do\nQ\n")

	if items := textItemsFromStream(stream); len(items) != 0 {
		t.Errorf("Expected no items on an image-only stream, got %+v", items)
	}
}

func TestDecodeLiteral(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`plain`, "plain"},
		{`a\(b\)c`, "a(b)c"},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, `back\slash`},
		{`unknown\qescape`, "unknownqescape"},
		{`trailing\`, `trailing\`},
	}

	for _, tc := range cases {
		if got := decodeLiteral([]byte(tc.raw)); got != tc.want {
			t.Errorf("decodeLiteral(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
