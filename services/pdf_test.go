package services

import "testing"

func TestTextFromContentStream(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 720 Td\n(Phase one) Tj\nT*\n[(Deliv) -20 (ery)] TJ\n0 -14 Td\n(Launch \\(beta\\)) '\nET")
	got := textFromContentStream(stream)
	want := "Phase one Delivery Launch (beta)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextFromContentStream_Layouts(t *testing.T) {
	cases := []struct {
		name   string
		stream string
		want   string
	}{
		{"one operator per line", "BT\n/F1 12 Tf\n72 720 Td\n(Build a todo app.) Tj\nET", "Build a todo app."},
		{"single line block", "BT /F1 12 Tf 72 720 Td (Build a todo app.) Tj ET", "Build a todo app."},
		{"carriage return endings", "BT\r/F1 12 Tf\r72 720 Td\r(Build a todo app.) Tj\rET", "Build a todo app."},
		{"crlf endings", "BT\r\n/F1 12 Tf\r\n(Build a todo app.) Tj\r\nET", "Build a todo app."},
		{"hex string", "BT /F1 12 Tf <4275696c64206120746f646f206170702e> Tj ET", "Build a todo app."},
		{"hex with spaces and odd digit", "BT <4869 2> Tj (there) Tj ET", "Hi there"},
		{"no space before operator", "BT (Build)Tj( a todo app.)Tj ET", "Build a todo app."},
		{"inline TJ array", "BT [(Deliv) -20 (ery) 120 < 20706c616e>] TJ ET", "Delivery plan"},
		{"double quote operator", "BT 72 720 Td (First) Tj 0 0 (Second line) \" ET", "First Second line"},
		{"T* between operators", "BT (a) Tj T* (b) Tj ET", "a b"},
		{"nested parentheses", "BT (a (nested) string) Tj ET", "a (nested) string"},
		{"marked content and comment", "/Span <</ActualText (hidden)>> BDC % (not text)\nBT (Shown) Tj ET EMC", "Shown"},
		{"inline image", "BI /W 1 /H 1 /BPC 8 ID \x00(x)\xff EI BT (After) Tj ET", "After"},
		{"no text operators", "q 100 0 0 100 72 692 cm /Im1 Do Q", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textFromContentStream([]byte(tc.stream)); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodePDFString(t *testing.T) {
	cases := map[string]string{
		`plain`:             "plain",
		`a\(b\)c`:           "a(b)c",
		`back\\slash`:       `back\slash`,
		`tab\there`:         "tab\there",
		`oct\101\102`:       "octAB",
		`short\7x`:          "short\ax",
		`trailing\`:         `trailing\`,
		`unknown\qescape`:   "unknownqescape",
		"line\\\ncontinued": "linecontinued",
	}
	for in, want := range cases {
		if got := decodePDFString([]byte(in)); got != want {
			t.Errorf("decodePDFString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanPDFText(t *testing.T) {
	got := cleanPDFText("  one\n\n two\t\x00three  ")
	if got != "one two three" {
		t.Errorf("got %q", got)
	}
}
