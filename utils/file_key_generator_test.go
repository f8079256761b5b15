package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateFileKey(t *testing.T) {
	fkg := NewFileKeyGenerator()
	fkg.now = func() time.Time { return time.UnixMilli(1700000000000) }

	key := fkg.GenerateFileKey("Project Brief (final).PDF")
	if !strings.HasPrefix(key, "1700000000000-") {
		t.Errorf("expected timestamp prefix, got %q", key)
	}
	if !strings.HasSuffix(key, "-Project_Brief_final.pdf") {
		t.Errorf("unexpected clean name in %q", key)
	}
	if other := fkg.GenerateFileKey("Project Brief (final).PDF"); other == key {
		t.Error("keys for the same name must differ")
	}
}

func TestCleanFilename(t *testing.T) {
	fkg := NewFileKeyGenerator()
	cases := map[string]string{
		"notes.md":                       "notes.md",
		"../../etc/passwd":               "passwd",
		`C:\docs\brief.txt`:              "brief.txt",
		"???.txt":                        "document.txt",
		"résumé final.markdown":          "résumé_final.markdown",
		strings.Repeat("a", 80) + ".pdf": strings.Repeat("a", 50) + ".pdf",
	}
	for in, want := range cases {
		if got := fkg.cleanFilename(in); got != want {
			t.Errorf("cleanFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
