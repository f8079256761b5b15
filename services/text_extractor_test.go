package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"project_analysis_backend/models"
	"strconv"
	"strings"
	"testing"
)

func stageFile(t *testing.T, name string, data []byte) models.UploadedFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "123-"+name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return models.UploadedFile{OriginalName: name, Path: path, Size: int64(len(data))}
}

func TestTextExtractor_PlainText(t *testing.T) {
	e := NewTextExtractor()
	for _, name := range []string{"notes.txt", "README.md", "PLAN.MARKDOWN", "Brief.TXT"} {
		t.Run(name, func(t *testing.T) {
			f := stageFile(t, name, []byte("Build a todo app."))
			got, err := e.Extract(context.Background(), f)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != "Build a todo app." {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestTextExtractor_InvalidUTF8Replaced(t *testing.T) {
	f := stageFile(t, "bad.txt", []byte{'o', 'k', 0xff, '!'})
	got, err := NewTextExtractor().Extract(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok\uFFFD!" {
		t.Errorf("got %q", got)
	}
}

func TestTextExtractor_UnsupportedType(t *testing.T) {
	f := stageFile(t, "setup.exe", []byte("MZ"))
	_, err := NewTextExtractor().Extract(context.Background(), f)

	var unsupported *models.UnsupportedFileTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFileTypeError, got %v", err)
	}
	if unsupported.Ext != ".exe" {
		t.Errorf("Ext: got %q", unsupported.Ext)
	}
	if err.Error() != "Unsupported file type: .exe. Please upload a PDF or text file." {
		t.Errorf("message: %q", err.Error())
	}
}

func TestTextExtractor_InvalidPDF(t *testing.T) {
	f := stageFile(t, "broken.pdf", []byte("this is not a pdf"))
	_, err := NewTextExtractor().Extract(context.Background(), f)

	var extErr *models.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestTextExtractor_PDF(t *testing.T) {
	f := stageFile(t, "brief.PDF", buildTextPDF("Build a todo app. It needs reminders."))
	got, err := NewTextExtractor().Extract(context.Background(), f)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(got, "Build a todo app.") {
		t.Errorf("got %q", got)
	}
}

func TestTextExtractor_PDFSingleLineHexStream(t *testing.T) {
	stream := "BT /F1 12 Tf 72 720 Td <4275696c64206120746f646f206170702e> Tj ET"
	f := stageFile(t, "compact.pdf", buildPDF(stream))
	got, err := NewTextExtractor().Extract(context.Background(), f)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Build a todo app." {
		t.Errorf("got %q", got)
	}
}

func TestTextExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := stageFile(t, "notes.txt", []byte("x"))
	if _, err := NewTextExtractor().Extract(ctx, f); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// buildTextPDF writes a one-page PDF showing text, one operator per line.
func buildTextPDF(text string) []byte {
	escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
	return buildPDF("BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET")
}

// buildPDF wraps a page content stream in a PDF with correct xref offsets.
func buildPDF(stream string) []byte {
	var b strings.Builder
	offsets := make([]int, 6)
	b.WriteString("%PDF-1.4\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		"<< /Length " + strconv.Itoa(len(stream)) + " >>\nstream\n" + stream + "\nendstream",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		b.WriteString(strconv.Itoa(i+1) + " 0 obj\n" + obj + "\nendobj\n")
	}

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")
	return []byte(b.String())
}
