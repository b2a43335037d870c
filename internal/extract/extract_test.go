package extract

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeDocx(t *testing.T, paragraphs ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	defer f.Close()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s</w:body></w:document>`, body.String())

	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func writePDF(t *testing.T, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, page := range pages {
		doc.AddPage()
		if page != "" {
			doc.Cell(40, 10, page)
		}
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}

func TestNormalizeExt(t *testing.T) {
	cases := map[string]string{
		"Notes.TXT":      "txt",
		"thesis.pdf":     "pdf",
		"Report.DocX":    "docx",
		"archive.tar.gz": "gz",
		"noextension":    "",
	}
	for name, want := range cases {
		if got := NormalizeExt(name); got != want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestTxtVerbatim(t *testing.T) {
	content := "Photosynthesis converts light into chemical energy.\nSecond line.\n"
	path := writeFile(t, "notes.txt", []byte(content))

	got, err := Text(path, "txt")
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if got != content {
		t.Fatalf("txt content mismatch: %q", got)
	}
}

func TestTxtEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)

	got, err := Text(path, "txt")
	if err != nil {
		t.Fatalf("extract empty txt: %v", err)
	}
	if strings.TrimSpace(got) != "" {
		t.Fatalf("expected whitespace-only output, got %q", got)
	}
}

func TestDocx(t *testing.T) {
	path := writeDocx(t, "Cell biology basics", "Mitochondria produce ATP")

	got, err := Text(path, "docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	first := strings.Index(got, "Cell biology basics")
	second := strings.Index(got, "Mitochondria produce ATP")
	if first < 0 || second < 0 {
		t.Fatalf("missing paragraph text in %q", got)
	}
	if first > second {
		t.Fatalf("paragraph order not preserved in %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected paragraph separator in %q", got)
	}
}

func TestDocxMalformed(t *testing.T) {
	path := writeFile(t, "broken.docx", []byte("this is not a zip archive"))

	_, err := Text(path, "docx")
	if err == nil {
		t.Fatal("expected error for malformed docx")
	}
	if errors.Is(err, ErrUnsupportedType) {
		t.Fatal("malformed supported type must not map to ErrUnsupportedType")
	}
}

func TestPDFPageOrderAndSeparator(t *testing.T) {
	path := writePDF(t, "Alpha beta", "Gamma delta")

	got, err := Text(path, "pdf")
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	first := strings.Index(got, "Alpha")
	second := strings.Index(got, "Gamma")
	if first < 0 || second < 0 {
		t.Fatalf("missing page text in %q", got)
	}
	if first > second {
		t.Fatalf("page order not preserved in %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Fatalf("expected blank-line page separator in %q", got)
	}
}

func TestPDFWithoutText(t *testing.T) {
	path := writePDF(t, "")

	got, err := Text(path, "pdf")
	if err != nil {
		t.Fatalf("extract textless pdf: %v", err)
	}
	if strings.TrimSpace(got) != "" {
		t.Fatalf("expected whitespace-only output, got %q", got)
	}
}

func TestUnsupportedType(t *testing.T) {
	path := writeFile(t, "tool.exe", []byte{0x4d, 0x5a})

	_, err := Text(path, "exe")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	// Extraction must never delete the source file.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("source file should still exist: %v", err)
	}
}
