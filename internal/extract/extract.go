package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType is returned for extensions outside {txt, docx, pdf}.
var ErrUnsupportedType = errors.New("unsupported file type")

// NormalizeExt returns the lowercase extension tag of a file name, without
// the leading dot. The tag comes from the client-supplied name, never from
// the declared content type.
func NormalizeExt(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// Text reads the file at path and returns its plain-text content, dispatching
// on the declared extension tag. It never deletes the source file; deletion
// is the caller's responsibility.
func Text(path, ext string) (string, error) {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read txt: %w", err)
		}
		return string(b), nil
	case "docx":
		return docxText(path)
	case "pdf":
		return pdfText(path)
	default:
		return "", ErrUnsupportedType
	}
}

// docxText pulls the text runs out of word/document.xml. Formatting, tables
// and embedded objects are not reconstructed.
func docxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return documentXMLText(rc)
	}
	return "", errors.New("docx: word/document.xml not found")
}

func documentXMLText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inRun := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inRun {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// pdfText joins the text fragments of each page with single spaces and pages
// with a blank line, in physical page order. The PDF library can panic on
// malformed documents, so panics are mapped to errors.
func pdfText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		frags := make([]string, 0, len(content.Text))
		for _, item := range content.Text {
			frags = append(frags, item.S)
		}
		pages = append(pages, strings.Join(frags, " "))
	}
	return strings.Join(pages, "\n\n"), nil
}
