package doc

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestParseDocxParagraphs(t *testing.T) {
	docx := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Witness saw a blue van.</w:t></w:r></w:p>
    <w:p><w:r><w:t>The driver wore a red cap.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := parseDocx(docx)
	if err != nil {
		t.Fatalf("parseDocx: %v", err)
	}

	got := string(text)
	if !strings.Contains(got, "Witness saw a blue van.") {
		t.Fatalf("missing first paragraph: %q", got)
	}
	if !strings.Contains(got, "The driver wore a red cap.") {
		t.Fatalf("missing second paragraph: %q", got)
	}
	if !strings.Contains(got, "van.\n") {
		t.Fatalf("paragraphs not separated by newline: %q", got)
	}
}

func TestParseDocxSkipsDeletedText(t *testing.T) {
	docx := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>kept</w:t></w:r><w:del><w:r><w:t>removed</w:t></w:r></w:del></w:p>
  </w:body>
</w:document>`)

	text, err := parseDocx(docx)
	if err != nil {
		t.Fatalf("parseDocx: %v", err)
	}
	if strings.Contains(string(text), "removed") {
		t.Fatalf("deleted text leaked into output: %q", text)
	}
	if !strings.Contains(string(text), "kept") {
		t.Fatalf("kept text missing: %q", text)
	}
}

func TestParseDocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.xml")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.Write([]byte("<x/>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := parseDocx(buf.Bytes()); err == nil {
		t.Fatal("expected error for missing document.xml")
	}
}

func TestParseDocxNotAZip(t *testing.T) {
	if _, err := parseDocx([]byte("plain text")); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}
