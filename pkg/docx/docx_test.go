package docx

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

// readPart opens a saved docx and returns the named part's content.
func readPart(t *testing.T, path, partName string) (content string) {
	t.Helper()

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open docx as zip: %v", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != partName {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			t.Fatalf("Failed to open part %s: %v", partName, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read part %s: %v", partName, err)
		}

		content = string(data)
		return content
	}

	t.Fatalf("Part %s not found in %s", partName, path)
	return content
}

func TestSaveProducesValidArchive(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	doc := NewDocument()
	doc.SetHeader("Test User", "test@example.com | 555-0100")
	doc.AddParagraph("March 7, 2025")
	doc.AddParagraph("Dear Hiring Team,")

	err := doc.Save(docxPath)
	if err != nil {
		t.Fatalf("Failed to save document: %v", err)
	}

	reader, err := zip.OpenReader(docxPath)
	if err != nil {
		t.Fatalf("Saved file is not a valid zip: %v", err)
	}
	defer reader.Close()

	required := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
		"word/document.xml":            false,
	}

	for _, file := range reader.File {
		if _, ok := required[file.Name]; ok {
			required[file.Name] = true
		}
	}

	for name, found := range required {
		if !found {
			t.Errorf("Required part %s missing from archive", name)
		}
	}
}

func TestSaveCreatesOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "nested", "dir", "test.docx")

	doc := NewDocument()
	doc.AddParagraph("content")

	err := doc.Save(docxPath)
	if err != nil {
		t.Fatalf("Failed to save document in nested directory: %v", err)
	}
}

func TestDocumentXMLContent(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	doc := NewDocument()
	doc.SetHeader("Test User", "test@example.com")
	doc.AddParagraph("First paragraph")
	doc.AddParagraph("Second paragraph")

	err := doc.Save(docxPath)
	if err != nil {
		t.Fatalf("Failed to save document: %v", err)
	}

	documentXML := readPart(t, docxPath, "word/document.xml")

	for _, expected := range []string{"Test User", "test@example.com", "First paragraph", "Second paragraph"} {
		if !strings.Contains(documentXML, expected) {
			t.Errorf("document.xml missing text '%s'", expected)
		}
	}

	// Header box precedes body text.
	if strings.Index(documentXML, "<w:tbl>") > strings.Index(documentXML, "First paragraph") {
		t.Error("Expected header table before body paragraphs")
	}

	// Paragraph order is preserved.
	if strings.Index(documentXML, "First paragraph") > strings.Index(documentXML, "Second paragraph") {
		t.Error("Expected paragraphs in insertion order")
	}

	// 1in margins in the section properties.
	if !strings.Contains(documentXML, `w:top="1440"`) {
		t.Error("Expected 1in top margin in section properties")
	}
}

func TestDocumentXMLEscaping(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	doc := NewDocument()
	doc.AddParagraph(`Benefits & perks <unmatched> "quotes"`)

	err := doc.Save(docxPath)
	if err != nil {
		t.Fatalf("Failed to save document: %v", err)
	}

	documentXML := readPart(t, docxPath, "word/document.xml")

	if !strings.Contains(documentXML, "Benefits &amp; perks") {
		t.Error("Expected ampersand escaped")
	}

	if strings.Contains(documentXML, "<unmatched>") {
		t.Error("Expected angle brackets escaped")
	}
}

func TestAddParagraphsSplitsLines(t *testing.T) {
	doc := NewDocument()
	doc.AddParagraphs("line one\nline two\r\nline three")

	if len(doc.paragraphs) != 3 {
		t.Fatalf("Expected 3 paragraphs, got %d", len(doc.paragraphs))
	}

	if doc.paragraphs[1] != "line two" {
		t.Errorf("Expected CR trimmed, got '%s'", doc.paragraphs[1])
	}
}

func TestStylesSetCalibri(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	doc := NewDocument()
	doc.AddParagraph("content")

	err := doc.Save(docxPath)
	if err != nil {
		t.Fatalf("Failed to save document: %v", err)
	}

	stylesXML := readPart(t, docxPath, "word/styles.xml")

	if !strings.Contains(stylesXML, `w:ascii="Calibri"`) {
		t.Error("Expected Calibri default font")
	}

	if !strings.Contains(stylesXML, `w:val="22"`) {
		t.Error("Expected 11pt default size")
	}
}

func TestNoHeaderOmitsTable(t *testing.T) {
	doc := NewDocument()
	doc.AddParagraph("content")

	documentXML := doc.documentXML()

	if strings.Contains(documentXML, "<w:tbl>") {
		t.Error("Expected no header table when header unset")
	}
}
