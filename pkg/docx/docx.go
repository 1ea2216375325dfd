// Package docx assembles minimal WordprocessingML documents. A .docx file is
// a zip archive whose main part is word/document.xml; this writer emits just
// the parts a single-page letter needs, with no external dependencies.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Page geometry and type sizes, in the units OOXML uses: twips (1/20pt) for
// page measurements, half-points for font sizes.
const (
	pageWidthTwips    = 12240 // US Letter, 8.5in
	pageHeightTwips   = 15840 // US Letter, 11in
	marginTwips       = 1440  // 1in margins all around
	headerWidthTwips  = 9360  // 6.5in header box
	bodyFontHalfPt    = 22    // 11pt body text
	nameFontHalfPt    = 48    // 24pt applicant name
	contactFontHalfPt = 24    // 12pt contact line
)

// Document represents a letter document under assembly.
type Document struct {
	headerName    string
	headerContact string
	paragraphs    []string
}

// NewDocument creates an empty document.
func NewDocument() (doc *Document) {
	doc = &Document{}
	return doc
}

// SetHeader sets the boxed applicant header: a bold centered name line and a
// centered contact line.
func (d *Document) SetHeader(name, contact string) {
	d.headerName = name
	d.headerContact = contact
}

// AddParagraph appends a left-aligned body paragraph.
func (d *Document) AddParagraph(text string) {
	d.paragraphs = append(d.paragraphs, text)
}

// AddParagraphs appends one body paragraph per line of text.
func (d *Document) AddParagraphs(text string) {
	for _, line := range strings.Split(text, "\n") {
		d.AddParagraph(strings.TrimRight(line, "\r"))
	}
}

// Save writes the document to path, creating the parent directory if needed.
func (d *Document) Save(path string) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", dir)
		return err
	}

	var f *os.File
	f, err = os.Create(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to create document file: %s", path)
		return err
	}
	defer f.Close()

	err = d.Write(f)
	if err != nil {
		err = errors.Wrapf(err, "failed to write document: %s", path)
		return err
	}

	return err
}

// Write emits the document as a zip archive to w.
func (d *Document) Write(w io.Writer) (err error) {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", d.documentXML()},
	}

	for _, part := range parts {
		var pw io.Writer
		pw, err = zw.Create(part.name)
		if err != nil {
			err = errors.Wrapf(err, "failed to create zip entry: %s", part.name)
			return err
		}

		_, err = io.WriteString(pw, part.content)
		if err != nil {
			err = errors.Wrapf(err, "failed to write zip entry: %s", part.name)
			return err
		}
	}

	err = zw.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to finalize zip archive")
		return err
	}

	return err
}

// documentXML renders word/document.xml: header table, spacer, then body
// paragraphs, with section properties for margins last.
func (d *Document) documentXML() (content string) {
	var sb strings.Builder

	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	if d.headerName != "" || d.headerContact != "" {
		writeHeaderTable(&sb, d.headerName, d.headerContact)
		// Spacer between the header box and the letter
		writeParagraph(&sb, "", alignLeft, 0, false)
	}

	for _, text := range d.paragraphs {
		writeParagraph(&sb, text, alignLeft, 0, false)
	}

	writeSectionProperties(&sb)

	sb.WriteString(`</w:body></w:document>`)

	content = sb.String()
	return content
}

type alignment string

const (
	alignLeft   alignment = "left"
	alignCenter alignment = "center"
)

// writeParagraph emits a single w:p element. A zero size uses the document
// default.
func writeParagraph(sb *strings.Builder, text string, align alignment, sizeHalfPt int, bold bool) {
	sb.WriteString(`<w:p>`)

	if align != alignLeft {
		sb.WriteString(`<w:pPr><w:jc w:val="` + string(align) + `"/></w:pPr>`)
	}

	if text != "" {
		sb.WriteString(`<w:r>`)
		if bold || sizeHalfPt > 0 {
			sb.WriteString(`<w:rPr>`)
			if bold {
				sb.WriteString(`<w:b/>`)
			}
			if sizeHalfPt > 0 {
				sb.WriteString(`<w:sz w:val="` + strconv.Itoa(sizeHalfPt) + `"/><w:szCs w:val="` + strconv.Itoa(sizeHalfPt) + `"/>`)
			}
			sb.WriteString(`</w:rPr>`)
		}
		sb.WriteString(`<w:t xml:space="preserve">`)
		sb.WriteString(escapeXML(text))
		sb.WriteString(`</w:t></w:r>`)
	}

	sb.WriteString(`</w:p>`)
}

// writeHeaderTable emits the one-cell bordered box holding the applicant
// name and contact line.
func writeHeaderTable(sb *strings.Builder, name, contact string) {
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="` + strconv.Itoa(headerWidthTwips) + `" w:type="dxa"/>`)
	sb.WriteString(`<w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right"} {
		sb.WriteString(`<w:` + side + ` w:val="single" w:sz="4" w:space="0" w:color="000000"/>`)
	}
	sb.WriteString(`</w:tblBorders></w:tblPr>`)
	sb.WriteString(`<w:tblGrid><w:gridCol w:w="` + strconv.Itoa(headerWidthTwips) + `"/></w:tblGrid>`)
	sb.WriteString(`<w:tr><w:tc><w:tcPr><w:tcW w:w="` + strconv.Itoa(headerWidthTwips) + `" w:type="dxa"/></w:tcPr>`)

	writeCellParagraph(sb, name, nameFontHalfPt, true)
	writeCellParagraph(sb, contact, contactFontHalfPt, false)

	sb.WriteString(`</w:tc></w:tr></w:tbl>`)
}

// writeCellParagraph emits a centered paragraph inside the header cell. Table
// cells must contain at least one paragraph, so empty text still emits one.
func writeCellParagraph(sb *strings.Builder, text string, sizeHalfPt int, bold bool) {
	writeParagraph(sb, text, alignCenter, sizeHalfPt, bold)
}

// writeSectionProperties emits page size and the 1in margins.
func writeSectionProperties(sb *strings.Builder) {
	sb.WriteString(`<w:sectPr>`)
	sb.WriteString(`<w:pgSz w:w="` + strconv.Itoa(pageWidthTwips) + `" w:h="` + strconv.Itoa(pageHeightTwips) + `"/>`)
	sb.WriteString(`<w:pgMar w:top="` + strconv.Itoa(marginTwips) + `" w:right="` + strconv.Itoa(marginTwips) +
		`" w:bottom="` + strconv.Itoa(marginTwips) + `" w:left="` + strconv.Itoa(marginTwips) +
		`" w:header="720" w:footer="720" w:gutter="0"/>`)
	sb.WriteString(`</w:sectPr>`)
}

// escapeXML escapes text for inclusion in an XML element.
func escapeXML(text string) (escaped string) {
	var sb strings.Builder
	// EscapeText only fails on a broken writer; strings.Builder never is.
	_ = xml.EscapeText(&sb, []byte(text))
	escaped = sb.String()
	return escaped
}
