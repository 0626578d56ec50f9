// Package docx writes document.Document values as Office Open XML (.docx)
// packages and reads the text back out of them.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-formatter/internal/document"
)

// Letter size in twips
const (
	pageWidth  = 12240
	pageHeight = 15840
)

// Write encodes doc as a .docx package into w.
// Output is byte-for-byte deterministic for a given document.
func Write(doc *document.Document, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	body := &bodyWriter{linkIDs: make(map[string]string)}
	body.writeDocument(doc)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", coreXML(doc)},
		{"docProps/app.xml", appXML},
		{"word/document.xml", body.sb.String()},
		{"word/styles.xml", stylesXML(doc)},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", documentRelsXML(body.links)},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", part.name, err)
		}
		if _, err := io.WriteString(fw, part.content); err != nil {
			return fmt.Errorf("failed to write part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize docx package: %w", err)
	}
	return nil
}

// Bytes encodes doc and returns the package bytes
func Bytes(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type bodyWriter struct {
	sb      strings.Builder
	links   []relationship
	linkIDs map[string]string
}

func (b *bodyWriter) writeDocument(doc *document.Document) {
	b.sb.WriteString(xmlHeader)
	b.sb.WriteString(`<w:document xmlns:w="` + nsMain + `" xmlns:r="` + nsRelationships + `"><w:body>`)
	for _, block := range doc.Blocks {
		switch v := block.(type) {
		case *document.Paragraph:
			b.writeParagraph(v)
		case *document.Table:
			b.writeTable(v)
		}
	}
	b.writeSection(doc)
	b.sb.WriteString(`</w:body></w:document>`)
}

func (b *bodyWriter) writeSection(doc *document.Document) {
	margin := doc.MarginTwips
	fmt.Fprintf(&b.sb, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/>`, pageWidth, pageHeight)
	fmt.Fprintf(&b.sb, `<w:pgMar w:top="%[1]d" w:right="%[1]d" w:bottom="%[1]d" w:left="%[1]d" w:header="720" w:footer="720" w:gutter="0"/>`, margin)
	if doc.PageBorder {
		b.sb.WriteString(`<w:pgBorders w:offsetFrom="text">`)
		for _, side := range []string{"top", "left", "bottom", "right"} {
			fmt.Fprintf(&b.sb, `<w:%s w:val="single" w:sz="6" w:space="14" w:color="000000"/>`, side)
		}
		b.sb.WriteString(`</w:pgBorders>`)
	}
	b.sb.WriteString(`</w:sectPr>`)
}

func (b *bodyWriter) writeParagraph(p *document.Paragraph) {
	b.sb.WriteString(`<w:p>`)
	b.writeParagraphProperties(p)
	for _, r := range p.Runs {
		if r.Link != "" {
			b.writeHyperlink(r)
			continue
		}
		b.writeRun(r, false)
	}
	b.sb.WriteString(`</w:p>`)
}

// writeParagraphProperties emits pPr children in schema order
func (b *bodyWriter) writeParagraphProperties(p *document.Paragraph) {
	var pPr strings.Builder
	if p.Bullet {
		pPr.WriteString(`<w:pStyle w:val="ListBullet"/>`)
	}
	if p.KeepNext {
		pPr.WriteString(`<w:keepNext/>`)
	}
	if p.BorderBottom {
		pPr.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="0" w:color="000000"/></w:pBdr>`)
	}
	if p.Shading != "" {
		fmt.Fprintf(&pPr, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, EscapeText(p.Shading))
	}
	if len(p.TabStops) > 0 {
		pPr.WriteString(`<w:tabs>`)
		for _, ts := range p.TabStops {
			align := ts.Align
			if align == "" {
				align = document.TabLeft
			}
			fmt.Fprintf(&pPr, `<w:tab w:val="%s" w:pos="%d"/>`, align, ts.PositionTwips)
		}
		pPr.WriteString(`</w:tabs>`)
	}
	if p.Spacing != nil {
		fmt.Fprintf(&pPr, `<w:spacing w:before="%d" w:after="%d"/>`,
			twips(p.Spacing.BeforePt), twips(p.Spacing.AfterPt))
	}
	if p.Align != "" && p.Align != document.AlignLeft {
		fmt.Fprintf(&pPr, `<w:jc w:val="%s"/>`, p.Align)
	}

	if pPr.Len() > 0 {
		b.sb.WriteString(`<w:pPr>`)
		b.sb.WriteString(pPr.String())
		b.sb.WriteString(`</w:pPr>`)
	}
}

func (b *bodyWriter) writeHyperlink(r document.Run) {
	id, ok := b.linkIDs[r.Link]
	if !ok {
		// rId1 and rId2 are taken by styles and numbering
		id = fmt.Sprintf("rId%d", len(b.links)+3)
		b.linkIDs[r.Link] = id
		b.links = append(b.links, relationship{id: id, target: r.Link})
	}
	fmt.Fprintf(&b.sb, `<w:hyperlink r:id="%s" w:history="1">`, id)
	b.writeRun(r, true)
	b.sb.WriteString(`</w:hyperlink>`)
}

// writeRun emits rPr children in schema order, then the text with tabs and
// line breaks turned into their own elements.
func (b *bodyWriter) writeRun(r document.Run, hyperlink bool) {
	b.sb.WriteString(`<w:r>`)

	var rPr strings.Builder
	switch {
	case hyperlink:
		rPr.WriteString(`<w:rStyle w:val="Hyperlink"/>`)
	case r.Keyword:
		rPr.WriteString(`<w:rStyle w:val="` + keywordStyleID + `"/>`)
	}
	if r.Bold {
		rPr.WriteString(`<w:b/><w:bCs/>`)
	}
	if r.Italic {
		rPr.WriteString(`<w:i/><w:iCs/>`)
	}
	if r.Color != "" {
		fmt.Fprintf(&rPr, `<w:color w:val="%s"/>`, EscapeText(r.Color))
	}
	if r.SizePt > 0 {
		fmt.Fprintf(&rPr, `<w:sz w:val="%[1]d"/><w:szCs w:val="%[1]d"/>`, halfPoints(r.SizePt))
	}
	if r.Underline {
		rPr.WriteString(`<w:u w:val="single"/>`)
	}
	if rPr.Len() > 0 {
		b.sb.WriteString(`<w:rPr>`)
		b.sb.WriteString(rPr.String())
		b.sb.WriteString(`</w:rPr>`)
	}

	lines := strings.Split(r.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			b.sb.WriteString(`<w:br/>`)
		}
		for j, chunk := range strings.Split(line, "\t") {
			if j > 0 {
				b.sb.WriteString(`<w:tab/>`)
			}
			if chunk == "" {
				continue
			}
			b.sb.WriteString(`<w:t xml:space="preserve">`)
			b.sb.WriteString(EscapeText(chunk))
			b.sb.WriteString(`</w:t>`)
		}
	}

	b.sb.WriteString(`</w:r>`)
}

func (b *bodyWriter) writeTable(t *document.Table) {
	b.sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/>`)
	if t.Borders {
		b.sb.WriteString(`<w:tblBorders>`)
		for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
			fmt.Fprintf(&b.sb, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="000000"/>`, side)
		}
		b.sb.WriteString(`</w:tblBorders>`)
	}
	b.sb.WriteString(`<w:tblLayout w:type="fixed"/><w:tblLook w:val="0000"/></w:tblPr>`)

	b.sb.WriteString(`<w:tblGrid>`)
	for _, width := range t.ColumnWidths {
		fmt.Fprintf(&b.sb, `<w:gridCol w:w="%d"/>`, width)
	}
	b.sb.WriteString(`</w:tblGrid>`)

	for _, row := range t.Rows {
		b.sb.WriteString(`<w:tr>`)
		for i, cell := range row {
			b.sb.WriteString(`<w:tc>`)
			if i < len(t.ColumnWidths) {
				fmt.Fprintf(&b.sb, `<w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr>`, t.ColumnWidths[i])
			}
			if len(cell.Paragraphs) == 0 {
				// a cell must hold at least one paragraph
				b.sb.WriteString(`<w:p/>`)
			}
			for _, p := range cell.Paragraphs {
				b.writeParagraph(p)
			}
			b.sb.WriteString(`</w:tc>`)
		}
		b.sb.WriteString(`</w:tr>`)
	}
	b.sb.WriteString(`</w:tbl>`)
}

func twips(pt float64) int {
	return int(pt*document.TwipsPerPoint + 0.5)
}
