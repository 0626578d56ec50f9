package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	docxlib "github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-formatter/internal/document"
)

// ReadFile extracts the paragraphs of a .docx file. Runs keep their text,
// bold flag and keyword style; runs inside a hyperlink carry the
// relationship id as Link.
func ReadFile(path string) (*document.Document, error) {
	r, err := docxlib.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx %s: %w", path, err)
	}
	defer r.Close()

	return parseBody(r.Editable().GetContent())
}

// Read extracts the paragraphs of a .docx package held in memory
func Read(data []byte) (*document.Document, error) {
	r, err := docxlib.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer r.Close()

	return parseBody(r.Editable().GetContent())
}

// ReadText returns the plain text of a .docx file, one line per paragraph.
func ReadText(path string) (string, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

// parseBody walks word/document.xml. Only the parts that matter for text
// extraction are interpreted: paragraphs, runs, bold, tabs, breaks and
// hyperlinks. Table cell paragraphs are flattened into the body.
func parseBody(content string) (*document.Document, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	doc := &document.Document{}

	var (
		para   *document.Paragraph
		run    *document.Run
		inRPr  bool
		inText bool
		link   string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "p":
				para = &document.Paragraph{}
			case "pStyle":
				if para != nil && attr(t, "val") == "ListBullet" {
					para.Bullet = true
				}
			case "hyperlink":
				link = attrNS(t, nsRelationships, "id")
			case "r":
				run = &document.Run{Link: link}
			case "rPr":
				inRPr = run != nil
			case "rStyle":
				if inRPr && attr(t, "val") == keywordStyleID {
					run.Keyword = true
				}
			case "b":
				if inRPr && attr(t, "val") != "0" && attr(t, "val") != "false" {
					run.Bold = true
				}
			case "t":
				inText = run != nil
			case "tab":
				if run != nil && !inRPr {
					run.Text += "\t"
				}
			case "br":
				if run != nil {
					run.Text += "\n"
				}
			}
		case xml.CharData:
			if inText {
				run.Text += string(t)
			}
		case xml.EndElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "rPr":
				inRPr = false
			case "r":
				if run != nil && para != nil && run.Text != "" {
					para.Runs = append(para.Runs, *run)
				}
				run = nil
			case "hyperlink":
				link = ""
			case "p":
				if para != nil {
					doc.Blocks = append(doc.Blocks, para)
				}
				para = nil
			}
		}
	}
	return doc, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrNS(el xml.StartElement, space, local string) string {
	for _, a := range el.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
