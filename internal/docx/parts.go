package docx

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/document"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeHyperlink = nsRelationships + "/hyperlink"
	relTypeStyles    = nsRelationships + "/styles"
	relTypeNumbering = nsRelationships + "/numbering"
)

// Bullet paragraphs reference this numbering instance
const bulletNumID = 1

const contentTypesXML = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader + `<Relationships xmlns="` + nsPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + nsRelationships + `/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="` + nsPackageRels + `/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="` + nsRelationships + `/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const appXML = xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>resumegen</Application></Properties>`

const numberingXML = xmlHeader + `<w:numbering xmlns:w="` + nsMain + `">` +
	`<w:abstractNum w:abstractNumId="0">` +
	`<w:multiLevelType w:val="hybridMultilevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr></w:lvl>` +
	`</w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`

func coreXML(doc *document.Document) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if doc.Title != "" {
		fmt.Fprintf(&sb, "<dc:title>%s</dc:title>", EscapeText(doc.Title))
	}
	if doc.Author != "" {
		fmt.Fprintf(&sb, "<dc:creator>%s</dc:creator>", EscapeText(doc.Author))
	}
	sb.WriteString(`</cp:coreProperties>`)
	return sb.String()
}

// keywordStyleID tags highlighted keyword runs so a reader can tell them
// apart from bold labels
const keywordStyleID = "Keyword"

// stylesXML declares the document defaults and every style the body refers to.
func stylesXML(doc *document.Document) string {
	font := doc.FontFamily
	if font == "" {
		font = "Calibri"
	}
	size := halfPoints(doc.BaseFontSizePt)
	if size == 0 {
		size = 22
	}
	f := EscapeText(font)

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:styles xmlns:w="` + nsMain + `">`)
	fmt.Fprintf(&sb, `<w:docDefaults><w:rPrDefault><w:rPr>`+
		`<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[1]s" w:cs="%[1]s"/>`+
		`<w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/>`+
		`</w:rPr></w:rPrDefault>`+
		`<w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr></w:pPrDefault>`+
		`</w:docDefaults>`, f, size)
	sb.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	fmt.Fprintf(&sb, `<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/>`+
		`<w:basedOn w:val="Normal"/><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="%d"/></w:numPr>`+
		`<w:ind w:left="360" w:hanging="360"/></w:pPr></w:style>`, bulletNumID)
	sb.WriteString(`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/>` +
		`<w:rPr><w:color w:val="0000FF"/><w:u w:val="single"/></w:rPr></w:style>`)
	sb.WriteString(`<w:style w:type="character" w:customStyle="1" w:styleId="` + keywordStyleID + `"><w:name w:val="Keyword"/>` +
		`<w:rPr><w:b/><w:bCs/></w:rPr></w:style>`)
	sb.WriteString(`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/>` +
		`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/>` +
		`<w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/>` +
		`</w:tblCellMar></w:tblPr></w:style>`)
	sb.WriteString(`</w:styles>`)
	return sb.String()
}

type relationship struct {
	id     string
	target string
}

func documentRelsXML(links []relationship) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="` + nsPackageRels + `">`)
	sb.WriteString(`<Relationship Id="rId1" Type="` + relTypeStyles + `" Target="styles.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="` + relTypeNumbering + `" Target="numbering.xml"/>`)
	for _, l := range links {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s" TargetMode="External"/>`,
			l.id, relTypeHyperlink, EscapeText(l.target))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func halfPoints(pt float64) int {
	return int(pt*2 + 0.5)
}
