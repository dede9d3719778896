package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"rbt-notepad/internal/config"
)

// 固定版式的纵向位置（mm）
const (
	pdfHeaderY   = 20.0
	pdfDateY     = 30.0
	pdfTimeY     = 38.0
	pdfBodyY     = 50.0
	pdfTopMargin = 20.0
	pdfFont      = "Helvetica"
)

// PDFExporter PDF：固定位置的抬头，正文按宽度折行，超出页底时换页
type PDFExporter struct {
	pageSize     string
	left         float64
	width        float64
	bottomMargin float64
	lineHeight   float64
}

// NewPDFExporter 按配置创建，未配置的项使用默认版式
func NewPDFExporter(cfg config.PDFConfig) *PDFExporter {
	e := &PDFExporter{
		pageSize:     cfg.PageSize,
		left:         cfg.LeftMargin,
		width:        cfg.TextWidth,
		bottomMargin: cfg.BottomMargin,
		lineHeight:   cfg.LineHeight,
	}
	if e.pageSize == "" {
		e.pageSize = "A4"
	}
	if e.left <= 0 {
		e.left = 15
	}
	if e.width <= 0 {
		e.width = 180
	}
	if e.bottomMargin <= 0 {
		e.bottomMargin = 15
	}
	if e.lineHeight <= 0 {
		e.lineHeight = 6
	}
	return e
}

func (e *PDFExporter) Export(doc Document) ([]byte, error) {
	header := doc.HeaderLines()

	pdf := fpdf.New("P", "mm", e.pageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 14)
	pdf.Text(e.left, pdfHeaderY, tr(foldLatin1(header[0])))
	pdf.SetFont(pdfFont, "", 12)
	pdf.Text(e.left, pdfDateY, tr(foldLatin1(header[1])))
	pdf.Text(e.left, pdfTimeY, tr(foldLatin1(header[2])))

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - e.bottomMargin

	y := pdfBodyY
	for _, line := range pdf.SplitText(foldLatin1(doc.Note), e.width) {
		if y > limit {
			pdf.AddPage()
			y = pdfTopMargin
		}
		pdf.Text(e.left, y, tr(line))
		y += e.lineHeight
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) FileExtension() string { return ".pdf" }

func (e *PDFExporter) MimeType() string { return "application/pdf" }

// latin1Folds 常见排版字符到 ASCII 的映射
var latin1Folds = map[rune]string{
	'\u2018': "'", '\u2019': "'", '\u201a': "'",
	'\u201c': `"`, '\u201d': `"`, '\u201e': `"`,
	'\u2013': "-", '\u2014': "-", '\u2212': "-",
	'\u2026': "...",
	'\u2022': "*", '\u25cf': "*",
	'\u2002': " ", '\u2003': " ", '\u2009': " ",
	'\u2192': "->",
	'\t':     "    ",
	'\r':     "",
}

// foldLatin1 内置字体只覆盖单字节编码，其余字符折叠为 ASCII 或 ?
func foldLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := latin1Folds[r]; ok {
			b.WriteString(rep)
			continue
		}
		if r > 0xFF {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
