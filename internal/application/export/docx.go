package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// 字号单位为半磅
const (
	docxHeadingSize = "28"
	docxMetaSize    = "24"
)

// DocxExporter Word 文档：加粗客户名标题、日期与时间行，笔记每个非空行一个段落
type DocxExporter struct{}

func (DocxExporter) Export(doc Document) ([]byte, error) {
	header := doc.HeaderLines()

	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText(header[0]).Bold().Size(docxHeadingSize)
	w.AddParagraph().AddText(header[1]).Size(docxMetaSize)
	w.AddParagraph().AddText(header[2]).Size(docxMetaSize)

	for _, line := range NoteParagraphs(doc.Note) {
		w.AddParagraph().AddText(line)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func (DocxExporter) FileExtension() string { return ".docx" }

func (DocxExporter) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// NoteParagraphs 按行拆分笔记并丢弃空白行
func NoteParagraphs(note string) []string {
	lines := strings.Split(note, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimRight(line, "\r"))
	}
	return out
}
