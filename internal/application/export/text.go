package export

import "strings"

// TextExporter 纯文本：三行抬头、空行、原始笔记
type TextExporter struct{}

func (TextExporter) Export(doc Document) ([]byte, error) {
	header := doc.HeaderLines()
	var b strings.Builder
	b.Grow(len(doc.Note) + 128)
	for _, line := range header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(doc.Note)
	return []byte(b.String()), nil
}

func (TextExporter) FileExtension() string { return ".txt" }

func (TextExporter) MimeType() string { return "text/plain; charset=utf-8" }
