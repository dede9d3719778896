package export

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"rbt-notepad/internal/config"
	apperrors "rbt-notepad/pkg/errors"
	"rbt-notepad/pkg/logger"
	"rbt-notepad/pkg/metrics"
	"rbt-notepad/pkg/tracer"
)

// Exporter 导出器接口
type Exporter interface {
	// Export 将文档转换为目标格式
	Export(doc Document) ([]byte, error)

	// FileExtension 文件扩展名（含点号）
	FileExtension() string

	// MimeType 下载时使用的 MIME 类型
	MimeType() string
}

// 支持的导出格式
const (
	FormatText = "txt"
	FormatDocx = "docx"
	FormatPDF  = "pdf"
)

var (
	ErrUnknownFormat = apperrors.New(apperrors.CodeUnsupportedFormat, "unknown export format")
	ErrEmptyNote     = apperrors.New(apperrors.CodeEmptyNote, "there is no note to export")
	ErrExportFailed  = apperrors.New(apperrors.CodeExportFailed, "Failed to export the note. Please try again.")
)

// File 导出结果
type File struct {
	Name     string
	MimeType string
	Content  []byte
}

// Registry 格式名到导出器的映射
type Registry struct {
	exporters map[string]Exporter
	now       func() time.Time
}

// NewRegistry 创建包含三种内置格式的注册表
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		exporters: map[string]Exporter{
			FormatText: TextExporter{},
			FormatDocx: DocxExporter{},
			FormatPDF:  NewPDFExporter(cfg.Export.PDF),
		},
		now: time.Now,
	}
}

// Get 按格式名查找导出器
func (r *Registry) Get(format string) (Exporter, error) {
	e, ok := r.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, ErrUnknownFormat.WithDetail(fmt.Sprintf("format %q, supported: %s", format, strings.Join(r.Formats(), ", ")))
	}
	return e, nil
}

// Formats 已注册的格式名
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.exporters))
	for k := range r.exporters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Export 生成可下载文件；失败会记录日志与指标并返回给调用方
func (r *Registry) Export(ctx context.Context, format string, doc Document) (*File, error) {
	ctx, span := tracer.Start(ctx, "export."+format)
	defer span.End()

	exporter, err := r.Get(format)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Note) == "" {
		return nil, ErrEmptyNote
	}

	content, err := exporter.Export(doc)
	if err != nil {
		metrics.ExportTotal.WithLabelValues(format, "error").Inc()
		tracer.Fail(span, err)
		logger.Error(ctx, "export failed", err, "format", format)
		return nil, ErrExportFailed.WithError(err)
	}

	metrics.ExportTotal.WithLabelValues(format, "success").Inc()
	metrics.ExportSize.WithLabelValues(format).Observe(float64(len(content)))
	logger.Debug(ctx, "note exported", "format", format, "bytes", len(content))

	return &File{
		Name:     FileBase(doc.ClientName, doc.SessionDate, r.now()) + exporter.FileExtension(),
		MimeType: exporter.MimeType(),
		Content:  content,
	}, nil
}
