// Package export 将笔记导出为 TXT/DOCX/PDF，并提供分享能力
package export

import (
	"regexp"
	"time"

	"rbt-notepad/internal/domain/entity"
)

const notAvailable = "N/A"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// Document 导出输入：当前（可能已编辑的）笔记与会话元数据
type Document struct {
	Note        string
	ClientName  string
	SessionDate string
	StartTime   string
	EndTime     string
}

// NewDocument 由会话数据与笔记文本构造导出输入
func NewDocument(data *entity.SessionData, note string) Document {
	doc := Document{Note: note}
	if data != nil {
		doc.ClientName = data.ClientName
		doc.SessionDate = data.SessionDate
		doc.StartTime = data.StartTime
		doc.EndTime = data.EndTime
	}
	return doc
}

// HeaderLines 三行抬头：Client / Date / Time，缺失的日期与时间显示 N/A
func (d Document) HeaderLines() [3]string {
	return [3]string{
		"Client: " + d.ClientName,
		"Date: " + orNA(d.SessionDate),
		"Time: " + orNA(d.StartTime) + " - " + orNA(d.EndTime),
	}
}

// FileBase 文件名主体 RBT_Note_<client>_<date>
// 客户名中每个非字母数字字符替换为 _；日期缺失时取 now
func FileBase(clientName, date string, now time.Time) string {
	if clientName == "" {
		clientName = "Client"
	}
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	return "RBT_Note_" + unsafeFileChars.ReplaceAllString(clientName, "_") + "_" + date
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
