// Package entity 定义领域实体
package entity

import "errors"

// ErrNotEditing 非编辑模式下不能修改草稿
var ErrNotEditing = errors.New("note is not in edit mode")

// NoteState 生成的笔记及其编辑草稿
// 导出与分享始终使用 Draft
type NoteState struct {
	Committed string `json:"committed"`
	Draft     string `json:"draft"`
	Editing   bool   `json:"editing"`
}

// Reset 以新生成的结果覆盖，退出编辑模式
func (n *NoteState) Reset(text string) {
	n.Committed = text
	n.Draft = text
	n.Editing = false
}

// BeginEdit 进入编辑模式
func (n *NoteState) BeginEdit() {
	n.Editing = true
}

// SetDraft 修改草稿
func (n *NoteState) SetDraft(text string) error {
	if !n.Editing {
		return ErrNotEditing
	}
	n.Draft = text
	return nil
}

// Save 草稿成为正式内容
func (n *NoteState) Save() {
	n.Committed = n.Draft
	n.Editing = false
}

// Cancel 放弃草稿
func (n *NoteState) Cancel() {
	n.Draft = n.Committed
	n.Editing = false
}

// Current 当前用于导出与分享的文本
func (n *NoteState) Current() string {
	return n.Draft
}

// Empty 是否尚未生成笔记
func (n *NoteState) Empty() bool {
	return n.Committed == "" && n.Draft == ""
}
