// Package web 内嵌的单页前端
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Static 静态资源文件系统（index.html、app.js、style.css）
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Index 首页内容
func Index() []byte {
	b, err := files.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return b
}
