package web

import "embed"

// Templates 打包全部页面模板，部署时无需携带目录。
//
//go:embed templates/*.html
var Templates embed.FS
