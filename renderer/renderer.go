package renderer

import "github.com/NafisRayan/pdfform/layout"

// Renderer 是一个可写出 PDF 的文档：能创建页面、加载字体、嵌入图片，
// 最终通过 Save 返回文件字节。
type Renderer interface {
	layout.Document

	// AddPage 追加一页，宽高单位为 pt。
	AddPage(width, height float64) layout.Page
	// LoadFont 按来源加载字体；同一 (name, src) 只加载一次。
	LoadFont(name, src string) (layout.Font, error)
	SetMeta(meta Meta)
	Save() ([]byte, error)
}

// Meta 为 PDF 文档信息字典。
type Meta struct {
	Title    string   `json:"title" yaml:"title"`
	Subject  string   `json:"subject" yaml:"subject"`
	Author   string   `json:"author" yaml:"author"`
	Creator  string   `json:"creator" yaml:"creator"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Factory 创建新的空白文档。
type Factory func() Renderer

// WithTrace 返回把每一页的绘制调用记录到 trace 的 Renderer。
func WithTrace(r Renderer, trace *layout.Trace) Renderer {
	return &traced{Renderer: r, trace: trace}
}

type traced struct {
	Renderer
	trace *layout.Trace
	pages int
}

func (t *traced) AddPage(width, height float64) layout.Page {
	page := t.trace.Wrap(t.Renderer.AddPage(width, height), t.pages)
	t.pages++
	return page
}
