package layout

import (
	"encoding/json"
	"os"
	"sync"
)

// TraceOp 为一次绘制调用的记录。Kind 为 text/line/rect/image。
type TraceOp struct {
	Page        int           `json:"page"`
	Kind        string        `json:"kind"`
	Text        string        `json:"text,omitempty"`
	Font        string        `json:"font,omitempty"`
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	Size        float64       `json:"size,omitempty"`
	WordSpacing float64       `json:"wordSpacing,omitempty"`
	Color       *Color        `json:"color,omitempty"`
	Line        *LineOptions  `json:"line,omitempty"`
	Rect        *RectOptions  `json:"rect,omitempty"`
	Image       *ImageOptions `json:"image,omitempty"`
}

// Trace 收集多页的绘制记录。
type Trace struct {
	mu  sync.Mutex
	ops []TraceOp
}

// Ops 返回当前记录的副本。
func (t *Trace) Ops() []TraceOp {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TraceOp(nil), t.ops...)
}

func (t *Trace) add(op TraceOp) {
	t.mu.Lock()
	t.ops = append(t.ops, op)
	t.mu.Unlock()
}

// Wrap 返回记录绘制调用后再转发给 page 的 Page；index 为页序号。
func (t *Trace) Wrap(page Page, index int) Page {
	return &tracedPage{Page: page, trace: t, index: index}
}

// WriteJSON 将记录输出为缩进 JSON，便于调试或可视化。
func (t *Trace) WriteJSON(path string) error {
	data, err := json.MarshalIndent(t.Ops(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type tracedPage struct {
	Page
	trace *Trace
	index int
}

func (p *tracedPage) DrawText(text string, o TextOptions) error {
	op := TraceOp{Page: p.index, Kind: "text", Text: text, X: o.X, Y: o.Y, Size: o.Size, WordSpacing: o.WordSpacing}
	if o.Font != nil {
		op.Font = o.Font.Name()
	}
	color := o.Color
	op.Color = &color
	p.trace.add(op)
	return p.Page.DrawText(text, o)
}

func (p *tracedPage) DrawLine(o LineOptions) error {
	p.trace.add(TraceOp{Page: p.index, Kind: "line", Line: &o})
	return p.Page.DrawLine(o)
}

func (p *tracedPage) DrawRectangle(o RectOptions) error {
	p.trace.add(TraceOp{Page: p.index, Kind: "rect", Rect: &o})
	return p.Page.DrawRectangle(o)
}

func (p *tracedPage) DrawImage(img Image, o ImageOptions) error {
	p.trace.add(TraceOp{Page: p.index, Kind: "image", Image: &o})
	return p.Page.DrawImage(img, o)
}
