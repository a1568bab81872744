package layout

import (
	"errors"
	"fmt"
)

// fixedFont 为测试用等宽字体：普通字符宽 size，空格宽 size/2。
// 10pt 时 "AAAA" 宽 40，空格宽 5。
type fixedFont struct{ name string }

func (f fixedFont) Name() string { return f.name }

func (f fixedFont) WidthOfTextAtSize(text string, size float64) float64 {
	w := 0.0
	for _, r := range text {
		if r == ' ' {
			w += size / 2
		} else {
			w += size
		}
	}
	return w
}

type drawnText struct {
	Text string
	Opts TextOptions
}

type drawnImage struct {
	Image Image
	Opts  ImageOptions
}

// recordingPage 记录所有绘制调用，ops 按调用顺序保存类型名。
type recordingPage struct {
	width, height float64
	texts         []drawnText
	lines         []LineOptions
	rects         []RectOptions
	images        []drawnImage
	ops           []string
	failOn        string
}

func newPage() *recordingPage { return &recordingPage{width: A4.Width, height: A4.Height} }

func (p *recordingPage) Width() float64  { return p.width }
func (p *recordingPage) Height() float64 { return p.height }

func (p *recordingPage) record(op string) error {
	p.ops = append(p.ops, op)
	if p.failOn == op {
		return fmt.Errorf("%s 失败", op)
	}
	return nil
}

func (p *recordingPage) DrawText(text string, opts TextOptions) error {
	p.texts = append(p.texts, drawnText{Text: text, Opts: opts})
	return p.record("text")
}

func (p *recordingPage) DrawLine(opts LineOptions) error {
	p.lines = append(p.lines, opts)
	return p.record("line")
}

func (p *recordingPage) DrawRectangle(opts RectOptions) error {
	p.rects = append(p.rects, opts)
	return p.record("rect")
}

func (p *recordingPage) DrawImage(img Image, opts ImageOptions) error {
	p.images = append(p.images, drawnImage{Image: img, Opts: opts})
	return p.record("image")
}

type fakeImage struct{ w, h int }

func (i fakeImage) Size() (int, int) { return i.w, i.h }

var errBadImage = errors.New("bad image")

// fakeDocument 只接受 good 中列出的字节内容。
type fakeDocument struct {
	good      map[string]bool
	jpegCalls int
	pngCalls  int
}

func (d *fakeDocument) embed(data []byte) (Image, error) {
	if d.good[string(data)] {
		return fakeImage{w: 10, h: 5}, nil
	}
	return nil, errBadImage
}

func (d *fakeDocument) EmbedJPEG(data []byte) (Image, error) {
	d.jpegCalls++
	return d.embed(data)
}

func (d *fakeDocument) EmbedPNG(data []byte) (Image, error) {
	d.pngCalls++
	return d.embed(data)
}
