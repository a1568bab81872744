package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/NafisRayan/pdfform/fonts"
	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
)

// Document 基于 github.com/tdewolff/canvas 实现 renderer.Renderer。
// 对外坐标为 pt、原点左下角；每页一个 canvas，内部以 mm 绘制。
type Document struct {
	baseDir string

	meta  renderer.Meta
	pages []*Page

	fontMu sync.Mutex
	fonts  map[string]*Font
}

var (
	_ renderer.Renderer = (*Document)(nil)
	_ layout.Page       = (*Page)(nil)
	_ layout.Font       = (*Font)(nil)
	_ layout.Image      = (*Image)(nil)
)

// Options configures the canvas document.
type Options struct {
	// BaseDir 用于解析相对字体路径。
	BaseDir string
}

// New creates an empty document.
func New(opts Options) *Document {
	return &Document{baseDir: opts.BaseDir, fonts: map[string]*Font{}}
}

// Factory 返回使用给定选项的 renderer.Factory。
func Factory(opts Options) renderer.Factory {
	return func() renderer.Renderer { return New(opts) }
}

func (d *Document) SetMeta(meta renderer.Meta) { d.meta = meta }

// AddPage 追加一页。
func (d *Document) AddPage(width, height float64) layout.Page {
	c := canvas.New(toMm(width), toMm(height))
	p := &Page{
		doc:    d,
		width:  width,
		height: height,
		canvas: c,
		ctx:    canvas.NewContext(c),
	}
	d.pages = append(d.pages, p)
	return p
}

// Save 把全部页面写入 PDF。
func (d *Document) Save() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	var buf bytes.Buffer
	first := d.pages[0]
	writer := pdf.New(&buf, toMm(first.width), toMm(first.height), nil)
	writer.SetInfo(d.meta.Title, d.meta.Subject, strings.Join(d.meta.Keywords, ", "), d.meta.Author, d.meta.Creator)
	for i, page := range d.pages {
		if i > 0 {
			writer.NewPage(toMm(page.width), toMm(page.height))
		}
		page.canvas.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// EmbedJPEG 严格按 JPEG 解码；失败时由调用方决定是否重新编码。
func (d *Document) EmbedJPEG(data []byte) (layout.Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码 JPEG 失败: %w", err)
	}
	return &Image{doc: d, img: img}, nil
}

// EmbedPNG 严格按 PNG 解码。
func (d *Document) EmbedPNG(data []byte) (layout.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码 PNG 失败: %w", err)
	}
	return &Image{doc: d, img: img}, nil
}

// LoadFont 加载字体。字重与斜体由 name 与 src 推断，例如 "heading"/"builtin:bold"。
func (d *Document) LoadFont(name, src string) (layout.Font, error) {
	key := fontCacheKey(name, src)
	d.fontMu.Lock()
	defer d.fontMu.Unlock()

	if f, ok := d.fonts[key]; ok {
		return f, nil
	}
	path := src
	if !fonts.IsBuiltin(src) && d.baseDir != "" && !filepath.IsAbs(src) {
		path = filepath.Join(d.baseDir, src)
	}
	data, err := fonts.Load(path)
	if err != nil {
		return nil, err
	}
	style := parseFontStyle(fontStyleHint(src))
	familyName := name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	f := &Font{doc: d, name: familyName, family: family, style: style}
	d.fonts[key] = f
	return f, nil
}

// Font 为该文档加载的字体句柄。
type Font struct {
	doc    *Document
	name   string
	family *canvas.FontFamily
	style  canvas.FontStyle
}

func (f *Font) Name() string { return f.name }

// WidthOfTextAtSize 返回 pt 宽度。canvas 的 TextWidth 以 mm 计。
func (f *Font) WidthOfTextAtSize(text string, size float64) float64 {
	return toPt(f.face(size, layout.Black).TextWidth(text))
}

func (f *Font) face(size float64, col layout.Color) *canvas.FontFace {
	return f.family.Face(size, colorFromLayout(col), f.style, canvas.FontNormal)
}

// Image 为已解码的图片。
type Image struct {
	doc *Document
	img image.Image
}

func (i *Image) Size() (int, int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Page 为单页绘制表面。
type Page struct {
	doc           *Document
	width, height float64
	canvas        *canvas.Canvas
	ctx           *canvas.Context
}

func (p *Page) Width() float64  { return p.width }
func (p *Page) Height() float64 { return p.height }

// DrawText 在基线 (X, Y) 处绘制文字。WordSpacing 非零时逐词绘制，
// 每个空格额外前进 WordSpacing。
func (p *Page) DrawText(text string, opts layout.TextOptions) error {
	font, err := p.ownFont(opts.Font)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	face := font.face(opts.Size, opts.Color)
	if opts.WordSpacing == 0 {
		p.ctx.DrawText(toMm(opts.X), toMm(opts.Y), canvas.NewTextLine(face, text, canvas.Left))
		return nil
	}
	space := face.TextWidth(" ") + toMm(opts.WordSpacing)
	cursor := toMm(opts.X)
	for i, word := range strings.Split(text, " ") {
		if i > 0 {
			cursor += space
		}
		if word == "" {
			continue
		}
		p.ctx.DrawText(cursor, toMm(opts.Y), canvas.NewTextLine(face, word, canvas.Left))
		cursor += face.TextWidth(word)
	}
	return nil
}

func (p *Page) DrawLine(opts layout.LineOptions) error {
	w := opts.Thickness
	if w <= 0 {
		w = 1
	}
	p.ctx.SetStrokeColor(colorFromLayout(opts.Color))
	p.ctx.SetStrokeWidth(toMm(w))
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(toMm(opts.EndX-opts.StartX), toMm(opts.EndY-opts.StartY))
	p.ctx.DrawPath(toMm(opts.StartX), toMm(opts.StartY), path)
	return nil
}

func (p *Page) DrawRectangle(opts layout.RectOptions) error {
	if opts.FillColor != nil {
		p.ctx.SetFillColor(colorFromLayout(*opts.FillColor))
	} else {
		p.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	if opts.BorderWidth > 0 {
		p.ctx.SetStrokeColor(colorFromLayout(opts.BorderColor))
		p.ctx.SetStrokeWidth(toMm(opts.BorderWidth))
	} else {
		p.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		p.ctx.SetStrokeWidth(0)
	}
	p.ctx.DrawPath(toMm(opts.X), toMm(opts.Y), canvas.Rectangle(toMm(opts.Width), toMm(opts.Height)))
	return nil
}

// DrawImage 把图片拉伸到 Width × Height，不保持宽高比。
func (p *Page) DrawImage(img layout.Image, opts layout.ImageOptions) error {
	im, ok := img.(*Image)
	if !ok || im.doc != p.doc {
		return fmt.Errorf("图片不属于当前文档")
	}
	pxW, pxH := im.Size()
	if pxW == 0 || pxH == 0 || opts.Width <= 0 || opts.Height <= 0 {
		return nil
	}
	// DPMM(1) 时图片为 pxW × pxH mm，再缩放到目标尺寸。
	sx := toMm(opts.Width) / float64(pxW)
	sy := toMm(opts.Height) / float64(pxH)
	p.ctx.Push()
	p.ctx.ComposeView(canvas.Identity.Translate(toMm(opts.X), toMm(opts.Y)).Scale(sx, sy))
	p.ctx.DrawImage(0, 0, im.img, canvas.DPMM(1))
	p.ctx.Pop()
	return nil
}

func (p *Page) ownFont(f layout.Font) (*Font, error) {
	font, ok := f.(*Font)
	if !ok || font == nil || font.doc != p.doc {
		name := "<nil>"
		if f != nil {
			name = f.Name()
		}
		return nil, fmt.Errorf("%w: %s", layout.ErrForeignFont, name)
	}
	return font, nil
}

// fontStyleHint 取出用于推断字重的部分：内置字体名或文件名。
func fontStyleHint(src string) string {
	if fonts.IsBuiltin(src) {
		return strings.TrimPrefix(strings.TrimPrefix(src, fonts.BuiltinPrefix), "built-in:")
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(name, src string) string {
	return name + "|" + src
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(c.R, c.G, c.B, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
