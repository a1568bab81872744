package layout

// 该文件定义排版原语依赖的外部能力（页面、字体、图片、文档）以及绘制参数。
// 坐标统一使用 PDF 点（pt），原点位于页面左下角，y 轴向上。

// Font 能够报告字符串在指定字号下的渲染宽度，同时作为绘制文字时的字体句柄。
type Font interface {
	Name() string
	WidthOfTextAtSize(text string, size float64) float64
}

// Page 是可绘制的页面表面。所有绘制调用按顺序执行，后绘制的内容会覆盖先前的内容。
type Page interface {
	Width() float64
	Height() float64
	DrawText(text string, opts TextOptions) error
	DrawLine(opts LineOptions) error
	DrawRectangle(opts RectOptions) error
	DrawImage(img Image, opts ImageOptions) error
}

// Image 是已嵌入文档、可以绘制到页面上的图片句柄。
type Image interface {
	Size() (width, height int)
}

// Document 负责把解码后的图片字节嵌入目标文档。
type Document interface {
	EmbedJPEG(data []byte) (Image, error)
	EmbedPNG(data []byte) (Image, error)
}

// TextOptions 描述一次文字绘制。X/Y 为基线起点。
// WordSpacing 为每个空格额外增加的宽度，两端对齐的行依赖它一次绘制整行。
type TextOptions struct {
	X           float64
	Y           float64
	Size        float64
	Font        Font
	Color       Color
	WordSpacing float64
}

// LineOptions 描述一条线段。
type LineOptions struct {
	StartX    float64
	StartY    float64
	EndX      float64
	EndY      float64
	Thickness float64
	Color     Color
}

// RectOptions 描述一个矩形，(X, Y) 为左下角。
// FillColor 为空时不填充，BorderWidth <= 0 时不描边。
type RectOptions struct {
	X           float64
	Y           float64
	Width       float64
	Height      float64
	BorderColor Color
	BorderWidth float64
	FillColor   *Color
}

// ImageOptions 描述图片的放置区域，图片会被拉伸到 Width × Height。
type ImageOptions struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// HAlign 为水平对齐方式。
type HAlign string

const (
	AlignLeft    HAlign = "left"
	AlignCenter  HAlign = "center"
	AlignRight   HAlign = "right"
	AlignJustify HAlign = "justify"
)

// VAlign 为单行文字的垂直对齐方式。
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignCenter VAlign = "center"
	VAlignBottom VAlign = "bottom"
)
