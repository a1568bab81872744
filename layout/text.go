package layout

import "strings"

// TextRequest 描述一次单行文字放置。Size 为零时取 DefaultOptions().TextSize。
type TextRequest struct {
	Text   string
	X      float64
	Y      float64
	Size   float64
	Color  Color
	XAlign HAlign // left（默认）/center/right
	YAlign VAlign // top（默认）/center/bottom
}

// MeasureText 返回文字在指定字号下的宽度。
func MeasureText(font Font, text string, size float64) float64 {
	return font.WidthOfTextAtSize(text, size)
}

// PlaceText 按对齐方式计算起点后绘制一次文字。
// center 忽略传入的 X，以整页宽度居中；right 把 X 视为右边界。
func PlaceText(page Page, font Font, req TextRequest) error {
	size := req.Size
	if size <= 0 {
		size = DefaultOptions().TextSize
	}
	x, y := alignText(page, font, req.Text, req.X, req.Y, size, req.XAlign, req.YAlign)
	return page.DrawText(req.Text, TextOptions{
		X:     x,
		Y:     y,
		Size:  size,
		Font:  font,
		Color: req.Color,
	})
}

func alignText(page Page, font Font, text string, x, y, size float64, xAlign HAlign, yAlign VAlign) (float64, float64) {
	width := font.WidthOfTextAtSize(text, size)
	switch HAlign(strings.ToLower(string(xAlign))) {
	case AlignCenter:
		x = (page.Width() - width) / 2
	case AlignRight:
		x -= width
	}
	switch VAlign(strings.ToLower(string(yAlign))) {
	case VAlignCenter:
		y -= size / 2
	case VAlignBottom:
		y -= size
	}
	return x, y
}

// LabelValueRequest 描述“粗体标签 + 常规值”的组合文字。
type LabelValueRequest struct {
	Label     string
	Value     string
	X         float64
	Y         float64
	LabelSize float64
	ValueSize float64
	Gap       float64 // 为零时取 DefaultOptions().LabelGap
	Color     Color
	XAlign    HAlign
}

// PlaceLabelValue 先用 boldFont 绘制标签，再用 font 绘制值。
// center 以整页宽度居中整个组合，right 使组合贴齐页面右边缘。
func PlaceLabelValue(page Page, font, boldFont Font, req LabelValueRequest) error {
	defaults := DefaultOptions()
	labelSize, valueSize := req.LabelSize, req.ValueSize
	if labelSize <= 0 {
		labelSize = defaults.TextSize
	}
	if valueSize <= 0 {
		valueSize = defaults.TextSize
	}
	gap := req.Gap
	if gap <= 0 {
		gap = defaults.LabelGap
	}

	labelWidth := boldFont.WidthOfTextAtSize(req.Label, labelSize)
	valueWidth := font.WidthOfTextAtSize(req.Value, valueSize)
	total := labelWidth + gap + valueWidth

	x := req.X
	switch HAlign(strings.ToLower(string(req.XAlign))) {
	case AlignCenter:
		x = (page.Width() - total) / 2
	case AlignRight:
		x = page.Width() - total
	}

	if err := PlaceText(page, boldFont, TextRequest{Text: req.Label, X: x, Y: req.Y, Size: labelSize, Color: req.Color}); err != nil {
		return err
	}
	return PlaceText(page, font, TextRequest{Text: req.Value, X: x + labelWidth + gap, Y: req.Y, Size: valueSize, Color: req.Color})
}
