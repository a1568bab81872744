package layout

import "strings"

// ParagraphRequest 描述一段可能多行的文字。
// Size 为零取默认字号，LineHeight 为零取 Size × LineHeightFactor，Align 为空取 justify。
type ParagraphRequest struct {
	Text       string
	X          float64
	Y          float64
	MaxWidth   float64
	Size       float64
	Color      Color
	LineHeight float64
	Align      HAlign
}

// PlaceParagraph 折行后逐行绘制，每行恰好一次 DrawText，自上而下。
func PlaceParagraph(page Page, font Font, req ParagraphRequest) error {
	defaults := DefaultOptions()
	size := req.Size
	if size <= 0 {
		size = defaults.TextSize
	}
	lineHeight := req.LineHeight
	if lineHeight <= 0 {
		lineHeight = size * defaults.LineHeightFactor
	}
	align := HAlign(strings.ToLower(string(req.Align)))
	if align == "" {
		align = defaults.ParagraphAlign
	}

	measure := func(s string) float64 { return font.WidthOfTextAtSize(s, size) }
	spaceWidth := measure(" ")

	for _, line := range FlowParagraphs(req.Text, measure, spaceWidth, req.MaxWidth) {
		start, extra := line.Offsets(align, req.MaxWidth)
		err := page.DrawText(line.Text(), TextOptions{
			X:           req.X + start,
			Y:           req.Y - float64(line.Slot)*lineHeight,
			Size:        size,
			Font:        font,
			Color:       req.Color,
			WordSpacing: extra,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
