package layout

// Options 汇总请求字段为零值时采用的默认值。调用方每次通过 DefaultOptions 取得新副本，
// 包内没有可变的全局默认值。
type Options struct {
	TextSize         float64 // 单行文字与段落的默认字号：8pt
	LineHeightFactor float64 // 段落默认行高 = 字号 × 1.2
	ParagraphAlign   HAlign  // 段落默认对齐：justify
	LabelGap         float64 // 标签与值之间的默认间距：10pt
}

// DefaultOptions 返回文档化的默认值。
func DefaultOptions() Options {
	return Options{
		TextSize:         8,
		LineHeightFactor: 1.2,
		ParagraphAlign:   AlignJustify,
		LabelGap:         10,
	}
}

// TableStyle 控制表格外观。调用方应从 DefaultTableStyle 出发再修改字段。
type TableStyle struct {
	RowHeight             float64
	FontSize              float64
	BorderColor           Color
	TextColor             Color
	BorderWidth           float64
	Padding               float64
	BoldFont              Font
	ShowBorders           bool
	ShowVerticalBorders   bool
	ShowHorizontalBorders bool
}

// DefaultTableStyle 返回默认表格样式：行高 20、字号 10、黑色边框与文字、
// 内边距 4、线宽 0.5，三类边框全部开启。
func DefaultTableStyle() TableStyle {
	return TableStyle{
		RowHeight:             20,
		FontSize:              10,
		BorderColor:           Black,
		TextColor:             Black,
		BorderWidth:           0.5,
		Padding:               4,
		ShowBorders:           true,
		ShowVerticalBorders:   true,
		ShowHorizontalBorders: true,
	}
}
