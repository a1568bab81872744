package layout

import "strings"

// 本文件实现贪心折行与两端对齐的纯函数部分，不依赖任何绘制表面。

// Measure 返回一段文字的宽度（pt）。
type Measure func(text string) float64

// Line 是折行后的一行。
type Line struct {
	Words []string
	Width float64 // 自然宽度：单词宽度之和加上单个空格
	Last  bool    // 是否为所属段落的最后一行
	Slot  int     // 行槽序号，绘制在 y - Slot*lineHeight
}

// Text 返回以单个空格连接的行内容。
func (l Line) Text() string { return strings.Join(l.Words, " ") }

// Offsets 返回该行相对段落左边界的起点偏移，以及两端对齐时每个词间隙的额外宽度。
// 段落最后一行与单词行从不拉伸。
func (l Line) Offsets(align HAlign, maxWidth float64) (start, extraPerGap float64) {
	switch align {
	case AlignCenter:
		start = (maxWidth - l.Width) / 2
	case AlignRight:
		start = maxWidth - l.Width
	case AlignJustify:
		if gaps := len(l.Words) - 1; !l.Last && gaps > 0 {
			extraPerGap = (maxWidth - l.Width) / float64(gaps)
		}
	}
	return start, extraPerGap
}

// WordPlacement 记录单词的绘制起点。
type WordPlacement struct {
	Word string
	X    float64
}

// Placement 计算行内每个单词的起点，x 为段落左边界。
func (l Line) Placement(align HAlign, x, maxWidth, spaceWidth float64, measure Measure) []WordPlacement {
	start, extra := l.Offsets(align, maxWidth)
	cursor := x + start
	out := make([]WordPlacement, 0, len(l.Words))
	for i, w := range l.Words {
		out = append(out, WordPlacement{Word: w, X: cursor})
		if i < len(l.Words)-1 {
			cursor += measure(w) + spaceWidth + extra
		}
	}
	return out
}

// SplitParagraphs 按换行符切分段落，把每段内的连续空白压缩为单个空格并去掉首尾空白，
// 丢弃空段落。
func SplitParagraphs(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WrapWords 对单个段落做贪心折行：当前行宽 + 空格（首词除外）+ 词宽 <= maxWidth 时追加，
// 否则换行。超过 maxWidth 的单词独占一行，不截断也不断词。
func WrapWords(words []string, measure Measure, spaceWidth, maxWidth float64) []Line {
	var (
		lines []Line
		cur   []string
		width float64
	)
	for _, word := range words {
		w := measure(word)
		add := w
		if len(cur) > 0 {
			add += spaceWidth
		}
		if len(cur) == 0 || width+add <= maxWidth {
			cur = append(cur, word)
			width += add
			continue
		}
		lines = append(lines, Line{Words: cur, Width: width})
		cur = []string{word}
		width = w
	}
	if len(cur) > 0 {
		lines = append(lines, Line{Words: cur, Width: width, Last: true})
	}
	return lines
}

// FlowParagraphs 折行全部段落并分配行槽。段落之间插入一个空行槽。
func FlowParagraphs(text string, measure Measure, spaceWidth, maxWidth float64) []Line {
	paragraphs := SplitParagraphs(text)
	var (
		out  []Line
		slot int
	)
	for i, para := range paragraphs {
		for _, line := range WrapWords(strings.Split(para, " "), measure, spaceWidth, maxWidth) {
			line.Slot = slot
			out = append(out, line)
			slot++
		}
		if i < len(paragraphs)-1 {
			slot++
		}
	}
	return out
}
