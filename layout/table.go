package layout

import (
	"fmt"

	"github.com/samber/lo"
)

// Table 描述固定列宽的表格。Style 为空时使用 DefaultTableStyle()。
type Table struct {
	Rows         []Row
	X            float64
	Y            float64 // 第一行的上边缘
	ColumnWidths []float64
	Style        *TableStyle
}

// Row 为一行单元格。
type Row struct {
	Cells []Cell
}

// Cell 为单元格文字。Font 优先于 Bold。
type Cell struct {
	Text string
	Bold bool
	Font Font
}

// Validate 检查每一行的单元格数与列宽数量一致。
func (t Table) Validate() error {
	if len(t.ColumnWidths) == 0 {
		return fmt.Errorf("%w: 未提供列宽", ErrColumnMismatch)
	}
	for i, row := range t.Rows {
		if len(row.Cells) != len(t.ColumnWidths) {
			return fmt.Errorf("%w: 第 %d 行有 %d 个单元格，列宽有 %d 个", ErrColumnMismatch, i, len(row.Cells), len(t.ColumnWidths))
		}
	}
	return nil
}

// Width 返回表格总宽度，即列宽之和。
func (t Table) Width() float64 { return lo.Sum(t.ColumnWidths) }

// RowBottom 返回第 i 行的下边缘：y - (i+1)*rowHeight。
func RowBottom(y, rowHeight float64, i int) float64 {
	return y - float64(i+1)*rowHeight
}

// DrawTable 自上而下绘制各行，返回最后一行的下边缘。
// 校验失败时不会绘制任何内容。
func DrawTable(page Page, font Font, t Table) (float64, error) {
	if err := t.Validate(); err != nil {
		return t.Y, err
	}
	style := DefaultTableStyle()
	if t.Style != nil {
		style = *t.Style
	}
	totalWidth := t.Width()
	cursorY := t.Y

	for rowIndex, row := range t.Rows {
		bottom := RowBottom(t.Y, style.RowHeight, rowIndex)
		if style.ShowBorders {
			err := page.DrawRectangle(RectOptions{
				X:           t.X,
				Y:           bottom,
				Width:       totalWidth,
				Height:      style.RowHeight,
				BorderColor: style.BorderColor,
				BorderWidth: style.BorderWidth,
			})
			if err != nil {
				return cursorY, err
			}
		}

		cursorX := t.X
		for cellIndex, cell := range row.Cells {
			cellWidth := t.ColumnWidths[cellIndex]
			if style.ShowVerticalBorders && cellIndex < len(row.Cells)-1 {
				err := page.DrawLine(LineOptions{
					StartX:    cursorX + cellWidth,
					StartY:    cursorY,
					EndX:      cursorX + cellWidth,
					EndY:      bottom,
					Thickness: style.BorderWidth,
					Color:     style.BorderColor,
				})
				if err != nil {
					return cursorY, err
				}
			}

			err := page.DrawText(cell.Text, TextOptions{
				X:     cursorX + style.Padding,
				Y:     bottom + (style.RowHeight-style.FontSize)/2,
				Size:  style.FontSize,
				Font:  cellFont(cell, font, style.BoldFont),
				Color: style.TextColor,
			})
			if err != nil {
				return cursorY, err
			}
			cursorX += cellWidth
		}

		if style.ShowHorizontalBorders && rowIndex < len(t.Rows)-1 {
			err := page.DrawLine(LineOptions{
				StartX:    t.X,
				StartY:    bottom,
				EndX:      t.X + totalWidth,
				EndY:      bottom,
				Thickness: style.BorderWidth,
				Color:     style.BorderColor,
			})
			if err != nil {
				return cursorY, err
			}
		}
		cursorY = bottom
	}
	return cursorY, nil
}

func cellFont(cell Cell, font, bold Font) Font {
	switch {
	case cell.Font != nil:
		return cell.Font
	case cell.Bold && bold != nil:
		return bold
	default:
		return font
	}
}
