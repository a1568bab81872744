package script

import (
	"fmt"
	"strings"

	"github.com/NafisRayan/pdfform/binding"
	"github.com/NafisRayan/pdfform/dsl"
	"github.com/NafisRayan/pdfform/layout"
)

func (r *runner) text(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 1, "x", "y", "size", "color", "align", "valign")
	if err != nil {
		return err
	}
	font, err := r.font(cmd, a.fontAlias(0, "body"))
	if err != nil {
		return err
	}
	req := layout.TextRequest{
		Text:   r.interpolate(cmd, cmd.Text(), scope),
		XAlign: layout.HAlign(a.str("align", "")),
		YAlign: layout.VAlign(a.str("valign", "")),
	}
	if req.X, err = a.length("x", 0); err != nil {
		return err
	}
	if req.Y, err = a.length("y", 0); err != nil {
		return err
	}
	if req.Size, err = a.length("size", 0); err != nil {
		return err
	}
	if req.Color, err = a.color("color", layout.Black); err != nil {
		return err
	}
	return layout.PlaceText(page, font, req)
}

func (r *runner) paragraph(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 1, "x", "y", "width", "size", "color", "align", "lineheight")
	if err != nil {
		return err
	}
	font, err := r.font(cmd, a.fontAlias(0, "body"))
	if err != nil {
		return err
	}
	req := layout.ParagraphRequest{
		Text:  r.interpolate(cmd, cmd.Text(), scope),
		Align: layout.HAlign(a.str("align", "")),
	}
	if req.X, err = a.length("x", 0); err != nil {
		return err
	}
	if req.Y, err = a.length("y", 0); err != nil {
		return err
	}
	if req.MaxWidth, err = a.length("width", page.Width()-req.X); err != nil {
		return err
	}
	if req.Size, err = a.length("size", 0); err != nil {
		return err
	}
	if req.LineHeight, err = a.length("lineheight", 0); err != nil {
		return err
	}
	if req.Color, err = a.color("color", layout.Black); err != nil {
		return err
	}
	return layout.PlaceParagraph(page, font, req)
}

// label 的块内依次为标签与值两个字符串；第一个位置参数为标签字体，第二个为值字体。
func (r *runner) label(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 2, "x", "y", "size", "valuesize", "gap", "color", "align")
	if err != nil {
		return err
	}
	boldFont, err := r.font(cmd, a.fontAlias(0, "bold"))
	if err != nil {
		return err
	}
	font, err := r.font(cmd, a.fontAlias(1, "body"))
	if err != nil {
		return err
	}
	texts := cmd.Block.Texts()
	if len(texts) != 2 {
		return a.errorf("block", "需要标签与值两个字符串，实际 %d 个", len(texts))
	}
	req := layout.LabelValueRequest{
		Label:  r.interpolate(cmd, texts[0], scope),
		Value:  r.interpolate(cmd, texts[1], scope),
		XAlign: layout.HAlign(a.str("align", "")),
	}
	if req.X, err = a.length("x", 0); err != nil {
		return err
	}
	if req.Y, err = a.length("y", 0); err != nil {
		return err
	}
	if req.LabelSize, err = a.length("size", 0); err != nil {
		return err
	}
	if req.ValueSize, err = a.length("valuesize", 0); err != nil {
		return err
	}
	if req.Gap, err = a.length("gap", 0); err != nil {
		return err
	}
	if req.Color, err = a.color("color", layout.Black); err != nil {
		return err
	}
	return layout.PlaceLabelValue(page, font, boldFont, req)
}

func (r *runner) image(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 0, "x", "y", "width", "height", "error", "src")
	if err != nil {
		return err
	}
	src := a.str("src", "")
	if src == "" {
		src = r.interpolate(cmd, cmd.Text(), scope)
	}
	if src == "" {
		return a.errorf("src", "缺少图片来源")
	}
	req := layout.ImageRequest{Source: src, ErrorMessage: a.str("error", "")}
	if req.X, err = a.length("x", 0); err != nil {
		return err
	}
	if req.Y, err = a.length("y", 0); err != nil {
		return err
	}
	if req.Width, err = a.length("width", 0); err != nil {
		return err
	}
	if req.Height, err = a.length("height", 0); err != nil {
		return err
	}
	_, err = r.embedder.EmbedAndDrawImage(r.ctx, r.doc, page, req)
	return err
}

func (r *runner) line(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 0, "x1", "y1", "x2", "y2", "width", "color")
	if err != nil {
		return err
	}
	var opts layout.LineOptions
	if opts.StartX, err = a.length("x1", 0); err != nil {
		return err
	}
	if opts.StartY, err = a.length("y1", 0); err != nil {
		return err
	}
	if opts.EndX, err = a.length("x2", 0); err != nil {
		return err
	}
	if opts.EndY, err = a.length("y2", 0); err != nil {
		return err
	}
	if opts.Thickness, err = a.length("width", 1); err != nil {
		return err
	}
	if opts.Color, err = a.color("color", layout.Black); err != nil {
		return err
	}
	return page.DrawLine(opts)
}

func (r *runner) rect(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 0, "x", "y", "width", "height", "color", "border", "fill")
	if err != nil {
		return err
	}
	var opts layout.RectOptions
	if opts.X, err = a.length("x", 0); err != nil {
		return err
	}
	if opts.Y, err = a.length("y", 0); err != nil {
		return err
	}
	if opts.Width, err = a.length("width", 0); err != nil {
		return err
	}
	if opts.Height, err = a.length("height", 0); err != nil {
		return err
	}
	if opts.BorderColor, err = a.color("color", layout.Black); err != nil {
		return err
	}
	if opts.BorderWidth, err = a.length("border", 1); err != nil {
		return err
	}
	if a.has("fill") {
		fill, err := a.color("fill", layout.White)
		if err != nil {
			return err
		}
		opts.FillColor = &fill
	}
	return page.DrawRectangle(opts)
}

func (r *runner) table(page layout.Page, cmd *dsl.Command, scope any) error {
	a, err := parseArgs(cmd, scope, 1,
		"bold", "x", "y", "columns", "rowheight", "size", "padding", "color", "textcolor",
		"border", "borders", "vborders", "hborders")
	if err != nil {
		return err
	}
	font, err := r.font(cmd, a.fontAlias(0, "body"))
	if err != nil {
		return err
	}
	style := layout.DefaultTableStyle()
	if style.BoldFont, err = r.font(cmd, a.str("bold", "bold")); err != nil {
		return err
	}
	tbl := layout.Table{Style: &style}
	if tbl.X, err = a.length("x", 0); err != nil {
		return err
	}
	if tbl.Y, err = a.length("y", 0); err != nil {
		return err
	}
	if tbl.ColumnWidths, err = a.lengths("columns"); err != nil {
		return err
	}
	if style.RowHeight, err = a.length("rowheight", style.RowHeight); err != nil {
		return err
	}
	if style.FontSize, err = a.length("size", style.FontSize); err != nil {
		return err
	}
	if style.Padding, err = a.length("padding", style.Padding); err != nil {
		return err
	}
	if style.BorderWidth, err = a.length("border", style.BorderWidth); err != nil {
		return err
	}
	if style.BorderColor, err = a.color("color", style.BorderColor); err != nil {
		return err
	}
	if style.TextColor, err = a.color("textcolor", style.TextColor); err != nil {
		return err
	}
	if style.ShowBorders, err = a.boolean("borders", style.ShowBorders); err != nil {
		return err
	}
	if style.ShowVerticalBorders, err = a.boolean("vborders", style.ShowVerticalBorders); err != nil {
		return err
	}
	if style.ShowHorizontalBorders, err = a.boolean("hborders", style.ShowHorizontalBorders); err != nil {
		return err
	}
	if tbl.Rows, err = r.rows(cmd.Block, scope); err != nil {
		return err
	}
	bottom, err := layout.DrawTable(page, font, tbl)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Pos, err)
	}
	r.logger.Debug("表格完成", "pos", cmd.Pos.String(), "rows", len(tbl.Rows), "bottom", bottom)
	return nil
}

// rows 展开表格块：row 产生一行，each 对列表中的每一项重复其块内的行。
func (r *runner) rows(block *dsl.Block, scope any) ([]layout.Row, error) {
	var out []layout.Row
	for _, cmd := range block.Commands() {
		switch strings.ToLower(cmd.Name) {
		case "row":
			row, err := r.row(cmd, scope)
			if err != nil {
				return nil, err
			}
			out = append(out, row)
		case "each":
			path, name, err := eachArgs(cmd)
			if err != nil {
				return nil, err
			}
			value, ok := binding.Lookup(scope, path)
			if !ok {
				return nil, fmt.Errorf("%s: %w: each 找不到 %s", cmd.Pos, ErrBadArgument, path)
			}
			items, ok := binding.Items(value)
			if !ok {
				return nil, fmt.Errorf("%s: %w: each %s 不是列表", cmd.Pos, ErrBadArgument, path)
			}
			for _, item := range items {
				rows, err := r.rows(cmd.Block, binding.With(scope, name, item))
				if err != nil {
					return nil, err
				}
				out = append(out, rows...)
			}
		default:
			return nil, fmt.Errorf("%s: %w: 表格内不支持 %s", cmd.Pos, ErrUnknownCommand, cmd.Name)
		}
	}
	return out, nil
}

func (r *runner) row(cmd *dsl.Command, scope any) (layout.Row, error) {
	var row layout.Row
	for _, c := range cmd.Block.Commands() {
		if !strings.EqualFold(c.Name, "cell") {
			return row, fmt.Errorf("%s: %w: 行内不支持 %s", c.Pos, ErrUnknownCommand, c.Name)
		}
		a, err := parseArgs(c, scope, 0, "bold", "font")
		if err != nil {
			return row, err
		}
		cell := layout.Cell{Text: r.interpolate(c, c.Text(), scope)}
		if cell.Bold, err = a.boolean("bold", false); err != nil {
			return row, err
		}
		if a.has("font") {
			if cell.Font, err = r.font(c, a.str("font", "")); err != nil {
				return row, err
			}
		}
		row.Cells = append(row.Cells, cell)
	}
	return row, nil
}

// eachArgs 解析 "each a.b[0].c as name"：as 之前的词法单元按原文拼接为路径。
func eachArgs(cmd *dsl.Command) (path, name string, err error) {
	var sb strings.Builder
	for i, l := range cmd.Args {
		if l.Type == "Ident" && l.Value == "as" {
			if i+2 != len(cmd.Args) || sb.Len() == 0 {
				break
			}
			return sb.String(), cmd.Args[i+1].Value, nil
		}
		sb.WriteString(l.Value)
	}
	return "", "", fmt.Errorf("%s: %w: each 语法为 each <path> as <name>", cmd.Pos, ErrBadArgument)
}
