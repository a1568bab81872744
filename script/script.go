// Package script 执行布局脚本：把 dsl 文档中的命令映射到 layout 原语上。
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/NafisRayan/pdfform/binding"
	"github.com/NafisRayan/pdfform/dsl"
	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
)

var (
	// ErrUnknownCommand 表示脚本使用了未定义的命令。
	ErrUnknownCommand = errors.New("script: 未知命令")
	// ErrUnknownFont 表示命令引用了 fonts 段中未声明的字体别名。
	ErrUnknownFont = errors.New("script: 未知字体")
	// ErrBadArgument 表示命令参数无法解析。
	ErrBadArgument = errors.New("script: 参数错误")
)

// DefaultFonts 为未在 fonts 段中声明时可用的字体别名。
var DefaultFonts = map[string]string{
	"body": "builtin:regular",
	"bold": "builtin:bold",
}

// Options 为执行所需的依赖。Renderer 必填；Embedder 与 Logger 可为空。
// PageSize 为 "page default" 使用的纸张，零值取 A4。
type Options struct {
	Renderer renderer.Renderer
	Embedder *layout.Embedder
	Logger   *log.Logger
	PageSize layout.PageSize
}

type runner struct {
	ctx      context.Context
	doc      renderer.Renderer
	embedder *layout.Embedder
	logger   *log.Logger
	fonts    map[string]layout.Font
	pageSize layout.PageSize
}

// Run 依次执行全部页面，结果写入 opts.Renderer，由调用方 Save。
func Run(ctx context.Context, doc *dsl.Document, data any, opts Options) error {
	if doc == nil {
		return fmt.Errorf("脚本为空")
	}
	if opts.Renderer == nil {
		return fmt.Errorf("未提供渲染器")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	embedder := opts.Embedder
	if embedder == nil {
		embedder = layout.NewEmbedder(nil, logger)
	}
	r := &runner{
		ctx:      ctx,
		doc:      opts.Renderer,
		embedder: embedder,
		logger:   logger.With("doc", doc.Name),
		fonts:    map[string]layout.Font{},
		pageSize: opts.PageSize,
	}
	if r.pageSize.Width <= 0 || r.pageSize.Height <= 0 {
		r.pageSize = layout.A4
	}

	r.applyMeta(doc, data)
	if err := r.loadFonts(doc); err != nil {
		return err
	}
	pages := doc.Pages()
	if len(pages) == 0 {
		return fmt.Errorf("脚本 %s 没有 page 段", doc.Name)
	}
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runPage(page, data); err != nil {
			return err
		}
		r.logger.Debug("页面完成", "page", i+1, "size", page.Spec.Size)
	}
	return nil
}

func (r *runner) applyMeta(doc *dsl.Document, data any) {
	meta := doc.Assignments("meta")
	text := func(key string) string { return binding.Interpolate(meta[key].Text(), data) }
	var keywords []string
	for _, k := range meta["keywords"].List() {
		keywords = append(keywords, binding.Interpolate(k, data))
	}
	r.doc.SetMeta(renderer.Meta{
		Title:    text("title"),
		Subject:  text("subject"),
		Author:   text("author"),
		Creator:  text("creator"),
		Keywords: keywords,
	})
}

func (r *runner) loadFonts(doc *dsl.Document) error {
	srcs := map[string]string{}
	for alias, src := range DefaultFonts {
		srcs[alias] = src
	}
	for alias, v := range doc.Assignments("fonts") {
		srcs[alias] = v.Text()
	}
	for alias, src := range srcs {
		font, err := r.doc.LoadFont(alias, src)
		if err != nil {
			return fmt.Errorf("加载字体 %s (%s): %w", alias, src, err)
		}
		r.fonts[alias] = font
	}
	return nil
}

func (r *runner) font(cmd *dsl.Command, alias string) (layout.Font, error) {
	if f, ok := r.fonts[alias]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%s: %w: %s", cmd.Pos, ErrUnknownFont, alias)
}

func (r *runner) runPage(page *dsl.PageSection, data any) error {
	size, ok := r.pageSize, true
	if !strings.EqualFold(page.Spec.Size, "default") {
		size, ok = layout.LookupPageSize(page.Spec.Size)
	}
	if !ok {
		return fmt.Errorf("%s: 未知纸张尺寸 %s", page.Pos, page.Spec.Size)
	}
	if page.Spec.Landscape() {
		size = size.Landscape()
	}
	p := r.doc.AddPage(size.Width, size.Height)
	for _, cmd := range page.Block.Commands() {
		if err := r.exec(p, cmd, data); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) exec(page layout.Page, cmd *dsl.Command, scope any) error {
	var err error
	switch strings.ToLower(cmd.Name) {
	case "text":
		err = r.text(page, cmd, scope)
	case "paragraph":
		err = r.paragraph(page, cmd, scope)
	case "label":
		err = r.label(page, cmd, scope)
	case "image":
		err = r.image(page, cmd, scope)
	case "line":
		err = r.line(page, cmd, scope)
	case "rect":
		err = r.rect(page, cmd, scope)
	case "table":
		err = r.table(page, cmd, scope)
	default:
		return fmt.Errorf("%s: %w: %s", cmd.Pos, ErrUnknownCommand, cmd.Name)
	}
	return err
}

// interpolate 替换占位符，未解析的占位符记录警告后原样保留。
func (r *runner) interpolate(cmd *dsl.Command, text string, scope any) string {
	if missing := binding.Missing(text, scope); len(missing) > 0 {
		r.logger.Warn("占位符未解析", "pos", cmd.Pos.String(), "paths", missing)
	}
	return binding.Interpolate(text, scope)
}
