// Package documents 用 layout 原语生成三类固定版式的基金文档：
// 投资证明、投资组合对账单以及基金份额确认函（COUA）。
package documents

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
	canvasrenderer "github.com/NafisRayan/pdfform/renderer/canvas"
)

// Gold 为页眉分隔线与边框使用的橄榄金色。
var Gold = layout.RGB255(142, 138, 40)

// LogoError 为 logo 无法嵌入时返回的错误文本。
const LogoError = "Logo image must be a JPEG or PNG image"

// Fonts 为生成器使用的常规与粗体字体来源。
type Fonts struct {
	Regular string
	Bold    string
}

// Service 生成文档。NewRenderer 为空时使用 canvas 渲染器；Fonts 为空时使用内置字体；
// LogoSource 为空时不绘制 logo。
type Service struct {
	NewRenderer renderer.Factory
	Embedder    *layout.Embedder
	Fonts       Fonts
	LogoSource  string
	Logger      *log.Logger
}

// session 为一次生成所需的文档、单页与字体。
type session struct {
	doc  renderer.Renderer
	page layout.Page
	font layout.Font
	bold layout.Font
}

func (s *Service) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func (s *Service) begin(meta renderer.Meta) (*session, error) {
	factory := s.NewRenderer
	if factory == nil {
		factory = canvasrenderer.Factory(canvasrenderer.Options{})
	}
	fonts := s.Fonts
	if fonts.Regular == "" {
		fonts.Regular = "builtin:regular"
	}
	if fonts.Bold == "" {
		fonts.Bold = "builtin:bold"
	}

	doc := factory()
	if meta.Creator == "" {
		meta.Creator = "pdfform"
	}
	doc.SetMeta(meta)
	font, err := doc.LoadFont("Regular", fonts.Regular)
	if err != nil {
		return nil, fmt.Errorf("加载常规字体: %w", err)
	}
	bold, err := doc.LoadFont("Bold", fonts.Bold)
	if err != nil {
		return nil, fmt.Errorf("加载粗体字体: %w", err)
	}
	page := doc.AddPage(layout.A4.Width, layout.A4.Height)
	return &session{doc: doc, page: page, font: font, bold: bold}, nil
}

// logo 在设置了 LogoSource 时绘制 logo；失败即终止生成。
func (s *Service) logo(ctx context.Context, ss *session, x, y, w, h float64) error {
	if s.LogoSource == "" {
		return nil
	}
	embedder := s.Embedder
	if embedder == nil {
		embedder = layout.NewEmbedder(nil, s.Logger)
	}
	_, err := embedder.EmbedAndDrawImage(ctx, ss.doc, ss.page, layout.ImageRequest{
		Source:       s.LogoSource,
		X:            x,
		Y:            y,
		Width:        w,
		Height:       h,
		ErrorMessage: LogoError,
	})
	return err
}

func (s *Service) finish(ss *session, kind string, start time.Time) ([]byte, error) {
	data, err := ss.doc.Save()
	if err != nil {
		return nil, fmt.Errorf("保存 %s: %w", kind, err)
	}
	s.logger().Info("文档已生成", "kind", kind, "bytes", len(data), "elapsed", time.Since(start).Round(time.Millisecond))
	return data, nil
}

// bandCentered 在 [start, pageWidth-50] 区间内水平居中放置文字。
func bandCentered(page layout.Page, font layout.Font, text string, size, start, y float64) error {
	width := layout.MeasureText(font, text, size)
	return layout.PlaceText(page, font, layout.TextRequest{
		Text: text,
		X:    start + (page.Width()-start-50-width)/2,
		Y:    y,
		Size: size,
	})
}

// steps 依次执行绘制步骤，遇到第一个错误即返回。
func steps(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// orDefault 在 v 为空时返回 def。
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
