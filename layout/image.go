package layout

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/NafisRayan/pdfform/asset"
)

// ImageRequest 描述一次图片嵌入与放置。ErrorMessage 非空时作为失败时的错误文本。
type ImageRequest struct {
	Source       string
	X            float64
	Y            float64
	Width        float64
	Height       float64
	ErrorMessage string
}

// Embedder 解析图片来源并嵌入文档。Resolver 为空时使用仅含默认 HTTPResolver 与
// 空 FileResolver 的 Router；Reencode 为空时使用 asset.Reencode。
type Embedder struct {
	Resolver asset.Resolver
	Reencode func(data []byte, target asset.Format) ([]byte, error)
	Logger   *log.Logger
}

// NewEmbedder 返回使用给定解析器的 Embedder。
func NewEmbedder(resolver asset.Resolver, logger *log.Logger) *Embedder {
	return &Embedder{Resolver: resolver, Reencode: asset.Reencode, Logger: logger}
}

func (e *Embedder) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// EmbedAndDrawImage 解析来源、按格式嵌入，嵌入失败时重新编码后重试一次，
// 然后以 Width × Height 拉伸绘制在 (X, Y)。
func (e *Embedder) EmbedAndDrawImage(ctx context.Context, doc Document, page Page, req ImageRequest) (Image, error) {
	logger := e.logger().With("src", req.Source)

	resolver := e.Resolver
	if resolver == nil {
		resolver = asset.NewRouter(&asset.FileResolver{Rewrites: asset.DefaultRewrites()})
	}
	src, err := resolver.Resolve(ctx, req.Source)
	if err != nil {
		kind := ErrImageNotFound
		if errors.Is(err, asset.ErrUnsupportedFormat) {
			kind = ErrUnsupportedImage
		}
		logger.Debug("解析图片失败", "err", err)
		return nil, &ImageError{Kind: kind, Source: req.Source, Message: req.ErrorMessage, Err: err}
	}
	logger.Debug("图片已解析", "origin", src.Origin, "format", src.Format, "bytes", len(src.Data))

	img, err := embed(doc, src.Data, src.Format)
	if err != nil {
		logger.Debug("嵌入失败，重新编码后重试", "err", err)
		reencode := e.Reencode
		if reencode == nil {
			reencode = asset.Reencode
		}
		data, rerr := reencode(src.Data, src.Format)
		if rerr != nil {
			return nil, &ImageError{Kind: ErrImageEmbed, Source: req.Source, Message: req.ErrorMessage, Err: errors.Join(err, rerr)}
		}
		img, err = embed(doc, data, src.Format)
		if err != nil {
			return nil, &ImageError{Kind: ErrImageEmbed, Source: req.Source, Message: req.ErrorMessage, Err: err}
		}
	}

	if err := page.DrawImage(img, ImageOptions{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height}); err != nil {
		return nil, err
	}
	return img, nil
}

func embed(doc Document, data []byte, format asset.Format) (Image, error) {
	switch format {
	case asset.FormatJPEG:
		return doc.EmbedJPEG(data)
	case asset.FormatPNG:
		return doc.EmbedPNG(data)
	default:
		return nil, asset.ErrUnsupportedFormat
	}
}
