package layout

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NafisRayan/pdfform/asset"
)

func staticResolver(data string, format asset.Format) asset.Resolver {
	return asset.ResolverFunc(func(ctx context.Context, src string) (*asset.Source, error) {
		return &asset.Source{Data: []byte(data), Format: format, Origin: src}, nil
	})
}

func TestEmbedAndDrawImageDirect(t *testing.T) {
	doc := &fakeDocument{good: map[string]bool{"png-bytes": true}}
	page := newPage()
	e := &Embedder{Resolver: staticResolver("png-bytes", asset.FormatPNG)}

	img, err := e.EmbedAndDrawImage(context.Background(), doc, page, ImageRequest{Source: "logo.png", X: 50, Y: 765, Width: 120, Height: 35})
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 1, doc.pngCalls)
	assert.Zero(t, doc.jpegCalls)
	require.Len(t, page.images, 1)
	assert.Equal(t, ImageOptions{X: 50, Y: 765, Width: 120, Height: 35}, page.images[0].Opts)
}

func TestEmbedAndDrawImageReencodeFallback(t *testing.T) {
	doc := &fakeDocument{good: map[string]bool{"fixed": true}}
	page := newPage()
	var target asset.Format
	e := &Embedder{
		Resolver: staticResolver("broken", asset.FormatJPEG),
		Reencode: func(data []byte, f asset.Format) ([]byte, error) {
			target = f
			return []byte("fixed"), nil
		},
	}
	_, err := e.EmbedAndDrawImage(context.Background(), doc, page, ImageRequest{Source: "photo.jpg", Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, asset.FormatJPEG, target)
	assert.Equal(t, 2, doc.jpegCalls)
	assert.Len(t, page.images, 1)
}

func TestEmbedAndDrawImageFallbackFails(t *testing.T) {
	doc := &fakeDocument{good: map[string]bool{}}
	page := newPage()
	e := &Embedder{
		Resolver: staticResolver("broken", asset.FormatPNG),
		Reencode: func(data []byte, f asset.Format) ([]byte, error) { return []byte("still broken"), nil },
	}
	_, err := e.EmbedAndDrawImage(context.Background(), doc, page, ImageRequest{Source: "x.png", ErrorMessage: "Logo must be a JPEG or PNG image"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageEmbed))
	assert.Equal(t, "Logo must be a JPEG or PNG image", err.Error())
	assert.Empty(t, page.images)

	e.Reencode = func(data []byte, f asset.Format) ([]byte, error) { return nil, errors.New("decode") }
	_, err = e.EmbedAndDrawImage(context.Background(), doc, page, ImageRequest{Source: "x.png"})
	assert.True(t, errors.Is(err, ErrImageEmbed))
	assert.True(t, errors.Is(err, errBadImage))
}

func TestEmbedAndDrawImageErrors(t *testing.T) {
	doc := &fakeDocument{}
	dir := t.TempDir()
	e := NewEmbedder(asset.NewRouter(&asset.FileResolver{BaseDir: dir}), nil)

	_, err := e.EmbedAndDrawImage(context.Background(), doc, newPage(), ImageRequest{Source: "missing.png"})
	var imgErr *ImageError
	require.ErrorAs(t, err, &imgErr)
	assert.Equal(t, "missing.png", imgErr.Source)
	assert.True(t, errors.Is(err, ErrImageNotFound))
	assert.True(t, errors.Is(err, asset.ErrNotFound))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.gif"), []byte("GIF89a"), 0o644))
	_, err = e.EmbedAndDrawImage(context.Background(), doc, newPage(), ImageRequest{Source: "logo.gif"})
	assert.True(t, errors.Is(err, ErrUnsupportedImage))
}

func TestEmbedAndDrawImageDistRewrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app", "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "assets", "logo.png"), []byte("png-bytes"), 0o644))

	doc := &fakeDocument{good: map[string]bool{"png-bytes": true}}
	page := newPage()
	e := NewEmbedder(asset.NewRouter(&asset.FileResolver{BaseDir: dir, Rewrites: asset.DefaultRewrites()}), nil)
	_, err := e.EmbedAndDrawImage(context.Background(), doc, page, ImageRequest{Source: "app/dist/assets/logo.png", Width: 1, Height: 1})
	require.NoError(t, err)
	assert.Len(t, page.images, 1)
}
