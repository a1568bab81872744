package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestHTTPResolverContentType(t *testing.T) {
	data := pngBytes(t)
	cases := []struct {
		name        string
		contentType string
		body        []byte
		want        Format
	}{
		{"jpeg header", "image/jpeg", []byte("not really a jpeg"), FormatJPEG},
		{"jpg header", "image/jpg; charset=binary", []byte("x"), FormatJPEG},
		{"png header", "image/png", data, FormatPNG},
		{"octet stream sniffed", "application/octet-stream", data, FormatPNG},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", c.contentType)
				_, _ = w.Write(c.body)
			})
			src, err := (&HTTPResolver{}).Resolve(context.Background(), url+"/logo")
			require.NoError(t, err)
			assert.Equal(t, c.want, src.Format)
			assert.Equal(t, c.body, src.Data)
			assert.Equal(t, c.contentType, src.ContentType)
		})
	}
}

func TestHTTPResolverErrors(t *testing.T) {
	t.Run("404", func(t *testing.T) {
		url := serve(t, http.NotFound)
		_, err := (&HTTPResolver{}).Resolve(context.Background(), url)
		assert.True(t, errors.Is(err, ErrNotFound), err)
	})
	t.Run("500", func(t *testing.T) {
		url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := (&HTTPResolver{}).Resolve(context.Background(), url)
		assert.True(t, errors.Is(err, ErrFetch), err)
	})
	t.Run("gif", func(t *testing.T) {
		url := serve(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/gif")
			_, _ = w.Write([]byte("GIF89a"))
		})
		_, err := (&HTTPResolver{}).Resolve(context.Background(), url)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), err)
	})
	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer close(release)
		_, err := (&HTTPResolver{Timeout: 50 * time.Millisecond}).Resolve(context.Background(), url)
		assert.True(t, errors.Is(err, ErrFetch), err)
	})
}

func TestFileResolverCandidates(t *testing.T) {
	f := &FileResolver{BaseDir: "/srv", Rewrites: DefaultRewrites()}
	assert.Equal(t, []string{"/srv/web/dist/logo.png", "/srv/web/logo.png"}, f.Candidates("web/dist/logo.png"))
	assert.Equal(t, []string{"/abs/logo.png"}, f.Candidates("/abs/logo.png"))

	chained := &FileResolver{Rewrites: []Rewrite{{From: "/a/", To: "/b/"}, {From: "", To: "x"}, {From: "/dist/", To: "/"}}}
	assert.Equal(t, []string{"/a/dist/x.png", "/b/dist/x.png", "/a/x.png"}, chained.Candidates("/a/dist/x.png"))
}

func TestFileResolverResolve(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "logo.png"), data, 0o644))

	f := &FileResolver{BaseDir: dir, Rewrites: DefaultRewrites()}
	src, err := f.Resolve(context.Background(), "assets/logo.png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, src.Format)
	assert.Equal(t, data, src.Data)

	// dist 路径回退到源目录
	src, err = f.Resolve(context.Background(), "dist/assets/logo.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "assets", "logo.png"), src.Origin)

	_, err = f.Resolve(context.Background(), "assets/missing.jpg")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileResolverChecksExistenceBeforeFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.gif"), []byte("GIF89a"), 0o644))
	f := &FileResolver{BaseDir: dir}

	_, err := f.Resolve(context.Background(), "logo.gif")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), err)

	_, err = f.Resolve(context.Background(), "missing.gif")
	assert.True(t, errors.Is(err, ErrNotFound), err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDefaultRewritesUsePlatformSeparator(t *testing.T) {
	sep := string(filepath.Separator)
	assert.Equal(t, []Rewrite{{From: sep + "dist" + sep, To: sep}}, DefaultRewrites())

	f := &FileResolver{Rewrites: DefaultRewrites()}
	in := filepath.Join(sep+"srv", "dist", "logo.png")
	assert.Equal(t, []string{in, filepath.Join(sep+"srv", "logo.png")}, f.Candidates(in))
}

func TestRouter(t *testing.T) {
	var got []string
	record := func(kind string) Resolver {
		return ResolverFunc(func(_ context.Context, src string) (*Source, error) {
			got = append(got, kind+":"+src)
			return &Source{}, nil
		})
	}
	r := &Router{Remote: record("remote"), Local: record("local")}
	for _, src := range []string{"https://cdn.example.com/a.png", "HTTP://x/b.jpg", "images/c.png"} {
		_, err := r.Resolve(context.Background(), src)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"remote:https://cdn.example.com/a.png", "remote:HTTP://x/b.jpg", "local:images/c.png"}, got)

	_, err := (&Router{}).Resolve(context.Background(), "a.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFormatDetection(t *testing.T) {
	assert.Equal(t, FormatJPEG, FormatFromExt("A.JPEG"))
	assert.Equal(t, FormatPNG, FormatFromExt("b.png"))
	assert.Equal(t, FormatUnknown, FormatFromExt("c.webp"))
	assert.Equal(t, FormatPNG, Sniff(pngBytes(t)))
	assert.Equal(t, FormatUnknown, Sniff([]byte("hello")))
	assert.True(t, needsSniff(""))
	assert.False(t, needsSniff("image/gif"))
	assert.Equal(t, "jpeg", FormatJPEG.String())
}

func TestReencode(t *testing.T) {
	out, err := Reencode(pngBytes(t), FormatJPEG)
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, Sniff(out))
	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	back, err := Reencode(out, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, Sniff(back))

	_, err = Reencode([]byte("garbage"), FormatPNG)
	assert.Error(t, err)
	_, err = Reencode(pngBytes(t), FormatUnknown)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
