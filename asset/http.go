package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout 为单次远端请求的默认超时。
const DefaultTimeout = 15 * time.Second

// HTTPResolver 通过 GET 下载远端图片。Client 为空时使用 http.DefaultClient，
// Timeout 为零时使用 DefaultTimeout。
type HTTPResolver struct {
	Client  *http.Client
	Timeout time.Duration
}

func (h *HTTPResolver) Resolve(ctx context.Context, src string) (*Source, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应: %v", ErrFetch, err)
	}

	contentType := resp.Header.Get("Content-Type")
	format := FormatFromContentType(contentType)
	if format == FormatUnknown && needsSniff(contentType) {
		format = Sniff(data)
	}
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, src, contentType)
	}
	return &Source{Data: data, ContentType: contentType, Format: format, Origin: src}, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	default:
		return fmt.Errorf("%w: status %d", ErrFetch, code)
	}
}
