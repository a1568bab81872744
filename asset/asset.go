// Package asset 负责把图片来源（URL 或本地路径）解析为字节与格式。
package asset

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound 表示来源无法定位：本地文件在全部改写规则之后仍不存在，或远端返回 404。
	ErrNotFound = errors.New("asset: 资源不存在")
	// ErrUnsupportedFormat 表示来源既不是 JPEG 也不是 PNG。
	ErrUnsupportedFormat = errors.New("asset: 不支持的图片格式")
	// ErrFetch 表示远端请求失败或返回非 2xx 状态。
	ErrFetch = errors.New("asset: 远端请求失败")
)

// Source 为解析后的图片。
type Source struct {
	Data        []byte
	ContentType string // 远端响应头，本地文件为空
	Format      Format
	Origin      string // 实际读取的 URL 或文件路径
}

// Resolver 把来源字符串解析为图片字节。
type Resolver interface {
	Resolve(ctx context.Context, src string) (*Source, error)
}

// ResolverFunc 让普通函数满足 Resolver。
type ResolverFunc func(ctx context.Context, src string) (*Source, error)

func (f ResolverFunc) Resolve(ctx context.Context, src string) (*Source, error) {
	return f(ctx, src)
}

// Router 按协议分发：http(s) 交给 Remote，其余交给 Local。
type Router struct {
	Remote Resolver
	Local  Resolver
}

// NewRouter 返回使用默认 HTTPResolver 与给定 FileResolver 的 Router。
func NewRouter(files *FileResolver) *Router {
	return &Router{Remote: &HTTPResolver{}, Local: files}
}

func (r *Router) Resolve(ctx context.Context, src string) (*Source, error) {
	if IsRemote(src) {
		if r.Remote == nil {
			return nil, ErrFetch
		}
		return r.Remote.Resolve(ctx, src)
	}
	if r.Local == nil {
		return nil, ErrNotFound
	}
	return r.Local.Resolve(ctx, src)
}

// IsRemote 判断来源是否为 http:// 或 https:// URL。
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
