package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Rewrite 是一条路径替换规则：路径中第一次出现的 From 被替换为 To。
type Rewrite struct {
	From string `toml:"from" yaml:"from"`
	To   string `toml:"to" yaml:"to"`
}

// DefaultRewrites 返回默认改写规则：构建产物目录 dist 回退到源目录。分隔符随平台而定。
func DefaultRewrites() []Rewrite {
	sep := string(filepath.Separator)
	return []Rewrite{{From: sep + "dist" + sep, To: sep}}
}

// FileResolver 从本地文件系统读取图片。相对路径基于 BaseDir 解析；
// 原路径不存在时按顺序尝试 Rewrites。
type FileResolver struct {
	BaseDir  string
	Rewrites []Rewrite
}

// Candidates 返回按尝试顺序排列的候选路径。
func (f *FileResolver) Candidates(src string) []string {
	path := src
	if f.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.BaseDir, path)
	}
	out := []string{path}
	for _, rw := range f.Rewrites {
		if rw.From == "" || !strings.Contains(path, rw.From) {
			continue
		}
		out = append(out, strings.Replace(path, rw.From, rw.To, 1))
	}
	return out
}

func (f *FileResolver) Resolve(ctx context.Context, src string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// 先确认文件存在，再检查扩展名
	for _, path := range f.Candidates(src) {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("读取图片 %s: %w", path, err)
		}
		format := FormatFromExt(path)
		if format == FormatUnknown {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
		}
		return &Source{Data: data, Format: format, Origin: path}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, src)
}
