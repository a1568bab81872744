package asset

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format 为可嵌入的图片格式。
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "unknown"
	}
}

// FormatFromContentType 通过子串匹配响应头：含 jpeg/jpg 为 JPEG，含 png 为 PNG。
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return FormatJPEG
	case strings.Contains(ct, "png"):
		return FormatPNG
	default:
		return FormatUnknown
	}
}

// FormatFromExt 根据文件扩展名判断格式，大小写不敏感。
func FormatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".png":
		return FormatPNG
	default:
		return FormatUnknown
	}
}

// Sniff 根据内容检测格式。
func Sniff(data []byte) Format {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/jpeg"):
		return FormatJPEG
	case mt.Is("image/png"):
		return FormatPNG
	default:
		return FormatUnknown
	}
}

// needsSniff 报告响应头是否不足以判断格式。
func needsSniff(contentType string) bool {
	ct := strings.TrimSpace(strings.ToLower(contentType))
	return ct == "" || strings.HasPrefix(ct, "application/octet-stream")
}
