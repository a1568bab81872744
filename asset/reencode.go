package asset

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// JPEGQuality 为重新编码 JPEG 时的质量。
const JPEGQuality = 90

// Reencode 解码任意已注册格式的图片（含 EXIF 方向校正），再编码为目标格式。
// 用于修复带有嵌入器无法识别的元数据或编码变体的图片。
func Reencode(data []byte, target Format) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("解码图片: %w", err)
	}
	var buf bytes.Buffer
	switch target {
	case FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, target)
	}
	if err != nil {
		return nil, fmt.Errorf("编码 %s: %w", target, err)
	}
	return buf.Bytes(), nil
}
