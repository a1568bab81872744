package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-1 的 RGB 分量，零值为黑色。
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
	Red   = Color{R: 1}
)

// RGB 以 0-1 分量构造颜色。
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// RGB255 以 0-255 分量构造颜色。
func RGB255(r, g, b int) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ParseHexColor 解析 #RGB、#RRGGBB 或 #RRGGBBAA（忽略透明度）。
func ParseHexColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(hex) {
	case 3:
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	case 6:
	case 8:
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var parts [3]int
	for i := range parts {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
		}
		parts[i] = int(n)
	}
	return RGB255(parts[0], parts[1], parts[2]), nil
}
