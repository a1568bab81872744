// Package fonts 提供内置字体，并按来源字符串加载字体字节。
package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinPrefix 标记内置字体来源，例如 "builtin:bold"。
const BuiltinPrefix = "builtin:"

var builtin = map[string][]byte{
	"regular":     goregular.TTF,
	"bold":        gobold.TTF,
	"italic":      goitalic.TTF,
	"bold-italic": gobolditalic.TTF,
	"mono":        gomono.TTF,
}

// IsBuiltin 报告 src 是否引用内置字体。兼容旧写法 "built-in:"。
func IsBuiltin(src string) bool {
	return strings.HasPrefix(src, BuiltinPrefix) || strings.HasPrefix(src, "built-in:")
}

// Names 返回全部内置字体名（已排序）。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Load 返回字体字节：builtin:<name> 取内置字体，其余视为文件路径。
func Load(src string) ([]byte, error) {
	if IsBuiltin(src) {
		name := strings.TrimPrefix(strings.TrimPrefix(src, BuiltinPrefix), "built-in:")
		data, ok := builtin[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("找不到内置字体 %s（可用：%s）", name, strings.Join(Names(), ", "))
		}
		return data, nil
	}
	if src == "" {
		return nil, fmt.Errorf("字体来源为空")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
