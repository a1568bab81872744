package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NafisRayan/pdfform/binding"
	"github.com/NafisRayan/pdfform/dsl"
	"github.com/NafisRayan/pdfform/layout"
)

// args 为命令参数：开头至多 n 个位置参数（字体别名），其后为 key value 对。
type args struct {
	cmd        *dsl.Command
	scope      any
	positional []string
	named      map[string]string
}

func parseArgs(cmd *dsl.Command, scope any, maxPositional int, keys ...string) (*args, error) {
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}
	a := &args{cmd: cmd, scope: scope, named: map[string]string{}}
	rest := cmd.Args
	for len(rest) > 0 && len(a.positional) < maxPositional && rest[0].Type == "Ident" && !known[rest[0].Value] {
		a.positional = append(a.positional, rest[0].Value)
		rest = rest[1:]
	}
	for len(rest) > 0 {
		key := rest[0]
		if !known[key.Value] {
			return nil, fmt.Errorf("%s: %w: %s 不支持参数 %q", key.Pos, ErrBadArgument, cmd.Name, key.Value)
		}
		if len(rest) < 2 {
			return nil, fmt.Errorf("%s: %w: 参数 %s 缺少值", key.Pos, ErrBadArgument, key.Value)
		}
		a.named[key.Value] = binding.Interpolate(rest[1].Value, scope)
		rest = rest[2:]
	}
	return a, nil
}

func (a *args) errorf(key, format string, v ...any) error {
	return fmt.Errorf("%s: %w: %s %s: %s", a.cmd.Pos, ErrBadArgument, a.cmd.Name, key, fmt.Sprintf(format, v...))
}

func (a *args) has(key string) bool {
	_, ok := a.named[key]
	return ok
}

func (a *args) str(key, def string) string {
	if v, ok := a.named[key]; ok {
		return v
	}
	return def
}

// length 解析带单位的长度并返回 pt。
func (a *args) length(key string, def float64) (float64, error) {
	v, ok := a.named[key]
	if !ok {
		return def, nil
	}
	l, err := layout.ParseLength(v)
	if err != nil {
		return 0, a.errorf(key, "%v", err)
	}
	return l.Points(), nil
}

func (a *args) boolean(key string, def bool) (bool, error) {
	v, ok := a.named[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, a.errorf(key, "不是布尔值 %q", v)
	}
	return b, nil
}

func (a *args) color(key string, def layout.Color) (layout.Color, error) {
	v, ok := a.named[key]
	if !ok {
		return def, nil
	}
	c, err := layout.ParseHexColor(v)
	if err != nil {
		return layout.Color{}, a.errorf(key, "%v", err)
	}
	return c, nil
}

// lengths 解析逗号分隔的长度列表，例如 "270,225"。
func (a *args) lengths(key string) ([]float64, error) {
	v, ok := a.named[key]
	if !ok {
		return nil, a.errorf(key, "缺少参数")
	}
	var out []float64
	for _, part := range strings.Split(v, ",") {
		l, err := layout.ParseLength(part)
		if err != nil {
			return nil, a.errorf(key, "%v", err)
		}
		out = append(out, l.Points())
	}
	return out, nil
}

func (a *args) fontAlias(i int, def string) string {
	if i < len(a.positional) {
		return a.positional[i]
	}
	return def
}
