// Package config 负责读取 pdfform 的 TOML 配置文件。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/NafisRayan/pdfform/asset"
	"github.com/NafisRayan/pdfform/layout"
)

// Config 为完整配置。零值字段在 Load 后由 Default 补齐。
type Config struct {
	Fonts  Fonts  `toml:"fonts"`
	Assets Assets `toml:"assets"`
	HTTP   HTTP   `toml:"http"`
	Log    Log    `toml:"log"`
	Page   Page   `toml:"page"`
}

// Fonts 为生成器使用的常规与粗体字体来源。
type Fonts struct {
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
	// Dir 用于解析相对字体路径。
	Dir string `toml:"dir"`
}

// Assets 控制本地图片的解析。
type Assets struct {
	BaseDir  string          `toml:"base_dir"`
	Logo     string          `toml:"logo"`
	Rewrites []asset.Rewrite `toml:"rewrites"`
}

// HTTP 控制远端图片下载。
type HTTP struct {
	Timeout Duration `toml:"timeout"`
}

// Log 控制日志级别：debug/info/warn/error。
type Log struct {
	Level string `toml:"level"`
}

// Page 为默认纸张。
type Page struct {
	Size string `toml:"size"`
}

// Duration 以 "15s" 形式出现在 TOML 中。
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("无法解析时长 %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Fonts:  Fonts{Regular: "builtin:regular", Bold: "builtin:bold"},
		Assets: Assets{BaseDir: ".", Rewrites: asset.DefaultRewrites()},
		HTTP:   HTTP{Timeout: Duration{asset.DefaultTimeout}},
		Log:    Log{Level: "info"},
		Page:   Page{Size: "A4"},
	}
}

// Load 读取 path 指向的 TOML 文件。path 为空时返回默认配置。
// 配置中的相对目录以配置文件所在目录为基准。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse 解析 TOML 内容并补齐默认值。
func Parse(data []byte, dir string) (Config, error) {
	cfg := Default()
	var file Config
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("配置包含未知字段: %v", undecoded)
	}
	cfg.merge(file, meta)
	cfg.resolve(dir)
	return cfg, cfg.Validate()
}

func (c *Config) merge(file Config, meta toml.MetaData) {
	if file.Fonts.Regular != "" {
		c.Fonts.Regular = file.Fonts.Regular
	}
	if file.Fonts.Bold != "" {
		c.Fonts.Bold = file.Fonts.Bold
	}
	if file.Fonts.Dir != "" {
		c.Fonts.Dir = file.Fonts.Dir
	}
	if file.Assets.BaseDir != "" {
		c.Assets.BaseDir = file.Assets.BaseDir
	}
	if file.Assets.Logo != "" {
		c.Assets.Logo = file.Assets.Logo
	}
	// 显式写出的 rewrites（包括空数组）覆盖默认规则
	if meta.IsDefined("assets", "rewrites") {
		c.Assets.Rewrites = file.Assets.Rewrites
	}
	if file.HTTP.Timeout.Duration > 0 {
		c.HTTP.Timeout = file.HTTP.Timeout
	}
	if file.Log.Level != "" {
		c.Log.Level = file.Log.Level
	}
	if file.Page.Size != "" {
		c.Page.Size = file.Page.Size
	}
}

func (c *Config) resolve(dir string) {
	if dir == "" {
		return
	}
	if !filepath.IsAbs(c.Assets.BaseDir) {
		c.Assets.BaseDir = filepath.Join(dir, c.Assets.BaseDir)
	}
	if c.Fonts.Dir != "" && !filepath.IsAbs(c.Fonts.Dir) {
		c.Fonts.Dir = filepath.Join(dir, c.Fonts.Dir)
	}
}

// Validate 检查日志级别与纸张名称。
func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, ok := layout.LookupPageSize(c.Page.Size); !ok {
		return fmt.Errorf("未知纸张尺寸 %q", c.Page.Size)
	}
	return nil
}

// LogLevel 返回解析后的日志级别。
func (c Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("未知日志级别 %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// PageSize 返回默认纸张尺寸。
func (c Config) PageSize() layout.PageSize {
	size, ok := layout.LookupPageSize(c.Page.Size)
	if !ok {
		return layout.A4
	}
	return size
}

// Resolver 构建图片解析器：远端走带超时的 HTTP，本地走 BaseDir 与改写规则。
func (c Config) Resolver() *asset.Router {
	return &asset.Router{
		Remote: &asset.HTTPResolver{Timeout: c.HTTP.Timeout.Duration},
		Local:  &asset.FileResolver{BaseDir: c.Assets.BaseDir, Rewrites: c.Assets.Rewrites},
	}
}
