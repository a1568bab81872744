// Package cli 实现 pdfform 命令行：按固定版式生成基金文档、执行布局脚本、检查 PDF。
//
// 所有命令共享 --config、--verbose/-v、--validate 与 --trace。logger 通过
// context.Context 传给各子命令。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NafisRayan/pdfform/config"
	"github.com/NafisRayan/pdfform/documents"
	"github.com/NafisRayan/pdfform/internal/pdfcheck"
	"github.com/NafisRayan/pdfform/layout"
	"github.com/NafisRayan/pdfform/renderer"
	canvasrenderer "github.com/NafisRayan/pdfform/renderer/canvas"
)

// app 保存全局选项以及 PersistentPreRunE 读取的配置。
type app struct {
	configPath string
	verbose    bool
	validate   bool
	tracePath  string

	cfg    config.Config
	trace  *layout.Trace
	stdout io.Writer
	stderr io.Writer
}

// Execute 运行 pdfform 命令行。
func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background())
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:          "pdfform",
		Short:        "pdfform 生成基金证明、对账单与确认函 PDF",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML 配置文件路径")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "输出调试日志")
	flags.BoolVar(&a.validate, "validate", false, "生成后用 pdfcpu 校验 PDF 结构")
	flags.StringVar(&a.tracePath, "trace", "", "把绘制调用输出为 JSON 文件")

	root.AddCommand(
		generateCmd(a, "certificate", "生成投资证明", (*documents.Service).InvestmentCertificate),
		generateCmd(a, "statement", "生成投资组合对账单", (*documents.Service).PortfolioStatement),
		generateCmd(a, "coua", "生成基金份额确认函", (*documents.Service).CouaLetter),
		newRenderCmd(a),
		newInspectCmd(a),
	)
	return root
}

// setup 读取配置并把 logger 挂到命令的 context 上。--verbose 优先于配置中的级别。
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	level = resolveLevel(level, a.verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, newLogger(a.stderr, level)))
	return nil
}

// rendererFactory 返回 canvas 渲染器；设置了 --trace 时包装为记录绘制调用的渲染器。
func (a *app) rendererFactory() renderer.Factory {
	base := canvasrenderer.Factory(canvasrenderer.Options{BaseDir: a.cfg.Fonts.Dir})
	if a.tracePath == "" {
		return base
	}
	a.trace = &layout.Trace{}
	return func() renderer.Renderer { return renderer.WithTrace(base(), a.trace) }
}

func (a *app) embedder(logger *log.Logger) *layout.Embedder {
	return layout.NewEmbedder(a.cfg.Resolver(), logger)
}

func (a *app) service(logger *log.Logger) *documents.Service {
	return &documents.Service{
		NewRenderer: a.rendererFactory(),
		Embedder:    a.embedder(logger),
		Fonts:       documents.Fonts{Regular: a.cfg.Fonts.Regular, Bold: a.cfg.Fonts.Bold},
		LogoSource:  a.cfg.Assets.Logo,
		Logger:      logger,
	}
}

// write 写出 PDF，按需校验并输出绘制记录。
func (a *app) write(logger *log.Logger, path string, data []byte) error {
	if a.validate {
		if err := pdfcheck.Validate(data); err != nil {
			return err
		}
		logger.Debug("PDF 校验通过", "bytes", len(data))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	if a.trace != nil {
		if err := os.MkdirAll(filepath.Dir(a.tracePath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := a.trace.WriteJSON(a.tracePath); err != nil {
			return fmt.Errorf("输出绘制记录失败: %w", err)
		}
	}
	return nil
}
