package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NafisRayan/pdfform/dsl"
	"github.com/NafisRayan/pdfform/script"
)

// newRenderCmd 执行布局脚本：--template 为脚本文件，--data 为可选的绑定数据。
func newRenderCmd(a *app) *cobra.Command {
	var templatePath, dataPath, outPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "按布局脚本生成 PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx).With("cmd", "render")

			f, err := os.Open(templatePath)
			if err != nil {
				return fmt.Errorf("无法打开脚本 %s: %w", templatePath, err)
			}
			defer f.Close()
			doc, err := dsl.Parse(templatePath, f)
			if err != nil {
				return fmt.Errorf("解析脚本失败: %w", err)
			}

			var data map[string]any
			if dataPath != "" {
				if err := loadData(dataPath, &data, false); err != nil {
					return err
				}
			}

			run := startJob(logger)
			r := a.rendererFactory()()
			err = script.Run(ctx, doc, data, script.Options{
				Renderer: r,
				Embedder: a.embedder(logger),
				Logger:   logger,
				PageSize: a.cfg.PageSize(),
			})
			if err != nil {
				return err
			}
			pdf, err := r.Save()
			if err != nil {
				return fmt.Errorf("渲染 PDF 失败: %w", err)
			}
			if err := a.write(logger, outPath, pdf); err != nil {
				return err
			}
			run.done("已生成", "out", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "布局脚本路径")
	cmd.Flags().StringVar(&dataPath, "data", "", "YAML 或 JSON 数据文件")
	cmd.Flags().StringVarP(&outPath, "out", "o", "output.pdf", "PDF 输出路径")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}
