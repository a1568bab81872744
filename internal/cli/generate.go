package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/NafisRayan/pdfform/documents"
)

// generateCmd 构造固定版式文档的子命令：读取 --data 并写出 --out。
func generateCmd[T any](a *app, use, short string, gen func(*documents.Service, context.Context, T) ([]byte, error)) *cobra.Command {
	var dataPath, outPath string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx).With("cmd", use)

			var data T
			if err := loadData(dataPath, &data, true); err != nil {
				return err
			}
			run := startJob(logger)
			pdf, err := gen(a.service(logger), ctx, data)
			if err != nil {
				return err
			}
			if err := a.write(logger, outPath, pdf); err != nil {
				return err
			}
			run.done("已生成", "out", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "YAML 或 JSON 数据文件")
	cmd.Flags().StringVarP(&outPath, "out", "o", use+".pdf", "PDF 输出路径")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// loadData 读取 YAML 或 JSON 数据。strict 时拒绝结构体中不存在的字段。
func loadData(path string, v any, strict bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(strict)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("解析数据文件 %s 失败: %w", path, err)
	}
	return nil
}
