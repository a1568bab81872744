package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NafisRayan/pdfform/internal/pdfcheck"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "校验 PDF 结构并输出页数",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("读取 %s 失败: %w", args[0], err)
			}
			if err := pdfcheck.Validate(data); err != nil {
				return err
			}
			report, err := pdfcheck.Inspect(data)
			if err != nil {
				return err
			}
			logger.Debug("PDF 校验通过", "file", args[0])
			_, err = fmt.Fprintf(a.stdout, "%s: %d pages, %d bytes\n", args[0], report.Pages, report.Size)
			return err
		},
	}
}
