// Package pdfcheck 使用 pdfcpu 对生成的 PDF 做结构校验。
package pdfcheck

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Report 汇总一份 PDF 的基本信息。
type Report struct {
	Pages int
	Size  int
}

// Validate 校验 PDF 结构。
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("PDF 内容为空")
	}
	if err := api.Validate(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("PDF 结构校验失败: %w", err)
	}
	return nil
}

// Inspect 读取 PDF 并返回页数与字节数。
func Inspect(data []byte) (Report, error) {
	if len(data) == 0 {
		return Report{}, fmt.Errorf("PDF 内容为空")
	}
	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return Report{}, fmt.Errorf("读取 PDF 失败: %w", err)
	}
	// ReadContext 不填充 PageCount，需要先校验再统计页数。
	if err := api.ValidateContext(ctx); err != nil {
		return Report{}, fmt.Errorf("PDF 结构校验失败: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return Report{}, fmt.Errorf("统计页数失败: %w", err)
	}
	return Report{Pages: ctx.PageCount, Size: len(data)}, nil
}
