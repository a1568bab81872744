package layout

import "errors"

var (
	// ErrColumnMismatch 表示表格某行的单元格数与列宽数量不一致。
	ErrColumnMismatch = errors.New("layout: 单元格数量与列宽数量不一致")
	// ErrImageNotFound 表示本地图片路径在改写规则之后仍无法解析。
	ErrImageNotFound = errors.New("layout: 图片文件不存在")
	// ErrUnsupportedImage 表示图片既不是 JPEG 也不是 PNG。
	ErrUnsupportedImage = errors.New("layout: 不支持的图片格式")
	// ErrImageEmbed 表示图片在重新编码后仍无法嵌入。
	ErrImageEmbed = errors.New("layout: 图片嵌入失败")
	// ErrForeignFont 由渲染后端返回，表示字体句柄不是由该后端创建的。
	ErrForeignFont = errors.New("layout: 字体不属于当前渲染后端")
)

// ImageError 携带调用方提供的错误信息。Message 非空时作为错误文本，
// errors.Is 同时匹配 Kind 与底层原因。
type ImageError struct {
	Kind    error
	Source  string
	Message string
	Err     error
}

func (e *ImageError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Source + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Source
}

func (e *ImageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
