package renderer

import "errors"

var (
	// ErrResourceNotFound 表示背景图片不存在或无法解码；调用方应以文字提示代替附件。
	ErrResourceNotFound = errors.New("renderer: resource not found")
	// ErrFontLoad 表示字体无法读取或解析，不做恢复，直接向上传播。
	ErrFontLoad = errors.New("renderer: font load failure")
)

// Request 描述一次标题卡渲染的全部输入，渲染过程中不会被修改。
type Request struct {
	Text        string
	Background  string  // 背景图片路径，相对渲染器的资源目录
	Font        string  // "builtin:<name>" 或字体文件路径，为空时使用内置字体
	LineSpacing float64 // 行距系数，<=0 时使用默认值 1.1
}

// Renderer 将文本叠加到背景图片上并输出为 PNG 字节。
type Renderer interface {
	Render(req Request) ([]byte, error)
}
