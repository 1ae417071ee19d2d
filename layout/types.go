package layout

import "fmt"

// 该文件定义标题卡排版的输入能力与输出结果，供排版计算、渲染与调试 JSON 共用。

// Extent 是一段文本在给定字号下的渲染尺寸（像素）。
type Extent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer 负责测量文本在给定字号下的渲染尺寸，使排版逻辑与具体渲染后端解耦。
type Measurer interface {
	Measure(content string, fontSize int) (Extent, error)
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(content string, fontSize int) (Extent, error)

// Measure calls f(content, fontSize).
func (f MeasurerFunc) Measure(content string, fontSize int) (Extent, error) {
	return f(content, fontSize)
}

// Phase 记录字号搜索所处的状态；结果中只会出现三种终止状态。
type Phase int

const (
	PhaseSearching     Phase = iota // 从起始字号逐级缩小
	PhaseFound                      // 找到同时满足宽度与高度约束的字号
	PhaseExhausted                  // 所有候选字号都不满足，准备回退
	PhaseForcedMinimum              // 强制最小字号后贪心换行成功
	PhaseChunked                    // 最小字号下仍有单词过宽，按固定词数切分
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseFound:
		return "found"
	case PhaseExhausted:
		return "exhausted"
	case PhaseForcedMinimum:
		return "forced-minimum"
	case PhaseChunked:
		return "chunked"
	default:
		return "unknown"
	}
}

// MarshalText lets debug JSON carry the phase name instead of its ordinal.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	for c := PhaseSearching; c <= PhaseChunked; c++ {
		if c.String() == string(text) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("layout: unknown phase %q", text)
}

func (p Phase) terminal() bool {
	return p == PhaseFound || p == PhaseForcedMinimum || p == PhaseChunked
}

// Result 保存一次排版的全部产物：行内容、字号、行高与每行的绘制位置。
type Result struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	MaxWidth    float64     `json:"maxWidth"`
	MaxHeight   float64     `json:"maxHeight"`
	Lines       []string    `json:"lines"`
	FontSize    int         `json:"fontSize"`
	LineHeight  int         `json:"lineHeight"` // 已乘以行距系数
	BlockHeight int         `json:"blockHeight"`
	Phase       Phase       `json:"phase"`
	Placements  []Placement `json:"placements"`
}

// Placement 表示一行文本在画布上的左上角坐标（像素）。
type Placement struct {
	Text  string  `json:"text"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Width float64 `json:"width"`
}
