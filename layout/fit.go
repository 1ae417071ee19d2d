package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyText 表示输入文本为空或只包含空白。
var ErrEmptyText = errors.New("layout: 文本为空")

// fitState 保存字号搜索过程中的状态机数据。
type fitState struct {
	words     []string
	content   string
	maxWidth  float64
	maxHeight float64
	opts      Options
	m         Measurer

	phase      Phase
	fontSize   int
	lines      []string
	lineHeight int
}

// Fit 在 width×height 的画布上为 content 寻找合适的字号并完成换行与居中。
//
// 搜索从 height/StartDivisor 开始，每次缩小 Step，直到 MinFontSize：
// 贪心换行成功且文本块总高度不超过 MaxHeightRatio*height 时停止（PhaseFound）。
// 若所有字号都不满足，则强制使用最小字号再换行一次（PhaseForcedMinimum），
// 仍有单词过宽时按 ChunkWords 个单词一行切分（PhaseChunked）。
// Measurer 返回的错误原样向上传播。
func Fit(content string, width, height int, m Measurer, opts Options) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少测量后端 Measurer")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layout: 非法画布尺寸 %dx%d", width, height)
	}
	words := strings.Fields(content)
	if len(words) == 0 {
		return nil, ErrEmptyText
	}
	opts = opts.withDefaults()

	st := &fitState{
		words:     words,
		content:   content,
		maxWidth:  math.Floor(float64(width) * opts.MaxWidthRatio),
		maxHeight: float64(height) * opts.MaxHeightRatio,
		opts:      opts,
		m:         m,
		phase:     PhaseSearching,
		fontSize:  height / opts.StartDivisor,
	}
	for !st.phase.terminal() {
		var err error
		switch st.phase {
		case PhaseSearching:
			err = st.search()
		case PhaseExhausted:
			err = st.fallback()
		default:
			err = fmt.Errorf("layout: 未知状态 %s", st.phase)
		}
		if err != nil {
			return nil, err
		}
	}

	return st.result(width, height)
}

// search 尝试当前字号；成功则进入 PhaseFound，否则缩小字号或进入 PhaseExhausted。
func (st *fitState) search() error {
	if st.fontSize < st.opts.MinFontSize {
		st.phase = PhaseExhausted
		return nil
	}
	lines, err := wrapWords(st.words, st.maxWidth, st.fontSize, st.m)
	if errors.Is(err, ErrNoFit) {
		st.fontSize -= st.opts.Step
		return nil
	}
	if err != nil {
		return err
	}
	lineHeight, err := st.spacedLineHeight(st.fontSize)
	if err != nil {
		return err
	}
	if float64(lineHeight*len(lines)) <= st.maxHeight {
		st.lines = lines
		st.lineHeight = lineHeight
		st.phase = PhaseFound
		return nil
	}
	st.fontSize -= st.opts.Step
	return nil
}

func (st *fitState) fallback() error {
	st.fontSize = st.opts.MinFontSize
	lines, err := wrapWords(st.words, st.maxWidth, st.fontSize, st.m)
	switch {
	case errors.Is(err, ErrNoFit):
		st.lines = Chunk(st.content, st.opts.ChunkWords)
		st.phase = PhaseChunked
	case err != nil:
		return err
	default:
		st.lines = lines
		st.phase = PhaseForcedMinimum
	}
	st.lineHeight, err = st.spacedLineHeight(st.fontSize)
	return err
}

// spacedLineHeight 以探针字符串的渲染高度作为行高，再乘以行距系数。
func (st *fitState) spacedLineHeight(fontSize int) (int, error) {
	ext, err := st.m.Measure(st.opts.Probe, fontSize)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(ext.Height) * st.opts.LineSpacing), nil
}

// result 计算垂直居中的起点与每行水平居中的位置。
func (st *fitState) result(width, height int) (*Result, error) {
	block := st.lineHeight * len(st.lines)
	res := &Result{
		Width:       width,
		Height:      height,
		MaxWidth:    st.maxWidth,
		MaxHeight:   st.maxHeight,
		Lines:       st.lines,
		FontSize:    st.fontSize,
		LineHeight:  st.lineHeight,
		BlockHeight: block,
		Phase:       st.phase,
		Placements:  make([]Placement, 0, len(st.lines)),
	}
	y := floorDiv(height-block, 2)
	for _, line := range st.lines {
		ext, err := st.m.Measure(line, st.fontSize)
		if err != nil {
			return nil, err
		}
		res.Placements = append(res.Placements, Placement{
			Text:  line,
			X:     floorDiv(width-int(math.Round(ext.Width)), 2),
			Y:     y,
			Width: ext.Width,
		})
		y += st.lineHeight
	}
	return res, nil
}

// floorDiv 向下取整除法；文本溢出画布时分子为负。
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
