package layout

const (
	DefaultMaxWidthRatio  = 0.8
	DefaultMaxHeightRatio = 0.8
	DefaultStartDivisor   = 4
	DefaultStep           = 5
	DefaultMinFontSize    = 20
	DefaultLineSpacing    = 1.1
	DefaultChunkWords     = 3
	// DefaultProbe 同时包含上升部与下降部，用于得到与实际文字无关的稳定行高。
	DefaultProbe = "TygpqjÁÇÊ"
)

// Options 配置字号搜索与换行策略，零值字段使用默认值。
type Options struct {
	MaxWidthRatio  float64 // 文本块最大宽度占画布宽度的比例
	MaxHeightRatio float64 // 文本块最大高度占画布高度的比例
	StartDivisor   int     // 起始字号 = 画布高度 / StartDivisor
	Step           int     // 每轮缩小的字号步长
	MinFontSize    int
	LineSpacing    float64
	Probe          string
	ChunkWords     int // 最终回退时每行的单词数
}

// DefaultOptions returns the options used for titlecards.
func DefaultOptions() Options {
	return Options{
		MaxWidthRatio:  DefaultMaxWidthRatio,
		MaxHeightRatio: DefaultMaxHeightRatio,
		StartDivisor:   DefaultStartDivisor,
		Step:           DefaultStep,
		MinFontSize:    DefaultMinFontSize,
		LineSpacing:    DefaultLineSpacing,
		Probe:          DefaultProbe,
		ChunkWords:     DefaultChunkWords,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxWidthRatio <= 0 {
		o.MaxWidthRatio = def.MaxWidthRatio
	}
	if o.MaxHeightRatio <= 0 {
		o.MaxHeightRatio = def.MaxHeightRatio
	}
	if o.StartDivisor <= 0 {
		o.StartDivisor = def.StartDivisor
	}
	if o.Step <= 0 {
		o.Step = def.Step
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = def.MinFontSize
	}
	if o.LineSpacing <= 0 {
		o.LineSpacing = def.LineSpacing
	}
	if o.Probe == "" {
		o.Probe = def.Probe
	}
	if o.ChunkWords <= 0 {
		o.ChunkWords = def.ChunkWords
	}
	return o
}
