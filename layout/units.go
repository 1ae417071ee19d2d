package layout

// 渲染器以 1px = 1mm 的分辨率光栅化画布，字体系统使用 pt，这里提供边界换算。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 将像素字号换算为字体面使用的 pt（画布分辨率为 1 像素/毫米）。
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx 是 PxToPt 的逆运算。
func PtToPx(pt float64) float64 { return pt * PtToMm }
