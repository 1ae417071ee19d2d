package canvasrenderer

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/housebot/layout"
)

// faceMeasurer 实现 layout.Measurer：按像素字号创建字体面并缓存，仅在单次渲染内复用。
type faceMeasurer struct {
	family *canvas.FontFamily
	faces  map[int]*canvas.FontFace
}

var _ layout.Measurer = (*faceMeasurer)(nil)

func newFaceMeasurer(family *canvas.FontFamily) *faceMeasurer {
	return &faceMeasurer{family: family, faces: map[int]*canvas.FontFace{}}
}

// face 返回 fontSize 像素对应的字体面；字体系统使用 pt，这里做一次 px→pt。
func (m *faceMeasurer) face(fontSize int) *canvas.FontFace {
	if face, ok := m.faces[fontSize]; ok {
		return face
	}
	face := m.family.Face(layout.PxToPt(float64(fontSize)), canvas.Hex(TextColor), canvas.FontRegular, canvas.FontNormal)
	m.faces[fontSize] = face
	return face
}

// Measure 返回文本的前进宽度与文本行包围盒高度（像素）。
func (m *faceMeasurer) Measure(content string, fontSize int) (layout.Extent, error) {
	face := m.face(fontSize)
	bounds := canvas.NewTextLine(face, content, canvas.Left).Bounds()
	return layout.Extent{
		Width:  face.TextWidth(content),
		Height: bounds.H(),
	}, nil
}
