package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/housebot/fonts"
	"github.com/ByLCY/housebot/layout"
	"github.com/ByLCY/housebot/renderer"
)

// TextColor 是标题卡文字的固定颜色。
const TextColor = "#f9e801"

// Renderer draws titlecards via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string
	layout  layout.Options
	logger  *slog.Logger

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string         // 解析相对路径资源的目录
	Layout  layout.Options // 零值字段使用 layout 默认值
	Logger  *slog.Logger
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with explicit layout options and logger.
func NewRendererWithOptions(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		baseDir:      opts.BaseDir,
		layout:       opts.Layout,
		logger:       logger,
		fontFamilies: map[string]*canvas.FontFamily{},
	}
}

// Render 解码背景、计算排版并绘制文字，返回与背景同尺寸的 PNG。
// 每次调用都会重新读取背景图片。
func (r *Renderer) Render(req renderer.Request) ([]byte, error) {
	bg, res, m, err := r.prepare(req)
	if err != nil {
		return nil, err
	}

	bounds := bg.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), bg, bounds.Min, draw.Src)
	r.drawText(dst, res, m)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Layout 只执行排版步骤，返回每行的内容与位置，供调试输出使用。
func (r *Renderer) Layout(req renderer.Request) (*layout.Result, error) {
	_, res, _, err := r.prepare(req)
	return res, err
}

func (r *Renderer) prepare(req renderer.Request) (image.Image, *layout.Result, *faceMeasurer, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, nil, nil, layout.ErrEmptyText
	}
	bg, err := r.loadBackground(req.Background)
	if err != nil {
		r.logger.Warn("background unavailable", "background", req.Background, "err", err)
		return nil, nil, nil, err
	}
	family, err := r.fontFamily(req.Font)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := r.layout
	if req.LineSpacing > 0 {
		opts.LineSpacing = req.LineSpacing
	}
	m := newFaceMeasurer(family)
	bounds := bg.Bounds()
	res, err := layout.Fit(req.Text, bounds.Dx(), bounds.Dy(), m, opts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("排版失败: %w", err)
	}
	if res.Phase != layout.PhaseFound {
		r.logger.Warn("text may be too small to read clearly", "phase", res.Phase.String(), "fontSize", res.FontSize)
	}
	r.logger.Debug("titlecard layout",
		"text", req.Text,
		"fontSize", res.FontSize,
		"lineHeight", res.LineHeight,
		"lines", len(res.Lines),
		"phase", res.Phase.String(),
	)
	return bg, res, m, nil
}

// drawText 在 CartesianIV 坐标系（左上角为原点）下逐行绘制文字，再光栅化叠加到 dst 上。
// 画布分辨率为 1 像素/毫米，因此排版结果中的像素值可以直接作为画布坐标。
func (r *Renderer) drawText(dst *image.RGBA, res *layout.Result, m *faceMeasurer) {
	bounds := dst.Bounds()
	c := canvas.New(float64(bounds.Dx()), float64(bounds.Dy()))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	face := m.face(res.FontSize)
	ascent := face.Metrics().Ascent
	for _, p := range res.Placements {
		line := canvas.NewTextLine(face, p.Text, canvas.Left)
		// 基线位置：行顶部加上字体上升部
		ctx.DrawText(float64(p.X), float64(p.Y)+ascent, line)
	}
	c.RenderTo(rasterizer.FromImage(dst, canvas.DPMM(1.0), canvas.DefaultColorSpace))
}

func (r *Renderer) resolvePath(src string) string {
	if filepath.IsAbs(src) || r.baseDir == "" {
		return src
	}
	return filepath.Join(r.baseDir, src)
}

func (r *Renderer) loadBackground(src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: 未指定背景图片", renderer.ErrResourceNotFound)
	}
	file, err := os.Open(r.resolvePath(src))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: 背景图片 %s 不存在", renderer.ErrResourceNotFound, src)
		}
		return nil, fmt.Errorf("%w: 读取背景图片 %s 失败: %v", renderer.ErrResourceNotFound, src, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: 解码背景图片 %s 失败: %v", renderer.ErrResourceNotFound, src, err)
	}
	return img, nil
}

func (r *Renderer) fontFamily(src string) (*canvas.FontFamily, error) {
	if src == "" {
		src = fonts.Default
	}
	key := src
	if !fonts.IsBuiltin(src) {
		key = r.resolvePath(src)
	}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if family, ok := r.fontFamilies[key]; ok {
		return family, nil
	}

	data, err := fonts.Load(src, r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrFontLoad, err)
	}
	family := canvas.NewFontFamily("titlecard")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w: 解析字体 %s 失败: %w", renderer.ErrFontLoad, src, err)
	}
	r.fontFamilies[key] = family
	return family, nil
}
