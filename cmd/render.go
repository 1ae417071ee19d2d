package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/housebot/config"
	"github.com/ByLCY/housebot/layout"
	"github.com/ByLCY/housebot/logging"
	"github.com/ByLCY/housebot/renderer"
	canvasrenderer "github.com/ByLCY/housebot/renderer/canvas"
)

func newRenderer(cfg *config.Config, logger *slog.Logger) *canvasrenderer.Renderer {
	return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: cfg.AssetsDir,
		Layout:  layout.Options{LineSpacing: cfg.LineSpacing},
		Logger:  logger,
	})
}

type renderFlags struct {
	out         string
	debug       string
	background  string
	font        string
	lineSpacing float64
}

// newRenderCmd 在本地渲染标题卡，不需要连接 Discord。
func newRenderCmd(load configLoader) *cobra.Command {
	var f renderFlags
	c := &cobra.Command{
		Use:   "render <activity...>",
		Short: "render a titlecard to a PNG file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if f.background != "" {
				cfg.Background = f.background
			}
			if f.font != "" {
				cfg.Font = f.font
			}
			if f.lineSpacing > 0 {
				cfg.LineSpacing = f.lineSpacing
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := logging.New(serviceName, cmd.ErrOrStderr(), level)

			req := renderer.Request{
				Text:        strings.Join(args, " "),
				Background:  cfg.Background,
				Font:        cfg.Font,
				LineSpacing: cfg.LineSpacing,
			}
			if err := renderTitlecard(newRenderer(cfg, logger), req, f.out, f.debug); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "已生成标题卡：%s\n", f.out)
			return nil
		},
	}
	c.Flags().StringVarP(&f.out, "out", "o", "titlecard.png", "PNG 输出路径")
	c.Flags().StringVar(&f.debug, "debug", "", "布局调试 JSON 输出路径")
	c.Flags().StringVar(&f.background, "background", "", "背景图片路径（覆盖配置）")
	c.Flags().StringVar(&f.font, "font", "", "字体资源，builtin:<name> 或字体文件路径")
	c.Flags().Float64Var(&f.lineSpacing, "line-spacing", 0, "行距系数（覆盖配置）")
	return c
}

// renderTitlecard 串联排版、渲染与写文件。
func renderTitlecard(r *canvasrenderer.Renderer, req renderer.Request, outputPath, debugPath string) error {
	if debugPath != "" {
		res, err := r.Layout(req)
		if err != nil {
			return fmt.Errorf("布局计算失败: %w", err)
		}
		if err := layout.WriteDebugJSON(res, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	data, err := r.Render(req)
	if err != nil {
		return fmt.Errorf("渲染标题卡失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	return nil
}
