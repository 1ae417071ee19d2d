package layout

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// monoMeasurer 是一个等宽字体的测量桩：每个字符宽 fontSize/2，行高 fontSize*1.2。
// 全部使用整数运算，避免浮点误差影响断言。
type monoMeasurer struct {
	calls int
}

func (m *monoMeasurer) Measure(content string, fontSize int) (Extent, error) {
	m.calls++
	n := utf8.RuneCountInString(content)
	return Extent{
		Width:  float64(n*fontSize) / 2,
		Height: float64(fontSize*6) / 5,
	}, nil
}

func TestFitGameNight(t *testing.T) {
	res, err := Fit("go to game night", 800, 600, &monoMeasurer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if res.FontSize > 150 {
		t.Fatalf("font size must not exceed 600/4, got %d", res.FontSize)
	}
	if res.FontSize != 125 {
		t.Fatalf("expected font size 125, got %d", res.FontSize)
	}
	if res.Phase != PhaseFound {
		t.Fatalf("expected phase found, got %s", res.Phase)
	}
	if diff := cmp.Diff([]string{"go to game", "night"}, res.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	for i, p := range res.Placements {
		if p.Width > 640 {
			t.Fatalf("line %d width exceeds 640: %g", i, p.Width)
		}
	}
	if res.LineHeight != 165 {
		t.Fatalf("expected spaced line height 165, got %d", res.LineHeight)
	}
}

func TestFitCentersBlock(t *testing.T) {
	res, err := Fit("go to game night", 800, 600, &monoMeasurer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	top := res.Placements[0].Y
	bottom := res.Height - (res.Placements[len(res.Placements)-1].Y + res.LineHeight)
	if d := top - bottom; d > res.LineHeight || d < -res.LineHeight {
		t.Fatalf("block not centered: top=%d bottom=%d lineHeight=%d", top, bottom, res.LineHeight)
	}

	want := []Placement{
		{Text: "go to game", X: 87, Y: 135, Width: 625},
		{Text: "night", X: 243, Y: 300, Width: 312.5},
	}
	if diff := cmp.Diff(want, res.Placements); diff != "" {
		t.Fatalf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestFitForcedMinimum(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("word ", 60))
	res, err := Fit(content, 1000, 100, &monoMeasurer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if res.Phase != PhaseForcedMinimum {
		t.Fatalf("expected forced-minimum, got %s", res.Phase)
	}
	if res.FontSize != DefaultMinFontSize {
		t.Fatalf("expected min font size, got %d", res.FontSize)
	}
	if len(res.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(res.Lines), res.Lines)
	}
	for i, p := range res.Placements {
		if p.Width > res.MaxWidth {
			t.Fatalf("line %d width %g exceeds %g", i, p.Width, res.MaxWidth)
		}
	}
}

func TestFitChunkFallback(t *testing.T) {
	content := "supercalifragilisticexpialidocious a b c d"
	res, err := Fit(content, 100, 100, &monoMeasurer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if res.Phase != PhaseChunked {
		t.Fatalf("expected chunked, got %s", res.Phase)
	}
	if res.FontSize != DefaultMinFontSize {
		t.Fatalf("expected min font size, got %d", res.FontSize)
	}
	want := []string{"supercalifragilisticexpialidocious a b", "c d"}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if res.LineHeight != 26 {
		t.Fatalf("expected line height 26, got %d", res.LineHeight)
	}
}

// 画布过小时起始字号低于最小字号，直接进入回退分支。
func TestFitStartBelowMinimum(t *testing.T) {
	res, err := Fit("hi", 400, 60, &monoMeasurer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if res.Phase != PhaseForcedMinimum {
		t.Fatalf("expected forced-minimum, got %s", res.Phase)
	}
	if res.FontSize != DefaultMinFontSize {
		t.Fatalf("expected min font size, got %d", res.FontSize)
	}
}

// 只要每个单词在最小字号下都能放下，就不应使用按词数切分的兜底策略。
func TestFitNeverChunksWhenWordsFit(t *testing.T) {
	inputs := []string{
		"goes to the mall",
		"helps at the animal shelter",
		strings.Repeat("look at cool smiley ", 30),
		"a",
	}
	m := &monoMeasurer{}
	for _, in := range inputs {
		res, err := Fit(in, 320, 120, m, DefaultOptions())
		if err != nil {
			t.Fatalf("Fit(%q) error: %v", in, err)
		}
		if res.Phase == PhaseChunked {
			t.Fatalf("Fit(%q) used chunk fallback", in)
		}
	}
}

func TestWrapWidthLimit(t *testing.T) {
	m := &monoMeasurer{}
	content := "the quick brown fox jumps over the lazy dog again and again"
	for _, size := range []int{20, 30, 45, 60} {
		lines, err := Wrap(content, 300, size, m)
		if errors.Is(err, ErrNoFit) {
			continue
		}
		if err != nil {
			t.Fatalf("Wrap error: %v", err)
		}
		for i, line := range lines {
			ext, _ := m.Measure(line, size)
			if ext.Width > 300 {
				t.Fatalf("size %d line %d %q width %g exceeds limit", size, i, line, ext.Width)
			}
		}
		if got := strings.Join(lines, " "); got != content {
			t.Fatalf("size %d lost words: %q", size, got)
		}
	}
}

func TestWrapNoFit(t *testing.T) {
	_, err := Wrap("tiny enormousword", 50, 20, &monoMeasurer{})
	if !errors.Is(err, ErrNoFit) {
		t.Fatalf("expected ErrNoFit, got %v", err)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want []string
	}{
		{"a b c d e f g", 3, []string{"a b c", "d e f", "g"}},
		{"a b c", 3, []string{"a b c"}},
		{"  a   b  ", 0, []string{"a b"}},
		{"", 3, []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Chunk(tt.in, tt.n)); diff != "" {
			t.Fatalf("Chunk(%q, %d) mismatch (-want +got):\n%s", tt.in, tt.n, diff)
		}
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := Fit("   ", 800, 600, &monoMeasurer{}, DefaultOptions()); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := Fit("hello", 0, 600, &monoMeasurer{}, DefaultOptions()); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := Fit("hello", 800, 600, nil, DefaultOptions()); err == nil {
		t.Fatalf("expected error for nil measurer")
	}

	errFont := errors.New("font broken")
	failing := MeasurerFunc(func(string, int) (Extent, error) { return Extent{}, errFont })
	if _, err := Fit("hello", 800, 600, failing, DefaultOptions()); !errors.Is(err, errFont) {
		t.Fatalf("expected measurer error to propagate, got %v", err)
	}
}

func TestOptionsZeroValueUsesDefaults(t *testing.T) {
	a, err := Fit("go to game night", 800, 600, &monoMeasurer{}, Options{})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	b, err := Fit("go to game night", 800, 600, &monoMeasurer{}, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if diff := cmp.Diff(b, a); diff != "" {
		t.Fatalf("zero options differ from defaults (-want +got):\n%s", diff)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Fatalf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
