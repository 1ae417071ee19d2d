package layout

import (
	"errors"
	"strings"
)

// ErrNoFit 表示某个单词单独成行也超出最大行宽，当前字号无法完成贪心换行。
var ErrNoFit = errors.New("layout: 单词超出最大行宽")

// Wrap 使用贪心算法按单词换行：在 "当前行 + 下一个单词" 的宽度不超过 maxWidth 时持续累积，
// 否则结束当前行并以该单词开始新行。任一单词单独超宽时返回 ErrNoFit。
func Wrap(content string, maxWidth float64, fontSize int, m Measurer) ([]string, error) {
	return wrapWords(strings.Fields(content), maxWidth, fontSize, m)
}

func wrapWords(words []string, maxWidth float64, fontSize int, m Measurer) ([]string, error) {
	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		ext, err := m.Measure(candidate, fontSize)
		if err != nil {
			return nil, err
		}
		if ext.Width <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		ext, err = m.Measure(word, fontSize)
		if err != nil {
			return nil, err
		}
		if ext.Width > maxWidth {
			return nil, ErrNoFit
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines, nil
}

// Chunk 是不考虑宽度的兜底切分：每 n 个单词输出一行，保证任何输入都能得到排版结果，
// 代价是结果可能超出画布。
func Chunk(content string, n int) []string {
	if n <= 0 {
		n = DefaultChunkWords
	}
	words := strings.Fields(content)
	lines := make([]string, 0, (len(words)+n-1)/n)
	for start := 0; start < len(words); start += n {
		end := min(start+n, len(words))
		lines = append(lines, strings.Join(words[start:end], " "))
	}
	return lines
}
