package bot

import "strings"

// MaxSuggestions 是自动补全一次最多返回的候选数。
const MaxSuggestions = 25

// DefaultActivities 是 image 命令的默认候选活动。
var DefaultActivities = []string{
	"goes to the mall",
	"goes to cedar point",
	"helps at the animal shelter",
	"look at cool smiley",
	"go to game night",
}

// Suggest 返回包含 query 的候选（不区分大小写），保持原有顺序，最多 MaxSuggestions 个。
func Suggest(candidates []string, query string) []string {
	q := strings.ToLower(query)
	out := make([]string, 0, min(len(candidates), MaxSuggestions))
	for _, c := range candidates {
		if len(out) == MaxSuggestions {
			break
		}
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}
