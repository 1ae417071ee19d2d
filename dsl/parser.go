package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// DefaultPrefix 是消息命令的默认前缀。
const DefaultPrefix = "!"

var (
	commandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Word", Pattern: `[^ \t\r\n"]+`},
	})

	commandParser = participle.MustBuild[Command](
		participle.Lexer(commandLexer),
		participle.Elide("Whitespace"),
	)
)

// Command is the AST of a prefix command such as `!image "go to game night"`.
type Command struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Word"`
	Args []*Arg         `parser:"@@*"`
}

// Arg 是单个参数：裸单词或带引号的字符串。
type Arg struct {
	Quoted *StringLiteral `parser:"  @String"`
	Word   *string        `parser:"| @Word"`
}

// Value returns the argument text with quotes removed.
func (a *Arg) Value() string {
	switch {
	case a == nil:
		return ""
	case a.Quoted != nil:
		return string(*a.Quoted)
	case a.Word != nil:
		return *a.Word
	default:
		return ""
	}
}

// Text 将所有参数以单个空格拼接，作为命令的自由文本参数。
func (c *Command) Text() string {
	parts := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		if v := arg.Value(); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseCommand 解析以 prefix 开头的消息。消息不以 prefix 开头时返回 (nil, false, nil)。
func ParseCommand(prefix, message string) (*Command, bool, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(message), prefix)
	if !ok || strings.TrimSpace(rest) == "" {
		return nil, false, nil
	}
	// 前缀与命令名之间不允许空白，例如 "! hello" 不视为命令
	if rest[0] == ' ' || rest[0] == '\t' {
		return nil, false, nil
	}
	cmd, err := commandParser.ParseString("", rest)
	if err != nil {
		return nil, true, fmt.Errorf("解析命令失败: %w", err)
	}
	cmd.Name = strings.ToLower(cmd.Name)
	return cmd, true, nil
}
