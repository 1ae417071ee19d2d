package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ByLCY/housebot/binding"
	"github.com/ByLCY/housebot/renderer"
)

const (
	CommandHello = "hello"
	CommandImage = "image"

	// ActivityOption 是 image 命令唯一的参数名。
	ActivityOption = "activity"

	// FailureNotice 是背景图片缺失时代替附件发送的文字。
	FailureNotice = "Failure to create titlecard"

	// AttachmentName 是标题卡附件的文件名。
	AttachmentName = "titlecard.png"

	DefaultGreeting = "Hey great day in our house ${user.name}!"
)

// ErrUnknownCommand 表示命令名未注册。
var ErrUnknownCommand = errors.New("bot: unknown command")

// Commands 返回需要注册的斜杠命令定义。
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandHello,
			Description: "A simple hello command",
		},
		{
			Name:        CommandImage,
			Description: "Sends an image with custom text",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         ActivityOption,
					Description:  "Activity for housers to do",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
	}
}

// Invocation 是与来源无关的一次命令调用，斜杠命令与前缀消息都会转换成它。
type Invocation struct {
	Command     string
	Activity    string
	DisplayName string
}

// Attachment 是回复中附带的文件。
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Reply 是命令的回复：文字、附件或两者之一。
type Reply struct {
	Content string
	File    *Attachment
}

// Handle 执行一次命令调用。背景缺失时回复 FailureNotice；其余渲染错误（如字体加载失败）原样返回。
func (b *Bot) Handle(inv Invocation) (*Reply, error) {
	switch inv.Command {
	case CommandHello:
		return b.hello(inv), nil
	case CommandImage:
		return b.image(inv)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, inv.Command)
	}
}

func (b *Bot) hello(inv Invocation) *Reply {
	data := map[string]any{
		"user": map[string]any{"name": inv.DisplayName},
	}
	return &Reply{Content: binding.Interpolate(b.greeting, data)}
}

func (b *Bot) image(inv Invocation) (*Reply, error) {
	activity := strings.TrimSpace(inv.Activity)
	if activity == "" {
		return &Reply{Content: fmt.Sprintf("Usage: %s%s <%s>", b.prefix, CommandImage, ActivityOption)}, nil
	}
	payload, err := b.renderer.Render(renderer.Request{
		Text:        activity,
		Background:  b.background,
		Font:        b.font,
		LineSpacing: b.lineSpacing,
	})
	if errors.Is(err, renderer.ErrResourceNotFound) {
		b.logger.Warn("titlecard not created", "activity", activity, "err", err)
		return &Reply{Content: FailureNotice}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("render titlecard: %w", err)
	}
	return &Reply{File: &Attachment{Name: AttachmentName, ContentType: "image/png", Data: payload}}, nil
}
