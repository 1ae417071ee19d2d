package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/ByLCY/housebot/dsl"
	"github.com/ByLCY/housebot/layout"
	"github.com/ByLCY/housebot/renderer"
)

// session 是 Bot 使用到的 discordgo.Session 方法子集，便于测试替换。
type session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var _ session = (*discordgo.Session)(nil)

// Bot 持有 Discord 会话与命令处理所需的全部依赖，由调用方显式创建并管理生命周期。
type Bot struct {
	session *discordgo.Session
	logger  *slog.Logger

	renderer    renderer.Renderer
	background  string
	font        string
	lineSpacing float64

	prefix     string
	guildID    string
	greeting   string
	activities []string
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithTitlecard sets the renderer and the assets used by the image command.
func WithTitlecard(r renderer.Renderer, background, font string, lineSpacing float64) Option {
	return func(b *Bot) {
		b.renderer = r
		b.background = background
		b.font = font
		b.lineSpacing = lineSpacing
	}
}

// WithPrefix sets the message command prefix.
func WithPrefix(prefix string) Option {
	return func(b *Bot) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// WithGuild registers slash commands to a single guild.
func WithGuild(guildID string) Option {
	return func(b *Bot) { b.guildID = guildID }
}

// WithGreeting sets the hello template.
func WithGreeting(tmpl string) Option {
	return func(b *Bot) {
		if tmpl != "" {
			b.greeting = tmpl
		}
	}
}

// WithActivities sets the autocomplete candidates.
func WithActivities(activities []string) Option {
	return func(b *Bot) {
		if len(activities) > 0 {
			b.activities = activities
		}
	}
}

// New 创建 Bot 但不建立连接；连接由 Open 或 Run 完成。
func New(token string, opts ...Option) (*Bot, error) {
	if token == "" {
		return nil, errors.New("bot: token is required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("bot: create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := newBot(opts...)
	b.session = s
	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) { b.onReady(s, r) })
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) { b.onInteraction(s, i) })
	s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) { b.onMessage(s, m) })
	return b, nil
}

func newBot(opts ...Option) *Bot {
	b := &Bot{
		logger:      slog.Default(),
		lineSpacing: layout.DefaultLineSpacing,
		prefix:      dsl.DefaultPrefix,
		greeting:    DefaultGreeting,
		activities:  DefaultActivities,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if b.renderer == nil {
		return errors.New("bot: titlecard renderer is not configured")
	}
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("bot: open session: %w", err)
	}
	return nil
}

// Run 建立连接并阻塞直到 ctx 结束，随后关闭会话。
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Open(); err != nil {
		return err
	}
	b.logger.Info("bot is running")
	<-ctx.Done()
	b.logger.Info("shutting down")
	return b.Close()
}

// Close closes the gateway connection.
func (b *Bot) Close() error {
	if b.session == nil {
		return nil
	}
	return b.session.Close()
}

func (b *Bot) onReady(s session, r *discordgo.Ready) {
	if r.User != nil {
		b.logger.Info(fmt.Sprintf("Logged in as %s", r.User.String()))
	}
	if err := b.syncCommands(s, r); err != nil {
		b.logger.Error("failed to sync slash commands", "err", err)
		return
	}
	b.logger.Info("Slash commands synced")
}

func (b *Bot) syncCommands(s session, r *discordgo.Ready) error {
	if r.User == nil {
		return errors.New("ready event without user")
	}
	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}
	_, err := s.ApplicationCommandBulkOverwrite(appID, b.guildID, Commands())
	return err
}

func (b *Bot) onInteraction(s session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.onAutocomplete(s, i)
	}
}

func (b *Bot) onCommand(s session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	inv := Invocation{
		Command:     data.Name,
		DisplayName: displayName(i.Member, i.User),
	}
	for _, opt := range data.Options {
		if opt.Name == ActivityOption {
			inv.Activity = opt.StringValue()
		}
	}

	reply, err := b.Handle(inv)
	if err != nil {
		// 交互不会被确认，记录 interaction ID 以便与客户端上的报错对应
		b.logger.Error("command failed", "command", inv.Command, "interaction", i.ID, "err", err)
		return
	}
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply.Content,
			Files:   reply.files(),
		},
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		b.logger.Error("failed to respond to interaction", "command", inv.Command, "interaction", i.ID, "err", err)
	}
}

func (b *Bot) onAutocomplete(s session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	query := ""
	for _, opt := range data.Options {
		if opt.Focused {
			query = opt.StringValue()
		}
	}
	suggestions := Suggest(b.activities, query)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(suggestions))
	for _, s := range suggestions {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: s, Value: s})
	}
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		b.logger.Error("failed to respond to autocomplete", "interaction", i.ID, "err", err)
	}
}

// onMessage 处理前缀消息命令，例如 "!image goes to the mall"。
func (b *Bot) onMessage(s session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	cmd, ok, err := dsl.ParseCommand(b.prefix, m.Content)
	if !ok {
		return
	}
	if err != nil {
		b.logger.Debug("ignoring malformed command", "content", m.Content, "err", err)
		return
	}
	inv := Invocation{
		Command:     cmd.Name,
		Activity:    cmd.Text(),
		DisplayName: displayName(m.Member, m.Author),
	}
	reply, err := b.Handle(inv)
	if errors.Is(err, ErrUnknownCommand) {
		b.logger.Debug("unknown command", "command", cmd.Name)
		return
	}
	if err != nil {
		b.logger.Error("command failed", "command", inv.Command, "err", err)
		return
	}
	msg := &discordgo.MessageSend{Content: reply.Content, Files: reply.files()}
	if _, err := s.ChannelMessageSendComplex(m.ChannelID, msg); err != nil {
		b.logger.Error("failed to send message", "command", inv.Command, "err", err)
	}
}

// files 将附件转换为 discordgo.File；读取位置从 0 开始。
func (r *Reply) files() []*discordgo.File {
	if r == nil || r.File == nil {
		return nil
	}
	return []*discordgo.File{{
		Name:        r.File.Name,
		ContentType: r.File.ContentType,
		Reader:      bytes.NewReader(r.File.Data),
	}}
}

// displayName 依次使用服务器昵称、全局显示名与用户名。
func displayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil && member != nil {
		user = member.User
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}
