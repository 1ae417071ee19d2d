package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ByLCY/housebot/bot"
	"github.com/ByLCY/housebot/logging"
)

func newRunCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "connect to Discord and serve commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("无法启动: %w", err)
			}

			logger, logFile, err := logging.Setup(serviceName, cfg.LogDir, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("初始化日志失败: %w", err)
			}
			defer logFile.Close()

			b, err := bot.New(cfg.Token,
				bot.WithLogger(logger),
				bot.WithTitlecard(newRenderer(cfg, logger), cfg.Background, cfg.Font, cfg.LineSpacing),
				bot.WithPrefix(cfg.Prefix),
				bot.WithGuild(cfg.GuildID),
				bot.WithGreeting(cfg.Greeting),
				bot.WithActivities(cfg.Activities),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := b.Run(ctx); err != nil {
				logger.Error("bot stopped with error", "err", err)
				return err
			}
			return nil
		},
	}
}
