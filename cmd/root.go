package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/housebot/config"
)

const serviceName = "housebot"

// Execute 执行根命令，失败时以非零状态退出。
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "housebot is a Discord bot that greets housers and renders titlecards",
		Long:         `housebot is a Discord bot that greets housers and renders titlecards for their activities.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default housebot.yml)")

	load := func() (*config.Config, error) {
		if err := config.LoadDotEnv(); err != nil {
			return nil, err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		return cfg, nil
	}
	root.AddCommand(newRunCmd(load), newRenderCmd(load), newActivitiesCmd(load))
	return root
}

type configLoader func() (*config.Config, error)
