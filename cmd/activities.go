package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/housebot/bot"
)

func newActivitiesCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "activities [query]",
		Short: "list the autocomplete suggestions for a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			candidates := cfg.Activities
			if len(candidates) == 0 {
				candidates = bot.DefaultActivities
			}
			for _, s := range bot.Suggest(candidates, strings.Join(args, " ")) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
