package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"remindd/internal/command"
	"remindd/internal/event"
)

var addCmd = &cobra.Command{
	Use:   "add <title> <date>",
	Short: "Add an event to the events file",
	Long: `Add an event with an ISO 8601 due date (YYYY-MM-DD). This edits the
same events file the bot reads, so it works without a Discord
connection.

Example:
  remindd add "Product launch" 2030-01-01`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newCLILogger()
	defer logger.Sync()

	store := event.NewStore(cfg.EventsPath, logger)
	handler := command.NewHandler(store, logger)

	res := handler.Handle(command.Request{
		Kind:     command.KindAdd,
		Title:    args[0],
		DateText: args[1],
	})
	fmt.Println(res.Content)
	return nil
}
