package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"remindd/internal/command"
	"remindd/internal/digest"
	"remindd/internal/event"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print upcoming events",
	Long: `Print the upcoming events exactly as the bot would summarize them:
overdue entries are skipped and each event shows its due date and the
days remaining.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newCLILogger()
	defer logger.Sync()

	store := event.NewStore(cfg.EventsPath, logger)
	handler := command.NewHandler(store, logger)

	res := handler.Handle(command.Request{Kind: command.KindShow})
	fmt.Println(res.Content)
	if res.Payload != nil {
		fmt.Print(renderPayload(*res.Payload))
	}
	return nil
}

// renderPayload renders the embed fields as indented terminal text.
func renderPayload(p digest.Payload) string {
	var sb strings.Builder
	for _, f := range p.Fields {
		sb.WriteString(f.Name + "\n")
		for _, line := range strings.Split(f.Body, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}
