package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"remindd/internal/bot"
	"remindd/internal/command"
	"remindd/internal/event"
	"remindd/internal/notify"
	"remindd/internal/schedule"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and the notification scheduler",
	Long: `Connect to Discord, register the /add and /show slash commands, and
check once per minute whether the configured notice time has been
reached. The process runs until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateDiscord(); err != nil {
		return err
	}
	hour, minute, err := cfg.NoticeHourMinute()
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	store := event.NewStore(cfg.EventsPath, logger)
	handler := command.NewHandler(store, logger)

	b, err := bot.New(cfg.Discord.Token, handler, logger)
	if err != nil {
		return err
	}
	if err := b.Open(); err != nil {
		return err
	}
	defer b.Close()

	sched := schedule.New(schedule.Options{
		Store:            store,
		Dispatcher:       notify.NewDiscord(b.Session(), logger),
		ChannelID:        cfg.Discord.ChannelID,
		SuppressEveryone: cfg.Discord.DisableEveryone,
		Hour:             hour,
		Minute:           minute,
		Logger:           logger,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	logger.Info("remindd running",
		zap.String("events_path", cfg.EventsPath),
		zap.String("notice_time", cfg.NoticeTime),
		zap.String("channel_id", cfg.Discord.ChannelID))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
	return nil
}
