// Package config provides configuration for remindd.
// Configuration is loaded from a YAML file with sensible defaults;
// secrets can be supplied through the environment instead of the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the default location for the config file.
	DefaultConfigPath = "config.yaml"

	// DefaultEventsPath is the default location of the events file.
	DefaultEventsPath = "events.toml"

	// DefaultNoticeTime is the default daily notification time (JST).
	DefaultNoticeTime = "09:00"

	// noticeLayout is the accepted notice time format.
	noticeLayout = "15:04"
)

// Environment overrides, applied after the file is read. They let the
// bot token stay out of the YAML file.
const (
	EnvToken     = "REMINDD_TOKEN"
	EnvChannelID = "REMINDD_CHANNEL_ID"
)

// Config holds the remindd configuration. It is built once at startup
// and treated as immutable afterwards.
type Config struct {
	Discord    DiscordConfig `yaml:"discord"`
	NoticeTime string        `yaml:"notice_time"`
	EventsPath string        `yaml:"events_path"`
}

// DiscordConfig holds the chat transport settings.
type DiscordConfig struct {
	Token           string `yaml:"token"`
	ChannelID       string `yaml:"channel_id"`
	DisableEveryone bool   `yaml:"disable_everyone"`
}

// Load reads configuration from path. A missing file is not an error:
// defaults plus environment overrides apply, and Validate decides
// whether the result is usable.
func Load(path string) (*Config, error) {
	cfg := &Config{
		NoticeTime: DefaultNoticeTime,
		EventsPath: DefaultEventsPath,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.NoticeTime == "" {
		cfg.NoticeTime = DefaultNoticeTime
	}
	if cfg.EventsPath == "" {
		cfg.EventsPath = DefaultEventsPath
	}

	if v := os.Getenv(EnvToken); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv(EnvChannelID); v != "" {
		cfg.Discord.ChannelID = v
	}

	return cfg, nil
}

// NoticeHourMinute parses the configured notice time. A malformed value
// is a startup error: silently skipping the daily notification would
// leave the feature dead.
func (c *Config) NoticeHourMinute() (hour, minute int, err error) {
	t, err := time.Parse(noticeLayout, c.NoticeTime)
	if err != nil {
		return 0, 0, fmt.Errorf("notice_time %q is not HH:MM: %w", c.NoticeTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if _, _, err := c.NoticeHourMinute(); err != nil {
		return err
	}
	if c.EventsPath == "" {
		return errors.New("events_path must not be empty")
	}
	return nil
}

// ValidateDiscord checks the additional settings the daemon needs.
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord token missing: set discord.token or %s", EnvToken)
	}
	if c.Discord.ChannelID == "" {
		return fmt.Errorf("discord channel missing: set discord.channel_id or %s", EnvChannelID)
	}
	return nil
}
