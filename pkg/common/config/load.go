package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

var validate = validator.New()

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("struct validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields with the production defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "giveaway"
	}
	if c.Game.MaxWin == 0 {
		c.Game.MaxWin = 20000
	}
	if c.Game.TargetAvg == 0 {
		c.Game.TargetAvg = 9000
	}
	if c.Game.MaxPicks == 0 {
		c.Game.MaxPicks = 10
	}
	if c.Game.MinGuaranteed == 0 {
		c.Game.MinGuaranteed = 2000
	}
	if c.Auth.SessionTTLHrs == 0 {
		c.Auth.SessionTTLHrs = 24
	}
	if c.Auth.SweepEveryMins == 0 {
		c.Auth.SweepEveryMins = 60
	}
	if c.Chat.JoinKeyword == "" {
		c.Chat.JoinKeyword = "легенда"
	}
	if c.Chat.MessageSubject == "" {
		c.Chat.MessageSubject = "chat.message"
	}
	if c.Chat.StatusSubject == "" {
		c.Chat.StatusSubject = "chat.status"
	}
	if len(c.Chat.BotUsernames) == 0 {
		c.Chat.BotUsernames = []string{
			"nightbot", "streamelements", "streamlabs", "moobot",
			"fossabot", "wizebot", "deepbot", "phantombot",
		}
	}
	if c.Catalog.CacheDir == "" {
		c.Catalog.CacheDir = "data/catalog"
	}
	if len(c.Catalog.SourceURLs) == 0 {
		c.Catalog.SourceURLs = []string{
			"https://cdn.jsdelivr.net/gh/qwkdev/csapi@main/data2.json",
			"https://raw.githubusercontent.com/qwkdev/csapi/main/data2.json",
		}
	}
}
