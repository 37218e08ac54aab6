package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN" envDefault:""`
	GuildID      string `env:"GUILD_ID" envDefault:""`
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"watchpoint.db"`
	LogLevel     string `env:"LOGGER_LEVEL" envDefault:"debug"`

	AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`
	QuizChannel  string   `env:"QUIZ_CHANNEL_ID" envDefault:""`

	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
