package config

import (
	"strings"

	"tgminiapp/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"MINIAPP_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"MINIAPP_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment получает строку режима в logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(l.Mode, "production") {
		return logger.Production
	}
	return logger.Development
}
