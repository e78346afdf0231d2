package logger

import (
	"go.uber.org/zap"

	"quran-tui/internal/config"
)

// New builds a logger writing to the configured log file. The terminal
// is owned by the UI, so nothing may be written to stdout or stderr.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{cfg.LogFile}
	zcfg.ErrorOutputPaths = []string{cfg.LogFile}
	return zcfg.Build()
}
