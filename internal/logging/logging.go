package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New создаёт логгер: человекочитаемый для LOCAL, JSON для остальных окружений.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(env, "LOCAL") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
