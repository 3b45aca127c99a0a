package impl

import (
	"io"
	"log/slog"
	"time"

	"lessonboard/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth:   &config.AuthConfig{BcryptCost: 12},
		Signup: &config.SignupConfig{SessionTTL: time.Minute},
	}
}
