package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

func (l *Logger) init() error {
	var err error
	if _, debug := os.LookupEnv("OAK_DEBUG"); debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l.Logger, err = cfg.Build()
	} else {
		l.Logger, err = zap.NewProduction()
	}
	return err
}

// New returns a logger scoped to the given package name.
func New(pkg string) *Logger {
	l := &Logger{}
	if err := l.init(); err != nil {
		panic(err)
	}

	l.Logger = l.Logger.With(
		zap.String("package", pkg),
	)

	return l
}
