// Package logger holds the process-wide zap logger and hands out named children.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger *zap.Logger
	named  = make(map[string]*zap.Logger)
)

func init() {
	conf := zap.NewDevelopmentConfig()
	conf.Level = level
	conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	l, err := conf.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	logger = l
}

// SetLevel changes the level of the default logger and every named logger.
func SetLevel(lvl string) error {
	l, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	level.SetLevel(l)
	return nil
}

// NewNamed returns a logger with the given name, reusing an existing one.
func NewNamed(name string) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := named[name]; ok {
		return l
	}
	l := logger.Named(name)
	named[name] = l
	return l
}
