/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogSpec names the environment variable consulted when Config.LogSpec is
// empty.
const EnvLogSpec = "GROUPSIG_LOGGING_SPEC"

const (
	defaultFormat = "logfmt"
	defaultLevel  = zapcore.InfoLevel
)

// Config is used to provide dependencies to a Logging instance.
type Config struct {
	// Format is one of "logfmt", "json" or "console". If Format is not
	// provided, logfmt is used.
	Format string

	// LogSpec is the minimum enabled level, e.g. "debug" or "warn".
	//
	// If LogSpec is not provided, the value of GROUPSIG_LOGGING_SPEC is used,
	// and loggers are enabled at the INFO level if that is unset too.
	LogSpec string

	// Writer is the sink for encoded log records.
	//
	// If a Writer is not provided, os.Stderr will be used as the log sink.
	Writer io.Writer
}

// Logging builds named zap loggers sharing one encoder, level and sink.
type Logging struct {
	level   zap.AtomicLevel
	encoder zapcore.Encoder
	writer  zapcore.WriteSyncer
}

// New creates a new logging system and initializes it with the provided
// configuration.
func New(c Config) (*Logging, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "name"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if c.Format == "" {
		c.Format = defaultFormat
	}

	var encoder zapcore.Encoder
	switch c.Format {
	case "logfmt":
		encoder = zaplogfmt.NewEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, errors.Errorf("invalid log format [%s]", c.Format)
	}

	if c.LogSpec == "" {
		c.LogSpec = os.Getenv(EnvLogSpec)
	}
	level := defaultLevel
	if c.LogSpec != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(c.LogSpec))); err != nil {
			return nil, errors.Wrapf(err, "invalid log spec [%s]", c.LogSpec)
		}
	}

	if c.Writer == nil {
		c.Writer = os.Stderr
	}

	var sw zapcore.WriteSyncer
	switch t := c.Writer.(type) {
	case *os.File:
		sw = zapcore.Lock(t)
	case zapcore.WriteSyncer:
		sw = t
	default:
		sw = zapcore.AddSync(t)
	}

	return &Logging{
		level:   zap.NewAtomicLevelAt(level),
		encoder: encoder,
		writer:  sw,
	}, nil
}

// SetLevel changes the level of every logger created by l.
func (l *Logging) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

// ZapLogger instantiates a new zap.Logger with the specified name.
func (l *Logging) ZapLogger(name string) *zap.Logger {
	core := zapcore.NewCore(l.encoder, l.writer, l.level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Named(name)
}

// Logger instantiates a new sugared logger with the specified name.
func (l *Logging) Logger(name string) *zap.SugaredLogger {
	return l.ZapLogger(name).Sugar()
}

// MustGetLogger creates a logger with the default configuration and panics if
// that configuration cannot be applied.
func MustGetLogger(name string) *zap.SugaredLogger {
	l, err := New(Config{})
	if err != nil {
		panic(err)
	}
	return l.Logger(name)
}
