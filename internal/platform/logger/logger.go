package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
	scrub         *scrubber
}

type Options struct {
	// Mode is "production" for JSON output, "test" for errors only, anything
	// else for the colored development encoder.
	Mode string
	// DisableRedaction logs secrets and resident emails verbatim.
	DisableRedaction bool
	// HashSalt is mixed into hashed identifiers.
	HashSalt string
}

func New(mode string) (*Logger, error) {
	return NewWithOptions(Options{Mode: mode})
}

func NewWithOptions(opts Options) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	case "test":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	var s *scrubber
	if !opts.DisableRedaction {
		s = &scrubber{salt: opts.HashSalt}
	}
	return &Logger{SugaredLogger: z.Sugar(), scrub: s}, nil
}

func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() { _ = l.SugaredLogger.Sync() }

func (l *Logger) Debug(msg string, kv ...interface{}) { l.SugaredLogger.Debugw(msg, l.scrub.apply(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.SugaredLogger.Infow(msg, l.scrub.apply(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.SugaredLogger.Warnw(msg, l.scrub.apply(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.SugaredLogger.Errorw(msg, l.scrub.apply(kv)...) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { l.SugaredLogger.Fatalw(msg, l.scrub.apply(kv)...) }

// With returns a child logger; the bound pairs are scrubbed once here.
func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(l.scrub.apply(kv)...), scrub: l.scrub}
}
