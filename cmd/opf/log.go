package main

import (
	"io"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zapLevels = map[string]zapcore.Level{
	"debug": zap.DebugLevel,
	"info":  zap.InfoLevel,
	"warn":  zap.WarnLevel,
	"error": zap.ErrorLevel,
}

// logConfig controls where and how much the CLI logs.
type logConfig struct {
	Level string
	// Path, when set, adds a rotating file sink named Path.%Y%m%d%H.
	Path           string
	RotationHours  int
	RotationSizeMB int
	MaxAgeDays     int
	// Console is the console sink; nil disables it.
	Console io.Writer
}

func (a *args) logConfig(console io.Writer) logConfig {
	return logConfig{
		Level:          a.LogLevel,
		Path:           a.LogPath,
		RotationHours:  24,
		RotationSizeMB: 30,
		MaxAgeDays:     7,
		Console:        console,
	}
}

// newLogger builds the sugared logger used by the CLI. Log lines go to the
// console and, if configured, to a rotating file.
func newLogger(lc logConfig) (*zap.SugaredLogger, error) {
	level, ok := zapLevels[lc.Level]
	if !ok {
		level = zap.InfoLevel
	}
	priority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level
	})

	var syncers []zapcore.WriteSyncer
	if lc.Console != nil {
		syncers = append(syncers, zapcore.AddSync(lc.Console))
	}
	if lc.Path != "" {
		rw, err := rotatelogs.New(
			lc.Path+".%Y%m%d%H",
			rotatelogs.WithRotationTime(time.Duration(lc.RotationHours)*time.Hour),
			rotatelogs.WithRotationSize(int64(lc.RotationSizeMB)*1024*1024),
			rotatelogs.WithMaxAge(time.Duration(lc.MaxAgeDays)*24*time.Hour),
		)
		if err != nil {
			return nil, errors.Wrap(err, "new rotating log")
		}
		syncers = append(syncers, zapcore.AddSync(rw))
	}
	if len(syncers) == 0 {
		return zap.NewNop().Sugar(), nil
	}

	levelEncoder := func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + l.CapitalString() + "]")
	}
	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		priority,
	)
	return zap.New(core, zap.AddCaller()).Named("[opf]").Sugar(), nil
}
