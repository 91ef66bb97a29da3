// Package logging builds the zap logger used across the ripper-core
// packages: console output plus rotating file sinks, adapted from the
// teacher's zap_conf.go wiring.
package logging

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/LinkinStars/golang-util/gu"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var moduleName = "ripper-core"

// Config controls where and how the learner's logger writes.
type Config struct {
	ModuleName   string
	LogPath      string
	MaxAge       time.Duration // days
	RotationTime time.Duration // hours
	RotationSize uint32        // MB
	Development  bool
}

// New builds a *zap.Logger tee'ing console output and rotating error/info
// log files.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.ModuleName != "" {
		moduleName = cfg.ModuleName
	}
	if cfg.LogPath == "" {
		cfg.LogPath = "./log"
	}
	if cfg.RotationSize == 0 {
		cfg.RotationSize = 256
	}

	if err := gu.CreateDirIfNotExist(cfg.LogPath); err != nil {
		return nil, err
	}
	base := path.Join(cfg.LogPath, moduleName)

	maxAge := cfg.MaxAge * 24 * time.Hour
	rotationTime := cfg.RotationTime * time.Hour
	rotationSizeBytes := int64(cfg.RotationSize) * 1024 * 1024

	errWriter, err := rotatelogs.New(
		base+"_err_%Y-%m-%d.log",
		rotatelogs.WithLinkName(base+"_err_last.log"),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
		rotatelogs.WithRotationSize(rotationSizeBytes),
	)
	if err != nil {
		return nil, err
	}
	infoWriter, err := rotatelogs.New(
		base+"_info_%Y-%m-%d.log",
		rotatelogs.WithLinkName(base+"_info_last.log"),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
		rotatelogs.WithRotationSize(rotationSizeBytes),
	)
	if err != nil {
		return nil, err
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl > zapcore.WarnLevel })
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl >= zapcore.DebugLevel })

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoderConfig.EncodeTime = timeEncoder
	consoleEncoderConfig.EncodeCaller = moduleTrimmedCaller
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeTime = timeEncoder
	fileEncoderConfig.EncodeCaller = moduleTrimmedCaller
	fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder, zapcore.AddSync(errWriter), highPriority),
		zapcore.NewCore(fileEncoder, zapcore.AddSync(infoWriter), lowPriority),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zapcore.DebugLevel),
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	logger := zap.New(zapcore.NewTee(cores...), opts...)
	return logger, nil
}

func moduleTrimmedCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	str := caller.String()
	if idx := strings.Index(str, moduleName); idx != -1 {
		enc.AppendString(str[idx+len(moduleName)+1:])
		return
	}
	enc.AppendString(caller.FullPath())
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}
