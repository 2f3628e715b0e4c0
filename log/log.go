package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Sugar *zap.SugaredLogger

func init() {
	// usable before InitLogger runs, e.g. in tests that never load config
	Sugar = zap.NewNop().Sugar()
}

// InitLogger wires a tee'd zap core: rotated file sink + stdout sink, both
// at the same level. Mirrors the teacher's InitLogger signature exactly.
func InitLogger(level zapcore.LevelEnabler, name string, maxSize, maxBackup, maxAge int, compress bool) {
	encoder := getEncoder()
	fileCore := zapcore.NewCore(encoder, getLogWriter(name, maxSize, maxBackup, maxAge, compress), level)
	stdoutCore := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)

	core := zapcore.NewTee(fileCore, stdoutCore)
	Sugar = zap.New(core, zap.AddCaller()).Sugar()
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// getLogWriter configures on-disk log rotation.
// name:      log file path
// maxSize:   size in MB before a file is rotated
// maxBackup: number of rotated files to retain
// maxAge:    days to retain rotated files
func getLogWriter(name string, maxSize, maxBackup, maxAge int, compress bool) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   name,
		MaxSize:    maxSize,
		MaxBackups: maxBackup,
		MaxAge:     maxAge,
		Compress:   compress,
	})
}

// Fields is a small structured-context helper so every log line emitted by
// a Stream can be tagged with its own app id / stream name / track without
// every call site repeating zap.String boilerplate.
type Fields map[string]interface{}

// Args flattens Fields into the args zap's With()/Sugared *w calls expect.
func (f Fields) Args() []interface{} {
	args := make([]interface{}, 0, len(f)*2)
	for k, v := range f {
		args = append(args, k, v)
	}
	return args
}

func (f Fields) With(k string, v interface{}) Fields {
	out := make(Fields, len(f)+1)
	for key, val := range f {
		out[key] = val
	}
	out[k] = v
	return out
}
