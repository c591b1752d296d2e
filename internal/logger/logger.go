// Package logger строит zap-логгер сервиса.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Параметры ротации файла лога.
const (
	maxSizeMB  = 100
	maxBackups = 7
	maxAgeDays = 28
)

// New создает production-логгер с JSON-кодировщиком, пишущий в stdout и,
// если задан file, в файл с ротацией. Возвращаемая функция синхронизирует
// логгер и закрывает файл.
func New(level, file string) (*zap.Logger, func(), error) {
	var writers []io.Writer
	var rotator *lumberjack.Logger
	writers = append(writers, os.Stdout)
	if file != "" {
		rotator = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		writers = append(writers, rotator)
	}

	logger, err := build(level, writers...)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		// Sync для stdout на некоторых платформах возвращает EINVAL, игнорируем
		_ = logger.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return logger, cleanup, nil
}

func build(level string, writers ...io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
}
