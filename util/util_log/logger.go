package util_log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log 全局日志，Init 之前输出到 stderr
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init development 使用控制台格式，其余环境输出 JSON
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			With().
			Timestamp().
			Caller().
			Logger()
		return
	}
	Log = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()
}

// SetOutput 测试中捕获日志
func SetOutput(w io.Writer) {
	Log = zerolog.New(w).With().Timestamp().Logger()
}

func Info() *zerolog.Event {
	return Log.Info()
}

func Warn() *zerolog.Event {
	return Log.Warn()
}

func Error() *zerolog.Event {
	return Log.Error()
}

func Debug() *zerolog.Event {
	return Log.Debug()
}

func Fatal() *zerolog.Event {
	return Log.Fatal()
}
