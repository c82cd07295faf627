package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Config controls the global logger.
type Config struct {
	Level  string
	Pretty bool // console writer for development
}

// Init configures the process-wide zerolog instance. Subsequent calls are
// no-ops.
func Init(cfg Config) {
	once.Do(func() {
		level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var output io.Writer = os.Stderr
		if cfg.Pretty {
			output = zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
		zerolog.DefaultContextLogger = &logger
	})
}

// Get returns the global logger. Usable before Init; it then logs with
// zerolog defaults.
func Get() *zerolog.Logger {
	return &logger
}
