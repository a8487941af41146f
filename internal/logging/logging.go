package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"basketbet/internal/config"
)

var (
	writerMu sync.Mutex
	writer   io.Writer = os.Stdout
)

// Init configures the global zerolog logger. When cfg.File is set, log
// output goes to a size-capped file instead of stdout.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var output io.Writer = os.Stdout
	if cfg.File != "" {
		if w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB); err == nil {
			output = w
		}
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	writerMu.Lock()
	writer = output
	writerMu.Unlock()

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// Writer returns the sink chosen by Init so other log producers (the HTTP
// request logger) share it.
func Writer() io.Writer {
	writerMu.Lock()
	defer writerMu.Unlock()
	return writer
}
