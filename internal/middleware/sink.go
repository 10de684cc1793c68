package middleware

import (
	"fmt"
	"os"

	"github.com/aman-churiwal/libretune/internal/models"
	"go.uber.org/zap"
)

// Sink receives a copy of every completed request log.
type Sink interface {
	Name() string
	Write(entry models.RequestLog) error
}

// FormatConsoleLine renders entry as
// "<emoji> <method> <uri> <ip> - <status> <ms>ms [<req>-><resp>] <user agent>".
func FormatConsoleLine(entry models.RequestLog) string {
	return fmt.Sprintf("%s %s %s %s - %d %dms [%d->%d] %s",
		entry.StatusCategory.Emoji(),
		entry.Method,
		entry.URI,
		entry.ClientIP,
		entry.StatusCode,
		entry.ResponseTimeMs,
		entry.RequestSize,
		entry.ResponseSize,
		entry.DisplayUserAgent(),
	)
}

// FormatFileLine is the console line prefixed by the unix timestamp, with the
// emoji bracketed and a trailing newline. Whitespace inside the URI or user
// agent is not escaped.
func FormatFileLine(entry models.RequestLog) string {
	return fmt.Sprintf("%d [%s] %s %s %s - %d %dms [%d->%d] %s\n",
		entry.Timestamp,
		entry.StatusCategory.Emoji(),
		entry.Method,
		entry.URI,
		entry.ClientIP,
		entry.StatusCode,
		entry.ResponseTimeMs,
		entry.RequestSize,
		entry.ResponseSize,
		entry.DisplayUserAgent(),
	)
}

// ConsoleSink writes one leveled line per request: info for 2xx/3xx, warn for
// 4xx and unclassified codes, error for 5xx.
type ConsoleSink struct {
	logger *zap.Logger
}

func NewConsoleSink(logger *zap.Logger) *ConsoleSink {
	return &ConsoleSink{logger: logger}
}

func (s *ConsoleSink) Name() string { return "console" }

func (s *ConsoleSink) Write(entry models.RequestLog) error {
	line := FormatConsoleLine(entry)

	switch entry.StatusCategory {
	case models.StatusSuccess, models.StatusRedirect:
		s.logger.Info(line)
	case models.StatusServerError:
		s.logger.Error(line)
	default:
		s.logger.Warn(line)
	}

	return nil
}

// FileSink appends one line per request. The file is opened and closed on
// every write; a single write call on an O_APPEND descriptor keeps lines from
// concurrent requests whole.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Write(entry models.RequestLog) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open request log file: %w", err)
	}

	if _, err := f.WriteString(FormatFileLine(entry)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write request log file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close request log file: %w", err)
	}

	return nil
}
