package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aman-churiwal/libretune/internal/config"
	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the part of a downstream response the request logger reads.
// gin.ResponseWriter satisfies it.
type Response interface {
	Status() int
	Header() http.Header
}

// NextFunc runs the rest of the handler chain. It returns an error only when
// no response was produced at all.
type NextFunc func() (Response, error)

// RequestLogger measures every request/response pair and hands the resulting
// models.RequestLog to its sinks. It never changes the response and holds no
// mutable state, so one instance serves all requests concurrently.
type RequestLogger struct {
	sinks []Sink
	diag  *zap.Logger
}

// NewRequestLogger enables the console and file sinks selected by cfg, then
// appends extra.
func NewRequestLogger(cfg config.RequestLogConfig, diag *zap.Logger, extra ...Sink) *RequestLogger {
	if diag == nil {
		diag = zap.NewNop()
	}

	var sinks []Sink
	if cfg.LogToConsole {
		sinks = append(sinks, NewConsoleSink(diag.Named("requests")))
	}
	if cfg.LogToFile {
		sinks = append(sinks, NewFileSink(cfg.LogFilePath))
	}
	sinks = append(sinks, extra...)

	return &RequestLogger{
		sinks: sinks,
		diag:  diag,
	}
}

// Sinks returns the enabled sinks in dispatch order.
func (l *RequestLogger) Sinks() []Sink {
	return append([]Sink(nil), l.sinks...)
}

// Intercept forwards req to next and, once next has produced a response,
// records the exchange. If next fails the error is returned untouched and
// nothing is logged.
func (l *RequestLogger) Intercept(req *http.Request, next NextFunc) (Response, error) {
	start := time.Now()
	in := captureRequest(req)

	resp, err := next()
	if err != nil || resp == nil {
		return resp, err
	}

	in.ResponseTimeMs = time.Since(start).Milliseconds()
	in.StatusCode = resp.Status()
	in.ResponseSize = contentLength(resp.Header())
	in.Timestamp = time.Now().Unix()

	l.dispatch(models.NewRequestLog(in))

	return resp, nil
}

// Handler adapts Intercept to gin. c.Next() is the only point where the
// request waits on downstream handlers.
func (l *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		l.Intercept(c.Request, func() (Response, error) {
			c.Next()

			// client went away before anything was written
			if !c.Writer.Written() {
				if err := c.Request.Context().Err(); err != nil {
					return nil, err
				}
			}

			return c.Writer, nil
		})
	}
}

func (l *RequestLogger) dispatch(entry models.RequestLog) {
	for _, sink := range l.sinks {
		if err := l.write(sink, entry); err != nil {
			l.diag.Error("request log sink failed",
				zap.String("sink", sink.Name()),
				zap.String("method", entry.Method),
				zap.String("uri", entry.URI),
				zap.Error(err),
			)
		}
	}
}

func (l *RequestLogger) write(sink Sink, entry models.RequestLog) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()

	return sink.Write(entry)
}

func captureRequest(req *http.Request) models.RequestLogInput {
	uri := req.RequestURI
	if uri == "" && req.URL != nil {
		uri = req.URL.RequestURI()
	}

	return models.RequestLogInput{
		ClientIP:    peerIP(req.RemoteAddr),
		Method:      req.Method,
		URI:         uri,
		UserAgent:   req.Header.Get("User-Agent"),
		RequestSize: contentLength(req.Header),
	}
}

// peerIP uses the connection address only; forwarding headers are not trusted.
func peerIP(remoteAddr string) string {
	if remoteAddr == "" {
		return models.UnknownClientIP
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	if host == "" {
		return models.UnknownClientIP
	}

	return host
}

func contentLength(h http.Header) int64 {
	n, err := strconv.ParseInt(h.Get("Content-Length"), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
