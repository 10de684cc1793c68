package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aman-churiwal/libretune/internal/models"
	"go.uber.org/zap"
)

var (
	ErrSinkQueueFull = errors.New("request log queue full")
	ErrSinkClosed    = errors.New("request log sink closed")
)

// BatchWriter persists a batch of request logs. repository.RequestLogRepository
// implements it.
type BatchWriter interface {
	CreateBatch(ctx context.Context, logs []models.RequestLog) error
}

const (
	defaultBatchSize     = 100
	defaultFlushInterval = 5 * time.Second
	insertTimeout        = 5 * time.Second
)

// DatabaseSink queues request logs on a buffered channel and inserts them in
// batches from a background goroutine. Write never blocks.
type DatabaseSink struct {
	writer        BatchWriter
	diag          *zap.Logger
	queue         chan models.RequestLog
	batchSize     int
	flushInterval time.Duration

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type DatabaseSinkOption func(*DatabaseSink)

func WithBatchSize(n int) DatabaseSinkOption {
	return func(s *DatabaseSink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithFlushInterval(d time.Duration) DatabaseSinkOption {
	return func(s *DatabaseSink) {
		if d > 0 {
			s.flushInterval = d
		}
	}
}

// NewDatabaseSink starts the background worker. Call Close to flush and stop it.
func NewDatabaseSink(writer BatchWriter, bufferSize int, diag *zap.Logger, opts ...DatabaseSinkOption) *DatabaseSink {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if diag == nil {
		diag = zap.NewNop()
	}

	s := &DatabaseSink{
		writer:        writer,
		diag:          diag,
		queue:         make(chan models.RequestLog, bufferSize),
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.run()

	return s
}

func (s *DatabaseSink) Name() string { return "database" }

func (s *DatabaseSink) Write(entry models.RequestLog) error {
	select {
	case <-s.stop:
		return ErrSinkClosed
	default:
	}

	select {
	case s.queue <- entry:
		return nil
	default:
		return ErrSinkQueueFull
	}
}

// Close stops the worker after flushing everything already queued.
func (s *DatabaseSink) Close(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.stop) })

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DatabaseSink) run() {
	defer close(s.done)

	batch := make([]models.RequestLog, 0, s.batchSize)
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry := <-s.queue:
			batch = append(batch, entry)

			// Insert when batch is full
			if len(batch) >= s.batchSize {
				batch = s.flush(batch)
			}
		case <-ticker.C:
			batch = s.flush(batch)
		case <-s.stop:
			for {
				select {
				case entry := <-s.queue:
					batch = append(batch, entry)
					if len(batch) >= s.batchSize {
						batch = s.flush(batch)
					}
				default:
					s.flush(batch)
					return
				}
			}
		}
	}
}

func (s *DatabaseSink) flush(batch []models.RequestLog) []models.RequestLog {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	if err := s.writer.CreateBatch(ctx, batch); err != nil {
		// Log error but dont block
		s.diag.Error("failed to insert request logs", zap.Int("count", len(batch)), zap.Error(err))
	}

	return make([]models.RequestLog, 0, s.batchSize)
}
