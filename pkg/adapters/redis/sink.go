// Package redis streams Log diagnostics into a Redis stream so other
// processes can tail a running patch.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/tendril/pkg/host"
	backend "github.com/redis/go-redis/v9"
)

const (
	DefaultStream = "tendril:log"
	DefaultMaxLen = 10000
	DefaultBuffer = 1024
)

// Sink implements host.Diagnostics on top of a Redis stream (XADD).
// Emit never blocks the frame loop: records are queued and written by Run or Flush.
type Sink struct {
	client  *backend.Client
	stream  string
	maxLen  int64
	logger  *slog.Logger
	queue   chan host.Record
	dropped atomic.Uint64
	flushMu sync.Mutex
}

type Option func(*Sink)

// WithStream sets the stream key.
func WithStream(stream string) Option {
	return func(s *Sink) {
		s.stream = stream
	}
}

// WithMaxLen caps the stream length. Zero disables trimming.
func WithMaxLen(n int64) Option {
	return func(s *Sink) {
		s.maxLen = n
	}
}

// WithBuffer sets how many records may wait for the writer.
func WithBuffer(n int) Option {
	return func(s *Sink) {
		if n > 0 {
			s.queue = make(chan host.Record, n)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// New creates a sink connected to address.
func New(address, password string, db int, opts ...Option) *Sink {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a sink from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	s := &Sink{
		client: client,
		stream: DefaultStream,
		maxLen: DefaultMaxLen,
		logger: slog.New(slog.DiscardHandler),
		queue:  make(chan host.Record, DefaultBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stream returns the stream key records are written to.
func (s *Sink) Stream() string { return s.stream }

// Emit queues r. When the queue is full the record is dropped and counted.
func (s *Sink) Emit(r host.Record) {
	select {
	case s.queue <- r:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns how many records were discarded because the writer fell behind.
func (s *Sink) Dropped() uint64 {
	return s.dropped.Load()
}

// Ping checks the connection.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Run writes queued records until ctx is cancelled, then flushes what is left.
func (s *Sink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			// Best effort on shutdown.
			flushCtx := context.WithoutCancel(ctx)
			if err := s.Flush(flushCtx); err != nil {
				s.logger.Warn("final diagnostics flush failed", "err", err)
			}
			return nil
		case r := <-s.queue:
			batch := s.drain([]host.Record{r})
			if err := s.write(ctx, batch); err != nil {
				s.logger.Warn("failed to stream diagnostics", "err", err, "records", len(batch))
			}
		}
	}
}

// Flush writes every queued record.
func (s *Sink) Flush(ctx context.Context) error {
	batch := s.drain(nil)
	if len(batch) == 0 {
		return nil
	}
	return s.write(ctx, batch)
}

func (s *Sink) drain(batch []host.Record) []host.Record {
	for {
		select {
		case r := <-s.queue:
			batch = append(batch, r)
		default:
			return batch
		}
	}
}

func (s *Sink) write(ctx context.Context, batch []host.Record) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	pipe := s.client.Pipeline()
	for _, r := range batch {
		value, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		pipe.XAdd(ctx, &backend.XAddArgs{
			Stream: s.stream,
			MaxLen: s.maxLen,
			Values: map[string]any{
				"frame":     r.Frame,
				"generator": r.Generator,
				"port":      r.Port,
				"record":    string(value),
			},
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to xadd diagnostics: %w", err)
	}
	return nil
}

// Recent returns the last n records of the stream, oldest first.
func (s *Sink) Recent(ctx context.Context, n int64) ([]host.Record, error) {
	msgs, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	out := make([]host.Record, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		raw, ok := msgs[i].Values["record"].(string)
		if !ok {
			continue
		}
		var r host.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("failed to decode record %s: %w", msgs[i].ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Close releases the client.
func (s *Sink) Close() error {
	return s.client.Close()
}
