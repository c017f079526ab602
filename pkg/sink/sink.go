// Package sink receives accepted registration results. Nothing is persisted;
// the default sink logs the result as the console stand-in.
package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-roleform/pkg/registration"
)

// LogMessage is the entry written by LogSink for every submission.
const LogMessage = "form submission result"

// Sink consumes a validated result.
type Sink interface {
	Submit(ctx context.Context, result registration.Result) error
}

// Func adapts a function to Sink.
type Func func(ctx context.Context, result registration.Result) error

func (fn Func) Submit(ctx context.Context, result registration.Result) error {
	return fn(ctx, result)
}

// LogSink writes each result as a structured zap entry tagged with a fresh
// submission id.
type LogSink struct {
	logger *zap.Logger
	newID  func() string
}

// NewLogSink returns a LogSink. A nil logger discards entries.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger, newID: func() string { return uuid.NewString() }}
}

func (s *LogSink) Submit(ctx context.Context, result registration.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info(LogMessage,
		zap.String("submission_id", s.newID()),
		zap.Any("result", result),
	)
	return nil
}

// WriterSink prints "<prefix> <json>" lines to w.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewWriterSink returns a sink writing to w. An empty prefix defaults to
// LogMessage followed by a colon.
func NewWriterSink(w io.Writer, prefix string) *WriterSink {
	if strings.TrimSpace(prefix) == "" {
		prefix = LogMessage + ":"
	}
	return &WriterSink{w: w, prefix: prefix}
}

func (s *WriterSink) Submit(ctx context.Context, result registration.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.w == nil {
		return errors.New("sink: writer is nil")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("sink: encode result: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "%s %s\n", s.prefix, payload); err != nil {
		return fmt.Errorf("sink: write result: %w", err)
	}
	return nil
}

// Multi fans a result out to every sink in order and joins their errors.
type Multi []Sink

func (m Multi) Submit(ctx context.Context, result registration.Result) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
