// Package orders stores submitted cut-list workbooks and keeps a record of
// every order so the workshop can find them again.
package orders

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/BoardCut/internal/export"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/storage"
)

// SubmitRequest is one order as sent by the customer.
type SubmitRequest struct {
	CustomerName string
	Phone        string
	Workbook     []byte
}

// Service saves order workbooks to a BlobStore and records them.
type Service struct {
	store    storage.BlobStore
	recorder Recorder
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for submitted orders.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithClock overrides time.Now, used for the storage key timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store storage.BlobStore, recorder Recorder, opts ...Option) *Service {
	s := &Service{
		store:    store,
		recorder: recorder,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("boardcut/orders"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores the workbook and records the order. Missing customer name,
// phone or workbook is reported as model.ErrInvalidInput.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (model.Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.Submit")
	defer span.End()

	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Phone) == "" || len(req.Workbook) == 0 {
		err := fmt.Errorf("%w: missing required fields", model.ErrInvalidInput)
		span.SetStatus(codes.Error, err.Error())
		return model.Order{}, err
	}

	at := s.now().UTC()
	key := model.OrderFileKey(at, req.CustomerName)
	span.SetAttributes(
		attribute.String("order.key", key),
		attribute.Int("order.bytes", len(req.Workbook)),
	)

	if err := s.store.Put(ctx, key, req.Workbook, export.XLSXContentType); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return model.Order{}, fmt.Errorf("failed to store order workbook: %w", err)
	}

	order := model.Order{
		ID:           uuid.New().String(),
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		FileKey:      key,
		ExcelURL:     model.FileURL(key),
		CreatedAt:    at,
	}
	if err := s.recorder.Record(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "record failed")
		return model.Order{}, fmt.Errorf("failed to record order: %w", err)
	}

	s.logger.Info("order submitted", "id", order.ID, "key", key, "customer", order.CustomerName)
	return order, nil
}

// Open returns the stored workbook for key, or storage.ErrNotFound.
func (s *Service) Open(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, key)
}

// List returns the recorded orders, newest first.
func (s *Service) List(ctx context.Context) ([]model.Order, error) {
	list, err := s.recorder.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(list)
	return list, nil
}
