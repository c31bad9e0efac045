package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
)

type fakeDB struct{}

func (fakeDB) Ping(context.Context) error { return nil }

func (fakeDB) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeRepo struct {
	events    []models.OutboxEvent
	published []uuid.UUID
	failed    []uuid.UUID
}

func (r *fakeRepo) FetchUnpublishedTx(_ *gorm.DB, limit, _ int) ([]models.OutboxEvent, error) {
	if len(r.events) > limit {
		return r.events[:limit], nil
	}
	return r.events, nil
}

func (r *fakeRepo) MarkPublishedTx(_ *gorm.DB, id uuid.UUID) error {
	r.published = append(r.published, id)
	return nil
}

func (r *fakeRepo) MarkFailedTx(_ *gorm.DB, id uuid.UUID, _ error) error {
	r.failed = append(r.failed, id)
	return nil
}

func (r *fakeRepo) CountUnpublished() (int64, error) {
	return int64(len(r.events) - len(r.published)), nil
}

type fakePublishResult struct {
	err error
}

func (r fakePublishResult) Get(context.Context) (string, error) {
	return "server-id", r.err
}

type fakePublisher struct {
	results  []publishResult
	messages []*gcppubsub.Message
}

func (p *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	p.messages = append(p.messages, msg)
	if len(p.results) == 0 {
		return fakePublishResult{}
	}
	next := p.results[0]
	p.results = p.results[1:]
	return next
}

func outboxEvent(t *testing.T) models.OutboxEvent {
	t.Helper()
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.OutboxEventOrderCreated,
		AggregateType: enums.OutboxAggregateOrder,
		AggregateID:   uuid.New(),
		Payload:       []byte(`{"version":1}`),
		CreatedAt:     time.Now().UTC(),
	}
}

func newTestService(t *testing.T, repo *fakeRepo, pub *fakePublisher) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "outbox-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	service, err := NewService(ServiceParams{
		Config:     &config.Config{},
		Logger:     logg,
		DB:         fakeDB{},
		Repository: repo,
		Publisher:  pub,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestProcessBatchContinuesAfterFailure(t *testing.T) {
	repo := &fakeRepo{events: []models.OutboxEvent{outboxEvent(t), outboxEvent(t)}}
	pub := &fakePublisher{results: []publishResult{
		fakePublishResult{err: errors.New("transient")},
		fakePublishResult{},
	}}
	service := newTestService(t, repo, pub)

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if !processed {
		t.Fatalf("expected batch to report processed")
	}
	if len(repo.failed) != 1 || repo.failed[0] != repo.events[0].ID {
		t.Fatalf("failed rows recorded incorrectly: %v", repo.failed)
	}
	if len(repo.published) != 1 || repo.published[0] != repo.events[1].ID {
		t.Fatalf("published rows recorded incorrectly: %v", repo.published)
	}
}

func TestProcessBatchCarriesEventAttributes(t *testing.T) {
	event := outboxEvent(t)
	repo := &fakeRepo{events: []models.OutboxEvent{event}}
	pub := &fakePublisher{}
	service := newTestService(t, repo, pub)

	if _, err := service.processBatch(context.Background()); err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected one published message, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if string(msg.Data) != `{"version":1}` {
		t.Fatalf("payload not forwarded verbatim: %s", msg.Data)
	}
	if msg.Attributes["event_type"] != "order.created" {
		t.Fatalf("event_type attribute missing: %v", msg.Attributes)
	}
	if msg.Attributes["aggregate_id"] != event.AggregateID.String() {
		t.Fatalf("aggregate_id attribute missing: %v", msg.Attributes)
	}
}

func TestProcessBatchEmptyReportsIdle(t *testing.T) {
	service := newTestService(t, &fakeRepo{}, &fakePublisher{})

	processed, err := service.processBatch(context.Background())
	if err != nil {
		t.Fatalf("process batch returned error: %v", err)
	}
	if processed {
		t.Fatalf("empty batch must report idle")
	}
}

func TestNextBackoffDoublesAndCaps(t *testing.T) {
	base := 500 * time.Millisecond
	current := base
	for i := 0; i < 10; i++ {
		current = nextBackoff(current, base, maxBackoff)
	}
	if current != maxBackoff {
		t.Fatalf("backoff should cap at %v, got %v", maxBackoff, current)
	}
	if got := nextBackoff(0, base, maxBackoff); got != base*2 {
		t.Fatalf("zero backoff should restart from base, got %v", got)
	}
}
