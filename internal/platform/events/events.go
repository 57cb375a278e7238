// Package events publishes identity domain events. Every mutating entry
// point of the service emits one; sinks range from a log line in development
// to a Kafka topic in production.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

// Event types, one per mutating operation.
const (
	TypeIdentityMinted       = "identity_minted"
	TypeIdentityUpdated      = "identity_updated"
	TypeMintFeeUpdated       = "mint_fee_updated"
	TypeAccessControlUpdated = "access_control_updated"
	TypeTreasuryUpdated      = "treasury_updated"
)

// Event is one identity domain event. Fields that do not apply to the event
// type stay at their zero value and are omitted on the wire.
type Event struct {
	Type          string         `json:"type"`
	Account       models.Account `json:"account"`
	TokenID       uint64         `json:"token_id,omitempty"`
	Username      string         `json:"username,omitempty"`
	Contributions uint32         `json:"contributions,omitempty"`
	Tier          string         `json:"tier,omitempty"`
	MintFee       int64          `json:"mint_fee,omitempty"`
	RequestID     string         `json:"request_id,omitempty"`
	ClientIP      string         `json:"client_ip,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Sink receives published events.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// MemorySink collects events for assertions in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemorySink) Close() error { return nil }

// Events returns a copy of everything published so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

// LogSink writes events as structured log lines. The default sink when no
// broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "identity event",
		"type", event.Type,
		"account", event.Account,
		"token_id", event.TokenID,
		"tier", event.Tier,
		"request_id", event.RequestID,
	)
	return nil
}

func (s *LogSink) Close() error { return nil }
