package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Product events sent to PostHog.
const (
	EventAPIRequest         = "api_request"
	EventCalculationCreated = "calculation_created"
	EventHistoryImported    = "history_imported"
	EventHistoryCleared     = "history_cleared"
)

// DefaultPosthogEndpoint is the PostHog EU cloud ingestion host.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// EventSink is the part of posthog.Client the tracker needs.
type EventSink interface {
	Enqueue(posthog.Message) error
	Close() error
}

// EventTracker sends product events for a user. A tracker without a sink
// drops every event, so callers never check for a missing API key.
type EventTracker struct {
	sink   EventSink
	logger *slog.Logger
}

// NewEventTracker connects to PostHog, or returns a disabled tracker when apiKey is empty
// or the client cannot be created.
func NewEventTracker(apiKey, endpoint string, logger *slog.Logger) *EventTracker {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, product events are disabled.")
		return &EventTracker{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &EventTracker{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return NewEventTrackerWithSink(client, logger)
}

// NewEventTrackerWithSink wraps an existing sink.
func NewEventTrackerWithSink(sink EventSink, logger *slog.Logger) *EventTracker {
	return &EventTracker{sink: sink, logger: logger}
}

func (t *EventTracker) Enabled() bool {
	return t != nil && t.sink != nil
}

// Track enqueues event for userID. Delivery failures are logged and dropped.
func (t *EventTracker) Track(userID, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	err := t.sink.Enqueue(posthog.Capture{
		DistinctId: userID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && t.logger != nil {
		t.logger.Warn("Failed to enqueue product event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (t *EventTracker) Close() {
	if !t.Enabled() {
		return
	}
	if err := t.sink.Close(); err != nil && t.logger != nil {
		t.logger.Warn("Failed to flush product events", slog.String("error", err.Error()))
	}
}
