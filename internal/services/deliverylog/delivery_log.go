// Package deliverylog keeps an operator-facing record of received payloads:
// a log line and a counter per delivery, plus a short-lived in-memory history.
package deliverylog

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/DIMO-Network/webhook-validator/internal/schema"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var payloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "webhook_validator",
	Name:      "payloads_total",
	Help:      "Received webhook payloads by validator and response status.",
}, []string{"validator", "status"})

// Delivery is one received payload and the verdict returned for it.
type Delivery struct {
	// ID uniquely identifies the delivery.
	ID string `json:"id"`
	// ReceivedAt is when the request was handled.
	ReceivedAt time.Time `json:"receivedAt"`
	// Route is the path the payload was posted to.
	Route string `json:"route"`
	// Type is the payload's type discriminator, if readable.
	Type string `json:"type,omitempty"`
	// AuthUser is the basic-auth user for protected routes.
	AuthUser string `json:"authUser,omitempty"`
	// Validator is the RuleSet the payload was checked against.
	Validator string `json:"validator,omitempty"`
	// StatusCode is the HTTP status returned to the caller.
	StatusCode int `json:"statusCode"`
	// Message is the response message.
	Message string `json:"message"`
	// Violations lists failed fields when validation failed.
	Violations []schema.Violation `json:"violations,omitempty"`
	// Body is the raw request body.
	Body string `json:"body"`
}

// Log stores recent deliveries. Entries expire after the retention period and
// the oldest are evicted once the limit is reached.
type Log struct {
	// mu serialises eviction with insertion so the limit holds.
	mu    sync.Mutex
	cache *cache.Cache
	limit int
	now   func() time.Time
}

// New creates a delivery log.
func New(retention, cleanupInterval time.Duration, limit int) *Log {
	return &Log{
		cache: cache.New(retention, cleanupInterval),
		limit: limit,
		now:   time.Now,
	}
}

// Record stores delivery, reports it to the context logger and returns its ID.
func (l *Log) Record(ctx context.Context, delivery Delivery) string {
	if delivery.ID == "" {
		delivery.ID = uuid.NewString()
	}
	if delivery.ReceivedAt.IsZero() {
		delivery.ReceivedAt = l.now()
	}

	payloadsTotal.WithLabelValues(delivery.Validator, strconv.Itoa(delivery.StatusCode)).Inc()

	logger := zerolog.Ctx(ctx)
	event := logger.Info()
	if delivery.StatusCode >= 400 {
		event = logger.Warn()
	}
	event.Str("deliveryId", delivery.ID).
		Str("route", delivery.Route).
		Str("type", delivery.Type).
		Str("validator", delivery.Validator).
		Str("authUser", delivery.AuthUser).
		Int("status", delivery.StatusCode).
		Strs("violations", violationMessages(delivery.Violations)).
		Str("body", delivery.Body).
		Msg(delivery.Message)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit > 0 {
		l.evict(l.limit - 1)
	}
	l.cache.Set(delivery.ID, delivery, cache.DefaultExpiration)
	return delivery.ID
}

// Get returns the delivery with the given ID if it has not expired.
func (l *Log) Get(id string) (Delivery, bool) {
	item, found := l.cache.Get(id)
	if !found {
		return Delivery{}, false
	}
	return item.(Delivery), true
}

// List returns stored deliveries, newest first.
func (l *Log) List() []Delivery {
	items := l.cache.Items()
	deliveries := make([]Delivery, 0, len(items))
	for _, item := range items {
		deliveries = append(deliveries, item.Object.(Delivery))
	}
	slices.SortFunc(deliveries, func(a, b Delivery) int {
		return b.ReceivedAt.Compare(a.ReceivedAt)
	})
	return deliveries
}

// evict drops expired entries and then the oldest deliveries until at most
// keep remain. ItemCount includes expired entries that List does not return.
func (l *Log) evict(keep int) {
	if l.cache.ItemCount() <= keep {
		return
	}
	l.cache.DeleteExpired()
	deliveries := l.List()
	if len(deliveries) <= keep {
		return
	}
	for _, delivery := range deliveries[keep:] {
		l.cache.Delete(delivery.ID)
	}
}

func violationMessages(violations []schema.Violation) []string {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Message
	}
	return msgs
}
