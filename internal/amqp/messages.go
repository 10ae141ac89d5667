package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"spendwise/internal/core"
)

// Entities named in ledger events.
const (
	EntityExpense       = "expense"
	EntityFriendPayment = "friend_payment"
	EntityGroupPayment  = "group_payment"
	EntitySettings      = "settings"
)

// Operations named in ledger events.
const (
	OpCreated   = "created"
	OpUpdated   = "updated"
	OpDeleted   = "deleted"
	OpSettled   = "settled"
	OpUnsettled = "unsettled"
)

var errMalformedEvent = errors.New("malformed ledger event")

// LedgerEvent is published after every successful ledger mutation.
type LedgerEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Entity      string    `json:"entity"`
	EntityID    string    `json:"entity_id"`
	AmountCents int64     `json:"amount_cents"`
	Summary     string    `json:"summary,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewLedgerEvent stamps a new event with a fresh id and the current time.
func NewLedgerEvent(entity, op, entityID string, amount core.Money, summary string) *LedgerEvent {
	return &LedgerEvent{
		ID:          uuid.NewString(),
		Type:        entity + "." + op,
		Entity:      entity,
		EntityID:    entityID,
		AmountCents: amount.Cents,
		Summary:     summary,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes an event and rejects ones missing an id or type.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	if ev.ID == "" || ev.Type == "" {
		return nil, errMalformedEvent
	}
	return &ev, nil
}

// Activity converts the event into an activity feed entry.
func (e *LedgerEvent) Activity() core.Activity {
	return core.Activity{
		ID:          e.ID,
		Type:        e.Type,
		Entity:      e.Entity,
		EntityID:    e.EntityID,
		AmountCents: e.AmountCents,
		Summary:     e.Summary,
		At:          e.Timestamp,
	}
}
