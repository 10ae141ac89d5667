package core

import "time"

// Activity is one line of the ledger activity feed.
type Activity struct {
	ID          string
	Type        string // e.g. "expense.created"
	Entity      string
	EntityID    string
	AmountCents int64
	Summary     string
	At          time.Time
}

func (a Activity) RecordID() string { return a.ID }
