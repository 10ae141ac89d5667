package ledger

import (
	"fmt"

	"spendwise/internal/core"
)

// ToggleFriendPayment flips Settled on the payment with the given id and
// returns the updated collection.
func ToggleFriendPayment(payments []core.FriendPayment, id string) ([]core.FriendPayment, error) {
	i := indexOf(payments, id)
	if i < 0 {
		return nil, fmt.Errorf("friend payment %s: %w", id, core.ErrNotFound)
	}
	out := append([]core.FriendPayment(nil), payments...)
	out[i].Settled = !out[i].Settled
	return out, nil
}

// ToggleParticipant flips Settled on one participant of a group payment.
// The user's own share is never settleable.
func ToggleParticipant(groups []core.GroupPayment, id string, index int) ([]core.GroupPayment, error) {
	i := indexOf(groups, id)
	if i < 0 {
		return nil, fmt.Errorf("group payment %s: %w", id, core.ErrNotFound)
	}
	g := groups[i].Clone()
	if index < 0 || index >= len(g.Participants) {
		return nil, fmt.Errorf("%w: %d", core.ErrParticipantIndex, index)
	}
	if g.Participants[index].IsSelf {
		return nil, core.ErrSelfNotSettleable
	}
	g.Participants[index].Settled = !g.Participants[index].Settled

	out := append([]core.GroupPayment(nil), groups...)
	out[i] = g
	return out, nil
}
