package ledger

import (
	"fmt"
	"strings"

	"spendwise/internal/core"
)

// Share is a named amount supplied for a custom split.
type Share struct {
	Name   string
	Amount core.Money
}

// SplitRequest describes how a group total is divided.
type SplitRequest struct {
	Total core.Money
	Type  core.SplitType

	// Friends names the participants of an equal split.
	Friends []string

	// Shares and SelfAmount carry the amounts of a custom split.
	Shares      []Share
	SelfAmount  core.Money
	IncludeSelf bool
}

// Split dispatches on the split type.
func Split(req SplitRequest) ([]core.Participant, error) {
	switch req.Type {
	case core.SplitEqual, "":
		return EqualSplit(req.Total, req.Friends, req.IncludeSelf)
	case core.SplitCustom:
		return CustomSplit(req.Total, req.Shares, req.IncludeSelf, req.SelfAmount)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidSplitType, req.Type)
	}
}

// EqualSplit divides total evenly among the friends and, optionally, the user.
//
// Shares are whole cents. The remainder is handed out one cent at a time to
// the first participants, so shares differ by at most one cent and always
// add up to total. Friends come first in the given order, the user last.
func EqualSplit(total core.Money, friends []string, includeSelf bool) ([]core.Participant, error) {
	if err := total.Validate(); err != nil {
		return nil, err
	}
	names, err := cleanNames(friends)
	if err != nil {
		return nil, err
	}
	count := int64(len(names))
	if includeSelf {
		count++
	}
	if count == 0 {
		return nil, core.ErrNoParticipants
	}

	base, rem := total.Cents/count, total.Cents%count
	out := make([]core.Participant, 0, count)
	for _, n := range names {
		out = append(out, core.Participant{Name: n})
	}
	if includeSelf {
		out = append(out, core.Participant{Name: core.SelfName, IsSelf: true, Settled: true})
	}
	for i := range out {
		out[i].Amount = core.Money{Cents: base}
		if int64(i) < rem {
			out[i].Amount.Cents++
		}
	}
	return out, nil
}

// CustomSplit builds participants from explicit per-person amounts. The
// amounts must be non-negative and add up to total exactly.
func CustomSplit(total core.Money, shares []Share, includeSelf bool, selfAmount core.Money) ([]core.Participant, error) {
	if err := total.Validate(); err != nil {
		return nil, err
	}
	raw := make([]string, len(shares))
	for i, s := range shares {
		raw[i] = s.Name
	}
	names, err := cleanNames(raw)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 && !includeSelf {
		return nil, core.ErrNoParticipants
	}

	out := make([]core.Participant, 0, len(shares)+1)
	var sum int64
	for i, s := range shares {
		if s.Amount.Cents < 0 {
			return nil, fmt.Errorf("%w: share for %s", core.ErrInvalidAmount, names[i])
		}
		if s.Amount.Cents > total.Cents {
			return nil, fmt.Errorf("%w: share for %s exceeds total %s", core.ErrSplitMismatch, names[i], total)
		}
		sum += s.Amount.Cents
		out = append(out, core.Participant{Name: names[i], Amount: s.Amount})
	}
	if includeSelf {
		if selfAmount.Cents < 0 {
			return nil, fmt.Errorf("%w: own share", core.ErrInvalidAmount)
		}
		if selfAmount.Cents > total.Cents {
			return nil, fmt.Errorf("%w: own share exceeds total %s", core.ErrSplitMismatch, total)
		}
		sum += selfAmount.Cents
		out = append(out, core.Participant{Name: core.SelfName, Amount: selfAmount, IsSelf: true, Settled: true})
	}
	if sum != total.Cents {
		return nil, fmt.Errorf("%w: shares %s, total %s", core.ErrSplitMismatch, core.Money{Cents: sum}, total)
	}
	return out, nil
}

// cleanNames trims names and rejects blanks, duplicates and the self name.
func cleanNames(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in)+1)
	seen[strings.ToLower(core.SelfName)] = struct{}{}
	for _, n := range in {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, core.ErrEmptyFriend
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s", core.ErrDuplicateName, n)
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}
