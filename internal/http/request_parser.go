// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for decoding and validating request data.
// Bodies are JSON; amounts travel as decimal strings or JSON numbers and are
// converted to whole cents without passing through float64.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/ledger"
	"spendwise/internal/services"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// ErrMalformedRequest marks bodies and parameters that cannot be decoded.
var ErrMalformedRequest = errors.New("malformed request")

// MonthParams holds parsed year/month values from request parameters.
// Year 0 selects all time.
type MonthParams struct {
	Year  int
	Month int
}

// ParseMonthParams extracts year and month from query parameters, using the
// current month as default. period=all selects every month.
func ParseMonthParams(query url.Values, now time.Time) (MonthParams, error) {
	if strings.EqualFold(strings.TrimSpace(query.Get("period")), "all") {
		return MonthParams{}, nil
	}

	params := MonthParams{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			return MonthParams{}, fmt.Errorf("%w: year %q", ErrMalformedRequest, v)
		}
		params.Year = y
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return MonthParams{}, fmt.Errorf("%w: month %q", ErrMalformedRequest, v)
		}
		params.Month = m
	}

	return params, nil
}

// ParseLimit reads a positive limit query parameter, falling back to def.
func ParseLimit(query url.Values, def, max int) (int, error) {
	v := strings.TrimSpace(query.Get("limit"))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit %q", ErrMalformedRequest, v)
	}
	if n > max {
		n = max
	}
	return n, nil
}

// DecodeJSON reads a single JSON object from the body into dst. Unknown
// fields and trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrMalformedRequest)
		}
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", ErrMalformedRequest)
	}
	return nil
}

// Amount is a money value as sent by clients: "15.50", "15,50" or 15.5.
// Decoding never fails on the value itself so a bad amount is reported as a
// validation error rather than a malformed body.
type Amount struct {
	raw string
	set bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Amount{}
		return nil
	}
	a.set = true
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &a.raw)
	}
	a.raw = string(b)
	return nil
}

// Money converts the amount to cents; a missing amount is invalid.
func (a Amount) Money() (core.Money, error) {
	if !a.set {
		return core.Money{}, core.ErrInvalidAmount
	}
	return core.ParseMoney(a.raw)
}

// Share converts a custom split share. Missing and zero amounts are both
// zero; negative or non-numeric input is invalid.
func (a Amount) Share() (core.Money, error) {
	if !a.set {
		return core.Money{}, nil
	}
	return core.ParseShare(a.raw)
}

// NewAmount builds an Amount from a decimal string.
func NewAmount(s string) Amount {
	return Amount{raw: s, set: true}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return json.Marshal(a.raw)
}

// parseDateOrToday parses YYYY-MM-DD; an empty value means today.
func parseDateOrToday(s string) (core.Date, error) {
	if strings.TrimSpace(s) == "" {
		return core.Today(), nil
	}
	return core.ParseDate(s)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

type expenseRequest struct {
	Category    string `json:"category"`
	PaymentMode string `json:"payment_mode"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

func (req expenseRequest) toExpense() (core.PersonalExpense, error) {
	amount, err := req.Amount.Money()
	if err != nil {
		return core.PersonalExpense{}, err
	}
	date, err := parseDateOrToday(req.Date)
	if err != nil {
		return core.PersonalExpense{}, err
	}
	return core.PersonalExpense{
		Category:    sanitizeInput(req.Category),
		PaymentMode: sanitizeInput(req.PaymentMode),
		Date:        date,
		Description: sanitizeInput(req.Description),
		Amount:      amount,
	}, nil
}

type friendPaymentRequest struct {
	Direction   string `json:"direction"`
	Friend      string `json:"friend"`
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Settled     bool   `json:"settled"`
}

func (req friendPaymentRequest) toPayment() (core.FriendPayment, error) {
	dir, err := core.ParseDirection(req.Direction)
	if err != nil {
		return core.FriendPayment{}, err
	}
	amount, err := req.Amount.Money()
	if err != nil {
		return core.FriendPayment{}, err
	}
	date, err := parseDateOrToday(req.Date)
	if err != nil {
		return core.FriendPayment{}, err
	}
	return core.FriendPayment{
		Direction:   dir,
		Friend:      sanitizeInput(req.Friend),
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Date:        date,
		Settled:     req.Settled,
	}, nil
}

type shareRequest struct {
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
}

// splitRequest is the part of a group payment that decides the shares.
// include_self defaults to true.
type splitRequest struct {
	SplitType   string         `json:"split_type"`
	TotalAmount Amount         `json:"total_amount"`
	Friends     []string       `json:"friends"`
	Shares      []shareRequest `json:"shares"`
	IncludeSelf *bool          `json:"include_self"`
	SelfAmount  Amount         `json:"self_amount"`
}

func (req splitRequest) toSplit() (ledger.SplitRequest, error) {
	splitType, err := core.ParseSplitType(req.SplitType)
	if err != nil {
		return ledger.SplitRequest{}, err
	}
	total, err := req.TotalAmount.Money()
	if err != nil {
		return ledger.SplitRequest{}, err
	}
	out := ledger.SplitRequest{
		Total:       total,
		Type:        splitType,
		IncludeSelf: req.IncludeSelf == nil || *req.IncludeSelf,
	}
	for _, f := range req.Friends {
		out.Friends = append(out.Friends, sanitizeInput(f))
	}
	if splitType == core.SplitCustom {
		for _, sh := range req.Shares {
			amount, err := sh.Amount.Share()
			if err != nil {
				return ledger.SplitRequest{}, fmt.Errorf("share for %q: %w", sh.Name, err)
			}
			out.Shares = append(out.Shares, ledger.Share{Name: sanitizeInput(sh.Name), Amount: amount})
		}
		if out.SelfAmount, err = req.SelfAmount.Share(); err != nil {
			return ledger.SplitRequest{}, fmt.Errorf("self share: %w", err)
		}
	}
	return out, nil
}

type groupRequest struct {
	Description string `json:"description"`
	PaidBy      string `json:"paid_by"`
	Date        string `json:"date"`
	splitRequest
}

func (req groupRequest) toInput() (services.GroupInput, error) {
	split, err := req.toSplit()
	if err != nil {
		return services.GroupInput{}, err
	}
	date, err := parseDateOrToday(req.Date)
	if err != nil {
		return services.GroupInput{}, err
	}
	return services.GroupInput{
		Description: sanitizeInput(req.Description),
		PaidBy:      sanitizeInput(req.PaidBy),
		Date:        date,
		Split:       split,
	}, nil
}

type settingRequest struct {
	Name string `json:"name"`
}
