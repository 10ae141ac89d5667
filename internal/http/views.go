package http

import (
	"fmt"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/ledger"
)

type moneyView struct {
	Cents   int64  `json:"cents"`
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

func newMoneyView(m core.Money) moneyView {
	return moneyView{Cents: m.Cents, Amount: m.String(), Display: m.Display()}
}

type expenseView struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	PaymentMode string    `json:"payment_mode"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      moneyView `json:"amount"`
}

func newExpenseView(e core.PersonalExpense) expenseView {
	return expenseView{
		ID:          e.ID,
		Category:    e.Category,
		PaymentMode: e.PaymentMode,
		Date:        e.Date.String(),
		Description: e.Description,
		Amount:      newMoneyView(e.Amount),
	}
}

type friendPaymentView struct {
	ID          string    `json:"id"`
	Direction   string    `json:"direction"`
	Friend      string    `json:"friend"`
	Amount      moneyView `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Settled     bool      `json:"settled"`
}

func newFriendPaymentView(p core.FriendPayment) friendPaymentView {
	return friendPaymentView{
		ID:          p.ID,
		Direction:   string(p.Direction),
		Friend:      p.Friend,
		Amount:      newMoneyView(p.Amount),
		Description: p.Description,
		Date:        p.Date.String(),
		Settled:     p.Settled,
	}
}

type participantView struct {
	Index   int       `json:"index"`
	Name    string    `json:"name"`
	Amount  moneyView `json:"amount"`
	IsSelf  bool      `json:"is_self"`
	Settled bool      `json:"settled"`
}

func newParticipantViews(parts []core.Participant) []participantView {
	out := make([]participantView, len(parts))
	for i, p := range parts {
		out[i] = participantView{
			Index:   i,
			Name:    p.Name,
			Amount:  newMoneyView(p.Amount),
			IsSelf:  p.IsSelf,
			Settled: p.Settled,
		}
	}
	return out
}

type groupView struct {
	ID           string            `json:"id"`
	Description  string            `json:"description"`
	TotalAmount  moneyView         `json:"total_amount"`
	PaidBy       string            `json:"paid_by"`
	SplitType    string            `json:"split_type"`
	Participants []participantView `json:"participants"`
	Date         string            `json:"date"`
}

func newGroupView(g core.GroupPayment) groupView {
	return groupView{
		ID:           g.ID,
		Description:  g.Description,
		TotalAmount:  newMoneyView(g.TotalAmount),
		PaidBy:       g.PaidBy,
		SplitType:    string(g.SplitType),
		Participants: newParticipantViews(g.Participants),
		Date:         g.Date.String(),
	}
}

type balancesView struct {
	OwedToYou moneyView `json:"owed_to_you"`
	YouOwe    moneyView `json:"you_owe"`
}

func newBalancesView(b core.Balances) balancesView {
	return balancesView{OwedToYou: newMoneyView(b.OwedToYou), YouOwe: newMoneyView(b.YouOwe)}
}

type categoryView struct {
	Name   string    `json:"name"`
	Amount moneyView `json:"amount"`
}

type dashboardView struct {
	Year             int            `json:"year,omitempty"`
	Month            int            `json:"month,omitempty"`
	TotalExpenses    moneyView      `json:"total_expenses"`
	MonthlyBudget    moneyView      `json:"monthly_budget"`
	BudgetRemaining  moneyView      `json:"budget_remaining"`
	UsagePercent     float64        `json:"usage_percent"`
	UsageBar         float64        `json:"usage_bar"`
	UsageDisplay     string         `json:"usage_display"`
	FriendBalances   balancesView   `json:"friend_balances"`
	GroupReceivables moneyView      `json:"group_receivables"`
	OwedToYou        moneyView      `json:"owed_to_you"`
	YouOwe           moneyView      `json:"you_owe"`
	ByCategory       []categoryView `json:"by_category"`
	Recent           []expenseView  `json:"recent"`
}

func newDashboardView(p MonthParams, d core.Dashboard) dashboardView {
	usage := ledger.BudgetUsage(d.TotalExpenses, d.MonthlyBudget)
	v := dashboardView{
		Year:             p.Year,
		Month:            p.Month,
		TotalExpenses:    newMoneyView(d.TotalExpenses),
		MonthlyBudget:    newMoneyView(d.MonthlyBudget),
		BudgetRemaining:  newMoneyView(usage.Remaining()),
		UsagePercent:     d.UsagePercent,
		UsageBar:         d.UsageBar,
		UsageDisplay:     fmt.Sprintf("%.2f%%", d.UsagePercent),
		FriendBalances:   newBalancesView(d.FriendBalances),
		GroupReceivables: newMoneyView(d.GroupReceivables),
		OwedToYou:        newMoneyView(d.OwedToYou),
		YouOwe:           newMoneyView(d.YouOwe),
		ByCategory:       make([]categoryView, len(d.ByCategory)),
		Recent:           make([]expenseView, len(d.Recent)),
	}
	for i, c := range d.ByCategory {
		v.ByCategory[i] = categoryView{Name: c.Name, Amount: newMoneyView(c.Amount)}
	}
	for i, e := range d.Recent {
		v.Recent[i] = newExpenseView(e)
	}
	return v
}

type settingView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type activityView struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Amount   moneyView `json:"amount"`
	Summary  string    `json:"summary"`
	At       time.Time `json:"at"`
}

func newActivityView(a core.Activity) activityView {
	return activityView{
		ID:       a.ID,
		Type:     a.Type,
		Entity:   a.Entity,
		EntityID: a.EntityID,
		Amount:   newMoneyView(core.Money{Cents: a.AmountCents}),
		Summary:  a.Summary,
		At:       a.At,
	}
}

// mapViews converts every item with fn, never returning nil.
func mapViews[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, len(items))
	for i, it := range items {
		out[i] = fn(it)
	}
	return out
}
