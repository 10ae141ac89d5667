package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Balances holds the two pending directions of one-to-one payments.
type Balances struct {
	OwedToYou Money // unsettled payments the user made for friends
	YouOwe    Money // unsettled payments friends made for the user
}

// Dashboard is the derived summary shown on the landing screen.
type Dashboard struct {
	TotalExpenses    Money
	MonthlyBudget    Money
	UsagePercent     float64 // raw, may exceed 100
	UsageBar         float64 // clamped to [0,100]
	FriendBalances   Balances
	GroupReceivables Money
	OwedToYou        Money // friend pending + group receivables
	YouOwe           Money
	ByCategory       []CategoryAmount
	Recent           []PersonalExpense
}
