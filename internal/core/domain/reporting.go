package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectSummary holds the derived budget figures of a single project.
// Always computed on read, never persisted.
type ProjectSummary struct {
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"` // budget - totalCredit
	Profit          decimal.Decimal `json:"profit"`          // remainingBudget - totalDebit
	PercentUsed     int             `json:"percentUsed"`     // totalDebit / budget * 100, clamped to [0,100]
}

// DashboardStats aggregates figures across all projects visible to an actor.
type DashboardStats struct {
	TotalProjects int             `json:"totalProjects"`
	ActiveBudget  decimal.Decimal `json:"activeBudget"` // Sum of budgets
	TotalSpend    decimal.Decimal `json:"totalSpend"`   // Sum of debit - credit across all transactions
	MonthlySpend  decimal.Decimal `json:"monthlySpend"` // Same sum, transactions dated this calendar month
}

var oneHundred = decimal.NewFromInt(100)

// SummarizeProject computes the derived figures for a project budget from its
// transactions. Entries of any type other than CREDIT count as debit spend,
// so the result is independent of insertion order.
func SummarizeProject(budget decimal.Decimal, transactions []Transaction) ProjectSummary {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, txn := range transactions {
		if txn.TransactionType == Credit {
			totalCredit = totalCredit.Add(txn.Amount)
		} else {
			totalDebit = totalDebit.Add(txn.Amount)
		}
	}

	remaining := budget.Sub(totalCredit)
	summary := ProjectSummary{
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		RemainingBudget: remaining,
		Profit:          remaining.Sub(totalDebit),
	}

	if budget.IsPositive() {
		pct := totalDebit.Div(budget).Mul(oneHundred).Round(0).IntPart()
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		summary.PercentUsed = int(pct)
	}
	return summary
}
