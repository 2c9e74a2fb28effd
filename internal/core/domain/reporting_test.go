package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(amount int64, txType TransactionType) Transaction {
	return Transaction{Amount: decimal.NewFromInt(amount), TransactionType: txType}
}

func TestSummarizeProject(t *testing.T) {
	budget := decimal.NewFromInt(1000)
	transactions := []Transaction{
		tx(600, Debit),
		tx(200, Credit),
	}

	summary := SummarizeProject(budget, transactions)

	assert.True(t, decimal.NewFromInt(600).Equal(summary.TotalDebit), "totalDebit should be 600")
	assert.True(t, decimal.NewFromInt(200).Equal(summary.TotalCredit), "totalCredit should be 200")
	assert.True(t, decimal.NewFromInt(800).Equal(summary.RemainingBudget), "remainingBudget should be 800")
	assert.True(t, decimal.NewFromInt(200).Equal(summary.Profit), "profit should be 200")
	assert.Equal(t, 60, summary.PercentUsed)
}

func TestSummarizeProject_OrderIndependent(t *testing.T) {
	budget := decimal.NewFromInt(500)
	forward := []Transaction{tx(100, Debit), tx(50, Credit), tx(25, Debit)}
	reversed := []Transaction{tx(25, Debit), tx(50, Credit), tx(100, Debit)}

	a := SummarizeProject(budget, forward)
	b := SummarizeProject(budget, reversed)

	assert.True(t, a.TotalDebit.Equal(b.TotalDebit))
	assert.True(t, a.RemainingBudget.Equal(b.RemainingBudget))
	assert.True(t, a.Profit.Equal(b.Profit))
	assert.Equal(t, a.PercentUsed, b.PercentUsed)
}

func TestSummarizeProject_PercentUsedClamped(t *testing.T) {
	// Overspend: debit exceeds budget
	over := SummarizeProject(decimal.NewFromInt(100), []Transaction{tx(250, Debit)})
	assert.Equal(t, 100, over.PercentUsed)

	// Zero budget is defined as 0 percent used
	zero := SummarizeProject(decimal.Zero, []Transaction{tx(50, Debit)})
	assert.Equal(t, 0, zero.PercentUsed)

	// No transactions at all
	empty := SummarizeProject(decimal.NewFromInt(100), nil)
	assert.Equal(t, 0, empty.PercentUsed)
	assert.True(t, decimal.Zero.Equal(empty.TotalDebit))
}

func TestSummarizeProject_Rounding(t *testing.T) {
	// 1/3 of the budget spent rounds to 33
	summary := SummarizeProject(decimal.NewFromInt(300), []Transaction{tx(100, Debit)})
	assert.Equal(t, 33, summary.PercentUsed)

	// 2/3 rounds to 67
	summary = SummarizeProject(decimal.NewFromInt(300), []Transaction{tx(200, Debit)})
	assert.Equal(t, 67, summary.PercentUsed)
}
