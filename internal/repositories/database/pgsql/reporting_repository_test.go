package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The dashboard budget total covers every visible project, so the SQL must
// not restrict by lifecycle status: a member whose only project is COMPLETED
// or ON_HOLD still sees its budget in activeBudget.
func TestSumProjectBudgetsQueryCountsAllStatuses(t *testing.T) {
	assert.NotContains(t, strings.ToLower(sumProjectBudgetsQuery), "status")
	assert.Contains(t, sumProjectBudgetsQuery, "SUM(budget)")
	assert.Contains(t, sumProjectBudgetsQuery, "project_id = ANY($1)")
}
