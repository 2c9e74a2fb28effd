package dto

import (
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse defines the dashboard aggregate figures.
type DashboardStatsResponse struct {
	TotalProjects int             `json:"totalProjects"`
	ActiveBudget  decimal.Decimal `json:"activeBudget"`
	TotalSpend    decimal.Decimal `json:"totalSpend"`
	MonthlySpend  decimal.Decimal `json:"monthlySpend"`
}

// ToDashboardStatsResponse converts domain.DashboardStats to DTO.
func ToDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalProjects: s.TotalProjects,
		ActiveBudget:  s.ActiveBudget,
		TotalSpend:    s.TotalSpend,
		MonthlySpend:  s.MonthlySpend,
	}
}
