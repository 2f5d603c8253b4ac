package model

import "time"

// CategoryTotal is the aggregated signed amount for one category within a period.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// BudgetSummary aggregates income and expense totals per category for a date range.
type BudgetSummary struct {
	FromDate     time.Time       `json:"fromDate"`
	ToDate       time.Time       `json:"toDate"`
	TotalIncome  float64         `json:"totalIncome"`
	TotalExpense float64         `json:"totalExpense"`
	Net          float64         `json:"net"`
	Categories   []CategoryTotal `json:"categories"`
}
