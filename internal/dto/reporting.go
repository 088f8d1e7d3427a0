package dto

import "time"

// TrialBalanceParams carries the date range for a trial balance request.
type TrialBalanceParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}

// BalanceSheetParams carries the as-of date for a balance sheet request.
type BalanceSheetParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}

// BalanceParams carries the as-of date for a single-account balance request.
type BalanceParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}
