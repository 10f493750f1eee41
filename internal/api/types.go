package api

// User is the account record returned by the login endpoint.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult is the response from POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Budget status values computed server-side. The client never derives these.
const (
	BudgetStatusGood     = "good"
	BudgetStatusWarning  = "warning"
	BudgetStatusExceeded = "exceeded"
)

// BudgetListItem is one budget as returned by the list endpoint.
// Amounts are decimal strings; spent_percentage and status are
// server-computed and must be displayed as-is.
type BudgetListItem struct {
	ID              int     `json:"id"`
	Category        int     `json:"category"`
	CategoryName    string  `json:"category_name"`
	Amount          string  `json:"amount"`
	SpentAmount     string  `json:"spent_amount"`
	SpentPercentage float64 `json:"spent_percentage"`
	Status          string  `json:"status"`
	Period          string  `json:"period"`
	Currency        string  `json:"currency"`
	IsActive        bool    `json:"is_active"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
}

// BudgetProjection is the server-side spend forecast on the detail view.
type BudgetProjection struct {
	ProjectedSpend      string  `json:"projected_spend"`
	ProjectedPercentage float64 `json:"projected_percentage"`
	DailyAverage        string  `json:"daily_average"`
	DaysRemaining       int     `json:"days_remaining"`
	WillExceed          bool    `json:"will_exceed"`
}

// BudgetDetail is the richer shape from GET /budgets/{id}. It is fetched on
// demand and never merged into the cached list.
type BudgetDetail struct {
	BudgetListItem
	Projection *BudgetProjection `json:"projection"`
}

// BudgetPayload is the request body for create/update.
// Pointer fields are omitted when nil so PATCH sends only changed fields.
type BudgetPayload struct {
	Category *int    `json:"category,omitempty"`
	Amount   *string `json:"amount,omitempty"`
	Period   *string `json:"period,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

// ToggleResult is the response from POST /budgets/{id}/toggle_active.
// The echoed budget is complete and authoritative.
type ToggleResult struct {
	Budget  BudgetListItem `json:"budget"`
	Message string         `json:"message"`
}

// MonthlySummary aggregates the current month across all budgets.
type MonthlySummary struct {
	TotalBudgeted  string  `json:"total_budgeted"`
	TotalSpent     string  `json:"total_spent"`
	Currency       string  `json:"currency"`
	BudgetCount    int     `json:"budget_count"`
	ExceededCount  int     `json:"exceeded_count"`
	WarningCount   int     `json:"warning_count"`
	OverallPercent float64 `json:"overall_percentage"`
}

// Category is a spending category without an active budget.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// BudgetAlert is a threshold or expiry notification. is_read is the only
// field the client ever changes, and only through the read endpoints.
type BudgetAlert struct {
	ID           int    `json:"id"`
	Budget       int    `json:"budget"`
	CategoryName string `json:"category_name"`
	AlertType    string `json:"alert_type"`
	Message      string `json:"message"`
	IsRead       bool   `json:"is_read"`
	CreatedAt    string `json:"created_at"`
}

// ReadAllResult is the response from POST /alerts/read-all.
type ReadAllResult struct {
	Marked  int    `json:"marked"`
	Message string `json:"message"`
}

// Goal is a savings goal with server-computed progress.
type Goal struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	TargetAmount       string  `json:"target_amount"`
	CurrentAmount      string  `json:"current_amount"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Currency           string  `json:"currency"`
	TargetDate         string  `json:"target_date"`
	Status             string  `json:"status"`
}

// Vehicle carries SOAT insurance tracking data. soat_days_remaining is
// computed server-side from the expiry date.
type Vehicle struct {
	ID                int    `json:"id"`
	Plate             string `json:"plate"`
	Brand             string `json:"brand"`
	Line              string `json:"line"`
	ModelYear         int    `json:"model_year"`
	SoatExpiry        string `json:"soat_expiry"`
	SoatDaysRemaining int    `json:"soat_days_remaining"`
	InsuranceCompany  string `json:"insurance_company"`
}

// listEnvelope is the paginated list wrapper used by every collection endpoint.
type listEnvelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}
