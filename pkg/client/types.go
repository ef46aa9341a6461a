package client

import "time"

// User is the account summary returned with a token
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
}

// Profile is the caller's full account record
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Plan        string    `json:"plan"`
	UsedQueries int       `json:"usedQueries"`
	QueryLimit  int       `json:"queryLimit"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Stats summarizes usage for the dashboard
type Stats struct {
	TotalReports   int64  `json:"totalReports"`
	PlanType       string `json:"planType"`
	UsedQueries    int    `json:"usedQueries"`
	QueryLimit     int    `json:"queryLimit"`
	RemainingUsage int    `json:"remainingUsage"`
	UserName       string `json:"userName"`
}

// Report is a stored numerology reading
type Report struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Type      string                 `json:"type"`
	InputData map[string]interface{} `json:"inputData"`
	Result    ReportResult           `json:"result"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ReportResult holds the computed numbers and narrative
type ReportResult struct {
	LifePathNumber    int      `json:"lifePathNumber"`
	DestinyNumber     int      `json:"destinyNumber"`
	PersonalityNumber int      `json:"personalityNumber"`
	LuckyColor        string   `json:"luckyColor"`
	LuckyColors       []string `json:"luckyColors"`
	LuckyNumber       int      `json:"luckyNumber"`
	LuckyNumbers      []int    `json:"luckyNumbers"`
	CompatibleNumbers []int    `json:"compatibleNumbers"`
	PersonalYear      int      `json:"personalYear"`
	Compatibility     string   `json:"compatibility"`
	FortuneTelling    string   `json:"fortuneTelling"`
	Summary           string   `json:"summary"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListOptions contains common options for list operations
type ListOptions struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
