package model

import "time"

// CaseStatus tracks where a case is in its lifecycle.
type CaseStatus string

const (
	StatusCollecting      CaseStatus = "collecting_evidence"
	StatusAwaitingVerdict CaseStatus = "awaiting_verdict"
	StatusAdjudicated     CaseStatus = "adjudicated"
)

// Case is the persisted header of a case.
type Case struct {
	ID            string     `json:"id"`
	Status        CaseStatus `json:"status"`
	FollowUpCount int        `json:"follow_up_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CaseStats are store-wide counters. A case is decided once it is adjudicated.
type CaseStats struct {
	TotalCases     int `json:"total_cases"`
	DecidedCases   int `json:"decided_cases"`
	PendingCases   int `json:"pending_cases"`
	TotalDocuments int `json:"total_documents"`
	TotalFollowUps int `json:"total_followups"`
}

// CaseFile is a processed file as stored by the case store.
type CaseFile struct {
	ID          string     `json:"id"`
	CaseID      string     `json:"case_id"`
	Side        Side       `json:"side"`
	StoragePath string     `json:"storage_path"`
	Result      FileResult `json:"result"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SequenceEntry is one submission event of a case. Order is 1-based.
type SequenceEntry struct {
	Side       Side   `json:"side"`
	Order      int    `json:"order"`
	Text       string `json:"text"`
	PointCount int    `json:"point_count"`
	Warning    string `json:"warning,omitempty"`
}

// SequenceSummary describes the round structure of a case's submissions.
type SequenceSummary struct {
	SideA       []SequenceEntry `json:"side_a"`
	SideB       []SequenceEntry `json:"side_b"`
	TotalRounds int             `json:"total_rounds"`
	IsBalanced  bool            `json:"is_balanced"`
	Order       []string        `json:"arguments_order"`
	BalanceNote string          `json:"balance_note,omitempty"`
}

// SideStatistics is the per-side snapshot of a validation report.
type SideStatistics struct {
	Points int `json:"points"`
	Words  int `json:"words"`
	Files  int `json:"files"`
}

// Statistics is always populated, whatever the outcome of validation.
type Statistics struct {
	SideA SideStatistics `json:"side_a"`
	SideB SideStatistics `json:"side_b"`
}

// ValidationReport describes whether a case may proceed to adjudication.
// Issues block; warnings do not.
type ValidationReport struct {
	IsValid    bool       `json:"is_valid"`
	Issues     []string   `json:"issues"`
	Warnings   []string   `json:"warnings"`
	Statistics Statistics `json:"statistics"`
}
