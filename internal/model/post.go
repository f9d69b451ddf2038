package model

import "github.com/shopspring/decimal"

type BudgetType string

const (
	BudgetFixed      BudgetType = "fixed"
	BudgetHourly     BudgetType = "hourly"
	BudgetNegotiable BudgetType = "negotiable"
)

func (b BudgetType) Valid() bool {
	switch b {
	case BudgetFixed, BudgetHourly, BudgetNegotiable:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

type PostStatus string

const (
	PostOpen       PostStatus = "open"
	PostInProgress PostStatus = "in_progress"
	PostResolved   PostStatus = "resolved"
	PostClosed     PostStatus = "closed"
)

func (s PostStatus) Valid() bool {
	_, ok := postTransitions[s]
	return ok
}

// open -> in_progress -> resolved | closed; an open post may also be
// closed directly. resolved and closed are final.
var postTransitions = map[PostStatus][]PostStatus{
	PostOpen:       {PostInProgress, PostClosed},
	PostInProgress: {PostResolved, PostClosed},
	PostResolved:   nil,
	PostClosed:     nil,
}

// CanTransitionTo reports whether a post may move from s to next.
// Staying in the same status is always allowed.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, allowed := range postTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AcceptsResponses reports whether solvers may still respond.
func (s PostStatus) AcceptsResponses() bool {
	return s == PostOpen
}

type Post struct {
	ID            string           `json:"id" db:"id"`
	AuthorID      string           `json:"authorId" db:"author_id"`
	CategoryID    string           `json:"categoryId" db:"category_id"`
	Title         string           `json:"title" db:"title"`
	Description   string           `json:"description" db:"description"`
	AIToolUsed    *string          `json:"aiToolUsed" db:"ai_tool_used"`
	ErrorMessage  *string          `json:"errorMessage" db:"error_message"`
	CodeSnippet   *string          `json:"codeSnippet" db:"code_snippet"`
	BudgetType    BudgetType       `json:"budgetType" db:"budget_type"`
	BudgetAmount  *decimal.Decimal `json:"budgetAmount" db:"budget_amount"`
	Urgency       Urgency          `json:"urgency" db:"urgency"`
	Status        PostStatus       `json:"status" db:"status"`
	ViewCount     int              `json:"viewCount" db:"view_count"`
	ResponseCount int              `json:"responseCount" db:"response_count"`
	Timestamps
}

// PostFilter narrows post listings. Empty fields match everything.
type PostFilter struct {
	CategorySlug string
	Status       PostStatus
	Urgency      Urgency
	AuthorID     string
	Page         int
	Limit        int
}
