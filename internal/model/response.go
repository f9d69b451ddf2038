package model

import "github.com/shopspring/decimal"

type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseRejected  ResponseStatus = "rejected"
	ResponseCompleted ResponseStatus = "completed"
)

// pending -> accepted | rejected; accepted -> completed.
var responseTransitions = map[ResponseStatus][]ResponseStatus{
	ResponsePending:   {ResponseAccepted, ResponseRejected},
	ResponseAccepted:  {ResponseCompleted},
	ResponseRejected:  nil,
	ResponseCompleted: nil,
}

func (s ResponseStatus) Valid() bool {
	_, ok := responseTransitions[s]
	return ok
}

func (s ResponseStatus) CanTransitionTo(next ResponseStatus) bool {
	for _, allowed := range responseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Editable reports whether the solver may still change the response.
func (s ResponseStatus) Editable() bool {
	return s == ResponsePending
}

type Response struct {
	ID               string           `json:"id" db:"id"`
	PostID           string           `json:"postId" db:"post_id"`
	SolverID         string           `json:"solverId" db:"solver_id"`
	Content          string           `json:"content" db:"content"`
	ProposedSolution *string          `json:"proposedSolution" db:"proposed_solution"`
	EstimatedTime    *string          `json:"estimatedTime" db:"estimated_time"`
	ProposedPrice    *decimal.Decimal `json:"proposedPrice" db:"proposed_price"`
	Status           ResponseStatus   `json:"status" db:"status"`
	Timestamps
}
