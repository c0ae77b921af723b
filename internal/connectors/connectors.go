package connectors

import "specgen/internal"

// BudgetConnector yields budget files waiting to be turned into documents.
type BudgetConnector interface {
	Name() string
	FetchInbox(max int) ([]internal.FetchedBudget, error)
}
