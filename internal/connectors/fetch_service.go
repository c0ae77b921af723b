package connectors

import (
	"specgen/internal/storage"
)

type FetchService struct {
	db        *storage.DB
	connector BudgetConnector
	store     *BudgetStoreService
}

type FetchResult struct {
	Fetched int
	Known   int
	Stored  int
}

func NewFetchService(db *storage.DB, archiveDir string, connector BudgetConnector) *FetchService {
	return &FetchService{
		db:        db,
		connector: connector,
		store:     NewBudgetStoreService(db, archiveDir),
	}
}

// FetchAndStore archives up to max budgets that have no job yet. The inbox
// is never emptied, so files whose content already has a job are passed
// over before the limit applies; otherwise the oldest max files would be
// fetched on every cycle and newer ones never reached. max <= 0 stores all.
func (s *FetchService) FetchAndStore(max int) (FetchResult, error) {
	budgets, err := s.connector.FetchInbox(0)
	if err != nil {
		return FetchResult{}, err
	}

	res := FetchResult{Fetched: len(budgets)}
	for _, b := range budgets {
		if max > 0 && res.Stored >= max {
			break
		}
		job, err := s.db.GetBudgetJobByHash(b.Source, ContentHash(b.Raw))
		if err != nil {
			return FetchResult{}, err
		}
		if job != nil {
			res.Known++
			continue
		}
		if _, err := s.store.Store(b); err != nil {
			return FetchResult{}, err
		}
		res.Stored++
	}

	return res, nil
}
