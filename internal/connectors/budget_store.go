package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"specgen/internal"
	"specgen/internal/storage"
)

const StatusFetched = "fetched"

// ContentHash identifies a budget file by its bytes.
func ContentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

type BudgetStoreService struct {
	db         *storage.DB
	archiveDir string
}

func NewBudgetStoreService(db *storage.DB, archiveDir string) *BudgetStoreService {
	return &BudgetStoreService{db: db, archiveDir: archiveDir}
}

// Store archives the raw file under its content hash, keeping the file
// extension so the sheet codec can still be picked from the name.
func (s *BudgetStoreService) Store(b internal.FetchedBudget) (internal.BudgetJob, error) {
	hash := ContentHash(b.Raw)

	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return internal.BudgetJob{}, err
	}

	rawPath := filepath.Join(s.archiveDir, hash+strings.ToLower(filepath.Ext(b.Name)))
	if _, err := os.Stat(rawPath); os.IsNotExist(err) {
		if err := os.WriteFile(rawPath, b.Raw, 0o644); err != nil {
			return internal.BudgetJob{}, err
		}
	}

	return s.db.UpsertBudgetJob(b.Source, b.Name, b.ModifiedAt, hash, rawPath, StatusFetched)
}
