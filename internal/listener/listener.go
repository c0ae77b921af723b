package listener

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"specgen/internal"
	"specgen/internal/catalog"
	"specgen/internal/config"
	"specgen/internal/connectors"
	dirconnector "specgen/internal/connectors/dir"
	"specgen/internal/pipeline"
	"specgen/internal/storage"
)

const (
	StatusGenerated = "generated"
	StatusFailed    = "failed"
)

type Service struct {
	db        *storage.DB
	cfg       config.Config
	connector connectors.BudgetConnector
	now       func() time.Time
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg, now: time.Now}
}

// WithConnector overrides the inbox directory connector.
func (s *Service) WithConnector(c connectors.BudgetConnector) *Service {
	s.connector = c
	return s
}

type CycleResult struct {
	Fetched   int
	Known     int
	Stored    int
	Generated int
	Failed    int
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

// RunCycle pulls new files from the inbox, archives them and turns every
// pending job into a document. A budget that cannot be read or holds no
// valid rows marks its job failed without stopping the cycle.
func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	conn, err := s.makeConnector()
	if err != nil {
		return CycleResult{}, err
	}

	fetch := connectors.NewFetchService(s.db, s.cfg.ArchiveDir, conn)
	fetchResult, err := fetch.FetchAndStore(s.cfg.ListenerFetchMax)
	if err != nil {
		return CycleResult{}, err
	}

	loader := catalog.NewLoadService(s.db, s.cfg)
	if _, err := loader.Restore(); err != nil {
		return CycleResult{}, err
	}

	jobs, err := s.db.ListBudgetJobs(connectors.StatusFetched, s.cfg.ListenerProcessBatch)
	if err != nil {
		return CycleResult{}, err
	}

	res := CycleResult{Fetched: fetchResult.Fetched, Known: fetchResult.Known, Stored: fetchResult.Stored}
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		outputPath, items, err := s.processJob(loader.Store(), job)
		if err != nil {
			res.Failed++
			if uerr := s.db.UpdateBudgetJobResult(job.ID, StatusFailed, "", 0, err.Error()); uerr != nil {
				return res, uerr
			}
			continue
		}
		res.Generated++
		if err := s.db.UpdateBudgetJobResult(job.ID, StatusGenerated, outputPath, items, ""); err != nil {
			return res, err
		}
	}

	fmt.Printf("listener cycle done source=%s fetched=%d known=%d stored=%d generated=%d failed=%d\n",
		conn.Name(), res.Fetched, res.Known, res.Stored, res.Generated, res.Failed)
	return res, nil
}

func (s *Service) processJob(store *catalog.Store, job internal.BudgetJob) (string, int, error) {
	blob, err := os.ReadFile(job.RawRef)
	if err != nil {
		return "", 0, err
	}

	session := pipeline.NewSession(s.cfg, store).WithClock(s.now)
	if _, err := session.LoadBudget(job.Name, blob); err != nil {
		return "", 0, err
	}

	meta := internal.ProjectMeta{Name: projectName(job.Name)}
	doc, err := session.Generate(meta, internal.DocumentFormat(strings.ToLower(s.cfg.ListenerFormat)))
	if err != nil {
		return "", 0, err
	}
	outputPath, err := pipeline.WriteDocument(doc, filepath.Join(s.cfg.OutputDir, "listener"))
	if err != nil {
		return "", 0, err
	}
	return outputPath, doc.Items, nil
}

func (s *Service) makeConnector() (connectors.BudgetConnector, error) {
	if s.connector != nil {
		return s.connector, nil
	}
	return dirconnector.NewConnector(s.cfg)
}

const maxProjectNameRunes = 120

func projectName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_")
	out := []rune(strings.TrimSpace(repl.Replace(stem)))
	if len(out) > maxProjectNameRunes {
		out = out[:maxProjectNameRunes]
	}
	return string(out)
}
