package dir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"specgen/internal"
	"specgen/internal/config"
	"specgen/internal/sheet"
)

const sourceName = "dir"

// Connector reads budget files dropped into a local inbox directory.
type Connector struct {
	root string
}

func NewConnector(cfg config.Config) (*Connector, error) {
	if strings.TrimSpace(cfg.InboxDir) == "" {
		return nil, errors.New("INBOX_DIR is required")
	}
	if err := os.MkdirAll(cfg.InboxDir, 0o755); err != nil {
		return nil, err
	}
	return &Connector{root: cfg.InboxDir}, nil
}

func (c *Connector) Name() string { return sourceName }

// FetchInbox returns up to max supported files, oldest first; max <= 0
// returns them all. Hidden files and subdirectories are ignored.
func (c *Connector) FetchInbox(max int) ([]internal.FetchedBudget, error) {
	dirEntries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		name string
		mod  time.Time
	}
	var files []candidate
	for _, e := range dirEntries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !sheet.Supported(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{name: e.Name(), mod: info.ModTime()})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].mod.Equal(files[j].mod) {
			return files[i].name < files[j].name
		}
		return files[i].mod.Before(files[j].mod)
	})
	if max > 0 && len(files) > max {
		files = files[:max]
	}

	out := make([]internal.FetchedBudget, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(filepath.Join(c.root, f.name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		out = append(out, internal.FetchedBudget{
			Source:     sourceName,
			Name:       f.name,
			ModifiedAt: f.mod.UTC().Format(time.RFC3339),
			Raw:        raw,
		})
	}
	return out, nil
}
