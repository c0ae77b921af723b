package dir

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"specgen/internal/config"
)

func TestFetchInboxFiltersAndOrders(t *testing.T) {
	root := t.TempDir()
	write := func(name string, age time.Duration) {
		p := filepath.Join(root, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
		ts := time.Now().Add(-age)
		if err := os.Chtimes(p, ts, ts); err != nil {
			t.Fatal(err)
		}
	}
	write("novo.csv", time.Minute)
	write("antigo.xlsx", time.Hour)
	write("memorial.pdf", 2*time.Hour)
	write(".oculto.csv", 3*time.Hour)
	if err := os.Mkdir(filepath.Join(root, "sub.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := NewConnector(config.Config{InboxDir: root})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.FetchInbox(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "antigo.xlsx" || got[1].Name != "novo.csv" {
		t.Fatalf("got %+v", got)
	}
	if string(got[1].Raw) != "novo.csv" || got[0].Source != "dir" {
		t.Fatalf("unexpected payload: %+v", got[1])
	}

	limited, err := c.FetchInbox(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Name != "antigo.xlsx" {
		t.Fatalf("limited=%+v", limited)
	}
}

func TestNewConnectorRequiresDir(t *testing.T) {
	if _, err := NewConnector(config.Config{}); err == nil {
		t.Fatal("expected error without INBOX_DIR")
	}
}

func TestFetchInboxWithoutLimit(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c, err := NewConnector(config.Config{InboxDir: root})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.FetchInbox(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d files", len(got))
	}
}
