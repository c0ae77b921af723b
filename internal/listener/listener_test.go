package listener

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"specgen/internal/config"
	"specgen/internal/storage"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func testConfig(t *testing.T, tmp string) config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.InboxDir = filepath.Join(tmp, "inbox")
	cfg.ArchiveDir = filepath.Join(tmp, "archive")
	cfg.OutputDir = filepath.Join(tmp, "out")
	cfg.ListenerFormat = "txt"
	return cfg
}

func TestRunCycleGeneratesDocuments(t *testing.T) {
	tmp := t.TempDir()
	cfg := testConfig(t, tmp)

	db, err := storage.Open(filepath.Join(tmp, "specs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.InboxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	good := mkXLSX([][]any{
		{"Item", "Código", "Descrição", "Und", "Quant."},
		{"1.1", "101", "CABO DE COBRE", "M", 50},
	})
	bad := mkXLSX([][]any{{"Item", "Descrição"}, {"", "vazio"}})
	if err := os.WriteFile(filepath.Join(cfg.InboxDir, "Escola Norte.xlsx"), good, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.InboxDir, "ruim.xlsx"), bad, 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(db, cfg)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC) }

	res, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Fetched != 2 || res.Generated != 1 || res.Failed != 1 {
		t.Fatalf("res=%+v", res)
	}

	out := filepath.Join(cfg.OutputDir, "listener", "Especificacoes_Tecnicas_Escola_Norte.txt")
	blob, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// code 101 is in the seeded sample catalog
	if !strings.Contains(string(blob), "seção 2,5mm²") {
		t.Fatalf("catalog spec missing:\n%s", blob)
	}

	failed, err := db.ListBudgetJobs(StatusFailed, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || failed[0].Name != "ruim.xlsx" || failed[0].Error == "" {
		t.Fatalf("failed=%+v", failed)
	}

	again, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again.Generated != 0 || again.Failed != 0 {
		t.Fatalf("processed files must not be processed again: %+v", again)
	}
}

func TestRunCycleDrainsBacklogBeyondFetchMax(t *testing.T) {
	tmp := t.TempDir()
	cfg := testConfig(t, tmp)
	cfg.ListenerFetchMax = 2

	db, err := storage.Open(filepath.Join(tmp, "specs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.InboxDir, 0o755); err != nil {
		t.Fatal(err)
	}
	base := time.Now().Add(-time.Hour)
	for i, desc := range []string{"TOMADA 2P+T", "INTERRUPTOR SIMPLES", "DISJUNTOR 20A"} {
		p := filepath.Join(cfg.InboxDir, "obra"+string(rune('0'+i))+".xlsx")
		blob := mkXLSX([][]any{
			{"Item", "Código", "Descrição", "Und", "Quant."},
			{"1", "900", desc, "UN", i + 1},
		})
		if err := os.WriteFile(p, blob, 0o644); err != nil {
			t.Fatal(err)
		}
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, ts, ts); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewService(db, cfg)
	first, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Stored != 2 || first.Generated != 2 {
		t.Fatalf("first=%+v", first)
	}
	second, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Stored != 1 || second.Known != 2 || second.Generated != 1 {
		t.Fatalf("second=%+v", second)
	}

	jobs, err := db.ListBudgetJobs("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("want 3 jobs, got %d", len(jobs))
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "listener", "Especificacoes_Tecnicas_obra2.txt")); err != nil {
		t.Fatal(err)
	}
}

func TestProjectName(t *testing.T) {
	if got := projectName("obra: bloco/A.xlsx"); got != "obra_ bloco_A" {
		t.Fatalf("got %q", got)
	}
}

func TestProjectNameTruncatesOnRunes(t *testing.T) {
	long := strings.Repeat("Instalação Elétrica ", 10) + ".xlsx"
	got := projectName(long)
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != maxProjectNameRunes {
		t.Fatalf("runes=%d", n)
	}
}
