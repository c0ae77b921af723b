package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"specgen/internal"
	"specgen/internal/catalog"
	"specgen/internal/config"
	"specgen/internal/listener"
	"specgen/internal/pipeline"
	"specgen/internal/storage"
	"specgen/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	loader := catalog.NewLoadService(db, cfg)
	_, err = loader.Restore()
	must(err)
	store := loader.Store()

	cmd := os.Args[1]
	switch cmd {
	case "db:load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "reference workbook (.xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		count, err := loader.LoadFile(*file)
		must(err)
		fmt.Printf("database loaded file=%s entries=%d\n", filepath.Base(*file), count)
	case "db:info":
		info := store.Info()
		last := "never"
		if info.LastUpdate != nil {
			last = *info.LastUpdate
		}
		fmt.Printf("database source=%q entries=%d banks=%d last_update=%s size_kb=%.2f\n",
			store.Source(), info.TotalItems, info.Banks, last, info.SizeKB)
	case "db:search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		q := fs.String("q", "", "filter over code, description, bank and spec text")
		page := fs.Int("page", 1, "page number")
		_ = fs.Parse(os.Args[2:])
		result := catalog.Paginate(store.Search(*q), *page, cfg.DBPageSize)
		for _, e := range result.Items {
			fmt.Printf("%s\t%s\t%s\n", e.Code, e.Bank, e.Description)
		}
		fmt.Printf("page=%d/%d total=%d\n", result.Page, result.TotalPages, result.Total)
	case "db:show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		code := fs.String("code", "", "composition code")
		_ = fs.Parse(os.Args[2:])
		excerpt, ok := store.Excerpt(*code)
		if !ok {
			must(fmt.Errorf("no entry for code=%s", *code))
		}
		fmt.Println(excerpt)
	case "db:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		path := *out
		if strings.TrimSpace(path) == "" {
			path = filepath.Join(cfg.OutputDir, pipeline.CatalogExportFileName(time.Now()))
		}
		entries := store.Entries()
		must(pipeline.ExportCatalogToXLSX(entries, path))
		fmt.Printf("exported %d entries to %s\n", len(entries), path)
	case "budget:preview":
		session := loadSession(cfg, store, cmd)
		for _, row := range session.BudgetPreview() {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n", row.ItemID, row.Code, row.Description, row.Unit, util.FormatQuantity(row.Quantity), row.Bank)
		}
		fmt.Printf("budget rows=%d\n", len(session.Budget()))
	case "spec:preview":
		session := loadSession(cfg, store, cmd)
		items, err := session.Preview()
		must(err)
		for _, item := range items {
			fmt.Printf("%s - %s\nCódigo: %s | Quantidade: %s %s\n%s\n\n", item.ItemID, item.Description, item.Code, item.Quantity, item.Unit, item.Spec)
		}
		fmt.Printf("preview items=%d of %d\n", len(items), len(session.Budget()))
	case "generate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "budget file (.xlsx, .csv, .html)")
		format := fs.String("format", "txt", "txt|docx")
		name := fs.String("name", "", "project name")
		code := fs.String("code", "", "project code")
		client := fs.String("client", "", "client")
		date := fs.String("date", "", "YYYY-MM-DD, defaults to today")
		outDir := fs.String("out-dir", cfg.OutputDir, "output directory")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		session := pipeline.NewSession(cfg, store).WithObserver(printStage)
		_, err := session.LoadBudgetFile(*file)
		must(err)
		if !session.Ready() {
			must(fmt.Errorf("the reference database is empty, run db:load first"))
		}
		doc, err := session.Generate(internal.ProjectMeta{Name: *name, Code: *code, Client: *client, Date: *date}, internal.DocumentFormat(*format))
		must(err)
		path, err := pipeline.WriteDocument(doc, *outDir)
		must(err)
		fmt.Printf("document generated items=%d format=%s output=%s\n", doc.Items, doc.Format, path)
	case "inbox:listen":
		s := listener.NewService(db, cfg)
		must(s.Run(context.Background()))
	case "inbox:run":
		s := listener.NewService(db, cfg)
		_, err := s.RunCycle(context.Background())
		must(err)
	case "inbox:jobs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int("id", 0, "single job id")
		status := fs.String("status", "", "fetched|generated|failed")
		limit := fs.Int("limit", 50, "max jobs")
		_ = fs.Parse(os.Args[2:])
		if *id != 0 {
			job, err := db.GetBudgetJobByID(*id)
			must(err)
			if job == nil {
				must(fmt.Errorf("no job for id=%d", *id))
			}
			printJob(*job)
			fmt.Printf("hash=%s archived=%s modified_at=%s\n", job.Hash, job.RawRef, job.ModifiedAt)
			return
		}
		jobs, err := db.ListBudgetJobs(*status, *limit)
		must(err)
		for _, j := range jobs {
			printJob(j)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func loadSession(cfg config.Config, store *catalog.Store, cmd string) *pipeline.Session {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	file := fs.String("file", "", "budget file (.xlsx, .csv, .html)")
	_ = fs.Parse(os.Args[2:])
	if strings.TrimSpace(*file) == "" {
		must(fmt.Errorf("--file is required"))
	}
	session := pipeline.NewSession(cfg, store)
	_, err := session.LoadBudgetFile(*file)
	must(err)
	return session
}

func printJob(j internal.BudgetJob) {
	fmt.Printf("id=%d status=%s name=%q items=%d output=%s error=%q\n", j.ID, j.Status, j.Name, j.Items, j.OutputPath, j.Error)
}

func printStage(stage pipeline.Stage, items int) {
	fmt.Printf("stage=%s items=%d\n", stage, items)
}

func usage() {
	fmt.Println("usage: specgen <command>")
	fmt.Println("commands:")
	fmt.Println("  db:load --file=base.xlsx")
	fmt.Println("  db:info")
	fmt.Println("  db:search [--q=...] [--page=1]")
	fmt.Println("  db:show --code=...")
	fmt.Println("  db:export [--out=./out/base.xlsx]")
	fmt.Println("  budget:preview --file=orcamento.xlsx")
	fmt.Println("  spec:preview --file=orcamento.xlsx")
	fmt.Println("  generate --file=orcamento.xlsx [--format=txt|docx] [--name=...] [--code=...] [--client=...] [--date=YYYY-MM-DD] [--out-dir=...]")
	fmt.Println("  inbox:listen")
	fmt.Println("  inbox:run")
	fmt.Println("  inbox:jobs [--id=N] [--status=fetched|generated|failed] [--limit=50]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
