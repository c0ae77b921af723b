package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"specgen/internal"
)

type Stage string

const (
	StageNormalized Stage = "normalized"
	StageOrganized  Stage = "organized"
	StageRendered   Stage = "rendered"
)

// Observer is told when a real milestone is reached and how many items it
// covered.
type Observer func(stage Stage, items int)

type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("error generating document, try again: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

type Document struct {
	FileName string
	Format   internal.DocumentFormat
	Content  []byte
	Items    int
}

type Generator struct {
	renderer    *Renderer
	defaultName string
	now         func() time.Time
	observer    Observer
}

func NewGenerator(resolver SpecResolver, defaultName string) *Generator {
	return &Generator{renderer: NewRenderer(resolver), defaultName: defaultName, now: time.Now}
}

func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) WithObserver(o Observer) *Generator {
	g.observer = o
	return g
}

// Generate organizes and renders rows. Both formats carry the plain-text
// rendering; docx only changes the file name.
func (g *Generator) Generate(rows []internal.BudgetRow, meta internal.ProjectMeta, format internal.DocumentFormat) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = Document{}
			err = &RenderError{Err: fmt.Errorf("%v", r)}
		}
	}()

	if format != internal.FormatDocx {
		format = internal.FormatText
	}
	meta = g.withDefaults(meta)

	organized := Organize(rows)
	g.notify(StageOrganized, len(organized))

	content := g.renderer.Render(organized, meta)
	g.notify(StageRendered, len(organized))

	return Document{
		FileName: FileName(meta.Name, format),
		Format:   format,
		Content:  []byte(content),
		Items:    len(rows),
	}, nil
}

func (g *Generator) withDefaults(meta internal.ProjectMeta) internal.ProjectMeta {
	if strings.TrimSpace(meta.Name) == "" {
		meta.Name = g.defaultName
	}
	meta.Date = FormatDate(meta.Date, g.now())
	return meta
}

func (g *Generator) notify(stage Stage, items int) {
	if g.observer != nil {
		g.observer(stage, items)
	}
}

var reWhitespace = regexp.MustCompile(`\s+`)

func FileName(projectName string, format internal.DocumentFormat) string {
	return "Especificacoes_Tecnicas_" + reWhitespace.ReplaceAllString(projectName, "_") + "." + string(format)
}

// FormatDate turns an ISO date into dd/mm/yyyy. Empty input means today;
// anything else that does not parse is passed through.
func FormatDate(input string, now time.Time) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return now.Format("02/01/2006")
	}
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t.Format("02/01/2006")
	}
	return input
}

// WriteDocument stores doc under dir. The content goes to a temp file that
// is renamed into place, so a failure never leaves a partial document.
func WriteDocument(doc Document, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &RenderError{Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".specgen-*")
	if err != nil {
		return "", &RenderError{Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(doc.Content); err != nil {
		_ = tmp.Close()
		return "", &RenderError{Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &RenderError{Err: err}
	}

	outputPath := filepath.Join(dir, doc.FileName)
	if err := os.Rename(tmpName, outputPath); err != nil {
		return "", &RenderError{Err: err}
	}
	return outputPath, nil
}
