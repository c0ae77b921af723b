package internal

// Record is one loosely-typed spreadsheet row keyed by header text.
type Record map[string]any

type SpecEntry struct {
	Code        string `json:"COMPOSIÇÃO"`
	Bank        string `json:"Banco"`
	Description string `json:"DESCRIÇÃO"`
	SpecText    string `json:"ESPECIFICAÇÃO TÉCNICA"`
}

type BudgetRow struct {
	ItemID      string
	Code        string
	Description string
	Unit        string
	Quantity    float64
	Bank        string
	Raw         Record
}

// LeveledRow is derived per render pass and never stored.
type LeveledRow struct {
	BudgetRow
	Level  int
	IsLeaf bool
}

type ProjectMeta struct {
	Name   string
	Code   string
	Client string
	Date   string
}

type DocumentFormat string

const (
	FormatText DocumentFormat = "txt"
	FormatDocx DocumentFormat = "docx"
)

type CatalogInfo struct {
	TotalItems int
	Banks      int
	LastUpdate *string
	SizeKB     float64
}

type FetchedBudget struct {
	Source     string
	Name       string
	ModifiedAt string
	Raw        []byte
}

// BudgetJob tracks one archived budget file through the listener.
type BudgetJob struct {
	ID         int
	Source     string
	Name       string
	ModifiedAt string
	Hash       string
	Status     string
	RawRef     string
	OutputPath string
	Items      int
	Error      string
}
