package pipeline

import (
	"strings"

	"specgen/internal"
	"specgen/internal/util"
)

const (
	ruleWidth       = 80
	notInformed     = "Não informado"
	notAvailable    = "N/A"
	documentTitle   = "ESPECIFICAÇÕES TÉCNICAS"
	documentEnd     = "FIM DO DOCUMENTO"
	documentPurpose = "Este documento contém as especificações técnicas dos materiais e equipamentos " +
		"previstos no orçamento, baseadas nas descrições dos itens e normas técnicas aplicáveis."
)

type SpecResolver interface {
	Resolve(row internal.BudgetRow) string
}

type Renderer struct {
	resolver SpecResolver
}

func NewRenderer(resolver SpecResolver) *Renderer {
	return &Renderer{resolver: resolver}
}

// Render writes the text document. Each row is indented by two spaces times
// twice its level; only leaves get the metadata line and a specification.
func (r *Renderer) Render(rows []internal.LeveledRow, meta internal.ProjectMeta) string {
	var b strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	b.WriteString(heavy + "\n")
	b.WriteString(documentTitle + "\n")
	b.WriteString(heavy + "\n\n")
	if meta.Code != "" {
		b.WriteString("Código do Projeto: " + meta.Code + "\n")
	}
	b.WriteString("Projeto: " + meta.Name + "\n")
	if meta.Client != "" {
		b.WriteString("Cliente: " + meta.Client + "\n")
	}
	b.WriteString("Data de emissão: " + meta.Date + "\n")
	b.WriteString(light + "\n\n")
	b.WriteString(documentPurpose + "\n\n")
	b.WriteString(light + "\n\n")

	for _, row := range rows {
		indent := strings.Repeat("  ", row.Level*2)
		b.WriteString(indent + row.ItemID + " - " + row.Description + "\n")
		if !row.IsLeaf {
			continue
		}
		b.WriteString(indent + metadataLine(row.BudgetRow) + "\n")
		text := r.resolver.Resolve(row.BudgetRow)
		b.WriteString(indent + strings.ReplaceAll(text, "\n", "\n"+indent) + "\n\n")
	}

	b.WriteString("\n" + heavy + "\n")
	b.WriteString(documentEnd + "\n")
	b.WriteString(heavy + "\n")
	return b.String()
}

func metadataLine(row internal.BudgetRow) string {
	qty := notAvailable
	if row.Quantity != 0 {
		qty = util.FormatQuantity(row.Quantity)
	}
	return "Código: " + orDefault(row.Code, notInformed) +
		" | Banco: " + orDefault(row.Bank, notInformed) +
		" | Quantidade: " + qty + " " + orDefault(row.Unit, notAvailable)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
