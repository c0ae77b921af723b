package spec

import (
	"strings"

	"specgen/internal"
	"specgen/internal/util"
)

type Catalog interface {
	LookupByCode(code string) (internal.SpecEntry, bool)
	LookupByDescription(text string) (internal.SpecEntry, bool)
}

type Source string

const (
	SourceCode        Source = "CODE"
	SourceDescription Source = "DESCRIPTION"
	SourceTemplate    Source = "TEMPLATE"
)

type Resolution struct {
	Text     string
	Source   Source
	Category Category
}

type Resolver struct {
	catalog Catalog
	rules   []Rule
}

func NewResolver(catalog Catalog, strict bool) *Resolver {
	rules := SimpleRules()
	if strict {
		rules = StrictRules()
	}
	return &Resolver{catalog: catalog, rules: rules}
}

func NewResolverWithRules(catalog Catalog, rules []Rule) *Resolver {
	return &Resolver{catalog: catalog, rules: rules}
}

func (r *Resolver) Resolve(row internal.BudgetRow) string {
	return r.ResolveDetailed(row).Text
}

// ResolveDetailed tries the catalog by code, then by description, then the
// first matching template rule. It never fails: unmatched rows get the
// default template.
func (r *Resolver) ResolveDetailed(row internal.BudgetRow) Resolution {
	if r.catalog != nil {
		if row.Code != "" {
			if e, ok := r.catalog.LookupByCode(row.Code); ok {
				return Resolution{Text: e.SpecText, Source: SourceCode}
			}
		}
		if row.Description != "" {
			if e, ok := r.catalog.LookupByDescription(row.Description); ok {
				return Resolution{Text: e.SpecText, Source: SourceDescription}
			}
		}
	}

	upper := strings.ToUpper(row.Description)
	for _, rule := range r.rules {
		if rule.Match(upper) {
			return Resolution{Text: fill(rule.Template, row), Source: SourceTemplate, Category: rule.Category}
		}
	}
	return Resolution{Text: fill(defaultTemplate, row), Source: SourceTemplate, Category: CategoryDefault}
}

func fill(template string, row internal.BudgetRow) string {
	return strings.NewReplacer(
		"{descricao}", row.Description,
		"{quantidade}", util.FormatQuantity(row.Quantity),
		"{unidade}", row.Unit,
	).Replace(template)
}
