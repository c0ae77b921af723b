package catalog

import (
	"strings"

	"specgen/internal"
	"specgen/internal/util"
)

const (
	ColumnCode        = "COMPOSIÇÃO"
	ColumnBank        = "Banco"
	ColumnDescription = "DESCRIÇÃO"
	ColumnSpecText    = "ESPECIFICAÇÃO TÉCNICA"
)

// FromRecords maps reference spreadsheet records to entries. Header names
// are matched exactly first and then accent/case-insensitively.
func FromRecords(records []internal.Record) []internal.SpecEntry {
	out := make([]internal.SpecEntry, 0, len(records))
	for _, rec := range records {
		folded := map[string]any{}
		for k, v := range rec {
			key := util.HeaderKey(k)
			if _, ok := folded[key]; !ok {
				folded[key] = v
			}
		}
		get := func(column string) string {
			if v, ok := rec[column]; ok {
				return strings.TrimSpace(util.ToString(v))
			}
			return strings.TrimSpace(util.ToString(folded[util.HeaderKey(column)]))
		}

		entry := internal.SpecEntry{
			Code:        get(ColumnCode),
			Bank:        get(ColumnBank),
			Description: get(ColumnDescription),
			SpecText:    get(ColumnSpecText),
		}
		if entry.Code == "" && entry.Description == "" && entry.SpecText == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func SampleEntries() []internal.SpecEntry {
	return []internal.SpecEntry{
		{
			Code:        "101",
			Bank:        "SINAPI",
			Description: "CABO DE COBRE ISOLADO PVC 750V - 2,5 MM²",
			SpecText:    "Cabo flexível de cobre, isolamento em PVC 750V/1000V, seção 2,5mm², coloração conforme NBR 7286. Deve possuir certificado INMETRO e laudo técnico.",
		},
		{
			Code:        "102",
			Bank:        "SINAPI",
			Description: "DISJUNTOR TERMOMAGNÉTICO MONOPOLAR 10A CURVA C",
			SpecText:    "Disjuntor termomagnético DIN, monopolar, corrente nominal 10A, curva C, tensão 127/220V, conforme NBR NM 60898. Deve possuir certificado INMETRO.",
		},
	}
}
