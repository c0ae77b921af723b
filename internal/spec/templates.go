package spec

import "strings"

const qualityClause = "Todos os materiais devem ser novos e de primeira qualidade. \n"

// Template bodies take {descricao}, {quantidade} and {unidade}.
const (
	cableTemplate = "CABO DE COBRE - Deve ser cabo flexível de cobre eletrolítico, isolamento em PVC 750V/1000V, conforme NBR 7286. \n" +
		"Bitola conforme especificado em projeto. " + qualityClause +
		"Deve possuir certificado de garantia e laudos técnicos quando aplicável. \n" +
		"Quantidade: {quantidade} {unidade}."

	breakerTemplate = "DISJUNTOR - Disjuntor termomagnético DIN, curva C, conforme NBR NM 60898. \n" +
		"Deve possuir certificado INMETRO. Tensão nominal 127/220V - 60Hz. \n" +
		qualityClause +
		"Quantidade: {quantidade} {unidade}."

	panelTemplate = "QUADRO DE DISTRIBUIÇÃO - Quadro em chapa de aço galvanizado, pintura epóxi eletrostática. \n" +
		"Conforme NBR IEC 61439-1. Deve incluir barramentos em cobre, trilhos DIN e sistema de aterramento. \n" +
		qualityClause +
		"Quantidade: {quantidade} {unidade}."

	outletTemplate = "TOMADA ELÉTRICA - Tomada 2P+T 10A, material policarbonato autoextinguível. \n" +
		"Conforme NBR 14136. Bornes de aperto torque controlado. \n" +
		qualityClause +
		"Quantidade: {quantidade} {unidade}."

	switchTemplate = "INTERRUPTOR - Interruptor simples 10A, material policarbonato autoextinguível. \n" +
		"Conforme NBR 14136. Deve suportar no mínimo 40.000 ciclos de acionamento. \n" +
		qualityClause +
		"Quantidade: {quantidade} {unidade}."

	defaultTemplate = "O item {descricao} deve ser fornecido e instalado conforme especificações técnicas do fabricante \n" +
		"e normas técnicas aplicáveis, em especial a NBR 5410. Deve possuir certificado de garantia e laudos técnicos quando aplicável. \n" +
		qualityClause +
		"Quantidade: {quantidade} {unidade}."
)

type Category string

const (
	CategoryCable   Category = "cable"
	CategoryBreaker Category = "breaker"
	CategoryPanel   Category = "panel"
	CategoryOutlet  Category = "outlet"
	CategorySwitch  Category = "switch"
	CategoryDefault Category = "default"
)

// Rule pairs a predicate over the uppercased description with a template.
type Rule struct {
	Category Category
	Match    func(upper string) bool
	Template string
}

func containsAll(words ...string) func(string) bool {
	return func(upper string) bool {
		for _, w := range words {
			if !strings.Contains(upper, w) {
				return false
			}
		}
		return true
	}
}

// StrictRules is the dispatch table used by the generator: cable and panel
// need both keywords.
func StrictRules() []Rule {
	return []Rule{
		{Category: CategoryCable, Match: containsAll("CABO", "COBRE"), Template: cableTemplate},
		{Category: CategoryBreaker, Match: containsAll("DISJUNTOR"), Template: breakerTemplate},
		{Category: CategoryPanel, Match: containsAll("QUADRO", "ENERGIA"), Template: panelTemplate},
		{Category: CategoryOutlet, Match: containsAll("TOMADA"), Template: outletTemplate},
		{Category: CategorySwitch, Match: containsAll("INTERRUPTOR"), Template: switchTemplate},
	}
}

// SimpleRules matches cable and panel on a single keyword.
func SimpleRules() []Rule {
	return []Rule{
		{Category: CategoryCable, Match: containsAll("CABO"), Template: cableTemplate},
		{Category: CategoryBreaker, Match: containsAll("DISJUNTOR"), Template: breakerTemplate},
		{Category: CategoryPanel, Match: containsAll("QUADRO"), Template: panelTemplate},
		{Category: CategoryOutlet, Match: containsAll("TOMADA"), Template: outletTemplate},
		{Category: CategorySwitch, Match: containsAll("INTERRUPTOR"), Template: switchTemplate},
	}
}
