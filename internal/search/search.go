package search

import (
	"strings"

	"cell_directory/internal/models"
)

// DefaultLimit caps the browse view shown when no search criteria are active.
const DefaultLimit = 10

// Filter returns the cells matching a free-text query and two independent
// multi-select filters. With no criteria at all it degrades to a browse view
// of the first DefaultLimit cells in store order. Relative order is always
// preserved. Visitor-facing callers pass active cells only.
func Filter(cells []models.Cell, query string, redes []models.Rede, tipos []models.Tipo) []models.Cell {
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "" && len(redes) == 0 && len(tipos) == 0 {
		if len(cells) > DefaultLimit {
			return cells[:DefaultLimit]
		}
		return cells
	}

	var out []models.Cell
	for _, c := range cells {
		if len(redes) > 0 && !containsRede(redes, c.Rede) {
			continue
		}
		if len(tipos) > 0 && !containsTipo(tipos, c.Tipo) {
			continue
		}
		if q != "" && !matchesQuery(c, q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesQuery(c models.Cell, q string) bool {
	if strings.Contains(strings.ToLower(c.Nome), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Endereco), q) {
		return true
	}
	// CEP is matched verbatim, digits and dash as typed.
	if strings.Contains(c.CEP, q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.NomeLider1), q) {
		return true
	}
	if c.NomeLider2 != nil && strings.Contains(strings.ToLower(*c.NomeLider2), q) {
		return true
	}
	if c.NomeLiderAuxiliar != nil && strings.Contains(strings.ToLower(*c.NomeLiderAuxiliar), q) {
		return true
	}
	return false
}

func containsRede(set []models.Rede, r models.Rede) bool {
	for _, v := range set {
		if v == r {
			return true
		}
	}
	return false
}

func containsTipo(set []models.Tipo, t models.Tipo) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}
