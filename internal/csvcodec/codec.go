package csvcodec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cell_directory/internal/models"
)

// ExportFilename is the fixed download name for exports.
const ExportFilename = "base_de_celulas.csv"

// utf8BOM prefixes exports so spreadsheet tools pick up the encoding.
// Written as an escape: a literal BOM is only legal as a file's first byte.
const utf8BOM = "\uFEFF"

// undefinedSentinel marks an absent value in files produced by older
// exporters. Import treats it as no value in any column, so a required
// column holding it fails the row.
const undefinedSentinel = "undefined"

// ErrNoData reports an export attempt over an empty collection. Callers
// surface it as a notice instead of producing an empty file.
var ErrNoData = errors.New("não há dados para exportar")

// Export serializes the collection to CSV: UTF-8 BOM, a header row in the
// natural field order, and one always-quoted row per cell with inner quotes
// doubled. encoding/csv is not used on purpose: it quotes only when needed
// and the format here quotes every field unconditionally.
func Export(cells []models.Cell) ([]byte, error) {
	if len(cells) == 0 {
		return nil, ErrNoData
	}

	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(strings.Join(models.FieldNames, ","))
	for _, c := range cells {
		b.WriteByte('\n')
		for i, name := range models.FieldNames {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(fieldValue(c, name), `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String()), nil
}

func fieldValue(c models.Cell, name string) string {
	switch name {
	case "ID_Celula":
		return c.ID
	case "Nome_Celula":
		return c.Nome
	case "Rede":
		return string(c.Rede)
	case "Tipo":
		return string(c.Tipo)
	case "Nome_Lider_1":
		return c.NomeLider1
	case "Telefone_Lider_1":
		return c.TelefoneLider1
	case "Nome_Lider_2":
		return optional(c.NomeLider2)
	case "Telefone_Lider_2":
		return optional(c.TelefoneLider2)
	case "Nome_Lider_Auxiliar":
		return optional(c.NomeLiderAuxiliar)
	case "Telefone_Lider_Auxiliar":
		return optional(c.TelefoneLiderAuxiliar)
	case "Horario_Celula":
		return c.Horario
	case "Endereco_Completo":
		return c.Endereco
	case "CEP":
		return c.CEP
	case "Latitude":
		return strconv.FormatFloat(c.Latitude, 'g', -1, 64)
	case "Longitude":
		return strconv.FormatFloat(c.Longitude, 'g', -1, 64)
	case "Status":
		return string(c.Status)
	}
	return ""
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var lineSplit = regexp.MustCompile(`\r?\n`)

// Import parses raw CSV text into cells. The header row names the columns,
// so field assignment follows header order rather than fixed positions. Any
// error aborts the whole import; the caller must not have touched the store
// before Import returns. now feeds synthesized ids for rows lacking one.
func Import(text string, now time.Time) ([]models.Cell, error) {
	// Exports carry a BOM; it is not part of the first header name.
	text = strings.TrimPrefix(text, utf8BOM)
	lines := lineSplit.Split(strings.TrimSpace(text), -1)
	if len(lines) < 2 {
		return nil, errors.New("CSV inválido: precisa de cabeçalho e pelo menos uma linha de dados")
	}

	header := splitLine(lines[0])

	var cells []models.Cell
	for rowIndex, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitLine(line)
		if len(values) != len(header) {
			return nil, fmt.Errorf("linha %d: número incorreto de colunas. Esperado %d, encontrado %d",
				rowIndex+2, len(header), len(values))
		}

		var c models.Cell
		for i, name := range header {
			assignField(&c, name, values[i])
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("imported_%d_%d", now.UnixMilli(), rowIndex)
		}
		if c.Nome == "" || c.Rede == "" {
			return nil, fmt.Errorf("linha %d: faltando dados essenciais (Nome ou Rede)", rowIndex+2)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// splitLine is a quote-aware comma splitter. Inside a quoted field a doubled
// quote is a literal quote; a lone quote closes the field. Outside, a quote
// opens a field and commas split. This is looser than RFC 4180 — a bare
// quote mid-field re-enters quoted state instead of failing — matching the
// files this directory has always produced and accepted.
func splitLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if quoted {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					current.WriteRune('"')
					i++
				} else {
					quoted = false
				}
			} else {
				current.WriteRune(ch)
			}
			continue
		}
		switch ch {
		case '"':
			quoted = true
		case ',':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}

func assignField(c *models.Cell, name, value string) {
	// The sentinel means absent in every column, not just the optional
	// ones. Leaving the zero value lets a required column fail the
	// essentials check downstream.
	if value == undefinedSentinel {
		return
	}
	switch name {
	case "ID_Celula":
		c.ID = value
	case "Nome_Celula":
		c.Nome = value
	case "Rede":
		c.Rede = models.Rede(value)
	case "Tipo":
		c.Tipo = models.Tipo(value)
	case "Nome_Lider_1":
		c.NomeLider1 = value
	case "Telefone_Lider_1":
		c.TelefoneLider1 = value
	case "Nome_Lider_2":
		c.NomeLider2 = &value
	case "Telefone_Lider_2":
		c.TelefoneLider2 = &value
	case "Nome_Lider_Auxiliar":
		c.NomeLiderAuxiliar = &value
	case "Telefone_Lider_Auxiliar":
		c.TelefoneLiderAuxiliar = &value
	case "Horario_Celula":
		c.Horario = value
	case "Endereco_Completo":
		c.Endereco = value
	case "CEP":
		c.CEP = value
	case "Latitude":
		c.Latitude = parseCoord(value)
	case "Longitude":
		c.Longitude = parseCoord(value)
	case "Status":
		c.Status = models.Status(value)
	}
}

// parseCoord coerces a coordinate column, defaulting to 0 on garbage rather
// than failing the import over one bad number.
func parseCoord(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
