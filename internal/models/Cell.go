package models

import "fmt"

// Rede is one of the four fixed organizational networks that partition cells.
type Rede string

const (
	RedeAmarela Rede = "Amarela"
	RedeVerde   Rede = "Verde"
	RedeLaranja Rede = "Laranja"
	RedeAzul    Rede = "Azul"
)

// Redes lists every network in display order.
var Redes = []Rede{RedeAmarela, RedeVerde, RedeLaranja, RedeAzul}

func (r Rede) Valid() bool {
	switch r {
	case RedeAmarela, RedeVerde, RedeLaranja, RedeAzul:
		return true
	}
	return false
}

// Tipo is the audience tag of a cell.
type Tipo string

const (
	TipoAdulto   Tipo = "Adulto"
	TipoKids     Tipo = "Kids"
	TipoHomens   Tipo = "Homens"
	TipoMulheres Tipo = "Mulheres"
	TipoJovens   Tipo = "Jovens"
)

var Tipos = []Tipo{TipoAdulto, TipoKids, TipoHomens, TipoMulheres, TipoJovens}

func (t Tipo) Valid() bool {
	switch t {
	case TipoAdulto, TipoKids, TipoHomens, TipoMulheres, TipoJovens:
		return true
	}
	return false
}

// Status marks whether a cell is surfaced to visitors.
type Status string

const (
	StatusAtiva   Status = "Ativa"
	StatusInativa Status = "Inativa"
)

// Cell is a recurring small-group meeting record. Optional leader and
// auxiliary fields are pointers: absent means the cell has no such person,
// and only the CSV boundary ever renders absence as a sentinel string.
type Cell struct {
	ID                    string  `json:"ID_Celula"`
	Nome                  string  `json:"Nome_Celula"`
	Rede                  Rede    `json:"Rede"`
	Tipo                  Tipo    `json:"Tipo"`
	NomeLider1            string  `json:"Nome_Lider_1"`
	TelefoneLider1        string  `json:"Telefone_Lider_1"`
	NomeLider2            *string `json:"Nome_Lider_2,omitempty"`
	TelefoneLider2        *string `json:"Telefone_Lider_2,omitempty"`
	NomeLiderAuxiliar     *string `json:"Nome_Lider_Auxiliar,omitempty"`
	TelefoneLiderAuxiliar *string `json:"Telefone_Lider_Auxiliar,omitempty"`
	Horario               string  `json:"Horario_Celula"`
	Endereco              string  `json:"Endereco_Completo"`
	CEP                   string  `json:"CEP"`
	Latitude              float64 `json:"Latitude"`
	Longitude             float64 `json:"Longitude"`
	Status                Status  `json:"Status"`
}

// FieldNames is the natural enumeration order of a cell's fields. It drives
// the CSV header and the column order of exports.
var FieldNames = []string{
	"ID_Celula",
	"Nome_Celula",
	"Rede",
	"Tipo",
	"Nome_Lider_1",
	"Telefone_Lider_1",
	"Nome_Lider_2",
	"Telefone_Lider_2",
	"Nome_Lider_Auxiliar",
	"Telefone_Lider_Auxiliar",
	"Horario_Celula",
	"Endereco_Completo",
	"CEP",
	"Latitude",
	"Longitude",
	"Status",
}

// Validate checks the required fields of the admin form path. Coordinates are
// exempt: they are derived by geocoding after validation passes.
func (c Cell) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"Nome_Celula", c.Nome},
		{"Nome_Lider_1", c.NomeLider1},
		{"Telefone_Lider_1", c.TelefoneLider1},
		{"Horario_Celula", c.Horario},
		{"Endereco_Completo", c.Endereco},
		{"CEP", c.CEP},
		{"Rede", string(c.Rede)},
		{"Tipo", string(c.Tipo)},
		{"Status", string(c.Status)},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("o campo %q é obrigatório", f.name)
		}
	}
	if !c.Rede.Valid() {
		return fmt.Errorf("rede inválida: %q", c.Rede)
	}
	if !c.Tipo.Valid() {
		return fmt.Errorf("tipo inválido: %q", c.Tipo)
	}
	if c.Status != StatusAtiva && c.Status != StatusInativa {
		return fmt.Errorf("status inválido: %q", c.Status)
	}
	return nil
}

// ToggleStatus flips Ativa and Inativa, leaving every other field untouched.
func (c *Cell) ToggleStatus() {
	if c.Status == StatusAtiva {
		c.Status = StatusInativa
	} else {
		c.Status = StatusAtiva
	}
}
