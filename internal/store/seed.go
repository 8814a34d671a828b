package store

import "cell_directory/internal/models"

// SeedCells returns the example records used when nothing has been persisted
// yet, or when the persisted blob cannot be read back.
func SeedCells() []models.Cell {
	return []models.Cell{
		{
			ID:             "1",
			Nome:           "Célula Ágape",
			Rede:           models.RedeAmarela,
			Tipo:           models.TipoAdulto,
			NomeLider1:     "João da Silva",
			TelefoneLider1: "21987654321",
			NomeLider2:     ptr("Ana Souza"),
			TelefoneLider2: ptr("21988881111"),
			Horario:        "Toda terça-feira, às 20:00",
			Endereco:       "Rua das Flores, 10, Jardim Primavera, Duque de Caxias - RJ",
			CEP:            "25215-260",
			Latitude:       -22.788,
			Longitude:      -43.315,
			Status:         models.StatusAtiva,
		},
		{
			ID:             "2",
			Nome:           "Célula Nova Vida",
			Rede:           models.RedeVerde,
			Tipo:           models.TipoJovens,
			NomeLider1:     "Maria Oliveira",
			TelefoneLider1: "21912345678",
			Horario:        "Toda quinta-feira, às 19:30",
			Endereco:       "Avenida Brasil, 500, Centro, Duque de Caxias - RJ",
			CEP:            "25070-000",
			Latitude:       -22.785,
			Longitude:      -43.311,
			Status:         models.StatusAtiva,
		},
		{
			ID:                    "3",
			Nome:                  "Célula da Paz",
			Rede:                  models.RedeLaranja,
			Tipo:                  models.TipoMulheres,
			NomeLider1:            "Carlos Pereira",
			TelefoneLider1:        "21988887777",
			NomeLiderAuxiliar:     ptr("Mariana Costa"),
			TelefoneLiderAuxiliar: ptr("21977778888"),
			Horario:               "Toda quarta-feira, às 20:00",
			Endereco:              "Rua dos Lírios, 123, Bairro 25 de Agosto, Duque de Caxias - RJ",
			CEP:                   "25075-120",
			Latitude:              -22.79,
			Longitude:             -43.30,
			Status:                models.StatusInativa,
		},
		{
			ID:             "4",
			Nome:           "Célula da Fé",
			Rede:           models.RedeAzul,
			Tipo:           models.TipoHomens,
			NomeLider1:     "Ricardo Almeida",
			TelefoneLider1: "21966665555",
			Horario:        "Toda sexta-feira, às 19:00",
			Endereco:       "Rua Paulo Lins, 45, Vila São Luís, Duque de Caxias - RJ",
			CEP:            "25065-160",
			Latitude:       -22.78,
			Longitude:      -43.32,
			Status:         models.StatusAtiva,
		},
		{
			ID:             "5",
			Nome:           "Célula Sementinhas",
			Rede:           models.RedeVerde,
			Tipo:           models.TipoKids,
			NomeLider1:     "Fernanda Lima",
			TelefoneLider1: "21955554444",
			Horario:        "Todo Sábado, às 10:00",
			Endereco:       "Praça do Pacificador, 10, Centro, Duque de Caxias - RJ",
			CEP:            "25020-000",
			Latitude:       -22.786,
			Longitude:      -43.310,
			Status:         models.StatusAtiva,
		},
	}
}

func ptr(s string) *string { return &s }
