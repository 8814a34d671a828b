package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cell_directory/internal/controllers"
	"cell_directory/internal/geo"
	"cell_directory/internal/middleware"
	"cell_directory/internal/models"
	"cell_directory/internal/routes"
	"cell_directory/internal/store"
)

type staticGeocoder struct {
	coords geo.Coordinates
	err    error
}

func (s staticGeocoder) Geocode(context.Context, string) (geo.Coordinates, error) {
	return s.coords, s.err
}

func ptr(s string) *string { return &s }

func fixtures() []models.Cell {
	return []models.Cell{
		{ID: "1", Nome: "Célula Ágape", Rede: models.RedeAmarela, Tipo: models.TipoAdulto,
			NomeLider1: "João da Silva", TelefoneLider1: "21987654321", NomeLider2: ptr("Ana Souza"),
			Horario: "Toda terça-feira, às 20:00", Endereco: "Rua das Flores, 10", CEP: "25215-260",
			Latitude: -22.788, Longitude: -43.315, Status: models.StatusAtiva},
		{ID: "2", Nome: "Célula Nova Vida", Rede: models.RedeVerde, Tipo: models.TipoJovens,
			NomeLider1: "Maria Oliveira", TelefoneLider1: "21912345678",
			Horario: "Toda quinta-feira, às 19:30", Endereco: "Avenida Brasil, 500", CEP: "25070-000",
			Latitude: -22.785, Longitude: -43.311, Status: models.StatusAtiva},
		{ID: "3", Nome: "Célula da Paz", Rede: models.RedeLaranja, Tipo: models.TipoMulheres,
			NomeLider1: "Carlos Pereira", TelefoneLider1: "21988887777",
			Horario: "Toda quarta-feira, às 20:00", Endereco: "Rua dos Lírios, 123", CEP: "25075-120",
			Latitude: -22.79, Longitude: -43.30, Status: models.StatusInativa},
	}
}

func setup(t *testing.T, cells []models.Cell) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store.Cells = store.New(store.NewMemoryPersistence())
	require.NoError(t, store.Cells.ReplaceAll(cells))
	controllers.Geo = staticGeocoder{coords: geo.Coordinates{Latitude: -22.7, Longitude: -43.3}}
	return routes.SetupRouter()
}

func adminHeader(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateToken("admin")
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, auth string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListCellsServesActiveOnly(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/cells", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Cell `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	for _, c := range resp.Data {
		assert.Equal(t, models.StatusAtiva, c.Status)
	}
}

func TestListCellsAppliesQueryAndFilters(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/cells?q=jo%C3%A3o", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []models.Cell `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "1", resp.Data[0].ID)

	rec = doJSON(r, http.MethodGet, "/cells?rede=Verde", "", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2", resp.Data[0].ID)
}

func TestUpcomingCellsAreLabeledAndCapped(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/cells/upcoming", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Cell  models.Cell `json:"cell"`
			Label string      `json:"label"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.LessOrEqual(t, len(resp.Data), 4)
	require.NotEmpty(t, resp.Data)
	for _, e := range resp.Data {
		assert.NotEqual(t, models.StatusInativa, e.Cell.Status)
		assert.Contains(t, e.Label, ":")
	}
}

func TestNearbyCells(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/cells/nearby?lat=-22.786&lng=-43.312", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Cell       models.Cell `json:"cell"`
			DistanceKm float64     `json:"distance_km"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.LessOrEqual(t, resp.Data[0].DistanceKm, resp.Data[1].DistanceKm)

	rec = doJSON(r, http.MethodGet, "/cells/nearby", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/admin/cells", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(r, http.MethodGet, "/admin/cells", "Bearer not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminListIncludesInactive(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/admin/cells", adminHeader(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []models.Cell `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
}

func TestCreateCellGeocodesAndAssignsID(t *testing.T) {
	r := setup(t, nil)

	body := `{"Nome_Celula":"Célula Teste","Rede":"Azul","Tipo":"Adulto",
		"Nome_Lider_1":"Ricardo","Telefone_Lider_1":"21966665555",
		"Horario_Celula":"Toda sexta-feira, às 19:00",
		"Endereco_Completo":"Rua Paulo Lins, 45","CEP":"25065-160",
		"Latitude":99,"Longitude":99,"Status":"Ativa"}`

	rec := doJSON(r, http.MethodPost, "/admin/cells", adminHeader(t), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Cell models.Cell `json:"cell"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Cell.ID)
	// Coordinates come from the geocoder, never the payload.
	assert.Equal(t, -22.7, resp.Cell.Latitude)
	assert.Equal(t, -43.3, resp.Cell.Longitude)

	stored, ok := store.Cells.Get(resp.Cell.ID)
	require.True(t, ok)
	assert.Equal(t, "Célula Teste", stored.Nome)
}

func TestCreateCellValidation(t *testing.T) {
	r := setup(t, nil)

	body := `{"Nome_Celula":"","Rede":"Azul","Tipo":"Adulto","Status":"Ativa"}`
	rec := doJSON(r, http.MethodPost, "/admin/cells", adminHeader(t), body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.Cells.All())
}

func TestCreateCellBlockedWhenGeocodingFails(t *testing.T) {
	r := setup(t, nil)
	controllers.Geo = staticGeocoder{err: errors.New("provider down")}

	body := `{"Nome_Celula":"Célula Teste","Rede":"Azul","Tipo":"Adulto",
		"Nome_Lider_1":"Ricardo","Telefone_Lider_1":"21966665555",
		"Horario_Celula":"Toda sexta-feira, às 19:00",
		"Endereco_Completo":"Rua Paulo Lins, 45","CEP":"25065-160","Status":"Ativa"}`

	rec := doJSON(r, http.MethodPost, "/admin/cells", adminHeader(t), body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, store.Cells.All(), "no record is written when geocoding fails")
}

func TestUpdateCellUnknownID(t *testing.T) {
	r := setup(t, fixtures())

	body := `{"Nome_Celula":"X","Rede":"Azul","Tipo":"Adulto",
		"Nome_Lider_1":"R","Telefone_Lider_1":"1","Horario_Celula":"h",
		"Endereco_Completo":"e","CEP":"c","Status":"Ativa"}`
	rec := doJSON(r, http.MethodPut, "/admin/cells/nope", adminHeader(t), body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleCellStatus(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodPatch, "/admin/cells/1/status", adminHeader(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := store.Cells.Get("1")
	assert.Equal(t, models.StatusInativa, got.Status)

	rec = doJSON(r, http.MethodPatch, "/admin/cells/1/status", adminHeader(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ = store.Cells.Get("1")
	assert.Equal(t, models.StatusAtiva, got.Status)

	rec = doJSON(r, http.MethodPatch, "/admin/cells/nope/status", adminHeader(t), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportThenImportRoundTrips(t *testing.T) {
	r := setup(t, fixtures())

	rec := doJSON(r, http.MethodGet, "/admin/cells/export", adminHeader(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "base_de_celulas.csv")
	csv := rec.Body.String()
	assert.True(t, strings.HasPrefix(csv, "\uFEFF"))

	// Re-importing the export upserts every record in place and a second
	// export reproduces the same bytes.
	req := httptest.NewRequest(http.MethodPost, "/admin/cells/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", adminHeader(t))
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())
	require.Len(t, store.Cells.All(), 3)

	rec3 := doJSON(r, http.MethodGet, "/admin/cells/export", adminHeader(t), "")
	require.Equal(t, http.StatusOK, rec3.Code)
	assert.Equal(t, csv, rec3.Body.String())
}

func TestExportEmptyStore(t *testing.T) {
	r := setup(t, nil)

	rec := doJSON(r, http.MethodGet, "/admin/cells/export", adminHeader(t), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestImportBadFileLeavesStoreUntouched(t *testing.T) {
	r := setup(t, fixtures())
	before := store.Cells.All()

	csv := "ID_Celula,Nome_Celula,Rede\n" + `"x","Only Two"`
	req := httptest.NewRequest(http.MethodPost, "/admin/cells/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", adminHeader(t))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before, store.Cells.All())
}

func TestLoginIssuesAdminToken(t *testing.T) {
	r := setup(t, nil)

	rec := doJSON(r, http.MethodPost, "/auth/login", "", `{"password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	rec = doJSON(r, http.MethodGet, "/admin/cells", "Bearer "+resp.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodPost, "/auth/login", "", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLookupCEPHandler(t *testing.T) {
	r := setup(t, nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logradouro":"Rua das Flores","bairro":"Jardim Primavera","localidade":"Duque de Caxias","uf":"RJ"}`))
	}))
	defer srv.Close()
	controllers.CEP = geo.NewViaCEPClient(srv.URL)

	rec := doJSON(r, http.MethodGet, "/admin/cep/25215-260", adminHeader(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Address geo.Address `json:"address"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Rua das Flores, Jardim Primavera, Duque de Caxias - RJ", resp.Address.FullAddress)

	rec = doJSON(r, http.MethodGet, "/admin/cep/123", adminHeader(t), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
