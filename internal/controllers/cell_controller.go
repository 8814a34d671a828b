package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cell_directory/internal/geo"
	"cell_directory/internal/models"
	"cell_directory/internal/schedule"
	"cell_directory/internal/search"
	"cell_directory/internal/store"
)

// Geo resolves addresses to coordinates on the form save path. The default
// is the mocked provider; tests swap in their own.
var Geo geo.Geocoder = geo.NewMockGeocoder()

// upcomingWindow is how many soonest meetings the visitor landing view shows.
const upcomingWindow = 4

// ListCells is the visitor search: free-text query plus independent rede and
// tipo multi-selects, over active cells only.
func ListCells(c *gin.Context) {
	redes := make([]models.Rede, 0)
	for _, r := range c.QueryArray("rede") {
		redes = append(redes, models.Rede(r))
	}
	tipos := make([]models.Tipo, 0)
	for _, t := range c.QueryArray("tipo") {
		tipos = append(tipos, models.Tipo(t))
	}

	cells := search.Filter(store.Cells.Active(), c.Query("q"), redes, tipos)
	c.JSON(http.StatusOK, gin.H{"data": cells})
}

// UpcomingCells lists the soonest meetings among active cells. Cells whose
// schedule text cannot be resolved are absent here but still appear in the
// plain listing.
func UpcomingCells(c *gin.Context) {
	now := time.Now()
	occurrences := schedule.Upcoming(store.Cells.Active(), now, upcomingWindow)

	type entry struct {
		Cell           models.Cell `json:"cell"`
		NextOccurrence time.Time   `json:"next_occurrence"`
		Label          string      `json:"label"`
	}
	data := make([]entry, 0, len(occurrences))
	for _, o := range occurrences {
		data = append(data, entry{
			Cell:           o.Cell,
			NextOccurrence: o.At,
			Label:          schedule.FormatUpcoming(o.At, now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// NearbyCells sorts active cells by distance from the given coordinates.
func NearbyCells(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}
	limit := search.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	nearby := geo.Nearby(store.Cells.Active(), lat, lng, limit)

	type entry struct {
		Cell       models.Cell `json:"cell"`
		DistanceKm float64     `json:"distance_km"`
	}
	data := make([]entry, 0, len(nearby))
	for _, n := range nearby {
		data = append(data, entry{Cell: n.Cell, DistanceKm: n.DistanceKm})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// CellsGeoJSON renders active cells as a GeoJSON FeatureCollection for map
// clients.
func CellsGeoJSON(c *gin.Context) {
	c.JSON(http.StatusOK, geo.FeatureCollection(store.Cells.Active()))
}

// ListAllCells is the admin listing, inactive records included.
func ListAllCells(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": store.Cells.All()})
}

// CreateCell saves a new cell from the admin form. Coordinates are never
// taken from the payload: the address is geocoded and a failed geocode
// blocks the save.
func CreateCell(c *gin.Context) {
	var input models.Cell
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coords, err := Geo.Geocode(c.Request.Context(), input.Endereco)
	if err != nil {
		logrus.WithError(err).Warn("CreateCell: geocoding failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao geocodificar o endereço. Verifique e tente novamente."})
		return
	}
	input.Latitude = coords.Latitude
	input.Longitude = coords.Longitude

	if input.ID == "" {
		input.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	if err := store.Cells.Add(input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save cell: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cell": input})
}

// UpdateCell replaces an existing cell wholesale, re-geocoding the address.
func UpdateCell(c *gin.Context) {
	id := c.Param("id")
	if _, ok := store.Cells.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Célula não encontrada"})
		return
	}

	var input models.Cell
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = id
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coords, err := Geo.Geocode(c.Request.Context(), input.Endereco)
	if err != nil {
		logrus.WithError(err).Warn("UpdateCell: geocoding failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao geocodificar o endereço. Verifique e tente novamente."})
		return
	}
	input.Latitude = coords.Latitude
	input.Longitude = coords.Longitude

	updated, err := store.Cells.Update(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save cell: " + err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Célula não encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cell": input})
}

// ToggleCellStatus flips a cell between Ativa and Inativa. Records are never
// hard-deleted; deactivation is the only removal.
func ToggleCellStatus(c *gin.Context) {
	id := c.Param("id")
	cell, ok := store.Cells.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Célula não encontrada"})
		return
	}

	cell.ToggleStatus()
	if _, err := store.Cells.Update(cell); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save cell: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cell": cell})
}
