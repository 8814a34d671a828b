package geo

import (
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"cell_directory/internal/models"
)

// FeatureCollection builds the GeoJSON payload map clients render: one point
// feature per cell carrying the details a marker popup needs.
func FeatureCollection(cells []models.Cell) *gjson.FeatureCollection {
	features := make([]*gjson.Feature, 0, len(cells))
	for _, c := range cells {
		features = append(features, &gjson.Feature{
			ID:       c.ID,
			Geometry: CellPoint(c),
			Properties: map[string]interface{}{
				"Nome_Celula":       c.Nome,
				"Rede":              string(c.Rede),
				"Tipo":              string(c.Tipo),
				"Horario_Celula":    c.Horario,
				"Endereco_Completo": c.Endereco,
				"CEP":               c.CEP,
			},
		})
	}
	return &gjson.FeatureCollection{Features: features}
}
