package geo

import (
	"math"
	"sort"

	"github.com/twpayne/go-geom"

	"cell_directory/internal/models"
)

const earthRadiusKm = 6371

// CellPoint is the cell's stored coordinates as a geometry point
// (x = longitude, y = latitude).
func CellPoint(c models.Cell) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude})
}

// Distance is the great-circle distance between two points in kilometers,
// by the haversine formula.
func Distance(a, b *geom.Point) float64 {
	lat1 := toRad(a.Y())
	lat2 := toRad(b.Y())
	dLat := toRad(b.Y() - a.Y())
	dLon := toRad(b.X() - a.X())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// CellDistance pairs a cell with its distance from a reference point.
type CellDistance struct {
	Cell       models.Cell
	DistanceKm float64
}

// Nearby sorts cells by distance from the given coordinates, closest first,
// returning at most limit entries. Input order breaks distance ties.
func Nearby(cells []models.Cell, lat, lng float64, limit int) []CellDistance {
	origin := geom.NewPointFlat(geom.XY, []float64{lng, lat})
	out := make([]CellDistance, 0, len(cells))
	for _, c := range cells {
		out = append(out, CellDistance{Cell: c, DistanceKm: Distance(origin, CellPoint(c))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
