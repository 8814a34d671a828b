package routes

import (
	"cell_directory/internal/controllers"

	"github.com/gin-gonic/gin"
)

// VisitorRoutes registers the public directory views. Only active cells are
// ever served here.
func VisitorRoutes(r *gin.Engine) {
	cells := r.Group("/cells")
	{
		cells.GET("", controllers.ListCells)
		cells.GET("/upcoming", controllers.UpcomingCells)
		cells.GET("/nearby", controllers.NearbyCells)
		cells.GET("/geojson", controllers.CellsGeoJSON)
	}
}
