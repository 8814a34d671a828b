package routes

import (
	"cell_directory/internal/controllers"
	"cell_directory/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/cells", controllers.ListAllCells)
		admin.POST("/cells", controllers.CreateCell)
		admin.PUT("/cells/:id", controllers.UpdateCell)
		admin.PATCH("/cells/:id/status", controllers.ToggleCellStatus)
		admin.GET("/cells/export", controllers.ExportCells)
		admin.POST("/cells/import", controllers.ImportCells)
		admin.GET("/cep/:cep", controllers.LookupCEP)
	}
}
