package main

import (
	"log"
	"net/http"

	"cell_directory/internal/config"
	"cell_directory/internal/controllers"
	"cell_directory/internal/geo"
	"cell_directory/internal/logger"
	"cell_directory/internal/middleware"
	"cell_directory/internal/routes"
	"cell_directory/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Load the cell collection (seeds example data on first run)
	store.Init(store.NewDBPersistence(config.DB, store.StorageKey))

	// External address services
	controllers.CEP = geo.NewViaCEPClient(config.GetEnv("VIACEP_BASE_URL", "https://viacep.com.br"))

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.GetEnv("SERVER_ADDR", "0.0.0.0:8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
