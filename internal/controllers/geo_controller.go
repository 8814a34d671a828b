package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cell_directory/internal/geo"
)

// CEP resolves postal codes for the admin form's address autofill.
var CEP = geo.NewViaCEPClient("https://viacep.com.br")

// LookupCEP prefills the address field for an 8-digit postal code. Failures
// block nothing but the autofill itself.
func LookupCEP(c *gin.Context) {
	address, err := CEP.Lookup(c.Request.Context(), c.Param("cep"))
	switch {
	case errors.Is(err, geo.ErrInvalidCEP):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, geo.ErrCEPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		logrus.WithError(err).Warn("LookupCEP: lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao buscar CEP."})
	default:
		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}
