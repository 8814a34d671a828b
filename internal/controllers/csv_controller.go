package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cell_directory/internal/csvcodec"
	"cell_directory/internal/store"
)

// ExportCells downloads the full collection as CSV under the fixed filename.
// An empty store is a notice, not a file.
func ExportCells(c *gin.Context) {
	data, err := csvcodec.Export(store.Cells.All())
	if err != nil {
		if errors.Is(err, csvcodec.ErrNoData) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvcodec.ExportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ImportCells parses an uploaded CSV and merges the rows into the store by
// ID. Parsing happens entirely before the store is touched, so a bad file
// leaves the collection exactly as it was.
func ImportCells(c *gin.Context) {
	text, err := importPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload: " + err.Error()})
		return
	}

	cells, err := csvcodec.Import(text, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao importar o arquivo CSV. " + err.Error()})
		return
	}

	if err := store.Cells.UpsertMany(cells); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save imported cells: " + err.Error()})
		return
	}

	logrus.WithField("count", len(cells)).Info("CSV import merged into store")
	c.JSON(http.StatusOK, gin.H{
		"imported": len(cells),
		"message":  fmt.Sprintf("%d células foram importadas/atualizadas com sucesso!", len(cells)),
	})
}

// importPayload accepts the CSV either as a multipart "file" field or as the
// raw request body.
func importPayload(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
