package api

import (
	"alcyxob/coach-app/internal/catalog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the static exercise and food lookups.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// SearchExercises godoc
// @Summary Exercise name suggestions
// @Tags Catalog
// @Produce json
// @Param q query string false "Name fragment"
// @Success 200 {array} string
// @Router /catalog/exercises [get]
func (h *CatalogHandler) SearchExercises(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.SearchExercises(c.Query("q")))
}

// SearchFoods godoc
// @Summary Food suggestions with macros per unit
// @Tags Catalog
// @Produce json
// @Param q query string false "Name fragment"
// @Success 200 {array} catalog.Food
// @Router /catalog/foods [get]
func (h *CatalogHandler) SearchFoods(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.SearchFoods(c.Query("q")))
}
