package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/artofday/internal/adapters/http/dto"
	"github.com/jsamuelsen/artofday/internal/adapters/http/middleware"
	"github.com/jsamuelsen/artofday/internal/app"
	"github.com/jsamuelsen/artofday/internal/platform/config"
)

// SelectionHandler serves the viewer's explore/details state.
type SelectionHandler struct {
	service *app.SelectionService
	auth    *config.AuthConfig
}

// NewSelectionHandler creates a handler. auth names the subject header.
func NewSelectionHandler(service *app.SelectionService, auth *config.AuthConfig) *SelectionHandler {
	return &SelectionHandler{service: service, auth: auth}
}

// GetSelection handles GET /api/v1/selection.
func (h *SelectionHandler) GetSelection(c *gin.Context) {
	sel, err := h.service.Current(c.Request.Context(), middleware.Viewer(c, h.auth))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSelectionResponse(sel))
}

// OpenDetails handles PUT /api/v1/selection.
func (h *SelectionHandler) OpenDetails(c *gin.Context) {
	var req dto.SelectionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	sel, err := h.service.Open(c.Request.Context(), middleware.Viewer(c, h.auth), req.ArtworkID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSelectionResponse(sel))
}

// CloseDetails handles DELETE /api/v1/selection.
func (h *SelectionHandler) CloseDetails(c *gin.Context) {
	sel, err := h.service.Close(c.Request.Context(), middleware.Viewer(c, h.auth))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSelectionResponse(sel))
}

// RegisterSelectionRoutes registers /selection behind guards.
func (h *SelectionHandler) RegisterSelectionRoutes(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	sel := rg.Group("/selection", guards...)
	sel.GET("", h.GetSelection)
	sel.PUT("", h.OpenDetails)
	sel.DELETE("", h.CloseDetails)
}
