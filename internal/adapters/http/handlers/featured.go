package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/artofday/internal/adapters/http/dto"
	"github.com/jsamuelsen/artofday/internal/app"
	"github.com/jsamuelsen/artofday/internal/domain"
)

// defaultHistoryDays is used when GET /featured/history has no days query.
const defaultHistoryDays = 7

// FeaturedHandler serves the artwork of the day.
type FeaturedHandler struct {
	service       *app.FeaturedService
	defaultHeight float64
}

// NewFeaturedHandler creates a handler. defaultHeight is reported to clients
// for artworks whose proportions are unknown.
func NewFeaturedHandler(service *app.FeaturedService, defaultHeight float64) *FeaturedHandler {
	return &FeaturedHandler{service: service, defaultHeight: defaultHeight}
}

// GetFeatured handles GET /api/v1/featured.
//
// @Summary Today's featured artwork
// @Param viewport_width query number false "Display width in points"
// @Param wait query bool false "Block until resolved (default true)"
// @Success 200 {object} dto.ArtworkResponse
// @Success 202 {object} dto.LoadingResponse
// @Failure 400,503 {object} dto.ErrorResponse
// @Router /api/v1/featured [get]
func (h *FeaturedHandler) GetFeatured(c *gin.Context) {
	var q dto.FeaturedQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	art, state, err := h.service.Today(c.Request.Context(), q.Width(), q.ShouldWait())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if state == domain.StateLoading {
		c.JSON(http.StatusAccepted, dto.LoadingResponse{
			State: string(state),
			Day:   h.service.CurrentDay().String(),
		})

		return
	}

	c.JSON(http.StatusOK, dto.NewArtworkResponse(art, h.defaultHeight))
}

// GetState handles GET /api/v1/featured/state.
func (h *FeaturedHandler) GetState(c *gin.Context) {
	day, state, err := h.service.State(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StateResponse{
		Day:   day.String(),
		Seed:  day.Seed(),
		State: string(state),
	})
}

// GetHistory handles GET /api/v1/featured/history.
func (h *FeaturedHandler) GetHistory(c *gin.Context) {
	var q dto.HistoryQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	days := q.Days
	if days == 0 {
		days = defaultHistoryDays
	}

	width := 0.0
	if q.ViewportWidth != nil {
		width = *q.ViewportWidth
	}

	arts, err := h.service.History(c.Request.Context(), days, width)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := dto.HistoryResponse{Items: make([]dto.ArtworkResponse, 0, len(arts))}
	for _, a := range arts {
		resp.Items = append(resp.Items, dto.NewArtworkResponse(a, h.defaultHeight))
	}

	resp.Count = len(resp.Items)

	c.JSON(http.StatusOK, resp)
}

// GetDay handles GET /api/v1/featured/:day.
func (h *FeaturedHandler) GetDay(c *gin.Context) {
	var uri dto.DayURI
	if err := dto.BindURIAndValidate(c, &uri); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	var q dto.FeaturedQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	day, err := domain.ParseDay(uri.Day)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	art, err := h.service.ForDay(c.Request.Context(), day, q.Width())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewArtworkResponse(art, h.defaultHeight))
}

// Warm handles POST /api/v1/featured/warm. Resolution continues in the
// background after the response.
func (h *FeaturedHandler) Warm(c *gin.Context) {
	var q dto.WarmQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	days := max(q.Days, 1)

	if err := h.service.Warm(c.Request.Context(), days); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.WarmResponse{Days: days})
}

// RegisterFeaturedRoutes registers the read routes under /featured.
// admin guards the warm route.
func (h *FeaturedHandler) RegisterFeaturedRoutes(rg *gin.RouterGroup, admin ...gin.HandlerFunc) {
	featured := rg.Group("/featured")
	featured.GET("", h.GetFeatured)
	featured.GET("/state", h.GetState)
	featured.GET("/history", h.GetHistory)
	featured.GET("/:day", h.GetDay)
	featured.POST("/warm", append(admin, h.Warm)...)
}
