package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetfuel/internal/domain/entity"
)

type SummaryReader interface {
	ListSummaries(ctx context.Context, site, day string) ([]entity.GroupSummary, error)
	GetSummary(ctx context.Context, key entity.GroupKey) (*entity.GroupSummary, error)
}

// ReportHandler is the read-only fleet reporting surface over persisted
// summaries. It never touches the pipeline.
type ReportHandler struct {
	Summaries SummaryReader
}

func NewReportHandler(s SummaryReader) *ReportHandler {
	return &ReportHandler{Summaries: s}
}

func (h *ReportHandler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/v1")
	v1.GET("/summaries/:site/:day", h.ListSummaries)
	v1.GET("/summaries/:site/:day/:unit", h.GetSummary)
}

func (h *ReportHandler) ListSummaries(c *gin.Context) {
	site := c.Param("site")
	day := c.Param("day")

	summaries, err := h.Summaries.ListSummaries(c.Request.Context(), site, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"site": site, "day": day, "summaries": summaries})
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	key := entity.GroupKey{
		Site:   c.Param("site"),
		Day:    c.Param("day"),
		UnitID: c.Param("unit"),
	}

	summary, err := h.Summaries.GetSummary(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "summary not found"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
