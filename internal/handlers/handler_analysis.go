package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
	"github.com/SscSPs/finance_tracker_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type analysisHandler struct {
	analysisService portssvc.AnalysisSvc
}

func newAnalysisHandler(as portssvc.AnalysisSvc) *analysisHandler {
	return &analysisHandler{analysisService: as}
}

type kpiURI struct {
	KPI string `uri:"kpi" binding:"required,kpi"`
}

func registerAnalysisRoutes(rg *gin.RouterGroup, analysisService portssvc.AnalysisSvc) {
	h := newAnalysisHandler(analysisService)

	analysis := rg.Group("/analysis")
	{
		analysis.GET("", h.listKPIs)
		analysis.GET("/:kpi", h.analyze)
	}
}

// listKPIs godoc
// @Summary List supported KPIs
// @Tags analysis
// @Produce  json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /analysis [get]
func (h *analysisHandler) listKPIs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kpis": h.analysisService.SupportedKPIs()})
}

// analyze godoc
// @Summary Compute a KPI
// @Description Computes SAVINGS_RATE, MONTHLY_AVERAGE_EXPENSE or SPENDING_TREND over the user's transactions dated in [from, to], optionally for one category.
// @Tags analysis
// @Produce  json
// @Param   kpi path string true "KPI type"
// @Param   from query string true "First date (YYYY-MM-DD)"
// @Param   to query string true "Last date (YYYY-MM-DD)"
// @Param   category query string false "Restrict to one category"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} map[string]string "Unknown KPI, invalid dates or no transactions in range"
// @Security BearerAuth
// @Router /analysis/{kpi} [get]
func (h *analysisHandler) analyze(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri kpiURI
	if err := c.ShouldBindUri(&uri); err != nil {
		logger.Warn("Invalid KPI in path", slog.String("kpi", c.Param("kpi")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown KPI: " + c.Param("kpi")})
		return
	}
	var params dto.AnalysisParams
	if !bindQuery(c, &params) {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	kpi, err := domain.ParseKPIType(uri.KPI)
	if err != nil {
		respondWithError(c, err, "compute kpi")
		return
	}
	result, err := h.analysisService.Analyze(c.Request.Context(), userID, kpi, params)
	if err != nil {
		respondWithError(c, err, "compute kpi")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalysisResponse(result))
}
