package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jainvest/internal/services"
)

// AnalysisHandler handles AI document analysis.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalyzeRequest carries text extracted from a statement or factsheet.
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Analyze handles a document analysis request.
// @Summary     Analyze document
// @Description Produce a markdown analysis of extracted document text
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AnalyzeRequest true "Document text"
// @Success     200 {object} services.Analysis "Markdown analysis"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /analysis [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}

	analysis, err := h.analysisService.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}
