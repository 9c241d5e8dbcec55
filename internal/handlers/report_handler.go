package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jainvest/internal/clients/reportapi"
	"jainvest/internal/services"
)

// ReportHandler proxies the report service.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReportRequest names the stock and benchmark to report on.
type GenerateReportRequest struct {
	Symbol    string `json:"symbol" binding:"required,symbol"`
	Benchmark string `json:"benchmark" binding:"omitempty,max=30"`
}

// SEBIContentRequest selects the language and detail of SEBI content.
type SEBIContentRequest struct {
	Language string `json:"language" binding:"omitempty,max=10"`
	Summary  bool   `json:"summary"`
}

// GenerateReport handles a stock report request.
// @Summary     Generate stock report
// @Description Comprehensive report for a stock; a mock report is returned when the report service is down
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GenerateReportRequest true "Symbol and benchmark"
// @Success     200 {object} reportapi.Report "Report"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), req.Symbol, req.Benchmark)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SEBIContent handles an investor-education content request.
// @Summary     SEBI content
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SEBIContentRequest true "Language and detail"
// @Success     200 {object} reportapi.SEBIContent "Content"
// @Failure     502 {object} ErrorResponse "Report service unavailable"
// @Router      /sebi-content [post]
func (h *ReportHandler) SEBIContent(c *gin.Context) {
	var req SEBIContentRequest
	if !bindJSON(c, &req) {
		return
	}

	content, err := h.reportService.SEBIContent(c.Request.Context(), req.Language, req.Summary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// SupportedLanguages handles listing SEBI content languages.
// @Summary     SEBI content languages
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reportapi.Languages "Languages"
// @Failure     502 {object} ErrorResponse "Report service unavailable"
// @Router      /sebi-content/languages [get]
func (h *ReportHandler) SupportedLanguages(c *gin.Context) {
	languages, err := h.reportService.SupportedLanguages(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, languages)
}

// RiskQuestions handles retrieving the risk questionnaire.
// @Summary     Risk questionnaire
// @Tags        risk
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reportapi.RiskQuestions "Questions"
// @Failure     502 {object} ErrorResponse "Report service unavailable"
// @Router      /risk/questions [get]
func (h *ReportHandler) RiskQuestions(c *gin.Context) {
	questions, err := h.reportService.RiskQuestions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// RiskProfile handles scoring a completed questionnaire.
// @Summary     Calculate risk profile
// @Tags        risk
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body reportapi.RiskProfileRequest true "Answers"
// @Success     200 {object} reportapi.RiskProfile "Profile and allocation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Report service unavailable"
// @Router      /risk/profile [post]
func (h *ReportHandler) RiskProfile(c *gin.Context) {
	var req reportapi.RiskProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.reportService.CalculateRiskProfile(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
