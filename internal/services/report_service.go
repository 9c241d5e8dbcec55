package services

import (
	"context"
	"strings"
	"time"

	"jainvest/internal/clients/reportapi"
	apperrors "jainvest/internal/errors"
	"jainvest/internal/logger"
)

const defaultBenchmark = "^NSEI"

// reportClient is the subset of the report API the service needs.
type reportClient interface {
	GenerateReport(ctx context.Context, req reportapi.ReportRequest) (*reportapi.Report, error)
	SEBIContent(ctx context.Context, req reportapi.SEBIContentRequest) (*reportapi.SEBIContent, error)
	RiskQuestions(ctx context.Context) (*reportapi.RiskQuestions, error)
	CalculateRiskProfile(ctx context.Context, req reportapi.RiskProfileRequest) (*reportapi.RiskProfile, error)
	SupportedLanguages(ctx context.Context) (*reportapi.Languages, error)
}

// reportService proxies the report service. Report generation degrades to a
// canned report; the other calls surface NETWORK_ERROR.
type reportService struct {
	client reportClient
	now    func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(client reportClient) ReportServicer {
	return &reportService{client: client, now: time.Now}
}

// GenerateReport fetches a stock report, falling back to a mock when the
// report service is unavailable.
func (s *reportService) GenerateReport(ctx context.Context, symbol, benchmark string) (*reportapi.Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if benchmark == "" {
		benchmark = defaultBenchmark
	}

	report, err := s.client.GenerateReport(ctx, reportapi.ReportRequest{Symbol: symbol, Benchmark: benchmark})
	if err != nil {
		logger.Get().Warnw("report service unavailable, serving mock report", "error", err, "symbol", symbol)
		return mockReport(symbol, benchmark, s.now()), nil
	}
	return report, nil
}

// SEBIContent fetches investor-education content in a language.
func (s *reportService) SEBIContent(ctx context.Context, language string, summary bool) (*reportapi.SEBIContent, error) {
	if language == "" {
		language = "en"
	}
	return s.client.SEBIContent(ctx, reportapi.SEBIContentRequest{Language: language, Summary: summary})
}

// RiskQuestions fetches the risk questionnaire.
func (s *reportService) RiskQuestions(ctx context.Context) (*reportapi.RiskQuestions, error) {
	return s.client.RiskQuestions(ctx)
}

// CalculateRiskProfile scores questionnaire answers.
func (s *reportService) CalculateRiskProfile(ctx context.Context, req reportapi.RiskProfileRequest) (*reportapi.RiskProfile, error) {
	if len(req.Answers) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "answers are required")
	}
	return s.client.CalculateRiskProfile(ctx, req)
}

// SupportedLanguages lists the languages SEBI content is available in.
func (s *reportService) SupportedLanguages(ctx context.Context) (*reportapi.Languages, error) {
	return s.client.SupportedLanguages(ctx)
}

func mockReport(symbol, benchmark string, now time.Time) *reportapi.Report {
	return &reportapi.Report{
		Success:        true,
		Mock:           true,
		GeneratedAt:    now.UTC().Format(time.RFC3339),
		ReportType:     "Comprehensive Financial Analysis",
		AnalysisPeriod: "2 Years",
		StockSymbol:    symbol,
		Benchmark:      benchmark,
		ExecutiveSummary: map[string]any{
			"company_name":     symbol,
			"sector":           "Unavailable",
			"currency":         "INR",
			"investment_grade": "Moderate Risk",
			"suitable_for":     "Balanced investors",
			"overall_rating":   "Hold",
		},
		PerformanceAnalysis: map[string]any{
			"returns": map[string]any{
				"cagr": map[string]any{"value": 0.12, "percentage": "12.00%", "interpretation": "Good"},
			},
			"risk_metrics": map[string]any{
				"volatility":       map[string]any{"value": 0.22, "percentage": "22.00%", "risk_level": "Moderate"},
				"sharpe_ratio":     map[string]any{"value": 0.9, "rating": "Acceptable"},
				"beta":             map[string]any{"value": 1.0, "market_sensitivity": "Moves with the market"},
				"maximum_drawdown": map[string]any{"value": -0.18, "percentage": "-18.00%", "severity": "Moderate"},
			},
		},
		AdvancedAnalysis: map[string]any{
			"capm_model": map[string]any{"expected_return_percentage": "11.00%", "risk_free_rate": 0.02},
		},
		InvestmentRecommendation: map[string]any{
			"recommendation": "HOLD",
			"key_insights": []string{
				"Live market data was unavailable, so these figures are illustrative.",
			},
			"action_points": []string{
				"Retry later for a data-backed report.",
				"Review the stock against your own risk profile before investing.",
			},
		},
		EducationalContent: map[string]any{
			"key_concepts": map[string]any{
				"cagr":       "CAGR smooths returns into a single yearly growth rate.",
				"volatility": "Volatility measures how widely returns swing.",
				"drawdown":   "Drawdown is the fall from a peak to a trough.",
			},
		},
	}
}
