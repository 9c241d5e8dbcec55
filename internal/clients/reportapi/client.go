// Package reportapi is the HTTP client for the financial report service,
// which serves stock reports, SEBI investor-education content, and the risk
// profiling questionnaire.
package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "jainvest/internal/errors"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed response is kept for logs.
const maxErrorBody = 512

// Client talks to the report service. Every failure, whether transport,
// non-2xx status, undecodable body, or an explicit success=false, is
// reported as NETWORK_ERROR. Calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL. A nil httpClient gets a traced client
// with a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// ReportRequest asks for a structured report on one symbol.
type ReportRequest struct {
	Symbol    string `json:"symbol"`
	Benchmark string `json:"benchmark,omitempty"`
}

// Report is the structured report. Sections are passed through as-is.
type Report struct {
	Success                  bool           `json:"success"`
	GeneratedAt              string         `json:"generated_at,omitempty"`
	ReportType               string         `json:"report_type,omitempty"`
	AnalysisPeriod           string         `json:"analysis_period,omitempty"`
	StockSymbol              string         `json:"stock_symbol"`
	Benchmark                string         `json:"benchmark"`
	ExecutiveSummary         map[string]any `json:"executive_summary"`
	PerformanceAnalysis      map[string]any `json:"performance_analysis"`
	AdvancedAnalysis         map[string]any `json:"advanced_analysis"`
	InvestmentRecommendation map[string]any `json:"investment_recommendation"`
	EducationalContent       map[string]any `json:"educational_content"`
	TechnicalDetails         map[string]any `json:"technical_details,omitempty"`
	Mock                     bool           `json:"mock,omitempty"`
	Error                    string         `json:"error,omitempty"`
}

// SEBIContentRequest selects investor-education content.
type SEBIContentRequest struct {
	Language string `json:"language"`
	Summary  bool   `json:"summary"`
}

// SEBIContent is the list of content articles in the requested language.
type SEBIContent struct {
	Success bool             `json:"success"`
	Content []map[string]any `json:"content"`
	Error   string           `json:"error,omitempty"`
}

// RiskQuestions is the risk profiling questionnaire.
type RiskQuestions struct {
	Success   bool             `json:"success"`
	Questions []map[string]any `json:"questions"`
	Error     string           `json:"error,omitempty"`
}

// RiskAnswer is the chosen score for one questionnaire item.
type RiskAnswer struct {
	QuestionID int `json:"question_id" binding:"required"`
	Score      int `json:"score"`
}

// RiskProfileRequest submits questionnaire answers.
type RiskProfileRequest struct {
	Answers           []RiskAnswer `json:"answers"`
	Age               int          `json:"age"`
	InvestmentHorizon int          `json:"investment_horizon"`
}

// RiskProfile is the computed profile and suggested allocation.
type RiskProfile struct {
	Success         bool           `json:"success"`
	RiskAssessment  map[string]any `json:"risk_assessment"`
	AssetAllocation map[string]any `json:"asset_allocation"`
	Error           string         `json:"error,omitempty"`
}

// Languages maps language codes to display metadata.
type Languages struct {
	Success   bool           `json:"success"`
	Languages map[string]any `json:"languages"`
	Error     string         `json:"error,omitempty"`
}

// GenerateReport calls POST /generate_report.
func (c *Client) GenerateReport(ctx context.Context, req ReportRequest) (*Report, error) {
	var out Report
	if err := c.do(ctx, http.MethodPost, "/generate_report", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, upstreamFailure(out.Error)
	}
	return &out, nil
}

// SEBIContent calls POST /sebi_content.
func (c *Client) SEBIContent(ctx context.Context, req SEBIContentRequest) (*SEBIContent, error) {
	var out SEBIContent
	if err := c.do(ctx, http.MethodPost, "/sebi_content", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, upstreamFailure(out.Error)
	}
	return &out, nil
}

// RiskQuestions calls GET /risk_questions.
func (c *Client) RiskQuestions(ctx context.Context) (*RiskQuestions, error) {
	var out RiskQuestions
	if err := c.do(ctx, http.MethodGet, "/risk_questions", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, upstreamFailure(out.Error)
	}
	return &out, nil
}

// CalculateRiskProfile calls POST /calculate_risk_profile.
func (c *Client) CalculateRiskProfile(ctx context.Context, req RiskProfileRequest) (*RiskProfile, error) {
	var out RiskProfile
	if err := c.do(ctx, http.MethodPost, "/calculate_risk_profile", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, upstreamFailure(out.Error)
	}
	return &out, nil
}

// SupportedLanguages calls GET /supported_languages.
func (c *Client) SupportedLanguages(ctx context.Context) (*Languages, error) {
	var out Languages
	if err := c.do(ctx, http.MethodGet, "/supported_languages", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, upstreamFailure(out.Error)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrNetwork, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.Wrap(apperrors.ErrNetwork,
			fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrNetwork, fmt.Errorf("%s %s: decoding response: %w", method, path, err))
	}
	return nil
}

func upstreamFailure(msg string) error {
	if msg == "" {
		msg = "report service returned an unsuccessful response"
	}
	return apperrors.WithMessage(apperrors.ErrNetwork, msg)
}
