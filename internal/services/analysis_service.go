package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/logger"
	"jainvest/internal/metrics"
)

// maxDocumentChars caps how much extracted text is sent to the model.
const maxDocumentChars = 100000

const analysisPrompt = `Analyze the following financial document/portfolio and provide:
1. **Key Holdings Summary**: List main investments and allocations
2. **Risk Assessment**: Identify risk factors and concentration risks
3. **Diversification Analysis**: Evaluate asset class and sector distribution
4. **Performance Review**: Assess returns and benchmarking
5. **Cost Analysis**: Review fees, charges, and expense ratios
6. **Pros & Cons**: List strengths and weaknesses
7. **Action Checklist**: Provide 3-5 specific recommendations

Keep the analysis professional, educational, and suitable for Indian retail investors.

Document text:
%s`

// MockAnalysis is served when no model is configured or the model call fails.
const MockAnalysis = `# Portfolio Analysis Report

## 1. Key Holdings Summary
- Large Cap Equity: 45% (₹45,000)
- Mid Cap Equity: 25% (₹25,000)
- Debt Funds: 20% (₹20,000)
- Cash/FD: 10% (₹10,000)

## 2. Risk Assessment
**Medium Risk Profile**
- Concentration risk in financial services sector (30%)
- Good mix of equity and debt instruments
- Limited international exposure

## 3. Diversification Analysis
- **Asset Classes**: Well diversified across equity and debt
- **Sectors**: Overweight in financials, underweight in healthcare
- **Market Cap**: Good spread across large and mid-cap

## 4. Performance Review
- 1-year return: 12.5% vs Nifty 50: 11.2%
- 3-year CAGR: 14.8%
- Outperformed benchmark in 7 out of 12 months

## 5. Cost Analysis
- Average expense ratio: 1.2%
- Total annual costs: ₹1,200 on ₹1,00,000 portfolio
- Consider direct plans to reduce costs

## 6. Pros & Cons
**Pros:**
- Good asset allocation for moderate risk appetite
- Consistent outperformance vs benchmark
- Regular SIP discipline maintained

**Cons:**
- High sector concentration in financials
- Limited international exposure
- Higher expense ratios in some funds

## 7. Action Checklist
1. **Rebalance**: Reduce financial sector exposure to 25%
2. **Diversify**: Add healthcare and technology sector funds
3. **Cost Optimization**: Switch to direct plans to save 0.5-1% annually
4. **International Exposure**: Consider adding 5-10% international equity
5. **Review Frequency**: Set quarterly portfolio review schedule

*This is a mock analysis. A model-backed analysis would provide more detailed insights based on the uploaded document.*`

const (
	sourceGemini = "gemini"
	sourceMock   = "mock"
)

// textGenerator turns a prompt into model output.
type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

// analysisService analyzes document text with Gemini, degrading to a mock.
type analysisService struct {
	generator textGenerator
}

// NewAnalysisService creates a new AnalysisServicer. Without an API key, or
// if the client cannot be built, every analysis is the mock.
func NewAnalysisService(ctx context.Context, apiKey, model string) AnalysisServicer {
	if apiKey == "" {
		logger.Get().Info("GEMINI_API_KEY not set, document analysis will use the mock report")
		return &analysisService{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Get().Errorw("failed to create Gemini client, using mock analysis", "error", err)
		return &analysisService{}
	}
	return &analysisService{generator: &geminiGenerator{client: client, model: model}}
}

// Analyze returns a markdown analysis of text. Model failures are logged
// and answered with the mock; they never surface to the caller.
func (s *analysisService) Analyze(ctx context.Context, text string) (*Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "document text is required")
	}
	if len(text) > maxDocumentChars {
		text = strings.ToValidUTF8(text[:maxDocumentChars], "")
	}

	if s.generator != nil {
		out, err := s.generator.Generate(ctx, fmt.Sprintf(analysisPrompt, text))
		if err == nil {
			metrics.AnalysisRequestsTotal.WithLabelValues(sourceGemini).Inc()
			return &Analysis{Content: out, Source: sourceGemini}, nil
		}
		logger.Get().Warnw("Gemini analysis failed, serving mock", "error", err)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues(sourceMock).Inc()
	return &Analysis{Content: MockAnalysis, Source: sourceMock, Mock: true}, nil
}
