package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jainvest/internal/backtest"
	"jainvest/internal/clients/reportapi"
	"jainvest/internal/config"
	"jainvest/internal/market"
	"jainvest/internal/middleware"
	"jainvest/internal/models"
	"jainvest/internal/pagination"
	"jainvest/internal/services"
	"jainvest/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	signupFn      func(email, password, name string, role models.Role) (*models.User, error)
	loginFn       func(email, password string) (*models.User, error)
	getUserByIDFn func(id string) (*models.User, error)
}

func (m *mockUserService) Signup(_ context.Context, email, password, name string, role models.Role) (*models.User, error) {
	if m.signupFn != nil {
		return m.signupFn(email, password, name, role)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Login(_ context.Context, email, password string) (*models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListUserIDs(context.Context) ([]string, error) { return nil, nil }

func (m *mockUserService) SeedDemoUsers(context.Context) error { return nil }

type mockPortfolioService struct {
	getPortfolioFn       func(userID string) (*models.Portfolio, error)
	buyFn                func(userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error)
	sellFn               func(userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error)
	markToMarketFn       func(userID string, lookup market.PriceLookup) (*models.Portfolio, error)
	listTransactionsFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	exportTransactionsFn func(userID string) (*bytes.Buffer, error)
	resetFn              func(userID string) (*models.Portfolio, error)
}

func newPortfolio() *models.Portfolio {
	p := models.NewPortfolio()
	return &p
}

func (m *mockPortfolioService) GetPortfolio(_ context.Context, userID string) (*models.Portfolio, error) {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn(userID)
	}
	return newPortfolio(), nil
}

func (m *mockPortfolioService) Buy(_ context.Context, userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error) {
	if m.buyFn != nil {
		return m.buyFn(userID, symbol, quantity, price)
	}
	return newPortfolio(), nil
}

func (m *mockPortfolioService) Sell(_ context.Context, userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error) {
	if m.sellFn != nil {
		return m.sellFn(userID, symbol, quantity, price)
	}
	return newPortfolio(), nil
}

func (m *mockPortfolioService) MarkToMarket(_ context.Context, userID string, lookup market.PriceLookup) (*models.Portfolio, error) {
	if m.markToMarketFn != nil {
		return m.markToMarketFn(userID, lookup)
	}
	return newPortfolio(), nil
}

func (m *mockPortfolioService) RefreshAll(context.Context, []string) (int, error) { return 0, nil }

func (m *mockPortfolioService) ListTransactions(_ context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockPortfolioService) ExportTransactions(_ context.Context, userID string) (*bytes.Buffer, error) {
	if m.exportTransactionsFn != nil {
		return m.exportTransactionsFn(userID)
	}
	return bytes.NewBufferString("xlsx"), nil
}

func (m *mockPortfolioService) Reset(_ context.Context, userID string) (*models.Portfolio, error) {
	if m.resetFn != nil {
		return m.resetFn(userID)
	}
	return newPortfolio(), nil
}

type mockMarketService struct {
	quoteFn      func(symbol string) decimal.Decimal
	pushPricesFn func(prices []market.PriceResult) (int, error)
}

func (m *mockMarketService) Snapshot() market.Snapshot { return market.NewSnapshot(time.Now()) }

func (m *mockMarketService) OHLC(string) []market.Candle {
	return []market.Candle{{Date: "2024-01-01", Open: 1, High: 2, Low: 1, Close: 2, Volume: 10}}
}

func (m *mockMarketService) Quote(symbol string) decimal.Decimal {
	if m.quoteFn != nil {
		return m.quoteFn(symbol)
	}
	return decimal.NewFromInt(1000)
}

func (m *mockMarketService) Marks() market.PriceLookup {
	return market.PriceFunc(func(string) decimal.Decimal { return decimal.NewFromInt(1000) })
}

func (m *mockMarketService) PushPrices(_ context.Context, prices []market.PriceResult) (int, error) {
	if m.pushPricesFn != nil {
		return m.pushPricesFn(prices)
	}
	return len(prices), nil
}

type mockQuizService struct {
	getQuizFn       func(id string) (*models.Quiz, error)
	submitAttemptFn func(userID, quizID string, answers []*int) (*services.QuizSubmission, error)
	listAttemptsFn  func(userID string) ([]models.QuizAttempt, error)
}

func (m *mockQuizService) ListQuizzes() []models.Quiz {
	return []models.Quiz{{ID: "basic-investing", Title: "Basic Investing"}}
}

func (m *mockQuizService) GetQuiz(id string) (*models.Quiz, error) {
	if m.getQuizFn != nil {
		return m.getQuizFn(id)
	}
	return &models.Quiz{ID: id}, nil
}

func (m *mockQuizService) SubmitAttempt(_ context.Context, userID, quizID string, answers []*int) (*services.QuizSubmission, error) {
	if m.submitAttemptFn != nil {
		return m.submitAttemptFn(userID, quizID, answers)
	}
	return &services.QuizSubmission{}, nil
}

func (m *mockQuizService) ListAttempts(_ context.Context, userID string) ([]models.QuizAttempt, error) {
	if m.listAttemptsFn != nil {
		return m.listAttemptsFn(userID)
	}
	return []models.QuizAttempt{}, nil
}

type mockLeaderboardService struct {
	getLeaderboardFn func() ([]models.LeaderboardEntry, error)
}

func (m *mockLeaderboardService) GetLeaderboard(context.Context) ([]models.LeaderboardEntry, error) {
	if m.getLeaderboardFn != nil {
		return m.getLeaderboardFn()
	}
	return []models.LeaderboardEntry{}, nil
}

func (m *mockLeaderboardService) RecordScore(context.Context, string, int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (m *mockLeaderboardService) Enroll(context.Context, string, string) error { return nil }

type mockBacktestService struct {
	runFn func(req backtest.Request) (*backtest.Result, error)
}

func (m *mockBacktestService) Run(_ context.Context, req backtest.Request) (*backtest.Result, error) {
	if m.runFn != nil {
		return m.runFn(req)
	}
	return &backtest.Result{Symbol: req.Symbol}, nil
}

type mockAnalysisService struct {
	analyzeFn func(text string) (*services.Analysis, error)
}

func (m *mockAnalysisService) Analyze(_ context.Context, text string) (*services.Analysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(text)
	}
	return &services.Analysis{Content: "# ok", Source: "gemini"}, nil
}

type mockReportService struct {
	generateReportFn func(symbol, benchmark string) (*reportapi.Report, error)
	sebiContentFn    func(language string, summary bool) (*reportapi.SEBIContent, error)
	riskQuestionsFn  func() (*reportapi.RiskQuestions, error)
	riskProfileFn    func(req reportapi.RiskProfileRequest) (*reportapi.RiskProfile, error)
}

func (m *mockReportService) GenerateReport(_ context.Context, symbol, benchmark string) (*reportapi.Report, error) {
	if m.generateReportFn != nil {
		return m.generateReportFn(symbol, benchmark)
	}
	return &reportapi.Report{Success: true, StockSymbol: symbol}, nil
}

func (m *mockReportService) SEBIContent(_ context.Context, language string, summary bool) (*reportapi.SEBIContent, error) {
	if m.sebiContentFn != nil {
		return m.sebiContentFn(language, summary)
	}
	return &reportapi.SEBIContent{Success: true}, nil
}

func (m *mockReportService) RiskQuestions(context.Context) (*reportapi.RiskQuestions, error) {
	if m.riskQuestionsFn != nil {
		return m.riskQuestionsFn()
	}
	return &reportapi.RiskQuestions{Success: true}, nil
}

func (m *mockReportService) CalculateRiskProfile(_ context.Context, req reportapi.RiskProfileRequest) (*reportapi.RiskProfile, error) {
	if m.riskProfileFn != nil {
		return m.riskProfileFn(req)
	}
	return &reportapi.RiskProfile{Success: true}, nil
}

func (m *mockReportService) SupportedLanguages(context.Context) (*reportapi.Languages, error) {
	return &reportapi.Languages{Success: true, Languages: map[string]any{"en": "English"}}, nil
}

type mockContentService struct {
	addContentItemFn      func(input services.ContentInput, createdBy string) (*models.ContentItem, error)
	updateContentStatusFn func(id string, status models.ContentStatus, reviewedBy string) (*models.ContentItem, error)
}

func (m *mockContentService) AddContentItem(_ context.Context, input services.ContentInput, createdBy string) (*models.ContentItem, error) {
	if m.addContentItemFn != nil {
		return m.addContentItemFn(input, createdBy)
	}
	return &models.ContentItem{Title: input.Title, Status: models.ContentPending}, nil
}

func (m *mockContentService) UpdateContentStatus(_ context.Context, id string, status models.ContentStatus, reviewedBy string) (*models.ContentItem, error) {
	if m.updateContentStatusFn != nil {
		return m.updateContentStatusFn(id, status, reviewedBy)
	}
	return &models.ContentItem{ID: id, Status: status}, nil
}

func (m *mockContentService) ListContentItems(context.Context) ([]models.ContentItem, error) {
	return []models.ContentItem{}, nil
}

func (m *mockContentService) GetAuditLog(context.Context) ([]models.AuditEntry, error) {
	return []models.AuditEntry{{Action: "CREATE"}}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	config.Set(&config.Config{JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
