package services

import (
	"bytes"
	"context"

	"github.com/shopspring/decimal"

	"jainvest/internal/backtest"
	"jainvest/internal/clients/reportapi"
	"jainvest/internal/market"
	"jainvest/internal/models"
	"jainvest/internal/pagination"
)

// UserServicer defines the contract for identity business logic.
type UserServicer interface {
	Signup(ctx context.Context, email, password, name string, role models.Role) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	SeedDemoUsers(ctx context.Context) error
}

// PortfolioServicer defines the contract for the paper-trading ledger.
type PortfolioServicer interface {
	GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error)
	Buy(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error)
	Sell(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error)
	MarkToMarket(ctx context.Context, userID string, lookup market.PriceLookup) (*models.Portfolio, error)
	RefreshAll(ctx context.Context, userIDs []string) (int, error)
	ListTransactions(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	ExportTransactions(ctx context.Context, userID string) (*bytes.Buffer, error)
	Reset(ctx context.Context, userID string) (*models.Portfolio, error)
}

// QuizSubmission is the graded attempt returned to the learner.
type QuizSubmission struct {
	Attempt models.QuizAttempt `json:"attempt"`
	Result  models.QuizResult  `json:"result"`
}

// QuizServicer defines the contract for quizzes and their attempt log.
type QuizServicer interface {
	ListQuizzes() []models.Quiz
	GetQuiz(id string) (*models.Quiz, error)
	SubmitAttempt(ctx context.Context, userID, quizID string, answers []*int) (*QuizSubmission, error)
	ListAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error)
}

// LeaderboardServicer defines the contract for the ranking engine.
type LeaderboardServicer interface {
	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	RecordScore(ctx context.Context, userID string, points int) ([]models.LeaderboardEntry, error)
	Enroll(ctx context.Context, userID, name string) error
}

// BacktestServicer runs strategy simulations.
type BacktestServicer interface {
	Run(ctx context.Context, req backtest.Request) (*backtest.Result, error)
}

// MarketServicer serves market data and accepts pushed quotes.
type MarketServicer interface {
	Snapshot() market.Snapshot
	OHLC(symbol string) []market.Candle
	Quote(symbol string) decimal.Decimal
	Marks() market.PriceLookup
	PushPrices(ctx context.Context, prices []market.PriceResult) (int, error)
}

// ContentInput carries the fields of a new content item.
type ContentInput struct {
	Title       string
	Type        string
	URL         string
	Description string
}

// ContentServicer defines the contract for admin content moderation.
type ContentServicer interface {
	AddContentItem(ctx context.Context, input ContentInput, createdBy string) (*models.ContentItem, error)
	UpdateContentStatus(ctx context.Context, id string, status models.ContentStatus, reviewedBy string) (*models.ContentItem, error)
	ListContentItems(ctx context.Context) ([]models.ContentItem, error)
	GetAuditLog(ctx context.Context) ([]models.AuditEntry, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, action, description, user string)
	List(ctx context.Context) ([]models.AuditEntry, error)
}

// Analysis is a markdown document analysis.
type Analysis struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Mock    bool   `json:"mock"`
}

// AnalysisServicer produces AI analyses of financial documents.
type AnalysisServicer interface {
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// ReportServicer proxies the report service.
type ReportServicer interface {
	GenerateReport(ctx context.Context, symbol, benchmark string) (*reportapi.Report, error)
	SEBIContent(ctx context.Context, language string, summary bool) (*reportapi.SEBIContent, error)
	RiskQuestions(ctx context.Context) (*reportapi.RiskQuestions, error)
	CalculateRiskProfile(ctx context.Context, req reportapi.RiskProfileRequest) (*reportapi.RiskProfile, error)
	SupportedLanguages(ctx context.Context) (*reportapi.Languages, error)
}
