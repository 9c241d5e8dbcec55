// Package store defines the key-value persistence capability shared by the
// ledger, quiz log, leaderboard, and admin content services. Implementations
// include GORM (source of truth), Redis (read-through cache), and in-memory
// (for tests and throwaway demos).
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is a namespaced byte-value store. Values are opaque to the store;
// services encode them as JSON.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Namespaces.
const (
	LeaderboardKey  = "leaderboard"
	QuizAttemptsKey = "quiz_attempts"
	ContentKey      = "content_items"
	AuditKey        = "audit_log"
	MarketQuotesKey = "market_quotes"
)

// PortfolioKey is the namespace of one user's ledger.
func PortfolioKey(userID string) string {
	return "portfolio:" + userID
}
