package services

import (
	"context"
	"time"

	"jainvest/internal/logger"
	"jainvest/internal/models"
	"jainvest/internal/store"
	"jainvest/internal/uuid"
)

// auditLogLimit is how many of the most recent entries are kept.
const auditLogLimit = 100

// auditService handles audit log recording.
type auditService struct {
	store store.Store
	locks *store.KeyLock
	now   func() time.Time
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(st store.Store) AuditServicer {
	return &auditService{store: st, locks: store.NewKeyLock(), now: time.Now}
}

// Log records an audit event newest first, trimming the log to the last
// 100 entries. Errors are logged but never propagate to avoid disrupting
// the main operation.
func (s *auditService) Log(ctx context.Context, action, description, user string) {
	entry := models.AuditEntry{
		ID:          uuid.New(),
		Action:      action,
		Description: description,
		User:        user,
		Timestamp:   s.now().UTC(),
	}

	_, err := store.Update(ctx, s.store, s.locks, store.AuditKey,
		func() []models.AuditEntry { return []models.AuditEntry{} },
		func(log *[]models.AuditEntry) error {
			next := append([]models.AuditEntry{entry}, *log...)
			if len(next) > auditLogLimit {
				next = next[:auditLogLimit]
			}
			*log = next
			return nil
		})
	if err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"action", action,
			"user", user,
		)
	}
}

// List returns the audit log, newest first.
func (s *auditService) List(ctx context.Context) ([]models.AuditEntry, error) {
	entries, err := store.Load(ctx, s.store, store.AuditKey, func() []models.AuditEntry { return []models.AuditEntry{} })
	if err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}
