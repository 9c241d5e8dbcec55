package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/models"
	"jainvest/internal/store"
	"jainvest/internal/uuid"
)

const defaultContentType = "pdf"

// contentService moderates learning content submitted by reviewers.
type contentService struct {
	store store.Store
	locks *store.KeyLock
	audit AuditServicer
	now   func() time.Time
}

// NewContentService creates a new ContentServicer.
func NewContentService(st store.Store, audit AuditServicer) ContentServicer {
	return &contentService{store: st, locks: store.NewKeyLock(), audit: audit, now: time.Now}
}

func emptyContent() []models.ContentItem { return []models.ContentItem{} }

// AddContentItem stores a new item as pending review.
func (s *contentService) AddContentItem(ctx context.Context, input ContentInput, createdBy string) (*models.ContentItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	contentType := strings.TrimSpace(input.Type)
	if contentType == "" {
		contentType = defaultContentType
	}

	item := models.ContentItem{
		ID:          uuid.New(),
		Title:       title,
		Type:        contentType,
		URL:         strings.TrimSpace(input.URL),
		Description: input.Description,
		Status:      models.ContentPending,
		CreatedAt:   s.now().UTC(),
		CreatedBy:   createdBy,
	}

	_, err := store.Update(ctx, s.store, s.locks, store.ContentKey, emptyContent,
		func(items *[]models.ContentItem) error {
			*items = append(*items, item)
			return nil
		})
	if err != nil {
		return nil, storeError(err)
	}

	s.audit.Log(ctx, "CREATE", "Created content: "+item.Title, createdBy)
	return &item, nil
}

// UpdateContentStatus approves or rejects a pending item. Reviewed items
// cannot be reviewed again.
func (s *contentService) UpdateContentStatus(ctx context.Context, id string, status models.ContentStatus, reviewedBy string) (*models.ContentItem, error) {
	if status != models.ContentApproved && status != models.ContentRejected {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be approved or rejected")
	}

	var updated models.ContentItem
	_, err := store.Update(ctx, s.store, s.locks, store.ContentKey, emptyContent,
		func(items *[]models.ContentItem) error {
			for i := range *items {
				item := &(*items)[i]
				if item.ID != id {
					continue
				}
				if item.Status != models.ContentPending {
					return apperrors.WithMessage(apperrors.ErrInvalidStatusTransition,
						fmt.Sprintf("Content item is already %s", item.Status))
				}
				at := s.now().UTC()
				item.Status = status
				item.ReviewedBy = reviewedBy
				item.ReviewedAt = &at
				updated = *item
				return nil
			}
			return apperrors.ErrContentNotFound
		})
	if err != nil {
		return nil, storeError(err)
	}

	s.audit.Log(ctx, strings.ToUpper(string(status)), fmt.Sprintf("%s content: %s", status, updated.Title), reviewedBy)
	return &updated, nil
}

// ListContentItems returns every item in submission order.
func (s *contentService) ListContentItems(ctx context.Context) ([]models.ContentItem, error) {
	items, err := store.Load(ctx, s.store, store.ContentKey, emptyContent)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// GetAuditLog returns the moderation audit log, newest first.
func (s *contentService) GetAuditLog(ctx context.Context) ([]models.AuditEntry, error) {
	return s.audit.List(ctx)
}
