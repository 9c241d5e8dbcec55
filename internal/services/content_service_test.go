package services

import (
	"context"
	"fmt"
	"testing"

	"jainvest/internal/models"
	"jainvest/internal/store"
	"jainvest/internal/testutil"
)

func newTestContentService() (ContentServicer, AuditServicer) {
	st := store.NewMemory()
	audit := NewAuditService(st)
	return NewContentService(st, audit), audit
}

func TestContentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestContentService()

	item, err := svc.AddContentItem(ctx, ContentInput{Title: " Intro to SIPs ", URL: "https://x.test/sip.pdf"}, "2")
	testutil.AssertNoError(t, err)
	if item.Status != models.ContentPending || item.Type != "pdf" || item.Title != "Intro to SIPs" {
		t.Errorf("unexpected new item %+v", item)
	}

	approved, err := svc.UpdateContentStatus(ctx, item.ID, models.ContentApproved, "3")
	testutil.AssertNoError(t, err)
	if approved.Status != models.ContentApproved || approved.ReviewedBy != "3" || approved.ReviewedAt == nil {
		t.Errorf("unexpected approved item %+v", approved)
	}

	_, err = svc.UpdateContentStatus(ctx, item.ID, models.ContentRejected, "3")
	testutil.AssertAppError(t, err, "INVALID_STATUS_TRANSITION")

	items, err := svc.ListContentItems(ctx)
	testutil.AssertNoError(t, err)
	if len(items) != 1 || items[0].Status != models.ContentApproved {
		t.Errorf("second review must not change the item, got %+v", items)
	}

	log, err := svc.GetAuditLog(ctx)
	testutil.AssertNoError(t, err)
	if len(log) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(log))
	}
	if log[0].Action != "APPROVED" || log[0].Description != "approved content: Intro to SIPs" || log[0].User != "3" {
		t.Errorf("unexpected newest entry %+v", log[0])
	}
	if log[1].Action != "CREATE" || log[1].Description != "Created content: Intro to SIPs" {
		t.Errorf("unexpected oldest entry %+v", log[1])
	}
}

func TestContentService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestContentService()

	_, err := svc.AddContentItem(ctx, ContentInput{Title: "  "}, "2")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.UpdateContentStatus(ctx, "missing", models.ContentApproved, "3")
	testutil.AssertAppError(t, err, "CONTENT_NOT_FOUND")

	item, _ := svc.AddContentItem(ctx, ContentInput{Title: "T", Type: "video"}, "2")
	_, err = svc.UpdateContentStatus(ctx, item.ID, models.ContentPending, "3")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestAuditService_Cap(t *testing.T) {
	ctx := context.Background()
	audit := NewAuditService(store.NewMemory())

	for i := 0; i < auditLogLimit+5; i++ {
		audit.Log(ctx, "CREATE", fmt.Sprintf("entry %d", i), "3")
	}

	entries, err := audit.List(ctx)
	testutil.AssertNoError(t, err)
	if len(entries) != auditLogLimit {
		t.Fatalf("expected %d entries, got %d", auditLogLimit, len(entries))
	}
	if entries[0].Description != "entry 104" || entries[len(entries)-1].Description != "entry 5" {
		t.Errorf("expected newest 100 entries, got %s .. %s", entries[0].Description, entries[len(entries)-1].Description)
	}
}
