package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/announcement/domain"
	"github.com/steeplehq/steeple/internal/announcement/repository"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/pkg/db"
	"github.com/steeplehq/steeple/pkg/db/pagination"
	"go.uber.org/zap"
)

type announcementFixture struct {
	svc  domain.Service
	node *snowflake.Node
	ctx  context.Context
}

func setupAnnouncementService(t *testing.T) *announcementFixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Announcement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	return &announcementFixture{
		svc:  svc,
		node: node,
		ctx:  churchctx.WithChurchID(context.Background(), node.Generate().Int64()),
	}
}

func TestPublishLifecycle(t *testing.T) {
	f := setupAnnouncementService(t)

	created, err := f.svc.Create(f.ctx, domain.Request{Title: "Fall Kickoff", Body: "Sunday at 10am."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.StatusDraft {
		t.Fatalf("status = %s, want draft", created.Status)
	}

	drafts, err := f.svc.List(f.ctx, domain.ListRequest{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(drafts.Items) != 0 {
		t.Fatalf("draft visible in published feed: %+v", drafts.Items)
	}

	published, err := f.svc.Publish(f.ctx, created.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != domain.StatusPublished || published.PublishedAt == nil {
		t.Fatalf("publish result = %+v", published)
	}

	if _, err := f.svc.Publish(f.ctx, created.ID); !errors.Is(err, domain.ErrAlreadyPublished) {
		t.Fatalf("expected ErrAlreadyPublished, got %v", err)
	}

	feed, err := f.svc.List(f.ctx, domain.ListRequest{PublishedOnly: true})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(feed.Items) != 1 || feed.Items[0].ID != created.ID {
		t.Fatalf("published feed = %+v", feed.Items)
	}
}

func TestListPaginatesNewestFirst(t *testing.T) {
	f := setupAnnouncementService(t)

	var ids []string
	for i := 0; i < 5; i++ {
		a, err := f.svc.Create(f.ctx, domain.Request{Title: fmt.Sprintf("Update %d", i)})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, a.ID)
	}

	var seen []string
	req := domain.ListRequest{Page: pagination.Pagination{PageSize: 2}}
	for {
		page, err := f.svc.List(f.ctx, req)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, item := range page.Items {
			seen = append(seen, item.ID)
		}
		if !page.PageInfo.HasMore {
			break
		}
		if page.PageInfo.NextPageToken == "" {
			t.Fatal("has_more set without a next page token")
		}
		req.Page.PageToken = page.PageInfo.NextPageToken
	}

	if len(seen) != 5 {
		t.Fatalf("paged through %d items, want 5", len(seen))
	}
	for i, id := range seen {
		// Newest first: creation order reversed.
		if want := ids[len(ids)-1-i]; id != want {
			t.Fatalf("item %d = %s, want %s", i, id, want)
		}
	}
}

func TestListRejectsBadPageToken(t *testing.T) {
	f := setupAnnouncementService(t)

	_, err := f.svc.List(f.ctx, domain.ListRequest{
		Page: pagination.Pagination{PageToken: "not-a-cursor"},
	})
	if !errors.Is(err, domain.ErrInvalidPageToken) {
		t.Fatalf("expected ErrInvalidPageToken, got %v", err)
	}
}

func TestAnnouncementsScopedPerChurch(t *testing.T) {
	f := setupAnnouncementService(t)

	if _, err := f.svc.Create(f.ctx, domain.Request{Title: "Members Meeting"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	otherCtx := churchctx.WithChurchID(context.Background(), f.node.Generate().Int64())
	page, err := f.svc.List(otherCtx, domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("cross-tenant leak: %+v", page.Items)
	}
}
