package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/churchctx"
	"github.com/steeplehq/steeple/internal/event/domain"
	"github.com/steeplehq/steeple/internal/event/repository"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/zap"
)

type eventFixture struct {
	svc  domain.Service
	node *snowflake.Node
	ctx  context.Context
}

func setupEventService(t *testing.T) *eventFixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Event{}); err != nil {
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

	return &eventFixture{
		svc:  svc,
		node: node,
		ctx:  churchctx.WithChurchID(context.Background(), node.Generate().Int64()),
	}
}

func (f *eventFixture) addEvent(t *testing.T, title string, startsAt time.Time) *domain.EventResponse {
	t.Helper()
	e, err := f.svc.Create(f.ctx, domain.EventRequest{Title: title, StartsAt: startsAt})
	if err != nil {
		t.Fatalf("create event %q: %v", title, err)
	}
	return e
}

func TestCreateEventValidation(t *testing.T) {
	f := setupEventService(t)
	start := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	if _, err := f.svc.Create(f.ctx, domain.EventRequest{StartsAt: start}); !errors.Is(err, domain.ErrInvalidTitle) {
		t.Fatalf("missing title: got %v", err)
	}
	if _, err := f.svc.Create(f.ctx, domain.EventRequest{Title: "Service"}); !errors.Is(err, domain.ErrInvalidTime) {
		t.Fatalf("zero start: got %v", err)
	}
	if _, err := f.svc.Create(f.ctx, domain.EventRequest{Title: "Service", StartsAt: start, EndsAt: &before}); !errors.Is(err, domain.ErrInvalidTime) {
		t.Fatalf("end before start: got %v", err)
	}
}

func TestListFiltersByRange(t *testing.T) {
	f := setupEventService(t)

	f.addEvent(t, "August Picnic", time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))
	sept := f.addEvent(t, "September Service", time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC))
	f.addEvent(t, "October Retreat", time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC))

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	events, err := f.svc.List(f.ctx, &from, &to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].ID != sept.ID {
		t.Fatalf("range filter returned %+v", events)
	}

	all, err := f.svc.List(f.ctx, nil, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list returned %d events, want 3", len(all))
	}
}

func TestExportICSRespectsRange(t *testing.T) {
	f := setupEventService(t)

	f.addEvent(t, "August Picnic", time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))
	f.addEvent(t, "September Service", time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC))

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	data, err := f.svc.ExportICS(f.ctx, &from, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Fatalf("bad calendar framing:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:September Service") {
		t.Fatalf("in-range event missing:\n%s", out)
	}
	if strings.Contains(out, "August Picnic") {
		t.Fatalf("out-of-range event exported:\n%s", out)
	}
}

func TestEventsScopedPerChurch(t *testing.T) {
	f := setupEventService(t)

	created := f.addEvent(t, "Members Meeting", time.Date(2026, 9, 6, 19, 0, 0, 0, time.UTC))

	otherCtx := churchctx.WithChurchID(context.Background(), f.node.Generate().Int64())
	if _, err := f.svc.Get(otherCtx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant get: got %v", err)
	}

	events, err := f.svc.List(otherCtx, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("cross-tenant leak: %+v", events)
	}
}
