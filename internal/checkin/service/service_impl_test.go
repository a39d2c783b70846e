package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/checkin/domain"
	"github.com/steeplehq/steeple/internal/checkin/repository"
	"github.com/steeplehq/steeple/internal/churchctx"
	peopledomain "github.com/steeplehq/steeple/internal/people/domain"
	peoplerepository "github.com/steeplehq/steeple/internal/people/repository"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type checkinFixture struct {
	svc      domain.Service
	conn     *gorm.DB
	node     *snowflake.Node
	churchID snowflake.ID
	ctx      context.Context
}

func setupCheckinService(t *testing.T) *checkinFixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&peopledomain.Person{}, &domain.CheckinSession{}, &domain.Checkin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	churchID := node.Generate()

	svc := New(Params{
		DB:         conn,
		Log:        zap.NewNop(),
		GenID:      node,
		Repo:       repository.Provide(),
		PeopleRepo: peoplerepository.Provide(),
	})

	return &checkinFixture{
		svc:      svc,
		conn:     conn,
		node:     node,
		churchID: churchID,
		ctx:      churchctx.WithChurchID(context.Background(), churchID.Int64()),
	}
}

func (f *checkinFixture) addPerson(t *testing.T, firstName string) snowflake.ID {
	t.Helper()
	person := &peopledomain.Person{
		ID:        f.node.Generate(),
		ChurchID:  f.churchID,
		FirstName: firstName,
	}
	if err := f.conn.Create(person).Error; err != nil {
		t.Fatalf("seed person: %v", err)
	}
	return person.ID
}

func (f *checkinFixture) openSession(t *testing.T) string {
	t.Helper()
	session, err := f.svc.OpenSession(f.ctx, "Sunday 9am Nursery", "")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return session.ID
}

func TestCheckInIssuesSecurityCode(t *testing.T) {
	f := setupCheckinService(t)
	sessionID := f.openSession(t)
	personID := f.addPerson(t, "Mia")

	checkin, err := f.svc.CheckIn(f.ctx, sessionID, personID.String())
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if len(checkin.SecurityCode) != 6 {
		t.Fatalf("security code %q, want 6 characters", checkin.SecurityCode)
	}
}

func TestCheckInTwiceIsRejected(t *testing.T) {
	f := setupCheckinService(t)
	sessionID := f.openSession(t)
	personID := f.addPerson(t, "Mia")

	if _, err := f.svc.CheckIn(f.ctx, sessionID, personID.String()); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := f.svc.CheckIn(f.ctx, sessionID, personID.String()); !errors.Is(err, domain.ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestCheckOutRequiresMatchingCode(t *testing.T) {
	f := setupCheckinService(t)
	sessionID := f.openSession(t)
	personID := f.addPerson(t, "Mia")

	checkin, err := f.svc.CheckIn(f.ctx, sessionID, personID.String())
	if err != nil {
		t.Fatalf("check in: %v", err)
	}

	if err := f.svc.CheckOut(f.ctx, sessionID, personID.String(), "XXXXXX"); !errors.Is(err, domain.ErrSecurityCodeWrong) {
		t.Fatalf("expected ErrSecurityCodeWrong, got %v", err)
	}
	if err := f.svc.CheckOut(f.ctx, sessionID, personID.String(), checkin.SecurityCode); err != nil {
		t.Fatalf("check out: %v", err)
	}

	// After release there is nothing active to check out again.
	if err := f.svc.CheckOut(f.ctx, sessionID, personID.String(), checkin.SecurityCode); !errors.Is(err, domain.ErrCheckinNotFound) {
		t.Fatalf("expected ErrCheckinNotFound, got %v", err)
	}
}

func TestCheckInClosedSession(t *testing.T) {
	f := setupCheckinService(t)
	sessionID := f.openSession(t)
	personID := f.addPerson(t, "Mia")

	if err := f.svc.CloseSession(f.ctx, sessionID); err != nil {
		t.Fatalf("close session: %v", err)
	}
	if _, err := f.svc.CheckIn(f.ctx, sessionID, personID.String()); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestCheckInUnknownPerson(t *testing.T) {
	f := setupCheckinService(t)
	sessionID := f.openSession(t)

	if _, err := f.svc.CheckIn(f.ctx, sessionID, f.node.Generate().String()); !errors.Is(err, domain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestCheckinScopedToChurch(t *testing.T) {
	f := setupCheckinService(t)
	sessionID := f.openSession(t)
	personID := f.addPerson(t, "Mia")

	otherCtx := churchctx.WithChurchID(context.Background(), f.node.Generate().Int64())
	if _, err := f.svc.CheckIn(otherCtx, sessionID, personID.String()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound across churches, got %v", err)
	}
}
