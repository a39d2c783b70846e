package signup

import (
	"context"
	"strings"

	authdomain "github.com/steeplehq/steeple/internal/auth/domain"
	churchdomain "github.com/steeplehq/steeple/internal/church/domain"
	"github.com/steeplehq/steeple/internal/signup/domain"
	"github.com/bwmarrin/snowflake"
)

type service struct {
	authsvc     authdomain.Service
	churchsvc   churchdomain.Service
	provisioner domain.Provisioner
}

const defaultTimezoneName = "America/Chicago"

func NewService(authsvc authdomain.Service, churchsvc churchdomain.Service, provisioner domain.Provisioner) domain.Service {
	return &service{
		authsvc:     authsvc,
		churchsvc:   churchsvc,
		provisioner: provisioner,
	}
}

func (s *service) Signup(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidRequest
	}

	churchName := strings.TrimSpace(req.ChurchName)
	if churchName == "" {
		return nil, domain.ErrInvalidRequest
	}

	user, err := s.authsvc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	church, err := s.churchsvc.Create(ctx, user.ID, churchdomain.CreateChurchRequest{
		Name:         churchName,
		TimezoneName: defaultTimezoneName,
	})
	if err != nil {
		return nil, err
	}

	churchID, err := snowflake.ParseString(church.ID)
	if err != nil {
		return nil, err
	}
	if err := s.provisioner.Provision(ctx, churchID); err != nil {
		return nil, err
	}

	session, err := s.authsvc.Login(ctx, authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: req.UserAgent,
		IPAddress: req.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Result{
		Session:   session.Session,
		RawToken:  session.RawToken,
		ExpiresAt: session.ExpiresAt,
		ChurchID:  church.ID,
		UserID:    user.ID.String(),
	}, nil
}
