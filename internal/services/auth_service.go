package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"livestock-service/internal/config"
	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/go-resty/resty/v2"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues sessions for the two sign-in paths: staff accounts with
// email/password, and farmers through LINE Login. LINE token validation is
// fully delegated to LINE's verify endpoint.
type AuthService struct {
	staffRepo      repository.IStaffRepository
	jwtService     *JWTService
	sessionService *SessionService
	lineClient     *resty.Client
	lineCfg        config.LineConfig
}

func NewAuthService(
	staffRepo repository.IStaffRepository,
	jwtService *JWTService,
	sessionService *SessionService,
	lineCfg config.LineConfig,
) *AuthService {
	lineClient := resty.New()
	lineClient.SetTimeout(10 * time.Second)

	return &AuthService{
		staffRepo:      staffRepo,
		jwtService:     jwtService,
		sessionService: sessionService,
		lineClient:     lineClient,
		lineCfg:        lineCfg,
	}
}

func (s *AuthService) RegisterStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.StaffUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

func (s *AuthService) StaffLogin(ctx context.Context, req *models.StaffLoginRequest) (*models.LoginResponse, error) {
	staff, err := s.staffRepo.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, staff.ID.String(), emailOrEmpty(staff.Email))
}

type lineVerifyResponse struct {
	ClientID  string `json:"client_id"`
	ExpiresIn int64  `json:"expires_in"`
}

type lineProfileResponse struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// LineLogin verifies the LINE access token against LINE's verify endpoint,
// resolves the LINE user id, and issues a first-party session for it.
func (s *AuthService) LineLogin(ctx context.Context, req *models.LineLoginRequest) (*models.LoginResponse, error) {
	if req.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}

	var verify lineVerifyResponse
	resp, err := s.lineClient.R().
		SetContext(ctx).
		SetQueryParam("access_token", req.AccessToken).
		SetResult(&verify).
		Get(s.lineCfg.VerifyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to verify LINE token: %w", err)
	}
	if resp.IsError() || verify.ExpiresIn <= 0 {
		slog.Warn("LINE token verification rejected", "status", resp.StatusCode())
		return nil, ErrInvalidCredentials
	}

	var profile lineProfileResponse
	resp, err = s.lineClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+req.AccessToken).
		SetResult(&profile).
		Get(s.lineCfg.ProfileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch LINE profile: %w", err)
	}
	if resp.IsError() || profile.UserID == "" {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, "line:"+profile.UserID, "")
}

func (s *AuthService) Logout(ctx context.Context, userID, token string) error {
	return s.sessionService.RevokeByToken(ctx, userID, token)
}

func (s *AuthService) issueSession(ctx context.Context, userID, email string) (*models.LoginResponse, error) {
	token, err := s.jwtService.GenerateNewToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	session, err := s.sessionService.CreateSession(ctx, userID, token, nil, nil)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:     token,
		UserID:    userID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func emailOrEmpty(email *string) string {
	if email == nil {
		return ""
	}
	return *email
}
