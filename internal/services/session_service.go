package services

import (
	"context"
	"fmt"
	"time"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"

	"github.com/google/uuid"
)

// sessionLifetime mirrors the Redis TTL applied by the session repository.
const sessionLifetime = 7 * 24 * time.Hour

// SessionService provides business logic for session management
type SessionService struct {
	sessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, userID, tokenHash string, deviceInfo, ipAddress *string) (*models.UserSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash cannot be empty")
	}

	now := time.Now()
	session := &models.UserSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		TokenHash:  tokenHash,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		ExpiresAt:  now.Add(sessionLifetime),
		CreatedAt:  now,
		IsActive:   true,
	}

	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (s *SessionService) GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	return s.sessionRepo.GetUserSessions(ctx, userID)
}

// RevokeByToken deletes the session matching the presented token, if any.
func (s *SessionService) RevokeByToken(ctx context.Context, userID, tokenHash string) error {
	sessions, err := s.sessionRepo.GetUserSessions(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user sessions: %w", err)
	}

	for _, session := range sessions {
		if session.TokenHash == tokenHash {
			return s.sessionRepo.DeleteSession(ctx, session.ID)
		}
	}

	return nil
}

func (s *SessionService) RevokeUserSessions(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteUserSessions(ctx, userID)
}
