package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"livestock-service/internal/models"
	"livestock-service/internal/repository"
	"livestock-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memSessionRepo is an in-memory stand-in for the Redis session store.
type memSessionRepo struct {
	sessions map[string][]*models.UserSession // keyed by user id
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string][]*models.UserSession)}
}

func (m *memSessionRepo) CreateSession(ctx context.Context, session *models.UserSession) error {
	m.sessions[session.UserID] = append(m.sessions[session.UserID], session)
	return nil
}

func (m *memSessionRepo) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	for _, sessions := range m.sessions {
		for _, s := range sessions {
			if s.ID == sessionID {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("session not found")
}

func (m *memSessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	for userID, sessions := range m.sessions {
		for i, s := range sessions {
			if s.ID == sessionID {
				m.sessions[userID] = append(sessions[:i], sessions[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (m *memSessionRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	delete(m.sessions, userID)
	return nil
}

func (m *memSessionRepo) GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error) {
	return m.sessions[userID], nil
}

// stubAnimalService returns canned responses per method.
type stubAnimalService struct {
	listResult *models.AnimalListResult
	listErr    error
	getAnimal  *models.Animal
	getErr     error
	created    *models.Animal
	createErr  error
	updated    *models.Animal
	updateErr  error
}

func (s *stubAnimalService) List(ctx context.Context, userID string, query services.AnimalListQuery) (*models.AnimalListResult, error) {
	return s.listResult, s.listErr
}

func (s *stubAnimalService) Get(ctx context.Context, userID string, animalID uuid.UUID) (*models.Animal, error) {
	return s.getAnimal, s.getErr
}

func (s *stubAnimalService) Create(ctx context.Context, userID string, req *models.CreateAnimalRequest) (*models.Animal, error) {
	return s.created, s.createErr
}

func (s *stubAnimalService) Update(ctx context.Context, userID string, animalID uuid.UUID, req *models.UpdateAnimalRequest) (*models.Animal, error) {
	return s.updated, s.updateErr
}

func (s *stubAnimalService) AttachPhoto(ctx context.Context, userID string, animalID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return "", nil
}

func newAuthedRouter(t *testing.T, animalService services.IAnimalService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := services.NewJWTService("test-secret")
	sessionService := services.NewSessionService(newMemSessionRepo())

	token, err := jwtService.GenerateNewToken("user-1", "")
	assert.NoError(t, err)
	_, err = sessionService.CreateSession(context.Background(), "user-1", token, nil, nil)
	assert.NoError(t, err)

	auth := NewAuthMiddleware(jwtService, sessionService)
	handler := NewAnimalHandler(animalService, nil, auth)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, token
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnimalRoutes_RejectMissingToken(t *testing.T) {
	router, _ := newAuthedRouter(t, &stubAnimalService{})

	w := doJSON(router, http.MethodGet, "/api/animals", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAnimalRoutes_RejectForgedToken(t *testing.T) {
	router, _ := newAuthedRouter(t, &stubAnimalService{})

	forged := services.NewJWTService("other-secret")
	token, err := forged.GenerateNewToken("user-1", "")
	assert.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/animals", token, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnimalRoutes_RejectTokenWithoutSession(t *testing.T) {
	router, _ := newAuthedRouter(t, &stubAnimalService{})

	// Valid signature, but never attached to a session.
	orphan, err := services.NewJWTService("test-secret").GenerateNewToken("user-2", "")
	assert.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/animals", orphan, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListAnimals_ReturnsPageShape(t *testing.T) {
	cursor := "next-token"
	stub := &stubAnimalService{
		listResult: &models.AnimalListResult{
			Animals: []models.AnimalWithNotifications{
				{Animal: models.Animal{ID: uuid.New(), TagID: "TH-001"}, NotificationCount: 2},
			},
			NextCursor:             &cursor,
			HasMore:                true,
			PendingActivitiesCount: 5,
		},
	}
	router, token := newAuthedRouter(t, stub)

	w := doJSON(router, http.MethodGet, "/api/animals", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "animals")
	assert.Contains(t, body, "nextCursor")
	assert.Contains(t, body, "hasMore")
	assert.Contains(t, body, "pendingActivitiesCount")
	assert.NotContains(t, body, "success", "list payload is not wrapped in the envelope")
	assert.Contains(t, w.Body.String(), `"notificationCount":2`)
}

func TestGetAnimal_NotFound(t *testing.T) {
	router, token := newAuthedRouter(t, &stubAnimalService{getErr: services.ErrAnimalNotFound})

	w := doJSON(router, http.MethodGet, "/api/animals/"+uuid.NewString(), token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ANIMAL_NOT_FOUND")
}

func TestGetAnimal_Forbidden(t *testing.T) {
	router, token := newAuthedRouter(t, &stubAnimalService{getErr: services.ErrForbidden})

	w := doJSON(router, http.MethodGet, "/api/animals/"+uuid.NewString(), token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestGetAnimal_MalformedID(t *testing.T) {
	router, token := newAuthedRouter(t, &stubAnimalService{})

	w := doJSON(router, http.MethodGet, "/api/animals/not-a-uuid", token, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAnimal_ValidationFailure(t *testing.T) {
	router, token := newAuthedRouter(t, &stubAnimalService{})

	w := doJSON(router, http.MethodPost, "/api/animals", token, map[string]any{
		"farmId":   uuid.NewString(),
		"tagId":    "TH-001",
		"type":     "WATER_BUFFALO",
		"weightKg": 0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), "มากกว่า 0")
}

func TestCreateAnimal_DuplicateTag(t *testing.T) {
	router, token := newAuthedRouter(t, &stubAnimalService{createErr: repository.ErrDuplicateTag})

	w := doJSON(router, http.MethodPost, "/api/animals", token, map[string]any{
		"farmId": uuid.NewString(),
		"tagId":  "TH-001",
		"type":   "WATER_BUFFALO",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_TAG")
}

func TestCreateAnimal_Success(t *testing.T) {
	created := &models.Animal{
		ID:     uuid.New(),
		TagID:  "TH-001",
		Type:   models.AnimalWaterBuffalo,
		Gender: models.GenderFemale,
		Status: models.AnimalActive,
	}
	router, token := newAuthedRouter(t, &stubAnimalService{created: created})

	w := doJSON(router, http.MethodPost, "/api/animals", token, map[string]any{
		"farmId": uuid.NewString(),
		"tagId":  "TH-001",
		"type":   "WATER_BUFFALO",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"FEMALE"`)
}

func TestUpdateAnimal_IgnoresImmutableFields(t *testing.T) {
	updated := &models.Animal{ID: uuid.New(), TagID: "TH-001"}
	router, token := newAuthedRouter(t, &stubAnimalService{updated: updated})

	// tagId and status are not editable; the decoder drops them silently.
	w := doJSON(router, http.MethodPut, "/api/animals/"+updated.ID.String(), token, map[string]any{
		"name":   "เจ้าทุย",
		"tagId":  "HACKED",
		"status": "DECEASED",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}
