package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perenos/yamdb-final/internal/http-api/dto"
	"github.com/perenos/yamdb-final/internal/http-api/middleware"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
	"github.com/perenos/yamdb-final/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, titleID int64, limit, offset int) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, titleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, requester *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, requester, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, requester *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, requester, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, requester *models.User, titleID, reviewID int64) error {
	args := m.Called(ctx, requester, titleID, reviewID)
	return args.Error(0)
}

// setupReviewRouter wires the review routes behind the optional auth
// middleware, the same shape the server uses, so requester resolution is
// exercised end to end.
func setupReviewRouter(reviewService service.ReviewService, authService service.AuthService) *gin.Engine {
	router := setupRouter()
	v1 := router.Group("/api/v1")
	v1.Use(middleware.OptionalAuthMiddleware(authService))
	NewReviewHandler(reviewService).RegisterRoutes(v1)
	return router
}

func TestReviewListEndpoint_Anonymous(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	page := &dto.Paginated[dto.ReviewResponse]{
		Count:   1,
		Results: []dto.ReviewResponse{{ID: 7, Title: "Dune", Author: "reader", Score: 9}},
	}
	mockReviewService.On("List", mock.Anything, int64(1), 20, 0).Return(page, nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles/1/reviews", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.Paginated[dto.ReviewResponse]
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(1), response.Count)
	assert.Equal(t, "reader", response.Results[0].Author)

	mockReviewService.AssertExpectations(t)
}

func TestReviewCreateEndpoint_Authenticated(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	requester := &models.User{ID: "author-id", Username: "reader", Role: models.RoleUser}
	mockAuthService.On("Authenticate", mock.Anything, "good-token").Return(requester, nil)
	mockReviewService.On("Create", mock.Anything, requester, int64(1), mock.AnythingOfType("dto.CreateReviewDTO")).
		Return(&dto.ReviewResponse{ID: 7, Title: "Dune", Author: "reader", Score: 9}, nil)

	body, _ := json.Marshal(map[string]interface{}{"text": "great book", "score": 9})
	req, _ := http.NewRequest("POST", "/api/v1/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.ReviewResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(7), response.ID)
	assert.Equal(t, 9, response.Score)

	mockAuthService.AssertExpectations(t)
	mockReviewService.AssertExpectations(t)
}

func TestReviewCreateEndpoint_AnonymousRejected(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	mockReviewService.On("Create", mock.Anything, (*models.User)(nil), int64(1), mock.AnythingOfType("dto.CreateReviewDTO")).
		Return(nil, service.ErrNotAuthenticated)

	body, _ := json.Marshal(map[string]interface{}{"text": "great book", "score": 9})
	req, _ := http.NewRequest("POST", "/api/v1/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewCreateEndpoint_InvalidToken(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	mockAuthService.On("Authenticate", mock.Anything, "expired-token").Return(nil, service.ErrInvalidToken)

	body, _ := json.Marshal(map[string]interface{}{"text": "great book", "score": 9})
	req, _ := http.NewRequest("POST", "/api/v1/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockReviewService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewCreateEndpoint_Duplicate(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	requester := &models.User{ID: "author-id", Username: "reader", Role: models.RoleUser}
	mockAuthService.On("Authenticate", mock.Anything, "good-token").Return(requester, nil)
	mockReviewService.On("Create", mock.Anything, requester, int64(1), mock.AnythingOfType("dto.CreateReviewDTO")).
		Return(nil, service.ErrReviewExists)

	body, _ := json.Marshal(map[string]interface{}{"text": "again", "score": 5})
	req, _ := http.NewRequest("POST", "/api/v1/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewCreateEndpoint_MissingScore(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	body, _ := json.Marshal(map[string]interface{}{"text": "no score"})
	req, _ := http.NewRequest("POST", "/api/v1/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewCreateEndpoint_ZeroScoreAccepted(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	requester := &models.User{ID: "author-id", Username: "reader", Role: models.RoleUser}
	mockAuthService.On("Authenticate", mock.Anything, "good-token").Return(requester, nil)
	mockReviewService.On("Create", mock.Anything, requester, int64(1), mock.MatchedBy(func(req dto.CreateReviewDTO) bool {
		return req.Score != nil && *req.Score == 0
	})).Return(&dto.ReviewResponse{ID: 8, Score: 0}, nil)

	body, _ := json.Marshal(map[string]interface{}{"text": "awful", "score": 0})
	req, _ := http.NewRequest("POST", "/api/v1/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// a literal 0 must survive the required binding
	assert.Equal(t, http.StatusCreated, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewGetEndpoint_NotFound(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	mockReviewService.On("Get", mock.Anything, int64(1), int64(99)).Return(nil, repository.ErrNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/titles/1/reviews/99", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewGetEndpoint_BadID(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	req, _ := http.NewRequest("GET", "/api/v1/titles/abc/reviews/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewDeleteEndpoint_Forbidden(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	requester := &models.User{ID: "other-id", Username: "stranger", Role: models.RoleUser}
	mockAuthService.On("Authenticate", mock.Anything, "good-token").Return(requester, nil)
	mockReviewService.On("Delete", mock.Anything, requester, int64(1), int64(7)).Return(service.ErrPermissionDenied)

	req, _ := http.NewRequest("DELETE", "/api/v1/titles/1/reviews/7", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewDeleteEndpoint_NoContent(t *testing.T) {
	mockReviewService := new(MockReviewService)
	mockAuthService := new(MockAuthService)
	router := setupReviewRouter(mockReviewService, mockAuthService)

	requester := &models.User{ID: "author-id", Username: "reader", Role: models.RoleUser}
	mockAuthService.On("Authenticate", mock.Anything, "good-token").Return(requester, nil)
	mockReviewService.On("Delete", mock.Anything, requester, int64(1), int64(7)).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/titles/1/reviews/7", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockReviewService.AssertExpectations(t)
}
