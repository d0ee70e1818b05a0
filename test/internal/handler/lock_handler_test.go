package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"seat-lock-service/internal/handler"
	"seat-lock-service/internal/model"
	apperrors "seat-lock-service/pkg/app_errors"
	"seat-lock-service/test/internal/mocks/services"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLockTestRouter(mockService *services.SeatLockServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	lockHandler := handler.NewSeatLockHandler(mockService)
	lockHandler.RegisterRoutes(router)

	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLockSeats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("LockSeats", mock.Anything, mock.Anything).Return(&model.LockSeatsResult{
			Locked:      true,
			SessionID:   "session-x",
			LockedSeats: []model.SeatRef{model.NewSeatRefFromInt(12), model.NewSeatRefFromInt(13)},
			ExpiresIn:   600,
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12, 13},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "session-x", body["session_id"])
		assert.Equal(t, float64(600), body["expires_in"])
		assert.Equal(t, []interface{}{float64(12), float64(13)}, body["locked_seats"])
		mockService.AssertExpectations(t)
	})

	t.Run("Success - StringSeatEchoedVerbatim", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("LockSeats", mock.Anything, mock.Anything).Return(&model.LockSeatsResult{
			Locked:      true,
			SessionID:   "session-x",
			LockedSeats: []model.SeatRef{model.NewSeatRefFromString("seat_456")},
			ExpiresIn:   600,
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []string{"seat_456"},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		// 內部鎖的是 456，但回應原樣返回 "seat_456"
		assert.Equal(t, []interface{}{"seat_456"}, body["locked_seats"])
	})

	t.Run("Failed - ValidationMissingEventID", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"seats": []int{12},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["status"])
		assert.Contains(t, body, "errors")
		// 驗證失敗不碰任何 store
		mockService.AssertNotCalled(t, "LockSeats")
	})

	t.Run("Failed - ValidationEmptySeats", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "LockSeats")
	})

	t.Run("Failed - ValidationDurationOutOfRange", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12},
			"duration": 30,
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "LockSeats")
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "LockSeats")
	})

	t.Run("Conflict - PreCheckUnavailable", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("LockSeats", mock.Anything, mock.Anything).Return(&model.LockSeatsResult{
			SessionID:        "session-y",
			UnavailableSeats: []model.SeatRef{model.NewSeatRefFromInt(12)},
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["status"])
		assert.Equal(t, []interface{}{float64(12)}, body["unavailable_seats"])
		assert.NotContains(t, body, "failed_seats")
	})

	t.Run("Conflict - RaceLost", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("LockSeats", mock.Anything, mock.Anything).Return(&model.LockSeatsResult{
			SessionID:   "session-x",
			FailedSeats: []model.SeatRef{model.NewSeatRefFromInt(13)},
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12, 13},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, []interface{}{float64(13)}, body["failed_seats"])
		assert.NotContains(t, body, "unavailable_seats")
	})

	t.Run("Failed - LockStoreUnavailable", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("LockSeats", mock.Anything, mock.Anything).Return(nil, apperrors.ErrLockStoreUnavailable).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// fail closed：store 掛掉是獨立的失敗類別，不是座位競爭
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["status"])
	})

	t.Run("Failed - UnexpectedError", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("LockSeats", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInternalServerError).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		// 不洩漏內部細節
		assert.Equal(t, "Internal server error", body["message"])
	})
}

func TestReleaseSeats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		mockService.On("ReleaseSeats", mock.Anything, 7, mock.Anything, "session-x").Return(2, nil).Once()

		req := createJSONHTTPRequest("DELETE", "/api/v1/seat-locks", gin.H{
			"event_id":   7,
			"seats":      []int{12, 13},
			"session_id": "session-x",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["status"])
		assert.Equal(t, float64(2), body["released"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - MissingSessionID", func(t *testing.T) {
		mockService := services.NewSeatLockServiceMock()
		router := setupLockTestRouter(mockService)

		req := createJSONHTTPRequest("DELETE", "/api/v1/seat-locks", gin.H{
			"event_id": 7,
			"seats":    []int{12},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockService.AssertNotCalled(t, "ReleaseSeats")
	})
}
