package handler

import (
	"errors"
	"net/http"
	"seat-lock-service/internal/model"
	"seat-lock-service/internal/service"
	apperrors "seat-lock-service/pkg/app_errors"
	"seat-lock-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SeatLockHandler struct {
	service service.SeatLockService
}

func NewSeatLockHandler(service service.SeatLockService) *SeatLockHandler {
	return &SeatLockHandler{service: service}
}

func (h *SeatLockHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("seat-locks", h.LockSeats)
		router.DELETE("seat-locks", h.ReleaseSeats)
	}
}

func (h *SeatLockHandler) LockSeats(c *gin.Context) {
	var req model.LockSeatsRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.LockSeats(c, req)
	if err != nil {
		h.handleLockError(c, err, "LockSeats", req)
		return
	}

	switch {
	case result.Locked:
		c.JSON(http.StatusOK, gin.H{
			"status":       true,
			"message":      "Seats locked",
			"session_id":   result.SessionID,
			"locked_seats": result.LockedSeats,
			"expires_in":   result.ExpiresIn,
		})
	case len(result.UnavailableSeats) > 0:
		// 預檢就發現不可售，還沒動到任何鎖
		c.JSON(http.StatusConflict, gin.H{
			"status":            false,
			"message":           "Some seats are unavailable",
			"unavailable_seats": result.UnavailableSeats,
		})
	default:
		// 預檢過了但原子取鎖輸給別的 session
		c.JSON(http.StatusConflict, gin.H{
			"status":       false,
			"message":      "Could not acquire all requested seats",
			"failed_seats": result.FailedSeats,
		})
	}
}

func (h *SeatLockHandler) ReleaseSeats(c *gin.Context) {
	var req model.ReleaseSeatsRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	released, err := h.service.ReleaseSeats(c, req.EventID, req.Seats, req.SessionID)
	if err != nil {
		h.handleLockError(c, err, "ReleaseSeats", model.LockSeatsRequest{
			EventID:   req.EventID,
			Seats:     req.Seats,
			SessionID: req.SessionID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   true,
		"message":  "Seats released",
		"released": released,
	})
}

// handleLockError 把預期外的錯誤轉成結構化回應；log 帶齊 event、seats、session，
// 方便追查超賣事故。store 連不上是獨立的失敗類別，不跟一般座位競爭混在一起。
func (h *SeatLockHandler) handleLockError(c *gin.Context, err error, operation string, req model.LockSeatsRequest) {
	seats := make([]string, 0, len(req.Seats))
	for _, seat := range req.Seats {
		seats = append(seats, seat.String())
	}
	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.Int("event_id", req.EventID),
		zap.Strings("seats", seats),
		zap.String("session_id", req.SessionID),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, apperrors.ErrLockStoreUnavailable):
		log.Error("Lock store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  false,
			"message": "Seat locking temporarily unavailable",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  false,
			"message": "Internal server error",
		})
	}
}
