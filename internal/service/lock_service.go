package service

import (
	"context"
	"seat-lock-service/config"
	"seat-lock-service/internal/lock"
	"seat-lock-service/internal/model"
	"time"
)

// SeatLockService 編排一次「幫我鎖這些座位」的請求：
// 先逐座位預檢（較好的錯誤訊息、少打無謂的鎖），全部可售才批次取鎖。
// 預檢跟取鎖之間本來就有 race window，真正的安全機制是取鎖本身的原子性。
type SeatLockService interface {
	LockSeats(ctx context.Context, req model.LockSeatsRequest) (*model.LockSeatsResult, error)
	// 供 booking/payment 協調者在結帳完成或放棄時釋放
	ReleaseSeats(ctx context.Context, eventID int, seats []model.SeatRef, sessionID string) (int, error)
}

type SeatLockServiceImpl struct {
	resolver SeatAvailabilityResolver
	locks    lock.SeatLockManager
	sessions SessionService
	cfg      config.LockConfig
}

func NewSeatLockService(
	resolver SeatAvailabilityResolver,
	locks lock.SeatLockManager,
	sessions SessionService,
	cfg config.LockConfig,
) SeatLockService {
	return &SeatLockServiceImpl{
		resolver: resolver,
		locks:    locks,
		sessions: sessions,
		cfg:      cfg,
	}
}

func (s *SeatLockServiceImpl) LockSeats(ctx context.Context, req model.LockSeatsRequest) (*model.LockSeatsResult, error) {
	ttlSeconds := req.Duration
	if ttlSeconds == 0 {
		ttlSeconds = s.cfg.DefaultTTLSeconds
	}

	// 1. 沒帶 session id 就產生一個新的
	sessionID := req.SessionID
	if sessionID == "" {
		session, err := s.sessions.Generate()
		if err != nil {
			return nil, err
		}
		sessionID = session.Token
	}

	// 2. 預檢：逐座位問 resolver，任何一個不可售就整批不鎖
	unavailable := make([]model.SeatRef, 0)
	for _, seat := range req.Seats {
		available, err := s.resolver.IsAvailable(ctx, seat, req.EventID, sessionID)
		if err != nil {
			return nil, err
		}
		if !available {
			unavailable = append(unavailable, seat)
		}
	}
	if len(unavailable) > 0 {
		return &model.LockSeatsResult{
			SessionID:        sessionID,
			UnavailableSeats: unavailable,
		}, nil
	}

	// 3. 批次取鎖：只鎖有編號的座位；通用入場票種靠剩餘數量管控，沒有鎖
	seatIDs, refsByID := numericSeatIDs(req.Seats)
	if len(seatIDs) > 0 {
		ok, failedIDs, err := s.locks.AcquireBatch(ctx, req.EventID, seatIDs, sessionID, time.Duration(ttlSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		if !ok {
			// 被 store 拒絕的座位換回呼叫端原本的表示
			failed := make([]model.SeatRef, 0, len(failedIDs))
			for _, id := range failedIDs {
				failed = append(failed, refsByID[id]...)
			}
			return &model.LockSeatsResult{
				SessionID:   sessionID,
				FailedSeats: failed,
			}, nil
		}
	}

	return &model.LockSeatsResult{
		Locked:      true,
		SessionID:   sessionID,
		LockedSeats: req.Seats,
		ExpiresIn:   ttlSeconds,
	}, nil
}

func (s *SeatLockServiceImpl) ReleaseSeats(ctx context.Context, eventID int, seats []model.SeatRef, sessionID string) (int, error) {
	seatIDs, _ := numericSeatIDs(seats)
	if len(seatIDs) == 0 {
		return 0, nil
	}
	return s.locks.Release(ctx, eventID, seatIDs, sessionID)
}

// numericSeatIDs 取出可鎖定的座位編號，並記下每個編號對應的原始表示
func numericSeatIDs(seats []model.SeatRef) ([]int, map[int][]model.SeatRef) {
	ids := make([]int, 0, len(seats))
	refs := make(map[int][]model.SeatRef, len(seats))
	for _, seat := range seats {
		id, ok := seat.NumericID()
		if !ok {
			continue
		}
		if _, seen := refs[id]; !seen {
			ids = append(ids, id)
		}
		refs[id] = append(refs[id], seat)
	}
	return ids, refs
}
