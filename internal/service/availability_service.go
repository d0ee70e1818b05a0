package service

import (
	"context"
	"errors"
	"seat-lock-service/internal/lock"
	"seat-lock-service/internal/model"
	"seat-lock-service/internal/repository"
	apperrors "seat-lock-service/pkg/app_errors"
)

// SeatAvailabilityResolver 判斷「這個座位此刻能不能被這個 session 買」，
// 合併關聯式庫存（已賣出）與 lock store（暫時被別人鎖住）兩種狀態。
type SeatAvailabilityResolver interface {
	IsAvailable(ctx context.Context, seat model.SeatRef, eventID int, sessionID string) (bool, error)
}

type SeatAvailabilityResolverImpl struct {
	inventory repository.InventoryRepository
	locks     lock.SeatLockManager
}

func NewSeatAvailabilityResolver(inventory repository.InventoryRepository, locks lock.SeatLockManager) SeatAvailabilityResolver {
	return &SeatAvailabilityResolverImpl{
		inventory: inventory,
		locks:     locks,
	}
}

func (r *SeatAvailabilityResolverImpl) IsAvailable(ctx context.Context, seat model.SeatRef, eventID int, sessionID string) (bool, error) {
	// 不含數字的識別是通用入場票種：沒有座位鎖，只看剩餘數量
	if seat.IsGeneralAdmission() {
		return r.isClassAvailable(ctx, seat, eventID)
	}

	seatID, _ := seat.NumericID()

	// 1. 庫存的硬性不可售（已有確認或進行中的訂位）
	unavailable, err := r.inventory.IsSeatUnavailable(ctx, eventID, seatID)
	if err != nil {
		return false, err
	}
	if unavailable {
		return false, nil
	}

	// 2. 鎖的狀態：別人持有就不可售；自己持有視為可售，讓同一購買者能續約
	holder, err := r.locks.Inspect(ctx, eventID, seatID)
	if err != nil {
		return false, err
	}
	if holder != "" && holder != sessionID {
		return false, nil
	}

	return true, nil
}

func (r *SeatAvailabilityResolverImpl) isClassAvailable(ctx context.Context, seat model.SeatRef, eventID int) (bool, error) {
	remaining, err := r.inventory.RemainingCount(ctx, eventID, seat.ClassRef())
	if err != nil {
		// 沒建檔的票種不可售
		if errors.Is(err, apperrors.ErrTicketClassNotFound) {
			return false, nil
		}
		return false, err
	}

	// nil 表示不限量
	if remaining != nil && *remaining <= 0 {
		return false, nil
	}

	return true, nil
}
