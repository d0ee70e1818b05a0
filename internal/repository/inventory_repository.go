package repository

import (
	"context"
	"errors"
	apperrors "seat-lock-service/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository 讀取關聯式庫存（已確認的訂位與剩餘票數）。
// 本服務只讀；剩餘票數由訂票確認流程在別處扣減。
type InventoryRepository interface {
	// 座位是否已被確認或進行中的訂位佔走（與鎖無關的硬性不可售）
	IsSeatUnavailable(ctx context.Context, eventID int, seatID int) (bool, error)
	// 通用入場票種的剩餘數量；nil 表示不限量
	RemainingCount(ctx context.Context, eventID int, classRef string) (*int, error)
}

type InventoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &InventoryRepositoryImpl{
		pool: pool,
	}
}

func (r *InventoryRepositoryImpl) IsSeatUnavailable(ctx context.Context, eventID int, seatID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE event_id = $1 AND seat_id = $2 AND status IN ('pending', 'confirmed')
		)
	`

	var unavailable bool
	err := r.pool.QueryRow(ctx, query, eventID, seatID).Scan(&unavailable)
	if err != nil {
		return false, err
	}

	return unavailable, nil
}

func (r *InventoryRepositoryImpl) RemainingCount(ctx context.Context, eventID int, classRef string) (*int, error) {
	query := `
		SELECT remaining_count FROM tickets
		WHERE event_id = $1 AND class_ref = $2
	`

	var count *int
	err := r.pool.QueryRow(ctx, query, eventID, classRef).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketClassNotFound
		}
		return nil, err
	}

	return count, nil
}
