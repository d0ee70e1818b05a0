package worker

import (
	"context"
	"seat-lock-service/internal/lock"
	"seat-lock-service/internal/queue"
	"seat-lock-service/pkg/logger"

	"go.uber.org/zap"
)

// ReleaseWorker 消費釋放指令，把結帳完成或放棄的座位鎖即時清掉，
// 不用等 TTL 到期才釋出座位。
type ReleaseWorker interface {
	Start(ctx context.Context) error
}

type ReleaseWorkerImpl struct {
	locks lock.SeatLockManager
	queue queue.ReleaseQueue
}

func NewReleaseWorker(locks lock.SeatLockManager, queue queue.ReleaseQueue) ReleaseWorker {
	return &ReleaseWorkerImpl{
		locks: locks,
		queue: queue,
	}
}

func (w *ReleaseWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeReleases(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			cmd := msg.Data
			released, err := w.locks.Release(ctx, cmd.EventID, cmd.SeatIDs, cmd.SessionID)
			if err != nil {
				// lock store 暫時連不上就重試；鎖最終也會被 TTL 清掉
				log.Warn("release failed, will retry",
					zap.Int("event_id", cmd.EventID),
					zap.Ints("seat_ids", cmd.SeatIDs),
					zap.String("session_id", cmd.SessionID),
					zap.Error(err),
				)
				msg.Nack(true)
				continue
			}

			log.Info("seats released",
				zap.Int("event_id", cmd.EventID),
				zap.Ints("seat_ids", cmd.SeatIDs),
				zap.String("session_id", cmd.SessionID),
				zap.String("reason", cmd.Reason),
				zap.Int("released", released),
			)
			msg.Ack()
		}
	}()
	return nil
}
