package queue

import (
	"context"
	"seat-lock-service/internal/model"
)

type Delivery struct {
	Data *model.ReleaseCommand
	Ack  func()
	Nack func(requeue bool)
}

// ReleaseQueue booking/payment 協調者發布釋放指令的通道
type ReleaseQueue interface {
	PublishRelease(ctx context.Context, cmd *model.ReleaseCommand) error
	SubscribeReleases(ctx context.Context) (<-chan Delivery, error)
}

type ReleaseQueueImpl struct {
	// 用 Go channel 模擬 MQ，供本地與測試使用
	ch chan *model.ReleaseCommand
}

func NewReleaseQueue(bufferSize int) ReleaseQueue {
	return &ReleaseQueueImpl{
		ch: make(chan *model.ReleaseCommand, bufferSize),
	}
}

func (q *ReleaseQueueImpl) PublishRelease(ctx context.Context, cmd *model.ReleaseCommand) error {
	q.ch <- cmd
	return nil
}

func (q *ReleaseQueueImpl) SubscribeReleases(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case cmd, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: cmd,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- cmd // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
