package model

// 釋放原因：訂票完成後鎖已無用，或購買者放棄結帳
const (
	ReleaseReasonBookingConfirmed  = "booking_confirmed"
	ReleaseReasonCheckoutAbandoned = "checkout_abandoned"
)

// ReleaseCommand booking/payment 協調者發布的釋放指令，經由 queue 送達 worker
type ReleaseCommand struct {
	EventID   int    `json:"event_id"`
	SeatIDs   []int  `json:"seat_ids"`
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}
