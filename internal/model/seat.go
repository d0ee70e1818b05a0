package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// 座位字串裡的第一段連續數字就是座位編號，例如 "seat_456" -> 456
var seatNumberPattern = regexp.MustCompile(`\d+`)

// SeatRef 座位識別。呼叫端可能送 JSON 數字（12）、內嵌數字的字串（"seat_456"），
// 或不含數字的票種代號（"ga-floor"，general admission，不追蹤座位號）。
// 內部鎖定一律用解析出的數字編號；回應時原樣返回呼叫端的表示。
type SeatRef struct {
	raw       string
	numeric   int
	isNumeric bool
	isString  bool
}

func NewSeatRefFromInt(id int) SeatRef {
	return SeatRef{raw: strconv.Itoa(id), numeric: id, isNumeric: true}
}

func NewSeatRefFromString(s string) SeatRef {
	ref := SeatRef{raw: s, isString: true}
	if match := seatNumberPattern.FindString(s); match != "" {
		if n, err := strconv.Atoi(match); err == nil {
			ref.numeric = n
			ref.isNumeric = true
		}
	}
	return ref
}

// NumericID 回傳解析出的座位編號；通用入場票種沒有編號時回傳 false。
func (s SeatRef) NumericID() (int, bool) {
	return s.numeric, s.isNumeric
}

// IsGeneralAdmission 表示這個識別不對應實體座位，只能以剩餘數量判斷可售。
func (s SeatRef) IsGeneralAdmission() bool {
	return !s.isNumeric
}

// ClassRef 回傳票種代號（通用入場票用原始字串當代號）
func (s SeatRef) ClassRef() string {
	return s.raw
}

func (s SeatRef) String() string {
	return s.raw
}

func (s *SeatRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = NewSeatRefFromInt(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = NewSeatRefFromString(str)
		return nil
	}

	return fmt.Errorf("seat must be an integer or a string, got %s", string(data))
}

// MarshalJSON 保留呼叫端原本的型別：數字進來就是數字出去，字串亦然
func (s SeatRef) MarshalJSON() ([]byte, error) {
	if s.isString {
		return json.Marshal(s.raw)
	}
	return json.Marshal(s.numeric)
}

// LockSeatsRequest 批次鎖定座位請求
type LockSeatsRequest struct {
	EventID   int       `json:"event_id" binding:"required,min=1"`
	Seats     []SeatRef `json:"seats" binding:"required,min=1"`
	SessionID string    `json:"session_id"`
	Duration  int       `json:"duration" binding:"omitempty,min=60,max=1800"`
}

// ReleaseSeatsRequest 釋放座位請求（booking/payment 協調者在結帳完成或放棄時呼叫）
type ReleaseSeatsRequest struct {
	EventID   int       `json:"event_id" binding:"required,min=1"`
	Seats     []SeatRef `json:"seats" binding:"required,min=1"`
	SessionID string    `json:"session_id" binding:"required"`
}

// LockSeatsResult 鎖定結果。座位衝突是正常業務結果而不是 error：
// Locked=false 時 UnavailableSeats（預檢失敗）或 FailedSeats（原子取鎖失敗）
// 標出是哪些座位，讓呼叫端能精確重繪。
type LockSeatsResult struct {
	Locked           bool
	SessionID        string
	LockedSeats      []SeatRef
	ExpiresIn        int
	UnavailableSeats []SeatRef
	FailedSeats      []SeatRef
}
