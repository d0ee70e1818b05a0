package model

// LockSession 一次結帳流程的購買者識別。Token 存在鎖的 value 裡，
// TransportToken 是加密後可對外傳輸的版本。不綁定登入使用者。
type LockSession struct {
	Token          string `json:"token"`
	TransportToken string `json:"transport_token"`
}
