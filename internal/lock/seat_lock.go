package lock

import (
	"context"
	"fmt"
	apperrors "seat-lock-service/pkg/app_errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// 取鎖腳本的回傳碼
const (
	acquireResultNew     = 1 // 鎖不存在，新建成功
	acquireResultRenewed = 2 // 已由同一 session 持有，重設 TTL
	acquireResultHeld    = 0 // 由其他 session 持有
)

// SeatLockManager 對 lock store 的原子操作。key 的存在本身就是鎖；
// 同一個 (event, seat) 任何時刻最多只有一個 session 持有。
// lock store 連不上時一律回傳錯誤（fail closed），絕不默認成功。
type SeatLockManager interface {
	// 查看座位目前的持有者；沒有鎖時回傳空字串。唯讀，不延長 TTL。
	Inspect(ctx context.Context, eventID int, seatID int) (string, error)
	// 批次取鎖：全部成功或全部不留下本次新建的鎖。
	// 回傳 store 實際拒絕的座位子集，讓呼叫端能精確回報。
	AcquireBatch(ctx context.Context, eventID int, seatIDs []int, sessionID string, ttl time.Duration) (bool, []int, error)
	// 只釋放 sessionID 自己持有的鎖，回傳實際刪除數。
	Release(ctx context.Context, eventID int, seatIDs []int, sessionID string) (int, error)
}

type RedisSeatLockManagerImpl struct {
	client *redis.Client
}

func NewRedisSeatLockManager(client *redis.Client) SeatLockManager {
	return &RedisSeatLockManagerImpl{
		client: client,
	}
}

func (m *RedisSeatLockManagerImpl) lockKey(eventID, seatID int) string {
	return fmt.Sprintf("event:%d:seat:%d:lock", eventID, seatID)
}

func (m *RedisSeatLockManagerImpl) Inspect(ctx context.Context, eventID int, seatID int) (string, error) {
	holder, err := m.client.Get(ctx, m.lockKey(eventID, seatID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrLockStoreUnavailable, err)
	}
	return holder, nil
}

/*
*

	批次取鎖 (每個座位一次原子的 set-if-absent-or-owned)
	1. 逐一對每個座位執行取鎖腳本
	2. 收集本次新建的鎖與被拒絕的座位
	3. 任一座位被拒絕時，釋放本次新建的鎖後回傳被拒絕的子集
*/
func (m *RedisSeatLockManagerImpl) AcquireBatch(ctx context.Context, eventID int, seatIDs []int, sessionID string, ttl time.Duration) (bool, []int, error) {
	script := `
		-- 1. 取得參數
		local lock_key = KEYS[1]
		local session_id = ARGV[1]
		local ttl_seconds = tonumber(ARGV[2])

		-- 2. 檢查目前持有者
		local holder = redis.call('GET', lock_key)

		-- 3. 沒有鎖：新建並設定 TTL
		if not holder then
			redis.call('SET', lock_key, session_id, 'EX', ttl_seconds)
			return 1
		end

		-- 4. 同一 session 重複請求：視為續約，重設 TTL
		if holder == session_id then
			redis.call('EXPIRE', lock_key, ttl_seconds)
			return 2
		end

		-- 5. 其他 session 持有：拒絕
		return 0
	`

	ttlSeconds := int(ttl.Seconds())
	newlyAcquired := make([]int, 0, len(seatIDs))
	failed := make([]int, 0)

	for _, seatID := range seatIDs {
		result, err := m.client.Eval(ctx, script, []string{m.lockKey(eventID, seatID)}, sessionID, ttlSeconds).Int()
		if err != nil {
			// store 出錯視為取鎖失敗：先收回本次新建的鎖再回報
			m.rollbackAcquired(eventID, newlyAcquired, sessionID)
			return false, nil, fmt.Errorf("%w: %v", apperrors.ErrLockStoreUnavailable, err)
		}

		switch result {
		case acquireResultNew:
			newlyAcquired = append(newlyAcquired, seatID)
		case acquireResultRenewed:
			// 本來就是自己的鎖，失敗時也不收回
		default:
			failed = append(failed, seatID)
		}
	}

	if len(failed) > 0 {
		m.rollbackAcquired(eventID, newlyAcquired, sessionID)
		return false, failed, nil
	}

	return true, nil, nil
}

// rollbackAcquired 收回本次呼叫新建的鎖。
// 用 context.Background()：就算請求被取消，回滾也一定要執行，否則會留下殘鎖。
func (m *RedisSeatLockManagerImpl) rollbackAcquired(eventID int, seatIDs []int, sessionID string) {
	if len(seatIDs) == 0 {
		return
	}
	// 盡力而為：收不回的鎖由 TTL 到期清掉
	m.Release(context.Background(), eventID, seatIDs, sessionID)
}

func (m *RedisSeatLockManagerImpl) Release(ctx context.Context, eventID int, seatIDs []int, sessionID string) (int, error) {
	script := `
		-- 只刪自己的鎖，避免過期的釋放請求偷走別人的座位
		if redis.call('GET', KEYS[1]) == ARGV[1] then
			return redis.call('DEL', KEYS[1])
		end
		return 0
	`

	released := 0
	for _, seatID := range seatIDs {
		result, err := m.client.Eval(ctx, script, []string{m.lockKey(eventID, seatID)}, sessionID).Int()
		if err != nil {
			return released, fmt.Errorf("%w: %v", apperrors.ErrLockStoreUnavailable, err)
		}
		released += result
	}

	return released, nil
}
