package persist

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"riichi/common/log"
)

// SettlementRecord 一次和牌结算的落库记录
type SettlementRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RequestID string             `bson:"request_id"`
	Tiles     string             `bson:"tiles"`
	WinTile   string             `bson:"win_tile"`
	Tsumo     bool               `bson:"tsumo"`
	Yaku      []string           `bson:"yaku"`
	Han       int                `bson:"han"`
	Fu        int                `bson:"fu"`
	Yakuman   int                `bson:"yakuman"`
	DoraHan   int                `bson:"dora_han"`
	Total     int                `bson:"total"`
	Payments  map[string]int     `bson:"payments"`
	CreatedAt time.Time          `bson:"created_at"`
}

// PaymentsFromSeats bson 的 map 键只能是字符串
func PaymentsFromSeats(payments map[int]int) map[string]int {
	out := make(map[string]int, len(payments))
	for seat, amount := range payments {
		out[strconv.Itoa(seat)] = amount
	}
	return out
}

// SettlementStore 结算记录持久化组件，写入异步化避免拖慢结算响应
type SettlementStore struct {
	col    *mongo.Collection
	mu     sync.Mutex
	closed bool
}

func NewSettlementStore(db *mongo.Database) *SettlementStore {
	return &SettlementStore{
		col: db.Collection("settlements"),
	}
}

// SaveAsync 异步落库，失败只记日志
func (s *SettlementStore) SaveAsync(rec *SettlementRecord) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	rec.CreatedAt = time.Now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := s.col.InsertOne(ctx, rec); err != nil {
			log.Error("保存结算记录失败: request_id=%s, err=%v", rec.RequestID, err)
			return
		}
		log.Debug("结算记录保存成功: request_id=%s", rec.RequestID)
	}()
}

// FindByRequestID 按请求 ID 查结算记录
func (s *SettlementStore) FindByRequestID(ctx context.Context, requestID string) (*SettlementRecord, error) {
	var rec SettlementRecord
	err := s.col.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SettlementStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
