package settle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"riichi/common/config"
	"riichi/common/log"
	"riichi/engine/mahjong"
	"riichi/settle/node"
	"riichi/settle/persist"
)

// 结算节点对外的主题，同队列组内竞争消费
const (
	SubjectSettle     = "riichi.settle"
	SubjectWaits      = "riichi.waits"
	SubjectCandidates = "riichi.candidates"
	QueueGroup        = "settle"
)

// MeldDTO 面子的线格式，牌用 "1m2m3m" 记法
type MeldDTO struct {
	Kind      string `json:"kind"` // sequence / triplet / quad
	Tiles     string `json:"tiles"`
	Concealed bool   `json:"concealed"`
	From      int    `json:"from"`
}

type SettleRequestDTO struct {
	RequestID        string    `json:"requestId"`
	Tiles            string    `json:"tiles"`
	Melds            []MeldDTO `json:"melds"`
	WinTile          string    `json:"winTile"`
	Tsumo            bool      `json:"tsumo"`
	Riichi           bool      `json:"riichi"`
	TurnsAfterRiichi int       `json:"turnsAfterRiichi"`
	FirstTurn        bool      `json:"firstTurn"`
	LastTile         bool      `json:"lastTile"`
	Rinshan          bool      `json:"rinshan"`
	RoundWind        int       `json:"roundWind"`
	SeatWind         int       `json:"seatWind"`
	WinnerSeat       int       `json:"winnerSeat"`
	DiscarderSeat    int       `json:"discarderSeat"`
	PaoSeat          int       `json:"paoSeat"`
	Honba            int       `json:"honba"`
	RiichiSticks     int       `json:"riichiSticks"`
	DoraIndicators   string    `json:"doraIndicators"`
	UraIndicators    string    `json:"uraIndicators"`
}

type YakuDTO struct {
	Name    string `json:"name"`
	Han     int    `json:"han"`
	Yakuman int    `json:"yakuman,omitempty"`
}

type SettleResponseDTO struct {
	RequestID string      `json:"requestId"`
	Yaku      []YakuDTO   `json:"yaku,omitempty"`
	Han       int         `json:"han"`
	Fu        int         `json:"fu"`
	Yakuman   int         `json:"yakuman"`
	DoraHan   int         `json:"doraHan"`
	Base      int         `json:"base"`
	Total     int         `json:"total"`
	Payments  map[int]int `json:"payments,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type WaitsRequestDTO struct {
	RequestID string    `json:"requestId"`
	Tiles     string    `json:"tiles"`
	Melds     []MeldDTO `json:"melds"`
}

type WaitsResponseDTO struct {
	RequestID string   `json:"requestId"`
	Tenpai    bool     `json:"tenpai"`
	Waits     []string `json:"waits,omitempty"`
	Shanten   int      `json:"shanten"`
	Error     string   `json:"error,omitempty"`
}

type CandidatesRequestDTO struct {
	RequestID string    `json:"requestId"`
	Tiles     string    `json:"tiles"`
	Melds     []MeldDTO `json:"melds"`
	Draw      string    `json:"draw"`
	Visible   string    `json:"visible,omitempty"` // 场上已亮出的牌（弃牌河、副露、指示牌）
}

type CandidateDTO struct {
	Discard string   `json:"discard"`
	Options string   `json:"options"` // 实体牌记法，赤五与普通五区分
	Waits   []string `json:"waits"`
	Ukeire  int      `json:"ukeire"`
}

type CandidatesResponseDTO struct {
	RequestID  string         `json:"requestId"`
	Candidates []CandidateDTO `json:"candidates,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Worker 结算节点的消息入口，store 为 nil 时跳过落库
type Worker struct {
	natsCli *node.NatsClient
	store   *persist.SettlementStore
}

func NewWorker(store *persist.SettlementStore) *Worker {
	return &Worker{
		natsCli: node.NewNatsClient(),
		store:   store,
	}
}

func (w *Worker) Start(ctx context.Context, url string) error {
	if err := w.natsCli.Run(url); err != nil {
		return err
	}
	if err := w.natsCli.QueueSubscribe(SubjectSettle, QueueGroup, w.onSettle); err != nil {
		return err
	}
	if err := w.natsCli.QueueSubscribe(SubjectWaits, QueueGroup, w.onWaits); err != nil {
		return err
	}
	if err := w.natsCli.QueueSubscribe(SubjectCandidates, QueueGroup, w.onCandidates); err != nil {
		return err
	}
	log.Info("settle worker 已订阅: %s, %s, %s", SubjectSettle, SubjectWaits, SubjectCandidates)
	return nil
}

func (w *Worker) Close() {
	if w.natsCli != nil {
		w.natsCli.Close()
	}
	if w.store != nil {
		w.store.Close()
	}
}

func (w *Worker) onSettle(msg *nats.Msg) {
	var req SettleRequestDTO
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		w.respond(msg, &SettleResponseDTO{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	resp := w.handleSettle(&req)
	w.respond(msg, resp)
}

func (w *Worker) handleSettle(req *SettleRequestDTO) *SettleResponseDTO {
	resp := &SettleResponseDTO{RequestID: req.RequestID}

	hand, win, err := buildHand(req)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	if len(hand.Tiles)+3*len(hand.Melds) != 13 {
		resp.Error = mahjong.ErrHandSize.Error()
		return resp
	}
	doraIndicators, err := mahjong.ParseTiles(req.DoraIndicators)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	uraIndicators, err := mahjong.ParseTiles(req.UraIndicators)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	winCtx := &mahjong.WinContext{
		WinTile:          win,
		IsTsumo:          req.Tsumo,
		IsFirstTurn:      req.FirstTurn,
		TurnsAfterRiichi: req.TurnsAfterRiichi,
		IsLastTile:       req.LastTile,
		IsRinshan:        req.Rinshan,
		RoundWind:        mahjong.Wind(req.RoundWind),
		SeatWind:         mahjong.Wind(req.SeatWind),
		IsDealer:         mahjong.Wind(req.SeatWind) == mahjong.WindEast,
		Rules:            config.Ruleset(),
	}
	sit := mahjong.Situation{
		DealerIndex:  dealerIndexOf(req.WinnerSeat, mahjong.Wind(req.SeatWind)),
		Honba:        req.Honba,
		RoundWind:    mahjong.Wind(req.RoundWind),
		RiichiSticks: req.RiichiSticks,
	}
	settleReq := sit.NewSettleRequest(req.WinnerSeat)
	settleReq.DiscarderSeat = req.DiscarderSeat
	settleReq.PaoSeat = req.PaoSeat
	settleReq.DoraIndicators = doraIndicators
	settleReq.UraIndicators = uraIndicators

	result, err := hand.Settle(win, winCtx, settleReq)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	for _, y := range result.Yaku {
		resp.Yaku = append(resp.Yaku, YakuDTO{
			Name:    y.ID.String(),
			Han:     y.Han,
			Yakuman: y.Yakuman,
		})
	}
	resp.Han = result.Han
	resp.Fu = result.Fu
	resp.Yakuman = result.Yakuman
	resp.DoraHan = result.DoraHan
	resp.Base = result.Base
	resp.Total = result.Total
	resp.Payments = result.Payments

	if w.store != nil {
		names := make([]string, 0, len(result.Yaku))
		for _, y := range result.Yaku {
			names = append(names, y.ID.String())
		}
		w.store.SaveAsync(&persist.SettlementRecord{
			RequestID: req.RequestID,
			Tiles:     req.Tiles,
			WinTile:   req.WinTile,
			Tsumo:     req.Tsumo,
			Yaku:      names,
			Han:       result.Han,
			Fu:        result.Fu,
			Yakuman:   result.Yakuman,
			DoraHan:   result.DoraHan,
			Total:     result.Total,
			Payments:  persist.PaymentsFromSeats(result.Payments),
		})
	}
	return resp
}

func (w *Worker) onWaits(msg *nats.Msg) {
	var req WaitsRequestDTO
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		w.respond(msg, &WaitsResponseDTO{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	resp := &WaitsResponseDTO{RequestID: req.RequestID}

	tiles, err := mahjong.ParseTiles(req.Tiles)
	if err != nil {
		resp.Error = err.Error()
		w.respond(msg, resp)
		return
	}
	hand := mahjong.NewHand(tiles)
	if err := attachMelds(hand, req.Melds); err != nil {
		resp.Error = err.Error()
		w.respond(msg, resp)
		return
	}

	if len(hand.Tiles)+3*len(hand.Melds) != 13 {
		resp.Error = mahjong.ErrHandSize.Error()
		w.respond(msg, resp)
		return
	}
	resp.Shanten = hand.Shanten()
	if resp.Shanten <= 0 {
		waits := hand.WaitingTiles()
		resp.Tenpai = len(waits) > 0
		for _, tt := range waits {
			resp.Waits = append(resp.Waits, tt.String())
		}
	}
	w.respond(msg, resp)
}

func (w *Worker) onCandidates(msg *nats.Msg) {
	var req CandidatesRequestDTO
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		w.respond(msg, &CandidatesResponseDTO{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	w.respond(msg, w.handleCandidates(&req))
}

func (w *Worker) handleCandidates(req *CandidatesRequestDTO) *CandidatesResponseDTO {
	resp := &CandidatesResponseDTO{RequestID: req.RequestID}

	tiles, err := mahjong.ParseTiles(req.Tiles)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	drawTiles, err := mahjong.ParseTiles(req.Draw)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	if len(drawTiles) != 1 {
		resp.Error = fmt.Sprintf("draw expects exactly one tile, got %q", req.Draw)
		return resp
	}
	hand := mahjong.NewHand(tiles)
	if err := attachMelds(hand, req.Melds); err != nil {
		resp.Error = err.Error()
		return resp
	}
	if len(hand.Tiles)+3*len(hand.Melds) != 13 {
		resp.Error = mahjong.ErrHandSize.Error()
		return resp
	}
	visible, err := visibleCounts(req.Visible)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	for _, c := range hand.DiscardCandidates(drawTiles[0], visible) {
		dto := CandidateDTO{
			Discard: c.DiscardType.String(),
			Options: mahjong.FormatTiles(c.DiscardOptions),
			Ukeire:  c.Ukeire,
		}
		for _, tt := range c.Waits {
			dto.Waits = append(dto.Waits, tt.String())
		}
		resp.Candidates = append(resp.Candidates, dto)
	}
	return resp
}

// visibleCounts 把已亮出的牌折算成牌种计数，空串表示无可见信息
func visibleCounts(s string) (*[mahjong.TileKinds]uint8, error) {
	if s == "" {
		return nil, nil
	}
	seen, err := mahjong.ParseTiles(s)
	if err != nil {
		return nil, err
	}
	var counts [mahjong.TileKinds]uint8
	for _, t := range seen {
		counts[int(t.Type)]++
	}
	return &counts, nil
}

func (w *Worker) respond(msg *nats.Msg, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Error("结算响应序列化失败: %v", err)
		return
	}
	if msg.Reply != "" {
		if err := msg.Respond(data); err != nil {
			log.Error("结算响应发送失败: %v", err)
		}
		return
	}
	log.Warn("请求没有 reply 主题, subject=%s", msg.Subject)
}

func buildHand(req *SettleRequestDTO) (*mahjong.Hand, mahjong.Tile, error) {
	tiles, err := mahjong.ParseTiles(req.Tiles)
	if err != nil {
		return nil, mahjong.Tile{}, err
	}
	winTiles, err := mahjong.ParseTiles(req.WinTile)
	if err != nil {
		return nil, mahjong.Tile{}, err
	}
	if len(winTiles) != 1 {
		return nil, mahjong.Tile{}, fmt.Errorf("winTile expects exactly one tile, got %q", req.WinTile)
	}

	hand := mahjong.NewHand(tiles)
	if err := attachMelds(hand, req.Melds); err != nil {
		return nil, mahjong.Tile{}, err
	}
	hand.Riichi = req.Riichi
	return hand, winTiles[0], nil
}

func attachMelds(hand *mahjong.Hand, dtos []MeldDTO) error {
	for _, dto := range dtos {
		kind, err := meldKind(dto.Kind)
		if err != nil {
			return err
		}
		tiles, err := mahjong.ParseTiles(dto.Tiles)
		if err != nil {
			return err
		}
		meld, err := mahjong.NewMeld(kind, tiles, dto.Concealed, dto.From)
		if err != nil {
			return err
		}
		hand.Melds = append(hand.Melds, meld)
	}
	return nil
}

// dealerIndexOf 由和牌者座位和自风推出庄家座位
func dealerIndexOf(winnerSeat int, seatWind mahjong.Wind) int {
	return ((winnerSeat-int(seatWind))%4 + 4) % 4
}

func meldKind(s string) (mahjong.MeldKind, error) {
	switch s {
	case "sequence":
		return mahjong.MeldSequence, nil
	case "triplet":
		return mahjong.MeldTriplet, nil
	case "quad":
		return mahjong.MeldQuad, nil
	}
	return 0, fmt.Errorf("unknown meld kind: %q", s)
}
