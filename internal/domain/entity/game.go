package entity

import "math"

// OddsNotAvailable is the sentinel used when a page carries no parsable
// "1 in N" phrase.
const OddsNotAvailable = "N/A"

type GameState string

const (
	GameStatePending  GameState = "pending"
	GameStateResolved GameState = "resolved"
	GameStateFailed   GameState = "failed"
)

// GameSummary is one game row extracted from the scratcher index page.
type GameSummary struct {
	GameNumber string  `json:"game_number"`
	Name       string  `json:"name"`
	StartDate  string  `json:"start_date"`
	Price      float64 `json:"price"`
	DetailURL  string  `json:"detail_url"`
}

// GameDetail carries the fields recovered from one detail page. A zero value
// means "not found on the page"; downstream math treats zero as a valid
// unknown, so a failed lookup and a true zero are indistinguishable here.
type GameDetail struct {
	PackSize         int     `json:"pack_size"`
	GuaranteedAmount float64 `json:"guaranteed_amount"`
	TotalTickets     int     `json:"total_tickets"`
	OverallOdds      string  `json:"overall_odds"`
	TopPrize         float64 `json:"top_prize"`
	TopPrizeInGame   int     `json:"top_prize_in_game"`
	TopPrizeClaimed  int     `json:"top_prize_claimed"`
	PrizesFound      bool    `json:"prizes_found"`
}

// GameRecord joins a summary with its fetched detail plus the derived pack
// economics. Records move pending -> resolved or pending -> failed exactly
// once; terminal states are never overwritten.
type GameRecord struct {
	GameSummary
	GameDetail
	PackCost           float64   `json:"pack_cost"`
	MaxLoss            float64   `json:"max_loss"`
	MaxLossPercent     float64   `json:"max_loss_percent"`
	TopPrizesRemaining int       `json:"top_prizes_remaining"`
	State              GameState `json:"state"`
	FailureReason      string    `json:"failure_reason,omitempty"`
}

func NewGameRecord(summary GameSummary) GameRecord {
	return GameRecord{
		GameSummary: summary,
		GameDetail:  GameDetail{OverallOdds: OddsNotAvailable},
		State:       GameStatePending,
	}
}

// Resolve merges a fetched detail into the record and recomputes the derived
// fields from their raw inputs.
func (r *GameRecord) Resolve(detail GameDetail) {
	if r.State != GameStatePending {
		return
	}

	r.GameDetail = detail
	r.recompute()
	r.State = GameStateResolved
}

// Fail marks the record as failed, keeping the defaulted detail fields and
// attaching a human-readable reason.
func (r *GameRecord) Fail(reason string) {
	if r.State != GameStatePending {
		return
	}

	r.State = GameStateFailed
	r.FailureReason = reason
}

func (r *GameRecord) recompute() {
	r.PackCost = r.Price * float64(r.PackSize)
	r.MaxLoss = r.GuaranteedAmount - r.PackCost

	if r.PackCost > 0 {
		r.MaxLossPercent = math.Abs(r.MaxLoss) / r.PackCost * 100 //nolint:mnd
	} else {
		r.MaxLossPercent = 0
	}

	r.TopPrizesRemaining = max(0, r.TopPrizeInGame-r.TopPrizeClaimed)
}
