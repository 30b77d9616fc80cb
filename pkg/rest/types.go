// This file should be generated from an openapi document and named
// types.gen.go; until that exists it is maintained by hand.
package rest

import "time"

// Game is the wire form of one scratch game record.
type Game struct {
	GameNumber         string  `json:"gameNumber"`
	Name               string  `json:"name"`
	StartDate          string  `json:"startDate"`
	Price              float64 `json:"price"`
	DetailURL          string  `json:"detailUrl"`
	State              string  `json:"state"`
	FailureReason      string  `json:"failureReason,omitempty"`
	PackSize           int     `json:"packSize"`
	GuaranteedAmount   float64 `json:"guaranteedAmount"`
	PackCost           float64 `json:"packCost"`
	MaxLoss            float64 `json:"maxLoss"`
	MaxLossPercent     float64 `json:"maxLossPercent"`
	TopPrize           float64 `json:"topPrize"`
	TopPrizeInGame     int     `json:"topPrizeInGame"`
	TopPrizeClaimed    int     `json:"topPrizeClaimed"`
	TopPrizesRemaining int     `json:"topPrizesRemaining"`
	TotalTickets       int     `json:"totalTickets"`
	OverallOdds        string  `json:"overallOdds"`
	PrizesFound        bool    `json:"prizesFound"`
}

// GamesResponse carries the cached snapshot's records plus staleness
// metadata for the listing endpoint.
type GamesResponse struct {
	Games     []Game    `json:"games"`
	FetchedAt time.Time `json:"fetchedAt"`
	Stale     bool      `json:"stale"`
}

// RefreshRequest is the optional body of a snapshot trigger. An absent body
// keeps all runner defaults.
type RefreshRequest struct {
	// BatchSize bounds concurrent detail fetches for this run only.
	BatchSize int `json:"batchSize,omitempty" validate:"omitempty,min=1,max=64"`
}

// Snapshot reports the lifecycle of one refresh run.
type Snapshot struct {
	RunID      string     `json:"runId"`
	Status     string     `json:"status"`
	Completed  int        `json:"completed"`
	Total      int        `json:"total"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Error is the uniform error reply body.
type Error struct {
	Code ErrorCode `json:"code"`

	// Message is safe to surface in a UI.
	Message string `json:"message"`

	// SupportID is the trace id, for correlating a report with the logs.
	SupportID string `json:"supportId"`
}

type ErrorCode string
