package entity

type AlertKind string

const (
	AlertKindNewGame      AlertKind = "new_game"
	AlertKindTopPrizeDrop AlertKind = "top_prize_drop"
)

// Alert describes a noteworthy difference between two consecutive snapshots.
type Alert struct {
	Kind               AlertKind
	GameNumber         string
	Name               string
	Price              float64
	TopPrize           float64
	TopPrizesRemaining int
	PreviousRemaining  int
}
