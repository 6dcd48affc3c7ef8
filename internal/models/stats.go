package models

import "time"

type PrizeWinStat struct {
	PrizeTitle string `json:"prize_title" db:"prize_title"`
	WinCount   int    `json:"win_count" db:"win_count"`
}

type DayDistributionStat struct {
	Day                 time.Time `json:"day" db:"day"`
	QuantityAvailable   int       `json:"quantity_available" db:"quantity_available"`
	QuantityDistributed int       `json:"quantity_distributed" db:"quantity_distributed"`
}

// GameStats is the admin dashboard aggregate.
type GameStats struct {
	Participants    int                   `json:"participants"`
	ReceiptsPending int                   `json:"receipts_pending"`
	ReceiptsOK      int                   `json:"receipts_validated"`
	ReceiptsKO      int                   `json:"receipts_rejected"`
	WinsByPrize     []PrizeWinStat        `json:"wins_by_prize"`
	DailyTotals     []DayDistributionStat `json:"daily_totals"`
}
