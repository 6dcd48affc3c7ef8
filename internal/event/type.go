package event

import "time"

const (
	WinNotiQueue     = "win_noti_events"
	WinNotiDeadQueue = "win_noti_events_dlq"
)

// WinEvent is published whenever a participant wins a prize, by scratch draw
// or by raffle. The notification consumer turns it into an email.
type WinEvent struct {
	WinID            string `json:"win_id"`
	ParticipantEmail string `json:"participant_email"`
	ParticipantName  string `json:"participant_name"`
	PrizeTitle       string `json:"prize_title"`
	Source           string `json:"source"`
}

// WinMessage is the queue envelope around a WinEvent.
type WinMessage struct {
	ID         string    `json:"id"`
	Payload    WinEvent  `json:"payload"`
	RetryCount int       `json:"retry_count"`
	MaxRetries int       `json:"max_retries"`
	CreatedAt  time.Time `json:"created_at"`
}
