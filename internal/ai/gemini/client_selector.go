package gemini

import (
	"fmt"
	"log/slog"
	"sync"
)

// GeminiClientSelector rotates receipt OCR calls across the configured API
// keys, so one exhausted quota or revoked key does not stall the whole
// validation pipeline.
type GeminiClientSelector struct {
	clients []GeminiClient
	next    int
	mu      sync.Mutex
}

func NewGeminiClientSelector(clients []GeminiClient) *GeminiClientSelector {
	return &GeminiClientSelector{clients: clients}
}

func (s *GeminiClientSelector) nextClient() (*GeminiClient, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := &s.clients[s.next]
	index := s.next
	s.next = (s.next + 1) % len(s.clients)

	return client, index
}

// TryAllClients runs operation against each API key in rotation until one
// succeeds. It fails only once every key has been tried, in which case the
// receipt stays pending for manual review.
func (s *GeminiClientSelector) TryAllClients(operation func(*GeminiClient, int) error) error {
	if len(s.clients) == 0 {
		return fmt.Errorf("no Gemini clients available")
	}

	var lastErr error
	for attempt := 0; attempt < len(s.clients); attempt++ {
		client, clientIdx := s.nextClient()

		err := operation(client, clientIdx)
		if err == nil {
			return nil
		}
		lastErr = err

		slog.Warn("Gemini OCR call failed, rotating to next key",
			"client_index", clientIdx,
			"attempt", attempt+1,
			"error", err)
	}

	return fmt.Errorf("all %d Gemini clients failed, last error: %w", len(s.clients), lastErr)
}
