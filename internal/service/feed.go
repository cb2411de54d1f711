package service

import (
	"sync"

	"blogapi/internal/models"
)

// Per-subscriber buffer; a subscriber that falls this far behind starts
// losing posts instead of blocking publishers.
const feedBuffer = 8

// FeedService fans newly created posts out to WebSocket subscribers.
type FeedService struct {
	mu   sync.Mutex
	subs map[chan models.Post]struct{}
}

func NewFeedService() *FeedService {
	return &FeedService{subs: make(map[chan models.Post]struct{})}
}

var _ Feed = (*FeedService)(nil)

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. Cancel is idempotent and closes the channel.
func (s *FeedService) Subscribe() (<-chan models.Post, func()) {
	ch := make(chan models.Post, feedBuffer)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers p to every subscriber without blocking; full buffers drop.
func (s *FeedService) Publish(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- p:
		default: // slow subscriber
		}
	}
}
