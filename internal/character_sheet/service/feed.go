package service

import (
	"sync"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/view"
)

const subscriberBuffer = 16

// Feed fans recomputed updates out to every live connection of a session.
// A subscriber that falls behind loses batches rather than blocking edits.
type Feed struct {
	mu   sync.RWMutex
	subs map[string]map[chan []view.Update]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[chan []view.Update]struct{})}
}

// Subscribe registers a listener for sessionID. The returned func
// unregisters it and closes the channel.
func (f *Feed) Subscribe(sessionID string) (<-chan []view.Update, func()) {
	ch := make(chan []view.Update, subscriberBuffer)

	f.mu.Lock()
	if f.subs[sessionID] == nil {
		f.subs[sessionID] = make(map[chan []view.Update]struct{})
	}
	f.subs[sessionID][ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[sessionID], ch)
			if len(f.subs[sessionID]) == 0 {
				delete(f.subs, sessionID)
			}
			f.mu.Unlock()
			close(ch)
		})
	}
}

func (f *Feed) Publish(sessionID string, updates []view.Update) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for ch := range f.subs[sessionID] {
		select {
		case ch <- updates:
		default:
		}
	}
}

// Subscribers reports how many listeners a session has.
func (f *Feed) Subscribers(sessionID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[sessionID])
}
