package service

import (
	"sync"

	"flowauth/internal/authn/models"
)

const subscriberBuffer = 16

// statePublisher holds the current session state and fans transitions out
// to subscribers. Publishing never blocks: a subscriber whose buffer is
// full misses that transition and catches up on the next one.
type statePublisher struct {
	mu      sync.RWMutex
	current models.AuthenticationState
	subs    map[int]chan models.AuthenticationState
	nextID  int
}

func newStatePublisher() *statePublisher {
	return &statePublisher{
		current: models.StateInitial{},
		subs:    make(map[int]chan models.AuthenticationState),
	}
}

func (p *statePublisher) Current() models.AuthenticationState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *statePublisher) Publish(state models.AuthenticationState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = state
	for _, ch := range p.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel function must
// be called to release it; the channel is closed on cancel.
func (p *statePublisher) Subscribe() (<-chan models.AuthenticationState, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan models.AuthenticationState, subscriberBuffer)
	p.subs[id] = ch

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if sub, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
