package massenger

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the default interval between receives.
const DefaultPollInterval = 10 * time.Millisecond

// Poller drives Receive on a Massenger and hands every completed frame
// to Handler. The Massenger must not be used elsewhere while the poller
// runs, except through Do.
type Poller struct {
	Massenger *Massenger
	Handler   Handler
	Interval  time.Duration
	// Wakeup optionally signals new bytes, e.g. StreamTransport.Notify.
	Wakeup <-chan struct{}
	// Settle defers receiving until no byte arrived during one interval, so
	// a frame still in flight isn't dropped by Receive.
	Settle bool

	lock sync.Mutex
}

// NewPoller creates a Poller.
func NewPoller(m *Massenger, h Handler) *Poller {
	return &Poller{Massenger: m, Handler: h, Interval: DefaultPollInterval, Settle: true}
}

// Do runs fn with exclusive access to the Massenger, e.g. to send a message.
func (p *Poller) Do(fn func(*Massenger) error) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	return fn(p.Massenger)
}

// Poll receives and handles all frames currently available and returns
// the number of frames handled.
func (p *Poller) Poll(ctx context.Context) int {
	p.lock.Lock()
	defer p.lock.Unlock()
	var n int
	for p.Massenger.Receive() {
		n++
		if h := p.Handler; h != nil {
			h.HandleMessage(ctx, p.Massenger)
		}
	}
	return n
}

// Run implements Runnable.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-p.Wakeup:
			if p.Settle {
				continue
			}
		}
		if p.Settle {
			n := p.Massenger.Transport.Available()
			if n == 0 || (n != last && n < p.Massenger.Cap()) {
				last = n
				continue
			}
		}
		p.Poll(ctx)
		last = -1
	}
}
