// internal/productform/registry.go
package productform

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type session struct {
	ctrl     *Controller
	lastUsed time.Time
}

// Registry keeps one Controller per admin session.
type Registry struct {
	store    CatalogStore
	uploader AssetUploader
	cfg      ControllerConfig
	clock    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry(store CatalogStore, uploader AssetUploader, cfg ControllerConfig) *Registry {
	return &Registry{
		store:    store,
		uploader: uploader,
		cfg:      cfg,
		clock:    time.Now,
		sessions: make(map[string]*session),
	}
}

// Session returns the controller for sessionID, creating it on first use.
func (r *Registry) Session(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &session{ctrl: NewController(sessionID, r.store, r.uploader, r.cfg)}
		r.sessions[sessionID] = s
	}
	s.lastUsed = r.clock()
	return s.ctrl
}

// Drop forgets a session, discarding its draft.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions unused for longer than idle and returns how many it
// dropped. A session with a running submission is kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.clock().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.sessions {
		if s.lastUsed.Before(cutoff) && !s.ctrl.InFlight() {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// StartJanitor sweeps idle sessions every interval until ctx is done.
func (r *Registry) StartJanitor(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}

	logger := r.cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(idle); n > 0 {
					logger.WithFields(logrus.Fields{"dropped": n, "remaining": r.Len()}).Info("Dropped idle form sessions")
				}
			}
		}
	}()
}
