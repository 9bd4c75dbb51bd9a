package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/alerting"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
)

// ImageGenerator produces a portrait reference for a draft.
type ImageGenerator interface {
	Generate(ctx context.Context, draft snapdomain.Draft) (string, error)
}

// SnapshotWriter is the producer side of the persistence bridge.
type SnapshotWriter interface {
	Put(ctx context.Context, sessionID, image string, draft snapdomain.Draft) error
}

// Generator owns the generator view state of every session.
//
// Submissions are not serialized: two in-flight submissions for one session
// both run and whichever finishes last decides the view.
type Generator struct {
	images ImageGenerator
	bridge SnapshotWriter
	policy *alerting.Policy
	facts  *FunFacts
	now    func() time.Time

	mu    sync.RWMutex
	views map[string]viewEntry
}

type viewEntry struct {
	view    domain.ViewState
	touched time.Time
}

func NewGenerator(images ImageGenerator, bridge SnapshotWriter, policy *alerting.Policy, facts *FunFacts) *Generator {
	if facts == nil {
		facts = NewFunFacts(nil)
	}
	return &Generator{
		images: images,
		bridge: bridge,
		policy: policy,
		facts:  facts,
		now:    time.Now,
		views:  make(map[string]viewEntry),
	}
}

// Submit flips to the loading face, calls the image service once and
// settles the view on the result.
func (g *Generator) Submit(ctx context.Context, sessionID string, draft snapdomain.Draft) domain.ViewState {
	logger := logging.NewLogger(ctx)
	recordSubmission()

	fact := g.facts.Random()
	g.setView(sessionID, domain.LoadingView(fact))

	image, err := g.images.Generate(ctx, draft)
	var next domain.ViewState
	switch {
	case err == nil:
		recordSuccess()
		next = domain.ResultView(image, fact)
		if perr := g.bridge.Put(ctx, sessionID, image, draft); perr != nil {
			logger.LogWarnf("generate_character", "failed to persist snapshot: %v", perr)
		}
		logger.LogInfo("generate_character", "character generated")

	case errors.Is(err, domain.ErrNoImage):
		recordSoftFailure()
		next = domain.FrontView()
		logger.LogInfo("generate_character", "no image in response, returning to form")

	default:
		if alerting.Classify(err) == alerting.ClassTransport {
			recordTransportFailure()
		} else {
			recordApplicationFailure()
		}
		next = domain.FrontView()
		next.Alert = g.policy.Notify(ctx, "generate_character", err)
	}

	g.setView(sessionID, next)
	return next
}

// Reset is the "generate another" control. The snapshot is left alone.
func (g *Generator) Reset(ctx context.Context, sessionID string) domain.ViewState {
	front := domain.FrontView()
	g.setView(sessionID, front)
	logging.NewLogger(ctx).LogDebugf("reset_generator", "view reset")
	return front
}

// View returns the session's current view; a new session sees the form.
func (g *Generator) View(_ context.Context, sessionID string) domain.ViewState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if e, ok := g.views[sessionID]; ok {
		return e.view
	}
	return domain.FrontView()
}

// EvictIdle forgets views not written for longer than maxIdle. A forgotten
// session sees the form again, which is also the view of a new session.
func (g *Generator) EvictIdle(maxIdle time.Duration) int {
	cutoff := g.now().Add(-maxIdle)
	g.mu.Lock()
	defer g.mu.Unlock()

	evicted := 0
	for id, e := range g.views {
		if e.touched.After(cutoff) || e.view.Loading {
			continue
		}
		delete(g.views, id)
		evicted++
	}
	return evicted
}

// Sessions reports how many views are held in memory.
func (g *Generator) Sessions() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.views)
}

func (g *Generator) FunFact() string {
	return g.facts.Random()
}

func (g *Generator) setView(sessionID string, v domain.ViewState) {
	g.mu.Lock()
	g.views[sessionID] = viewEntry{view: v, touched: g.now()}
	g.mu.Unlock()
}
