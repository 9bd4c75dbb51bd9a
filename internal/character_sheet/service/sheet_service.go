package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/view"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
)

// Repository persists user inputs between page loads.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*domain.SavedSheet, error)
	Save(ctx context.Context, sessionID string, saved domain.SavedSheet) error
}

// SnapshotReader is the consumer side of the persistence bridge.
type SnapshotReader interface {
	Get(ctx context.Context, sessionID string) (snapdomain.Snapshot, bool, error)
}

type session struct {
	mu    sync.Mutex
	sheet *view.Sheet

	// lastSeen is guarded by SheetService.mu.
	lastSeen time.Time
}

// SheetService owns one sheet view-model per session.
type SheetService struct {
	repo   Repository
	bridge SnapshotReader
	feed   *Feed
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSheetService creates a new SheetService
func NewSheetService(repo Repository, bridge SnapshotReader) *SheetService {
	return &SheetService{
		repo:     repo,
		bridge:   bridge,
		feed:     NewFeed(),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Feed returns the per-session update fan-out used by live connections.
func (s *SheetService) Feed() *Feed {
	return s.feed
}

// Load builds a fresh sheet for a page load: defaults, then saved inputs,
// then a single read of the bridge snapshot. Storage errors are logged and
// treated as absence.
func (s *SheetService) Load(ctx context.Context, sessionID string) view.State {
	sess := s.load(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.sheet.State()
}

func (s *SheetService) load(ctx context.Context, sessionID string) *session {
	logger := logging.NewLogger(ctx)
	sheet := view.NewSheet()

	saved, err := s.repo.Get(ctx, sessionID)
	switch {
	case err == nil:
		sheet.Restore(*saved)
	case errors.Is(err, domain.ErrSheetNotFound):
	default:
		logger.LogWarnf("sheet_load", "failed to restore saved sheet: %v", err)
	}

	snap, ok, err := s.bridge.Get(ctx, sessionID)
	if err != nil {
		logger.LogWarnf("sheet_load", "failed to read snapshot: %v", err)
		ok = false
	}
	sheet.Load(snap, ok)

	sess := &session{sheet: sheet}
	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	logger.LogInfof("sheet_load", "snapshot_found=%t", ok)
	return sess
}

// State returns the current sheet, loading it on first use.
func (s *SheetService) State(ctx context.Context, sessionID string) view.State {
	var st view.State
	s.with(ctx, sessionID, func(sheet *view.Sheet) {
		st = sheet.State()
	})
	return st
}

func (s *SheetService) SetAbility(ctx context.Context, sessionID string, ability domain.Ability, raw string) ([]view.Update, error) {
	return s.edit(ctx, sessionID, func(sheet *view.Sheet) ([]view.Update, error) {
		return sheet.SetAbility(ability, raw)
	})
}

func (s *SheetService) SetLevel(ctx context.Context, sessionID, raw string) []view.Update {
	updates, _ := s.edit(ctx, sessionID, func(sheet *view.Sheet) ([]view.Update, error) {
		return sheet.SetLevel(raw), nil
	})
	return updates
}

func (s *SheetService) SetProficiency(ctx context.Context, sessionID, skill string, checked bool) ([]view.Update, error) {
	return s.edit(ctx, sessionID, func(sheet *view.Sheet) ([]view.Update, error) {
		return sheet.SetProficiency(skill, checked)
	})
}

func (s *SheetService) SetField(ctx context.Context, sessionID, id, value string) error {
	_, err := s.edit(ctx, sessionID, func(sheet *view.Sheet) ([]view.Update, error) {
		return nil, sheet.SetField(id, value)
	})
	return err
}

// PortraitFailed hides the portrait for the session.
func (s *SheetService) PortraitFailed(ctx context.Context, sessionID string) {
	s.with(ctx, sessionID, func(sheet *view.Sheet) {
		sheet.PortraitFailed()
	})
}

func (s *SheetService) BackToGenerator() view.Navigation {
	return view.NewSheet().BackToGenerator()
}

// edit applies fn, persists the inputs and publishes the updates. Save and
// Publish run under the session lock so storage and subscribers see edits
// in the order they were applied.
func (s *SheetService) edit(ctx context.Context, sessionID string, fn func(*view.Sheet) ([]view.Update, error)) ([]view.Update, error) {
	var (
		updates []view.Update
		editErr error
	)
	s.with(ctx, sessionID, func(sheet *view.Sheet) {
		updates, editErr = fn(sheet)
		if editErr != nil {
			return
		}
		if err := s.repo.Save(ctx, sessionID, sheet.Saved()); err != nil {
			logging.NewLogger(ctx).LogWarnf("sheet_save", "failed to persist sheet: %v", err)
		}
		if len(updates) > 0 {
			s.feed.Publish(sessionID, updates)
		}
	})
	if editErr != nil {
		return nil, editErr
	}
	return updates, nil
}

// EvictIdle drops sheets untouched for longer than maxIdle. Sessions with a
// live subscriber are kept. An evicted session reloads from the repository
// on its next request.
func (s *SheetService) EvictIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) || s.feed.Subscribers(id) > 0 {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	return evicted
}

// Sessions reports how many sheets are held in memory.
func (s *SheetService) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// with runs fn while holding the session's lock. The sheet is loaded first
// if the session has none yet.
func (s *SheetService) with(ctx context.Context, sessionID string, fn func(*view.Sheet)) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()
	if !ok {
		sess = s.load(ctx, sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.sheet)
}
