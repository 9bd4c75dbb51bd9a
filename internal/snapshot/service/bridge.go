package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
)

// Store is the host key-value store behind the bridge.
type Store interface {
	Put(ctx context.Context, sessionID string, rec domain.Record) error
	Get(ctx context.Context, sessionID string) (domain.Record, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

// Bridge hands the last generated portrait and its draft from the generator
// (producer) to the character sheet (consumer). Writes replace the previous
// snapshot wholesale; nothing expires.
type Bridge struct {
	store Store
}

func NewBridge(store Store) *Bridge {
	return &Bridge{store: store}
}

// Put overwrites the snapshot for sessionID.
func (b *Bridge) Put(ctx context.Context, sessionID, image string, draft domain.Draft) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrSessionRequired
	}

	formData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	return b.store.Put(ctx, sessionID, domain.Record{
		GeneratedCharacterImage: image,
		CharacterFormData:       string(formData),
	})
}

// Get returns the current snapshot. ok is false when nothing was ever
// written or the store was cleared. Unparseable form data is logged and
// dropped; the image is still returned.
func (b *Bridge) Get(ctx context.Context, sessionID string) (domain.Snapshot, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Snapshot{}, false, domain.ErrSessionRequired
	}

	rec, ok, err := b.store.Get(ctx, sessionID)
	if err != nil || !ok {
		return domain.Snapshot{}, false, err
	}

	snap := domain.Snapshot{Image: rec.GeneratedCharacterImage}
	if rec.CharacterFormData != "" {
		draft, err := DecodeDraft(rec.CharacterFormData)
		if err != nil {
			logging.NewLogger(ctx).LogWarnf("snapshot_get", "failed to parse character data: %v", err)
		} else {
			snap.Draft = draft
		}
	}
	return snap, true, nil
}

// Raw returns the stored key values untouched.
func (b *Bridge) Raw(ctx context.Context, sessionID string) (domain.Record, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Record{}, false, domain.ErrSessionRequired
	}
	return b.store.Get(ctx, sessionID)
}

func (b *Bridge) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrSessionRequired
	}
	return b.store.Clear(ctx, sessionID)
}

// DecodeDraft parses characterFormData.
func DecodeDraft(formData string) (*domain.Draft, error) {
	var d domain.Draft
	if err := json.Unmarshal([]byte(formData), &d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDraft, err)
	}
	return &d, nil
}
