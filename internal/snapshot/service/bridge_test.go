package service

import (
	"context"
	"errors"
	"testing"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) Put(context.Context, string, domain.Record) error { return f.err }
func (f failingStore) Get(context.Context, string) (domain.Record, bool, error) {
	return domain.Record{}, false, f.err
}
func (f failingStore) Clear(context.Context, string) error { return f.err }

func TestBridge_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(repository.NewMemoryStore())

	draft := domain.Draft{Age: "120", Gender: "female", Species: "Elf", Class: "Wizard", Location: "forest", Color: "green"}
	require.NoError(t, b.Put(ctx, "sess", "x.png", draft))

	snap, ok, err := b.Get(ctx, "sess")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x.png", snap.Image)
	require.NotNil(t, snap.Draft)
	assert.Equal(t, draft, *snap.Draft)
}

func TestBridge_StoresHostFormat(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	b := NewBridge(store)

	require.NoError(t, b.Put(ctx, "sess", "data:image/png;base64,AAA", domain.Draft{Species: "Dwarf", Class: "Cleric"}))

	rec, ok, err := b.Raw(ctx, "sess")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAA", rec.GeneratedCharacterImage)
	assert.JSONEq(t,
		`{"age":"","gender":"","species":"Dwarf","class":"Cleric","location":"","color":""}`,
		rec.CharacterFormData)
}

func TestBridge_Absent(t *testing.T) {
	snap, ok, err := NewBridge(repository.NewMemoryStore()).Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, snap.Draft)
}

func TestBridge_MalformedDraftKeepsImage(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "sess", domain.Record{
		GeneratedCharacterImage: "x.png",
		CharacterFormData:       "{not json",
	}))

	snap, ok, err := NewBridge(store).Get(ctx, "sess")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x.png", snap.Image)
	assert.Nil(t, snap.Draft)
}

func TestBridge_RequiresSession(t *testing.T) {
	b := NewBridge(repository.NewMemoryStore())
	ctx := context.Background()

	assert.ErrorIs(t, b.Put(ctx, " ", "x.png", domain.Draft{}), domain.ErrSessionRequired)
	_, _, err := b.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrSessionRequired)
	assert.ErrorIs(t, b.Clear(ctx, ""), domain.ErrSessionRequired)
}

func TestBridge_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("redis down")
	b := NewBridge(failingStore{err: boom})

	assert.ErrorIs(t, b.Put(context.Background(), "s", "x.png", domain.Draft{}), boom)
	_, ok, err := b.Get(context.Background(), "s")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestDecodeDraft(t *testing.T) {
	d, err := DecodeDraft(`{"species":"Elf","class":"Wizard","extra":1}`)
	require.NoError(t, err)
	assert.Equal(t, "Elf", d.Species)

	_, err = DecodeDraft("[")
	assert.ErrorIs(t, err, domain.ErrMalformedDraft)
}
