package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/repository"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStats(t *testing.T) {
	var out bytes.Buffer
	err := RunStats(&out, []string{"--dexterity", "14", "--level", "5", "--prof", "stealth, acrobatics"})
	require.NoError(t, err)

	s := out.String()
	assert.Regexp(t, `dexterity-mod\s+\+2`, s)
	assert.Regexp(t, `proficiency-bonus\s+\+3`, s)
	assert.Regexp(t, `initiative\s+\+2`, s)
	assert.Regexp(t, `stealth-mod\s+\+5 \*`, s)
	assert.Regexp(t, `survival-mod\s+\+0  `, s)
}

func TestRunStats_UnknownSkill(t *testing.T) {
	var out bytes.Buffer
	err := RunStats(&out, []string{"--prof", "flying"})
	assert.ErrorIs(t, err, domain.ErrUnknownSkill)
}

func TestSnapshotCommand(t *testing.T) {
	ctx := context.Background()
	bridge := snapservice.NewBridge(repository.NewMemoryStore())
	require.NoError(t, bridge.Put(ctx, "s1", "http://img/x.png", snapdomain.Draft{Class: "Rogue"}))

	var out bytes.Buffer
	require.NoError(t, snapshotCommand(ctx, &out, bridge, "get", "s1"))
	assert.Contains(t, out.String(), `"generatedCharacterImage": "http://img/x.png"`)

	out.Reset()
	require.NoError(t, snapshotCommand(ctx, &out, bridge, "clear", "s1"))
	assert.Contains(t, out.String(), "cleared")

	out.Reset()
	require.NoError(t, snapshotCommand(ctx, &out, bridge, "get", "s1"))
	assert.Equal(t, "no snapshot\n", out.String())

	assert.Error(t, snapshotCommand(ctx, &out, bridge, "purge", "s1"))
}
