package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/charforge-backend/config"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/bootstrap"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
)

// RunSnapshot inspects or clears one session's snapshot in the configured store.
func RunSnapshot(w io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: worker snapshot get|clear <session>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()
	store, err := bootstrap.OpenSnapshotStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return snapshotCommand(ctx, w, snapservice.NewBridge(store.Store), args[0], args[1])
}

func snapshotCommand(ctx context.Context, w io.Writer, bridge *snapservice.Bridge, action, sessionID string) error {
	switch action {
	case "get":
		rec, ok, err := bridge.Raw(ctx, sessionID)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "no snapshot")
			return nil
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "clear":
		if err := bridge.Clear(ctx, sessionID); err != nil {
			return err
		}
		fmt.Fprintf(w, "cleared snapshot for session %s\n", sessionID)
		return nil
	default:
		return fmt.Errorf("unknown snapshot action: %s", action)
	}
}
