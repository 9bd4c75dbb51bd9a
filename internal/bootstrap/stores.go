package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/GoSim-25-26J-441/charforge-backend/config"
	sheetrepo "github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/repository"
	sheetservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/service"
	snaprepo "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/repository"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/storage/sqldb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SnapshotStore is the bridge backend plus what it holds open.
type SnapshotStore struct {
	Store snapservice.Store
	Redis *redis.Client // set for the redis backend
	SQL   *sqldb.DB     // set for the sql backend
}

func (s *SnapshotStore) Close() {
	if s.Redis != nil {
		s.Redis.Close()
	}
	if s.SQL != nil {
		s.SQL.Close()
	}
}

// OpenSnapshotStore selects the bridge backend from SNAPSHOT_BACKEND.
func OpenSnapshotStore(ctx context.Context, cfg *config.Config) (*SnapshotStore, error) {
	switch cfg.Snapshot.Backend {
	case "memory", "":
		return &SnapshotStore{Store: snaprepo.NewMemoryStore()}, nil

	case "redis":
		client, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Printf("[info] snapshot store: redis addr=%s", cfg.Redis.Addr)
		return &SnapshotStore{Store: snaprepo.NewRedisStore(client), Redis: client}, nil

	case "sql":
		db, err := sqldb.Open(cfg.Snapshot.SQLDriver, cfg.Snapshot.SQLDSN)
		if err != nil {
			return nil, err
		}
		store := snaprepo.NewSQLStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Printf("[info] snapshot store: sql driver=%s", cfg.Snapshot.SQLDriver)
		return &SnapshotStore{Store: store, SQL: db}, nil

	default:
		return nil, fmt.Errorf("unsupported SNAPSHOT_BACKEND: %s", cfg.Snapshot.Backend)
	}
}

// OpenSheetRepository returns the postgres repository when a database is
// configured, after applying migrations; otherwise sheets stay in memory
// and the returned pool is nil.
func OpenSheetRepository(ctx context.Context, cfg config.DatabaseConfig) (sheetservice.Repository, *pgxpool.Pool, error) {
	dsn := cfg.SheetDSN()
	if dsn == "" {
		log.Println("[info] sheet repository: memory (DB_DSN not set)")
		return sheetrepo.NewMemoryRepository(), nil, nil
	}

	if err := sheetrepo.Migrate(dsn); err != nil {
		return nil, nil, fmt.Errorf("migrate sheets: %w", err)
	}

	pool, err := OpenDB(ctx, DBOptions{DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	log.Println("[info] sheet repository: postgres")
	return sheetrepo.NewPostgresRepository(pool), pool, nil
}
