package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	yamlcatalog "decisionlab/internal/adapter/catalog/yamlcatalog"
	httpadapter "decisionlab/internal/adapter/http"
	journalmem "decisionlab/internal/adapter/journal/memory"
	journalsqlite "decisionlab/internal/adapter/journal/sqlite"
	metricsinmem "decisionlab/internal/adapter/metrics/inmemory"
	gormrepo "decisionlab/internal/adapter/repo/gorm"
	"decisionlab/internal/adapter/repo/memory"
	"decisionlab/internal/app/create"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/app/replay"
	"decisionlab/internal/app/scenarios"
	"decisionlab/internal/app/status"
	"decisionlab/internal/app/transition"
	"decisionlab/internal/app/turn"
	"decisionlab/internal/config"
	"decisionlab/internal/domain/scenario"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type stores struct {
	Sessions  ports.SessionRepository
	TxManager ports.TxManager
	Journal   ports.TurnJournal
	closers   []func() error
}

func (s stores) Close() {
	for _, c := range s.closers {
		_ = c()
	}
}

func main() {
	logger := log.New(os.Stdout, "[decisionlab] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	reg := scenario.DefaultRegistry()
	catalog, err := yamlcatalog.Load(cfg.CatalogDir, reg)
	if err != nil {
		logger.Fatalf("load scenario catalog: %v", err)
	}
	st, err := buildStores(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalf("build stores: %v", err)
	}
	defer st.Close()

	h := buildHandler(cfg, reg, catalog, st, metricsinmem.NewRecorder(), logger)
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	logger.Printf("decisionlab server listening on %s (postgres=%v journal=%q)", cfg.HTTPAddr, cfg.UsePostgres(), cfg.JournalPath)
	s.Spin()
}

func buildHandler(cfg config.Config, reg scenario.Registry, catalog ports.ScenarioCatalog, st stores, rec *metricsinmem.Recorder, logger *log.Logger) httpadapter.Handler {
	return httpadapter.Handler{
		ScenariosUC: scenarios.UseCase{Catalog: catalog},
		CreateUC: create.UseCase{
			TxManager: st.TxManager,
			Sessions:  st.Sessions,
			Catalog:   catalog,
			Rulesets:  reg,
			Now:       time.Now,
		},
		StatusUC: status.UseCase{Sessions: st.Sessions, Rulesets: reg},
		TransitionUC: transition.UseCase{
			TxManager: st.TxManager,
			Sessions:  st.Sessions,
			Rulesets:  reg,
			Metrics:   rec,
			Now:       time.Now,
		},
		TurnUC: turn.UseCase{
			TxManager: st.TxManager,
			Sessions:  st.Sessions,
			Rulesets:  reg,
			Journal:   st.Journal,
			Metrics:   rec,
			Logger:    logger,
			Now:       time.Now,
		},
		ReplayUC:   replay.UseCase{Journal: st.Journal},
		KPI:        rec,
		CORSOrigin: cfg.CORSOrigin,
	}
}

// buildStores picks postgres for sessions when a DSN is set. The journal goes to
// sqlite when a path is set, then postgres, then memory.
func buildStores(ctx context.Context, cfg config.Config, logger *log.Logger) (stores, error) {
	var st stores
	if cfg.UsePostgres() {
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return stores{}, err
		}
		applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
		if err != nil {
			return stores{}, fmt.Errorf("migrate: %w", err)
		}
		if len(applied) > 0 {
			logger.Printf("applied migrations: %v", applied)
		}
		st.Sessions = gormrepo.NewSessionRepo(db)
		st.TxManager = gormrepo.NewTxManager(db)
		st.Journal = gormrepo.NewTurnRepo(db)
	} else {
		store := memory.NewStore()
		st.Sessions = memory.NewSessionRepo(store)
		st.TxManager = memory.NewTxManager(store)
		st.Journal = journalmem.NewJournal()
	}

	if cfg.JournalPath != "" {
		j, err := journalsqlite.Open(cfg.JournalPath)
		if err != nil {
			return stores{}, fmt.Errorf("open turn journal: %w", err)
		}
		st.Journal = j
		st.closers = append(st.closers, j.Close)
	}
	return st, nil
}
