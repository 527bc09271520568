package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"datalens/adapters/postgres"
	"datalens/domain/core"
	"datalens/internal"
	"datalens/internal/config"
	"datalens/internal/session"
	"datalens/ui"
)

// journalSink adapts the Postgres upload journal to the UI's audit hook.
type journalSink struct {
	journal *postgres.Journal
	log     *internal.Logger
}

func (s *journalSink) RecordUpload(ds *session.Dataset, sid core.SessionID, size int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.journal.Record(ctx, postgres.UploadRecord{
		ID:          ds.ID,
		SessionID:   sid,
		Filename:    ds.Filename,
		FileSize:    size,
		RowCount:    ds.Table.RowCount(),
		ColumnCount: ds.Table.ColumnCount(),
		UploadedAt:  ds.UploadedAt,
	})
	if err != nil {
		s.log.Warn("upload journal: %v", err)
	}
}

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	log := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration: %v", err)
		return
	}

	var journal ui.Journal
	if cfg.Journal.Enabled() {
		j, err := postgres.OpenJournal(cfg.Journal.URL)
		if err != nil {
			log.Error("upload journal disabled: %v", err)
		} else {
			defer j.Close()
			journal = &journalSink{journal: j, log: log}
			log.Info("upload journal enabled")
		}
	}

	app, err := ui.NewApp(cfg, journal)
	if err != nil {
		log.Error("failed to initialize app: %v", err)
		return
	}

	addr := ":" + cfg.Server.Port
	log.Info("datalens listening on %s (upload limit %d MB)", addr, cfg.Upload.MaxUploadMB)
	if err := http.ListenAndServe(addr, app.Router()); err != nil {
		log.Error("server stopped: %v", err)
	}
}
