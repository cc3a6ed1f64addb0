package tasks

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"quill/app/repositories"
	"quill/app/services"
)

const (
	sessionSweepSpec = "@hourly"
	valueLogGCSpec   = "@every 30m"
	valueLogGCRatio  = 0.5
)

// Maintenance runs the background jobs: sweeping expired sessions and
// reclaiming Badger value-log space.
type Maintenance struct {
	sessions repositories.SessionRepository
	db       *badger.DB
	clock    services.Clock
	cron     *cron.Cron
	log      *zap.Logger
}

func NewMaintenance(
	sessions repositories.SessionRepository,
	db *badger.DB,
	clock services.Clock,
	log *zap.Logger,
) *Maintenance {
	return &Maintenance{
		sessions: sessions,
		db:       db,
		clock:    clock,
		cron:     cron.New(),
		log:      log,
	}
}

// Start registers the jobs and starts the scheduler.
func (m *Maintenance) Start() error {
	if _, err := m.cron.AddFunc(sessionSweepSpec, m.sweepSessions); err != nil {
		return err
	}
	if _, err := m.cron.AddFunc(valueLogGCSpec, m.collectGarbage); err != nil {
		return err
	}
	m.cron.Start()
	m.log.Info("maintenance jobs started",
		zap.String("session_sweep", sessionSweepSpec),
		zap.String("value_log_gc", valueLogGCSpec))
	return nil
}

// Stop halts the scheduler and returns a context that is done once any
// running job has finished.
func (m *Maintenance) Stop() context.Context {
	return m.cron.Stop()
}

func (m *Maintenance) sweepSessions() {
	removed, err := m.sessions.DeleteExpired(m.clock.Now())
	if err != nil {
		m.log.Error("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		m.log.Info("expired sessions removed", zap.Int("count", removed))
	}
}

func (m *Maintenance) collectGarbage() {
	// Badger rewrites at most one value-log file per call, so loop
	// until it reports nothing left to collect.
	for {
		err := m.db.RunValueLogGC(valueLogGCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return
		}
		if err != nil {
			m.log.Error("value log gc failed", zap.Error(err))
			return
		}
	}
}
