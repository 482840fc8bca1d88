package etl

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

type LoadManager struct {
	config    LoadConfig
	runner    *StatementRunner
	inspector SourceInspector
	logger    logr.Logger
}

// NewLoadManager takes an optional inspector, when nil the S3 sources are not
// checked before copying.
func NewLoadManager(config LoadConfig, session Session, inspector SourceInspector, logger logr.Logger) *LoadManager {
	return &LoadManager{
		config:    config,
		runner:    NewStatementRunner(session, logger),
		inspector: inspector,
		logger:    logger,
	}
}

func (m *LoadManager) Preflight(ctx context.Context) error {
	if m.inspector == nil {
		return nil
	}
	for _, location := range []string{m.config.LogData, m.config.SongData} {
		count, err := m.inspector.CountObjects(ctx, location)
		if err != nil {
			return fmt.Errorf("unable to inspect %s: %w", location, err)
		}
		if count == 0 {
			return fmt.Errorf("no objects found below %s", location)
		}
		m.logger.Info("source located", "location", location, "objects", count)
	}
	return nil
}

// Load copies the raw data into the staging tables and returns their row counts.
func (m *LoadManager) Load(ctx context.Context) (map[string]int64, error) {
	if err := m.Preflight(ctx); err != nil {
		return nil, err
	}
	if err := m.runner.Run(ctx, CopyStatements(m.config)); err != nil {
		return nil, fmt.Errorf("unable to load staging tables: %w", err)
	}
	return m.runner.countRows(ctx, StagingTables)
}
