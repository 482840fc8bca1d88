package etl

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
)

type Stage int

const (
	NotLoaded Stage = iota
	StagingLoaded
	Transformed
)

func (s Stage) String() string {
	return [...]string{"NotLoaded", "StagingLoaded", "Transformed"}[s]
}

var ErrStagingNotLoaded = errors.New("staging tables have not been loaded in this run")

type Pipeline struct {
	loader      *LoadManager
	transformer *TransformManager
	stage       Stage
	logger      logr.Logger
}

func NewPipeline(loader *LoadManager, transformer *TransformManager, logger logr.Logger) *Pipeline {
	return &Pipeline{loader: loader, transformer: transformer, stage: NotLoaded, logger: logger}
}

func (p *Pipeline) Stage() Stage {
	return p.stage
}

func (p *Pipeline) Load(ctx context.Context) error {
	if _, err := p.loader.Load(ctx); err != nil {
		return err
	}
	p.stage = StagingLoaded
	p.logger.Info("pipeline stage reached", "stage", p.stage.String())
	return nil
}

func (p *Pipeline) Transform(ctx context.Context) error {
	if p.stage != StagingLoaded {
		return ErrStagingNotLoaded
	}
	if _, err := p.transformer.Transform(ctx); err != nil {
		return err
	}
	p.stage = Transformed
	p.logger.Info("pipeline stage reached", "stage", p.stage.String())
	return nil
}

func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Load(ctx); err != nil {
		return err
	}
	return p.Transform(ctx)
}
