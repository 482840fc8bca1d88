package service

import (
	"github.com/go-logr/logr"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
)

type WarehouseEventRecorder struct {
	logger logr.Logger
}

func NewWarehouseEventRecorder(logger logr.Logger) *WarehouseEventRecorder {
	return &WarehouseEventRecorder{logger: logger}
}

func (e *WarehouseEventRecorder) Handle(eventType warehouse.ApplyEventType, name string) {
	e.logger.Info("Event occurred", "eventType", eventType.ToString(), "name", name)
}
