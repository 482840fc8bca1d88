package etl

import (
	"context"
	"fmt"
)

//go:generate mockgen -destination=mock/session.go -package=mock github.com/lunarway/redshift-dwh/internal/core/etl Session,SourceInspector

// Session is a single open connection to the warehouse. Execute commits every
// statement on its own.
type Session interface {
	Execute(ctx context.Context, statement Statement) error
	Count(ctx context.Context, table string) (int64, error)
	Close() error
}

// SourceInspector reports how many objects are stored below an s3:// location.
type SourceInspector interface {
	CountObjects(ctx context.Context, location string) (int64, error)
}

type StatementError struct {
	Statement Statement
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("unable to execute %s: %v", e.Statement.Name, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}
