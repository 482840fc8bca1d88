package redshift

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/lib/pq"
	"github.com/lunarway/redshift-dwh/internal/core/etl"
	log "github.com/sirupsen/logrus"
)

type ClusterCredentials struct {
	Username string
	Password string
	Database string
	Host     string
	Sslmode  string
	Port     int
}

func (c ClusterCredentials) connectionString() string {
	sslmode := c.Sslmode
	if sslmode == "" {
		sslmode = "require"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username), url.QueryEscape(c.Password), c.Host, c.Port, c.Database, sslmode)
}

// Client is the SQL session against the cluster. Every statement runs in its
// own transaction.
type Client struct {
	db         *sql.DB
	logger     log.FieldLogger
	logQueries bool
}

func NewClient(credentials ClusterCredentials, logQueries bool) (*Client, error) {
	db, err := sql.Open("postgres", credentials.connectionString())
	if err != nil {
		return nil, err
	}
	// one connection, owned by the calling sequence for its whole lifetime
	db.SetMaxOpenConns(1)

	return &Client{
		db:         db,
		logger:     log.WithFields(log.Fields{"host": credentials.Host, "database": credentials.Database}),
		logQueries: logQueries,
	}, nil
}

func Connect(ctx context.Context, credentials ClusterCredentials, logQueries bool) (*Client, error) {
	client, err := NewClient(credentials, logQueries)
	if err != nil {
		return nil, err
	}
	if err := client.db.PingContext(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to connect to %s:%d: %w", credentials.Host, credentials.Port, err)
	}
	return client, nil
}

func (c *Client) Execute(ctx context.Context, statement etl.Statement) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	execer := NewLoggingExecer(tx, c.logger.WithField("statement", statement.Name), c.logQueries)
	_, err = execer.ExecContext(ctx, statement.Query)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			c.logger.WithError(rollbackErr).Warnf("unable to roll back %s", statement.Name)
		}
		return describe(err)
	}

	return tx.Commit()
}

func (c *Client) Count(ctx context.Context, table string) (int64, error) {
	var count int64
	err := c.db.QueryRowContext(ctx, fmt.Sprintf("SELECT count(*) FROM %s", pq.QuoteIdentifier(table))).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unable to count rows of %s: %w", table, describe(err))
	}
	return count, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// describe adds the server side detail lib/pq keeps out of Error(), Redshift puts
// the pointer to stl_load_errors there when a COPY fails.
func describe(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Detail == "" {
		return err
	}
	return fmt.Errorf("%w (%s: %s)", err, pqErr.Code.Name(), pqErr.Detail)
}
