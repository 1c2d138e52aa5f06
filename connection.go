package sqlkit

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Connection struct {
	driver Driver
	config *ConnectConfig
	name   string
	xdb    *sqlx.DB
	logger *logrus.Logger
}

// ExecResult sums up the statements of one Exec call.
type ExecResult struct {
	Success      bool
	AffectedRows int64
	// LastInsertID is the id reported for the last statement, when the driver reports one.
	LastInsertID int64
}

func (c *Connection) Name() string {
	return c.name
}

func (c *Connection) Dialect() Dialect {
	return c.driver.Dialect()
}

func (c *Connection) DB() *sqlx.DB {
	return c.xdb
}

func (c *Connection) Logger() *logrus.Logger {
	return c.logger
}

func (c *Connection) Close() error {
	return c.xdb.Close()
}

func (c *Connection) renderContext() *RenderContext {
	return &RenderContext{
		Dialect:       c.driver.Dialect(),
		Logger:        c.logger.WithField("connection", c.name),
		Parameterized: !c.config.Inline,
		Clauses:       c.config.Clauses,
	}
}

// Render renders every provider for this connection. Nothing is rendered partially: the first
// error aborts.
func (c *Connection) Render(providers ...QueryProvider) ([]*Query, error) {
	var queries []*Query
	for _, p := range providers {
		if p == nil {
			continue
		}
		qs, err := p.Render(c.renderContext())
		if err != nil {
			return nil, err
		}
		queries = append(queries, qs...)
	}
	return queries, nil
}

// Exec renders all providers first and then executes the statements in order.
func (c *Connection) Exec(ctx context.Context, providers ...QueryProvider) (*ExecResult, error) {
	queries, err := c.Render(providers...)
	if err != nil {
		return &ExecResult{}, err
	}
	if len(queries) == 0 {
		return &ExecResult{}, missingField("nothing to execute")
	}
	result := new(ExecResult)
	for _, q := range queries {
		entry := c.logger.WithFields(logrus.Fields{
			"connection": c.name,
			"sql":        q.SQL,
		})
		res, err := c.xdb.ExecContext(ctx, q.SQL, q.Args...)
		if err != nil {
			entry.WithError(err).Error("sqlkit: exec failed")
			return result, errors.Wrap(err, "sqlkit: exec failed")
		}
		if n, err := res.RowsAffected(); err == nil {
			result.AffectedRows += n
		}
		if id, err := res.LastInsertId(); err == nil {
			result.LastInsertID = id
		}
		entry.Debug("sqlkit: exec")
	}
	result.Success = true
	return result, nil
}

// Query scans the rows of a single-statement provider into dst, a pointer to a slice.
func (c *Connection) Query(ctx context.Context, dst any, p QueryProvider) error {
	q, err := c.single(p)
	if err != nil {
		return err
	}
	if err := sqlx.SelectContext(ctx, c.xdb, dst, q.SQL, q.Args...); err != nil {
		c.logger.WithError(err).WithField("sql", q.SQL).Error("sqlkit: query failed")
		return errors.Wrap(err, "sqlkit: query failed")
	}
	return nil
}

// Get scans exactly one row into dst.
func (c *Connection) Get(ctx context.Context, dst any, p QueryProvider) error {
	q, err := c.single(p)
	if err != nil {
		return err
	}
	if err := sqlx.GetContext(ctx, c.xdb, dst, q.SQL, q.Args...); err != nil {
		return errors.Wrap(err, "sqlkit: query failed")
	}
	return nil
}

func (c *Connection) single(p QueryProvider) (*Query, error) {
	queries, err := c.Render(p)
	if err != nil {
		return nil, err
	}
	if len(queries) != 1 {
		return nil, invalidValue("query needs exactly one statement, got %d", len(queries))
	}
	return queries[0], nil
}
