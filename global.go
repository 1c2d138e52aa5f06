package sqlkit

import (
	"context"

	"github.com/jmoiron/sqlx"
)

var DefaultNamespace = NewNamespace()

func Connect(config *ConnectConfig) (*Connection, error) {
	return DefaultNamespace.Connect(config)
}

func Register(config *ConnectConfig, xdb *sqlx.DB) (*Connection, error) {
	return DefaultNamespace.Register(config, xdb)
}

func Session(name ...string) *Connection {
	return DefaultNamespace.Session(name...)
}

func ConnectionNames() []string {
	return DefaultNamespace.ConnectionNames()
}

func Disconnect(name ...string) {
	DefaultNamespace.Disconnect(name...)
}

func DisconnectAll() {
	DefaultNamespace.DisconnectAll()
}

// Exec runs providers on the default connection.
func Exec(ctx context.Context, providers ...QueryProvider) (*ExecResult, error) {
	return ExecBy(ctx, "", providers...)
}

// QueryDefault scans the rows of p on the default connection into dst.
func QueryDefault(ctx context.Context, dst any, p QueryProvider) error {
	return QueryBy(ctx, "", dst, p)
}

func ExecBy(ctx context.Context, connectionName string, providers ...QueryProvider) (*ExecResult, error) {
	sess := DefaultNamespace.Session(connectionName)
	if sess == nil {
		return &ExecResult{}, missingField("connection %q does not exist", connectionName)
	}
	return sess.Exec(ctx, providers...)
}

func QueryBy(ctx context.Context, connectionName string, dst any, p QueryProvider) error {
	sess := DefaultNamespace.Session(connectionName)
	if sess == nil {
		return missingField("connection %q does not exist", connectionName)
	}
	return sess.Query(ctx, dst, p)
}
