package sqlkit

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"dario.cat/mergo"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Namespace is a set of named connections.
type Namespace struct {
	connections *sync.Map
	mu          sync.Mutex
}

func NewNamespace() *Namespace {
	return &Namespace{connections: new(sync.Map)}
}

// Connect opens, pings and registers a connection. The dialect is detected from the DSN when
// the config leaves it empty.
func (ns *Namespace) Connect(config *ConnectConfig) (*Connection, error) {
	cfg, drv, err := prepareConfig(config)
	if err != nil {
		return nil, err
	}
	if !lo.Contains(sql.Drivers(), drv.Name()) {
		return nil, driverUnavailable("database/sql driver %q of dialect %s is not registered", drv.Name(), cfg.Dialect)
	}
	xdb, err := drv.Connect(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "sqlkit: connect failed")
	}
	if cfg.MaxOpenConns > 0 {
		xdb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		xdb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		xdb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return ns.store(cfg, drv, xdb), nil
}

// Register attaches an already opened handle, e.g. one shared with other code.
func (ns *Namespace) Register(config *ConnectConfig, xdb *sqlx.DB) (*Connection, error) {
	if xdb == nil {
		return nil, missingField("database handle is nil")
	}
	cfg, drv, err := prepareConfig(config)
	if err != nil {
		return nil, err
	}
	return ns.store(cfg, drv, xdb), nil
}

func prepareConfig(config *ConnectConfig) (*ConnectConfig, Driver, error) {
	if config == nil {
		return nil, nil, missingField("connect config is nil")
	}
	cfg := *config
	if err := mergo.Merge(&cfg, DefaultConnectConfig); err != nil {
		return nil, nil, errors.Wrap(err, "sqlkit: failed to merge config")
	}
	if cfg.Dialect == Unknown {
		cfg.Dialect = DetectDialect(cfg.Dsn)
	}
	drv := drivers[cfg.Dialect]
	if drv == nil {
		return nil, nil, notSupported("cannot determine a dialect for connection %q", cfg.Name)
	}
	return &cfg, drv, nil
}

func (ns *Namespace) store(cfg *ConnectConfig, drv Driver, xdb *sqlx.DB) *Connection {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if cfg.Name == "" {
		count := 0
		ns.connections.Range(func(key, value any) bool {
			count++
			return true
		})
		cfg.Name = fmt.Sprintf("%d", count)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = Logger()
	}
	conn := &Connection{
		driver: drv,
		config: cfg,
		name:   cfg.Name,
		xdb:    xdb,
		logger: logger,
	}
	if old, loaded := ns.connections.Swap(cfg.Name, conn); loaded {
		_ = old.(*Connection).Close()
	}
	return conn
}

// Session returns the named connection, or the first one ("0") when no name is given.
func (ns *Namespace) Session(connectionName ...string) *Connection {
	key := "0"
	if len(connectionName) > 0 && connectionName[0] != "" {
		key = connectionName[0]
	}
	conn, ok := ns.connections.Load(key)
	if !ok {
		return nil
	}
	return conn.(*Connection)
}

func (ns *Namespace) ConnectionNames() []string {
	var names []string
	ns.connections.Range(func(key, value any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}

func (ns *Namespace) Disconnect(name ...string) {
	for _, item := range name {
		if conn, ok := ns.connections.LoadAndDelete(item); ok {
			if err := conn.(*Connection).Close(); err != nil {
				conn.(*Connection).logger.WithError(err).WithField("connection", item).Warn("sqlkit: close failed")
			}
		}
	}
}

func (ns *Namespace) DisconnectAll() {
	ns.Disconnect(ns.ConnectionNames()...)
}
