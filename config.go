package sqlkit

import (
	"io"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type ConnectConfig struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Dialect Dialect `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Dsn     string  `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	MaxOpenConns    int           `json:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty"`
	MaxIdleConns    int           `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime,omitempty" yaml:"conn_max_lifetime,omitempty"`

	// Inline makes the connection send statements with inline literals instead of bind variables.
	Inline bool `json:"inline,omitempty" yaml:"inline,omitempty"`
	// Clauses overrides statement templates of the dialect's driver.
	Clauses Clauses        `json:"clauses,omitempty" yaml:"clauses,omitempty"`
	Logger  *logrus.Logger `json:"-" yaml:"-"`
}

var DefaultConnectConfig = ConnectConfig{
	MaxOpenConns:    10,
	MaxIdleConns:    5,
	ConnMaxLifetime: time.Hour,
}

type fileConfig struct {
	Connections []*ConnectConfig `yaml:"connections"`
}

// LoadConfig reads connections from YAML:
//
//	connections:
//	  - name: main
//	    dsn: ${MYSQL_DSN}
//	    max_open_conns: 20
//
// ${VAR} references are expanded from the environment and unset fields take the values of
// DefaultConnectConfig. The dialect is detected from the DSN when omitted.
func LoadConfig(r io.Reader) ([]*ConnectConfig, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "sqlkit: read config failed")
	}
	var fc fileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), &fc); err != nil {
		return nil, errors.Wrap(err, "sqlkit: parse config failed")
	}
	for _, c := range fc.Connections {
		if c == nil {
			continue
		}
		if err := c.withDefaults(); err != nil {
			return nil, err
		}
	}
	return fc.Connections, nil
}

func LoadConfigFile(filename string) ([]*ConnectConfig, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "sqlkit: open config failed")
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c *ConnectConfig) withDefaults() error {
	if err := mergo.Merge(c, DefaultConnectConfig); err != nil {
		return errors.Wrap(err, "sqlkit: failed to merge config")
	}
	if c.Dialect == Unknown {
		c.Dialect = DetectDialect(c.Dsn)
	}
	return nil
}
