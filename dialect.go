package sqlkit

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

// Dialect identifies the SQL flavour a statement is rendered for.
type Dialect string

const (
	Unknown    Dialect = ""
	MySQL      Dialect = "mysql"
	MariaDB    Dialect = "mariadb"
	SQLite     Dialect = "sqlite"
	PostgreSQL Dialect = "postgres"
)

// Dialects lists every supported dialect.
var Dialects = []Dialect{MySQL, MariaDB, SQLite, PostgreSQL}

func (d Dialect) String() string {
	if d == Unknown {
		return "unknown"
	}
	return string(d)
}

func (d Dialect) Valid() bool {
	return lo.Contains(Dialects, d)
}

func (d Dialect) isMySQLFamily() bool {
	return d == MySQL || d == MariaDB
}

// DriverName returns the database/sql driver name registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case MySQL, MariaDB:
		return "mysql"
	case SQLite:
		return "sqlite3"
	case PostgreSQL:
		return "postgres"
	}
	return ""
}

// Quote quotes an identifier. Dotted names are quoted part by part and "*" is left alone.
func (d Dialect) Quote(ident string) string {
	if ident == "" || ident == "*" {
		return ident
	}
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		if d.isMySQLFamily() || d == SQLite {
			parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
		} else {
			parts[i] = pq.QuoteIdentifier(p)
		}
	}
	return strings.Join(parts, ".")
}

// Feature names a construct whose availability differs between dialects.
type Feature string

const (
	FeatureAutoIncrement         Feature = "AUTO_INCREMENT"
	FeatureUnsigned              Feature = "UNSIGNED"
	FeatureCharacterSet          Feature = "CHARACTER_SET"
	FeatureCreateDatabase        Feature = "CREATE_DATABASE"
	FeatureDatabaseIfNotExists   Feature = "DATABASE_IF_NOT_EXISTS"
	FeatureInsertIgnore          Feature = "INSERT_IGNORE"
	FeatureUpsert                Feature = "UPSERT"
	FeatureUpsertWithoutConflict Feature = "UPSERT_WITHOUT_CONFLICT_TARGET"
	FeatureRightJoin             Feature = "RIGHT_JOIN"
	FeatureFullJoin              Feature = "FULL_JOIN"
	FeatureBinaryTypes           Feature = "BINARY_TYPES"
	FeatureListTypes             Feature = "LIST_TYPES"
	FeatureColumnComment         Feature = "COLUMN_COMMENT"
	FeatureInlineIndex           Feature = "INLINE_INDEX"
	FeatureOffsetWithoutLimit    Feature = "OFFSET_WITHOUT_LIMIT"
	FeatureSetDefaultAction      Feature = "SET_DEFAULT_ACTION"
	FeatureIdentityColumn        Feature = "IDENTITY_COLUMN"
)

var features = map[Feature][]Dialect{
	FeatureAutoIncrement:         {MySQL, MariaDB, SQLite, PostgreSQL},
	FeatureUnsigned:              {MySQL, MariaDB, SQLite},
	FeatureCharacterSet:          {MySQL, MariaDB, PostgreSQL},
	FeatureCreateDatabase:        {MySQL, MariaDB, PostgreSQL},
	FeatureDatabaseIfNotExists:   {MySQL, MariaDB},
	FeatureInsertIgnore:          {MySQL, MariaDB, SQLite, PostgreSQL},
	FeatureUpsert:                {MySQL, MariaDB, SQLite, PostgreSQL},
	FeatureUpsertWithoutConflict: {MySQL, MariaDB, SQLite},
	FeatureRightJoin:             {MySQL, MariaDB, SQLite, PostgreSQL},
	FeatureFullJoin:              {SQLite, PostgreSQL},
	FeatureBinaryTypes:           {MySQL, MariaDB, SQLite},
	FeatureListTypes:             {MySQL, MariaDB},
	FeatureColumnComment:         {MySQL, MariaDB},
	FeatureInlineIndex:           {MySQL, MariaDB},
	FeatureOffsetWithoutLimit:    {PostgreSQL},
	FeatureSetDefaultAction:      {SQLite, PostgreSQL},
	FeatureIdentityColumn:        {PostgreSQL},
}

func (d Dialect) Supports(f Feature) bool {
	return lo.Contains(features[f], d)
}

// RequireDialect fails with ErrFeatureNotSupported unless actual is one of allowed.
func RequireDialect(actual Dialect, allowed ...Dialect) error {
	if lo.Contains(allowed, actual) {
		return nil
	}
	names := lo.Map(allowed, func(d Dialect, _ int) string { return d.String() })
	return notSupported("dialect %s is not one of [%s]", actual, strings.Join(names, ", "))
}

// RejectDialect fails with ErrFeatureNotSupported if actual is one of disallowed.
func RejectDialect(actual Dialect, disallowed ...Dialect) error {
	if lo.Contains(disallowed, actual) {
		return notSupported("dialect %s is not allowed here", actual)
	}
	return nil
}

func requireFeature(d Dialect, f Feature, subject string) error {
	if d.Supports(f) {
		return nil
	}
	return notSupported("%s (%s) is not available on dialect %s", subject, f, d)
}

var postgresKeywords = []string{"host", "hostaddr", "port", "dbname", "user", "password", "sslmode", "connect_timeout", "application_name"}

// DetectDialect guesses the dialect from a DSN, URL or JDBC URL. It never fails: input it
// cannot place yields Unknown.
func DetectDialect(meta string) Dialect {
	s := strings.TrimSpace(meta)
	if s == "" {
		return Unknown
	}
	lower := strings.TrimPrefix(strings.ToLower(s), "jdbc:")
	if i := strings.Index(lower, "://"); i > 0 {
		switch lower[:i] {
		case "mysql":
			return MySQL
		case "mariadb":
			return MariaDB
		case "postgres", "postgresql", "pgsql":
			return PostgreSQL
		case "sqlite", "sqlite3", "file":
			return SQLite
		}
		return Unknown
	}
	switch {
	case strings.HasPrefix(lower, "sqlite:"), strings.HasPrefix(lower, "sqlite3:"),
		strings.HasPrefix(lower, "file:"), lower == ":memory:":
		return SQLite
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		if !strings.Contains(lower, "@") {
			return SQLite
		}
	}
	if isPostgresKeyValue(lower) {
		return PostgreSQL
	}
	if strings.Contains(s, "@") || strings.Contains(s, "/") {
		if cfg, err := mysql.ParseDSN(s); err == nil && cfg.Addr != "" {
			return MySQL
		}
	}
	return Unknown
}

func isPostgresKeyValue(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	var known bool
	for _, f := range fields {
		i := strings.Index(f, "=")
		if i <= 0 {
			return false
		}
		if lo.Contains(postgresKeywords, f[:i]) {
			known = true
		}
	}
	return known
}
