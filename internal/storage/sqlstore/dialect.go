package sqlstore

import (
	"fmt"
	"strconv"

	"opportunity-finder/internal/config"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect interface {
	// Name is the config driver name ("postgres", "mysql", "sqlite").
	Name() string
	// DriverName is the database/sql driver to open.
	DriverName() string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder(n int) string
	// ContainsFold matches col case-insensitively against a LIKE pattern
	// bound at placeholder ph. The pattern escapes with '!'.
	ContainsFold(col, ph string) string
	// OrderNullsLast orders by col, placing NULLs last in either direction.
	OrderNullsLast(col string, asc bool) string
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return postgresDialect{}, nil
	case config.DriverMySQL:
		return mysqlDialect{}, nil
	case config.DriverSQLite:
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver: %q", driver)
}

func direction(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return config.DriverPostgres }
func (postgresDialect) DriverName() string       { return "postgres" }
func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) ContainsFold(col, ph string) string {
	return fmt.Sprintf("%s ILIKE %s ESCAPE '!'", col, ph)
}

func (postgresDialect) OrderNullsLast(col string, asc bool) string {
	return fmt.Sprintf("%s %s NULLS LAST", col, direction(asc))
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string           { return config.DriverMySQL }
func (mysqlDialect) DriverName() string     { return "mysql" }
func (mysqlDialect) Placeholder(int) string { return "?" }

func (mysqlDialect) ContainsFold(col, ph string) string {
	return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s) ESCAPE '!'", col, ph)
}

// MySQL has no NULLS LAST; sorting on "col IS NULL" first pushes NULLs down.
func (mysqlDialect) OrderNullsLast(col string, asc bool) string {
	return fmt.Sprintf("%s IS NULL, %s %s", col, col, direction(asc))
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string           { return config.DriverSQLite }
func (sqliteDialect) DriverName() string     { return "sqlite" }
func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) ContainsFold(col, ph string) string {
	return fmt.Sprintf("%[1]s(%[2]s) LIKE %[1]s(%[3]s) ESCAPE '!'", foldFunc, col, ph)
}

func (sqliteDialect) OrderNullsLast(col string, asc bool) string {
	return fmt.Sprintf("%s %s NULLS LAST", col, direction(asc))
}
