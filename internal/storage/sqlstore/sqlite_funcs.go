package sqlstore

import (
	"database/sql/driver"
	"strings"

	sqlitedrv "modernc.org/sqlite"
)

// foldFunc is a Unicode-aware lower() for SQLite, whose built-in LOWER only
// folds ASCII. Registered for every connection the driver opens.
const foldFunc = "unicode_fold"

func init() {
	sqlitedrv.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *sqlitedrv.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
