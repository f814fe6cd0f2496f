package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateEntry reports a violated unique index. The index, not the
// application-level existence check, is the authoritative uniqueness
// guarantee; callers map this error to their Conflict variant.
var ErrDuplicateEntry = errors.New("duplicate entry")

const mysqlDuplicateEntry = 1062

// translateError maps driver-level errors to repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateEntry
	}
	return err
}
