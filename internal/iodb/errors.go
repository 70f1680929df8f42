package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// ConnectionError creates an error for database connection
// failures.
func ConnectionError(
	host string, port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Connection settings:</em>
  Host: %s
  Port: %d
  Database: %s
  User: %s

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database does not exist
  - Wrong credentials or host

<em>How to fix:</em>
  1. Check if PostgreSQL is running: <em>pg_isready -h %s -p %d</em>
  2. Verify the database exists: <em>psql -h %s -U %s -l</em>
  3. Review settings in <em>~/.config/wpdb/config.yaml</em>`

	vars := []any{
		host, port, database, user,
		host, port,
		host, user,
	}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for when a database
// operation is attempted without a connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError creates an error for table existence
// check failures.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err: fmt.Errorf("failed to check table %s: %w",
			table, err),
	}
}

// TableCheckError creates an error for when the database
// state cannot be verified.
func TableCheckError(err error) error {
	msg := "Cannot verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// QueryTablesError creates an error for table listing
// failures.
func QueryTablesError(err error) error {
	msg := "Cannot list tables in the public schema"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError creates an error for table row scan
// failures.
func ScanTableError(err error) error {
	msg := "Cannot read table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError creates an error for table drop failures.
func DropTableError(table string, err error) error {
	msg := `Cannot drop table <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - Another session holds a lock on the table

<em>How to fix:</em>
  1. Check database user has DROP permissions
  2. Close other sessions using the database`

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// ClearPeopleError creates an error for when non-manual
// person records cannot be deleted.
func ClearPeopleError(err error) error {
	msg := `Cannot clear person records

<em>Possible causes:</em>
  - Schema was not created yet
  - Insufficient database permissions

<em>How to fix:</em>
  1. Create the schema first: <em>wpdb create</em>
  2. Check database user has DELETE permissions`

	return &gn.Error{
		Code: errcode.DBClearPeopleError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to clear people: %w", err),
	}
}
