package iosync

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// NotConnectedError creates an error for when a sync run is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Sync attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ActiveError creates an error for starting a run while one is active.
func ActiveError() error {
	msg := `A sync run is already active

<em>How to fix:</em>
  1. Wait for the active run to finish
  2. Or stop it and start again`

	return &gn.Error{
		Code: errcode.SyncActiveError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("sync run already active"),
	}
}

// CategoryError creates an error for one category's pipeline failure.
func CategoryError(category string, err error) error {
	msg := `Failed to process category <em>%s</em>`
	vars := []any{category}

	return &gn.Error{
		Code: errcode.SyncCategoryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("category %q failed: %w", category, err),
	}
}

// PersistError creates an error for a people-table read or write that
// failed at the batch level. Single-record failures are counted and
// logged, not returned.
func PersistError(operation string, err error) error {
	msg := `Database operation failed: <em>%s</em>`
	vars := []any{operation}

	return &gn.Error{
		Code: errcode.SyncPersistError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s failed: %w", operation, err),
	}
}

// ImportLogError creates an error for a failed audit-trail write.
func ImportLogError(category string, err error) error {
	msg := `Cannot write import log entry for <em>%s</em>`
	vars := []any{category}

	return &gn.Error{
		Code: errcode.SyncImportLogError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("import log write failed: %w", err),
	}
}

// AllCategoriesFailedError creates an error for a run where every
// category failed.
func AllCategoriesFailedError(count int) error {
	msg := `Failed number of categories: <em>%d</em>`
	vars := []any{count}

	plural := "ies"
	if count == 1 {
		plural = "y"
	}

	return &gn.Error{
		Code: errcode.SyncAllCategoriesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d categor%s failed to process", count, plural),
	}
}

// CancelledError creates an error for a run cut short by context
// cancellation. A requested stop is not an error and does not use it.
func CancelledError(err error) error {
	msg := "Sync run was cancelled"

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("sync cancelled: %w", err),
	}
}
