package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue
  - GORM driver problem

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration
  3. Verify GORM dependencies are installed`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid schema definitions
  - Database constraint violations

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Review schema model definitions
  3. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions
  - Data integrity issues

<em>How to fix:</em>
  1. Review migration compatibility
  2. Check database user permissions
  3. Backup data before migration`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// ExtensionError creates an error for extension
// creation failures.
func ExtensionError(name string, err error) error {
	msg := `Cannot enable PostgreSQL extension <em>%s</em>

<em>Possible causes:</em>
  - Extension is not installed on the server
  - Database user lacks permission to create extensions

<em>How to fix:</em>
  1. Install the extension packages on the server
     (PostGIS ships separately from PostgreSQL)
  2. Enable it as a superuser:
     <em>CREATE EXTENSION %s</em>
  3. Or use a Docker image with extensions included:
     <em>docker run -d -p 5432:5432 postgis/postgis:16-3.4</em>`

	vars := []any{name, name}

	return &gn.Error{
		Code: errcode.SchemaExtensionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to create extension %s: %w", name, err),
	}
}

// GeometryError creates an error for geometry column
// setup failures.
func GeometryError(err error) error {
	msg := `Cannot add geometry column to <em>people</em>

<em>Possible causes:</em>
  - PostGIS extension is not enabled
  - Table does not exist yet
  - Insufficient database permissions

<em>How to fix:</em>
  1. Ensure PostGIS is enabled: <em>CREATE EXTENSION postgis</em>
  2. Create the schema first: <em>wpdb create</em>
  3. Check database user has ALTER permissions`

	return &gn.Error{
		Code: errcode.SchemaGeometryError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to add geometry column: %w", err),
	}
}
