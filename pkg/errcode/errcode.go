package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBClearPeopleError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaExtensionError
	SchemaGeometryError

	// Vocabulary errors
	VocabConfigError
	VocabValidationError

	// External client errors
	ClientRequestError
	ClientDecodeError
	GraphQueryError
	GeocodeError

	// Discovery errors
	DiscoverPrefixError
	DiscoverEmptyError

	// Sync errors
	SyncActiveError
	SyncCategoryError
	SyncPersistError
	SyncImportLogError
	SyncAllCategoriesFailedError

	// Search errors
	SearchQueryError
	SearchBadPolygonError
	SearchBadFilterError

	// Optimizer errors
	OptimizerRatingError
	OptimizerIndexError
	OptimizerGeometryError
	OptimizerVacuumError
)
