// Package schema provides database schema models for wpdb.
// Models drive GORM AutoMigrate; the heavier secondary indexes used by
// search live in IndexDDL methods and are built by the optimizer.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// Person is a biographical record of one notable individual.
//
// The people table also carries a geom geometry(Point,4326) column
// derived from Lat/Lng. It is created and refreshed with raw DDL since
// GORM has no PostGIS type.
type Person struct {
	// ID is a UUID v4 assigned at first persistence.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// WikiID is the source encyclopedia's stable page identifier.
	// Unique when present; manually curated records may lack it.
	WikiID sql.NullInt64 `db:"wiki_id" ddl:"BIGINT UNIQUE" gorm:"column:wiki_id;type:bigint;uniqueIndex"`

	// Name is the person's display name as given by the source.
	Name string `db:"name" ddl:"VARCHAR(255) NOT NULL" gorm:"column:name;type:varchar(255);not null"`

	// NameNormal is the normalized comparison form of Name, the key
	// for exact and trigram matching during entity resolution.
	NameNormal string `db:"name_normal" ddl:"VARCHAR(255) NOT NULL" gorm:"column:name_normal;type:varchar(255);not null;index"`

	// Slug is a unique URL-safe identifier derived from Name exactly
	// once, at first persistence; never regenerated after that.
	Slug string `db:"slug" ddl:"VARCHAR(255) UNIQUE NOT NULL" gorm:"column:slug;type:varchar(255);uniqueIndex;not null"`

	// Summary is the introductory extract of the person's page.
	Summary string `db:"summary" ddl:"TEXT" gorm:"column:summary;type:text"`

	// ImageURL points to the lead image of the person's page.
	ImageURL string `db:"image_url" ddl:"TEXT" gorm:"column:image_url;type:text"`

	// Category is a short canonical occupation/domain tag.
	Category string `db:"category" ddl:"VARCHAR(100)" gorm:"column:category;type:varchar(100);index"`

	// MetaData holds extensible keys: occupations, death place, death
	// year. Deep-merged on update, never replaced wholesale.
	MetaData Metadata `db:"meta_data" ddl:"JSONB" gorm:"column:meta_data;type:jsonb"`

	// BirthDate is the raw birth date string; formats vary by source.
	BirthDate string `db:"birth_date" ddl:"VARCHAR(100)" gorm:"column:birth_date;type:varchar(100)"`

	// BirthYear is the year extracted from BirthDate.
	BirthYear sql.NullInt32 `db:"birth_year" ddl:"INT" gorm:"column:birth_year;type:int"`

	// BirthPlace is a normalized place-of-birth display string.
	BirthPlace string `db:"birth_place" ddl:"VARCHAR(255)" gorm:"column:birth_place;type:varchar(255)"`

	// Lat is the latitude of the birth place. Set together with Lng
	// or not at all.
	Lat sql.NullFloat64 `db:"lat" ddl:"DOUBLE PRECISION" gorm:"column:lat;type:double precision"`

	// Lng is the longitude of the birth place.
	Lng sql.NullFloat64 `db:"lng" ddl:"DOUBLE PRECISION" gorm:"column:lng;type:double precision"`

	// ViewCount is the sum of monthly page views over the configured
	// window.
	ViewCount int64 `db:"view_count" ddl:"BIGINT NOT NULL DEFAULT 0" gorm:"column:view_count;type:bigint;not null;default:0"`

	// Rating holds a provisional log-scaled popularity score during a
	// sync run. The optimizer overwrites it with a percentile rank of
	// ViewCount in [0,10] over the whole table.
	Rating float64 `db:"rating" ddl:"DOUBLE PRECISION NOT NULL DEFAULT 0" gorm:"column:rating;type:double precision;not null;default:0"`

	// IsManual marks records created or edited by a human curator.
	// The pipeline never touches such records.
	IsManual bool `db:"is_manual" ddl:"BOOLEAN NOT NULL DEFAULT FALSE" gorm:"column:is_manual;type:boolean;not null;default:false"`

	// CreatedAt is the time of first persistence.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP WITHOUT TIME ZONE" gorm:"column:created_at"`

	// UpdatedAt is the time of the last write.
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE" gorm:"column:updated_at"`
}

// ImportLog is an append-only audit record of one category-processing
// attempt during a sync run. Entries are never mutated.
type ImportLog struct {
	// ID is a UUID v4 assigned at insert.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// Category is the source category this entry reports on.
	Category string `db:"category" ddl:"VARCHAR(255) NOT NULL" gorm:"column:category;type:varchar(255);not null;index"`

	// Success is false when the category's pipeline failed.
	Success bool `db:"success" ddl:"BOOLEAN NOT NULL" gorm:"column:success;not null"`

	// Message carries the failure reason or a completion note.
	Message string `db:"message" ddl:"TEXT" gorm:"column:message;type:text"`

	// RecordsProcessed counts candidates that survived the pipeline.
	RecordsProcessed int `db:"records_processed" ddl:"INT NOT NULL DEFAULT 0" gorm:"column:records_processed;type:int;not null;default:0"`

	// CreatedAt is the time the entry was written.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP WITHOUT TIME ZONE" gorm:"column:created_at"`
}
