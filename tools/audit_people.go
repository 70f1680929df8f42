// audit_people prints a data-quality report for a wikipeople database.
// It is a maintenance tool: point it at a database that went through
// 'wpdb sync' and it flags the records that need attention before the
// search surface can be trusted.
//
// Usage:
//
//	go run tools/audit_people.go --host localhost --port 5432 --user postgres --password secret --database wikipeople
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditResult struct {
	TotalPeople       int
	SyncedPeople      int
	ManualPeople      int
	TotalImports      int
	FailedImports     int
	MissingBirthYear  int
	MissingBirthPlace int
	MissingSummary    int
	MissingImage      int
	MissingCoords     int
	GeomPending       int
	DuplicateGroups   int
	MetaOccupations   int
	MetaDeathYear     int
	MetaDeathPlace    int
}

type DuplicateGroup struct {
	NameNormal string
	Count      int
}

type FailedImport struct {
	Category         string
	Message          string
	RecordsProcessed int
	CreatedAt        time.Time
}

func main() {
	host := flag.String("host", "localhost", "PostgreSQL host")
	port := flag.Int("port", 5432, "PostgreSQL port")
	user := flag.String("user", "postgres", "PostgreSQL user")
	password := flag.String("password", "", "PostgreSQL password")
	database := flag.String("database", "wikipeople", "PostgreSQL database")
	sample := flag.Int("sample", 10,
		"Number of duplicate groups and failed imports to list")

	flag.Parse()

	ctx := context.Background()

	conn, err := connect(ctx, *host, *port, *user, *password, *database)
	if err != nil {
		log.Fatalf("Failed to connect to %s database: %v", *database, err)
	}
	defer conn.Close()

	fmt.Printf("Auditing database %s\n", *database)
	fmt.Println("===")
	fmt.Println()

	result := &AuditResult{}

	// 1. Record counts
	fmt.Println("1. Record Counts")
	fmt.Println("----------------")
	if err := countRecords(ctx, conn, result); err != nil {
		log.Fatalf("Failed to count records: %v", err)
	}

	// 2. Field coverage
	fmt.Println("\n2. Field Coverage")
	fmt.Println("-----------------")
	if err := checkCoverage(ctx, conn, result); err != nil {
		log.Fatalf("Failed to check field coverage: %v", err)
	}

	// 3. Geometry column
	fmt.Println("\n3. Geometry Column")
	fmt.Println("------------------")
	if err := checkGeometry(ctx, conn, result); err != nil {
		log.Fatalf("Failed to check geometry column: %v", err)
	}

	// 4. Duplicate normalized names
	fmt.Println("\n4. Duplicate Normalized Names")
	fmt.Println("-----------------------------")
	if err := findDuplicates(ctx, conn, *sample, result); err != nil {
		log.Fatalf("Failed to find duplicates: %v", err)
	}

	// 5. Category distribution
	fmt.Println("\n5. Category Distribution")
	fmt.Println("------------------------")
	if err := topCategories(ctx, conn); err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}

	// 6. Metadata coverage
	fmt.Println("\n6. Metadata Coverage")
	fmt.Println("--------------------")
	if err := checkMetadata(ctx, conn, result); err != nil {
		log.Fatalf("Failed to check metadata coverage: %v", err)
	}

	// 7. Failed imports
	fmt.Println("\n7. Failed Imports")
	fmt.Println("-----------------")
	if err := listFailures(ctx, conn, *sample, result); err != nil {
		log.Fatalf("Failed to list failed imports: %v", err)
	}

	// 8. Summary
	fmt.Println("\n8. Summary")
	fmt.Println("----------")
	printSummary(result)
}

func connect(
	ctx context.Context,
	host string,
	port int,
	user string,
	password string,
	database string,
) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database,
	)

	return pgxpool.New(ctx, connStr)
}

func countRecords(
	ctx context.Context,
	conn *pgxpool.Pool,
	result *AuditResult,
) error {
	q := `
SELECT
  COUNT(*),
  COUNT(*) FILTER (WHERE NOT is_manual),
  COUNT(*) FILTER (WHERE is_manual)
FROM people`
	err := conn.QueryRow(ctx, q).Scan(
		&result.TotalPeople,
		&result.SyncedPeople,
		&result.ManualPeople,
	)
	if err != nil {
		return fmt.Errorf("people counts: %w", err)
	}

	q = `SELECT COUNT(*) FROM import_logs`
	err = conn.QueryRow(ctx, q).Scan(&result.TotalImports)
	if err != nil {
		return fmt.Errorf("import log count: %w", err)
	}

	fmt.Printf("  People:      %d\n", result.TotalPeople)
	fmt.Printf("    synced:    %d\n", result.SyncedPeople)
	fmt.Printf("    manual:    %d\n", result.ManualPeople)
	fmt.Printf("  Import runs: %d\n", result.TotalImports)
	return nil
}

func checkCoverage(
	ctx context.Context,
	conn *pgxpool.Pool,
	result *AuditResult,
) error {
	q := `
SELECT
  COUNT(*) FILTER (WHERE birth_year IS NULL),
  COUNT(*) FILTER (WHERE birth_place = ''),
  COUNT(*) FILTER (WHERE summary = ''),
  COUNT(*) FILTER (WHERE image_url = ''),
  COUNT(*) FILTER (WHERE lat IS NULL OR lng IS NULL)
FROM people`
	err := conn.QueryRow(ctx, q).Scan(
		&result.MissingBirthYear,
		&result.MissingBirthPlace,
		&result.MissingSummary,
		&result.MissingImage,
		&result.MissingCoords,
	)
	if err != nil {
		return fmt.Errorf("field coverage: %w", err)
	}

	fmt.Printf("  Missing birth year:  %s\n",
		pct(result.MissingBirthYear, result.TotalPeople))
	fmt.Printf("  Missing birth place: %s\n",
		pct(result.MissingBirthPlace, result.TotalPeople))
	fmt.Printf("  Missing summary:     %s\n",
		pct(result.MissingSummary, result.TotalPeople))
	fmt.Printf("  Missing image:       %s\n",
		pct(result.MissingImage, result.TotalPeople))
	fmt.Printf("  Missing coordinates: %s\n",
		pct(result.MissingCoords, result.TotalPeople))
	return nil
}

func checkGeometry(
	ctx context.Context,
	conn *pgxpool.Pool,
	result *AuditResult,
) error {
	q := `
SELECT COUNT(*)
FROM people
WHERE lat IS NOT NULL AND lng IS NOT NULL AND geom IS NULL`
	err := conn.QueryRow(ctx, q).Scan(&result.GeomPending)
	if err != nil {
		return fmt.Errorf("geometry backlog: %w", err)
	}

	if result.GeomPending == 0 {
		fmt.Println("  All located records have geometry.")
	} else {
		fmt.Printf("  %d records have coordinates but no geometry\n",
			result.GeomPending)
		fmt.Println("  Run 'wpdb optimize' to backfill them.")
	}
	return nil
}

func findDuplicates(
	ctx context.Context,
	conn *pgxpool.Pool,
	sample int,
	result *AuditResult,
) error {
	q := `
SELECT COUNT(*) FROM (
  SELECT 1 FROM people GROUP BY name_normal HAVING COUNT(*) > 1
) AS d`
	err := conn.QueryRow(ctx, q).Scan(&result.DuplicateGroups)
	if err != nil {
		return fmt.Errorf("duplicate group count: %w", err)
	}

	if result.DuplicateGroups == 0 {
		fmt.Println("  No shared normalized names.")
		return nil
	}

	// Shared names are often distinct people born in different years,
	// so this section is informational, not a defect list.
	fmt.Printf("  %d normalized names are shared by several records\n",
		result.DuplicateGroups)

	q = `
SELECT name_normal, COUNT(*) AS n
FROM people
GROUP BY name_normal
HAVING COUNT(*) > 1
ORDER BY n DESC, name_normal
LIMIT $1`
	rows, err := conn.Query(ctx, q, sample)
	if err != nil {
		return fmt.Errorf("duplicate groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g DuplicateGroup
		if err := rows.Scan(&g.NameNormal, &g.Count); err != nil {
			return fmt.Errorf("duplicate group scan: %w", err)
		}
		fmt.Printf("    %-40s %d records\n", g.NameNormal, g.Count)
	}
	return rows.Err()
}

func topCategories(ctx context.Context, conn *pgxpool.Pool) error {
	q := `
SELECT category, COUNT(*) AS n
FROM people
WHERE category <> ''
GROUP BY category
ORDER BY n DESC
LIMIT 10`
	rows, err := conn.Query(ctx, q)
	if err != nil {
		return fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()

	var printed bool
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return fmt.Errorf("category scan: %w", err)
		}
		fmt.Printf("  %-50s %d\n", category, n)
		printed = true
	}
	if !printed {
		fmt.Println("  No categorized records yet.")
	}
	return rows.Err()
}

func checkMetadata(
	ctx context.Context,
	conn *pgxpool.Pool,
	result *AuditResult,
) error {
	q := `
SELECT
  COUNT(*) FILTER (WHERE jsonb_exists(meta_data, 'occupations')),
  COUNT(*) FILTER (WHERE jsonb_exists(meta_data, 'death_year')),
  COUNT(*) FILTER (WHERE jsonb_exists(meta_data, 'death_place'))
FROM people`
	err := conn.QueryRow(ctx, q).Scan(
		&result.MetaOccupations,
		&result.MetaDeathYear,
		&result.MetaDeathPlace,
	)
	if err != nil {
		return fmt.Errorf("metadata coverage: %w", err)
	}

	fmt.Printf("  occupations: %s\n",
		pct(result.MetaOccupations, result.TotalPeople))
	fmt.Printf("  death_year:  %s\n",
		pct(result.MetaDeathYear, result.TotalPeople))
	fmt.Printf("  death_place: %s\n",
		pct(result.MetaDeathPlace, result.TotalPeople))
	return nil
}

func listFailures(
	ctx context.Context,
	conn *pgxpool.Pool,
	sample int,
	result *AuditResult,
) error {
	q := `SELECT COUNT(*) FROM import_logs WHERE NOT success`
	err := conn.QueryRow(ctx, q).Scan(&result.FailedImports)
	if err != nil {
		return fmt.Errorf("failed import count: %w", err)
	}

	if result.FailedImports == 0 {
		fmt.Println("  No failed imports.")
		return nil
	}

	fmt.Printf("  %d import runs failed, most recent first:\n",
		result.FailedImports)

	q = `
SELECT category, message, records_processed, created_at
FROM import_logs
WHERE NOT success
ORDER BY created_at DESC
LIMIT $1`
	rows, err := conn.Query(ctx, q, sample)
	if err != nil {
		return fmt.Errorf("failed imports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f FailedImport
		err := rows.Scan(
			&f.Category,
			&f.Message,
			&f.RecordsProcessed,
			&f.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed import scan: %w", err)
		}
		fmt.Printf("    %s  %s (%d records): %s\n",
			f.CreatedAt.Format("2006-01-02 15:04"),
			f.Category, f.RecordsProcessed, f.Message)
	}
	return rows.Err()
}

func pct(part, total int) string {
	if total == 0 {
		return "0 (0.0%)"
	}
	return fmt.Sprintf("%d (%.1f%%)", part,
		float64(part)/float64(total)*100)
}

func printSummary(result *AuditResult) {
	clean := result.GeomPending == 0 && result.FailedImports == 0

	if clean {
		fmt.Println("  ✓ No pending maintenance.")
		fmt.Println("  The database is ready for search.")
	} else {
		fmt.Println("  ✗ Maintenance needed:")
		if result.GeomPending > 0 {
			fmt.Printf("    - %d records await geometry backfill, run 'wpdb optimize'\n",
				result.GeomPending)
		}
		if result.FailedImports > 0 {
			fmt.Printf("    - %d import runs failed, re-run 'wpdb sync' for their categories\n",
				result.FailedImports)
		}
	}
}
