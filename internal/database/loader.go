// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package database

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/agrirank/internal/logging"
	"github.com/tomtom215/agrirank/internal/metrics"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// columnInfo describes one table column.
type columnInfo struct {
	Name string
	Type string
}

// Required columns per table.
var (
	historicalRequired   = []string{recommend.ColState, recommend.ColDistrict}
	requirementsRequired = []string{recommend.ColCrop}
)

// LoadReferenceData replaces both reference tables with the contents of the
// given CSV files. State, District and Crop values are normalized with
// recommend.NormalizeName so lookups match normalized request names.
func (db *DB) LoadReferenceData(ctx context.Context, historicalPath, requirementsPath string) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if err := db.loadCSV(ctx, TableHistorical, historicalPath, historicalRequired); err != nil {
		return err
	}
	if err := db.loadCSV(ctx, TableRequirements, requirementsPath, requirementsRequired); err != nil {
		return err
	}

	if err := db.normalizeNames(ctx, TableHistorical, recommend.ColState, recommend.ColDistrict); err != nil {
		return err
	}
	if err := db.normalizeNames(ctx, TableRequirements, recommend.ColCrop); err != nil {
		return err
	}

	cols, err := db.columns(ctx, TableHistorical)
	if err != nil {
		return err
	}
	var present []string
	for _, want := range recommend.ContextColumns {
		for _, c := range cols {
			if c.Name == want && isNumericType(c.Type) {
				present = append(present, want)
				break
			}
		}
	}

	db.mu.Lock()
	db.contextColumns = present
	db.loaded = true
	db.mu.Unlock()

	historical, requirements, err := db.RowCounts(ctx)
	if err != nil {
		return err
	}
	logging.Info().
		Int64("historical_rows", historical).
		Int64("requirement_rows", requirements).
		Strs("context_columns", present).
		Msg("Reference data loaded")
	return nil
}

func (db *DB) loadCSV(ctx context.Context, table, path string, required []string) error {
	start := time.Now()
	query := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, header = true)",
		quoteIdent(table), quoteLiteral(path))
	_, err := db.conn.ExecContext(ctx, query)
	metrics.RecordDBQuery("load_"+table, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to load %s from %s: %w", table, path, err)
	}
	metrics.RecordAssetLoad(table, time.Since(start))

	cols, err := db.columns(ctx, table)
	if err != nil {
		return err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	var missing []string
	for _, r := range required {
		if !slices.Contains(names, r) {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s (%s) is missing required columns: %s", table, path, strings.Join(missing, ", "))
	}
	return nil
}

// normalizeNames rewrites each distinct value of the given columns to its
// normalized form.
func (db *DB) normalizeNames(ctx context.Context, table string, columns ...string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, col := range columns {
		ident := quoteIdent(col)
		rows, err := tx.QueryContext(ctx, fmt.Sprintf(
			"SELECT DISTINCT CAST(%s AS VARCHAR) FROM %s WHERE %s IS NOT NULL", ident, quoteIdent(table), ident))
		if err != nil {
			return fmt.Errorf("failed to read %s.%s: %w", table, col, err)
		}
		var values []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				closeQuietly(rows)
				return fmt.Errorf("failed to scan %s.%s: %w", table, col, err)
			}
			values = append(values, v)
		}
		if err := rows.Err(); err != nil {
			closeQuietly(rows)
			return fmt.Errorf("failed to iterate %s.%s: %w", table, col, err)
		}
		closeWithLog(rows, "rows")

		update := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", quoteIdent(table), ident, ident)
		for _, v := range values {
			n := recommend.NormalizeName(v)
			if n == v {
				continue
			}
			if _, err := tx.ExecContext(ctx, update, n, v); err != nil {
				return fmt.Errorf("failed to normalize %s.%s: %w", table, col, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit name normalization: %w", err)
	}
	return nil
}

func (db *DB) columns(ctx context.Context, table string) ([]columnInfo, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT column_name, data_type FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", table, err)
	}
	defer closeWithLog(rows, "rows")

	var cols []columnInfo
	for rows.Next() {
		var c columnInfo
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// isNumericType reports whether a DuckDB type name can be cast to DOUBLE without loss of meaning.
func isNumericType(t string) bool {
	t = strings.ToUpper(t)
	for _, prefix := range []string{
		"TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT",
		"FLOAT", "DOUBLE", "DECIMAL", "REAL",
	} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
