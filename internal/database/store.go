// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/agrirank/internal/metrics"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// ErrNotLoaded is returned by queries issued before LoadReferenceData.
var ErrNotLoaded = errors.New("reference data not loaded")

// requirementStringColumns are read as text; every other numeric column of
// the requirement table becomes a CropRequirement attribute.
var requirementStringColumns = []string{
	recommend.ColCrop,
	recommend.ColCropSeason,
	recommend.ColCropSoilTexture,
	recommend.ColCropIrrigationType,
	recommend.ColUnits,
}

// RegionContext implements recommend.HistoricalSource. With an empty district
// the state's most frequent district is chosen, ties broken alphabetically,
// and the averages cover the whole state.
func (db *DB) RegionContext(ctx context.Context, state, district string) (rc recommend.RegionContext, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("region_context", time.Since(start), queryError(err))
	}()

	if !db.Loaded() {
		return rc, ErrNotLoaded
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rc.State = state
	where := `"State" = ?`
	args := []interface{}{state}

	if district == "" {
		err = db.conn.QueryRowContext(ctx, `
			SELECT "District"
			FROM historical
			WHERE "State" = ? AND "District" IS NOT NULL
			GROUP BY "District"
			ORDER BY count(*) DESC, "District" ASC
			LIMIT 1`, state).Scan(&rc.District)
		if errors.Is(err, sql.ErrNoRows) {
			return rc, &recommend.NotFoundError{State: state}
		}
		if err != nil {
			return rc, fmt.Errorf("failed to find modal district: %w", err)
		}
		rc.DistrictInferred = true
	} else {
		rc.District = district
		where += ` AND "District" = ?`
		args = append(args, district)
	}

	cols := db.historicalContextColumns()
	selects := make([]string, 0, len(cols)+1)
	selects = append(selects, "count(*)")
	for _, c := range cols {
		selects = append(selects, fmt.Sprintf("avg(CAST(%s AS DOUBLE))", quoteIdent(c)))
	}
	query := fmt.Sprintf("SELECT %s FROM historical WHERE %s", strings.Join(selects, ", "), where)

	var rows int64
	avgs := make([]sql.NullFloat64, len(cols))
	dest := make([]interface{}, 0, len(cols)+1)
	dest = append(dest, &rows)
	for i := range avgs {
		dest = append(dest, &avgs[i])
	}
	if err = db.conn.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return rc, fmt.Errorf("failed to average historical context: %w", err)
	}
	if rows == 0 {
		if district != "" {
			return rc, &recommend.NotFoundError{State: state, District: district}
		}
		return rc, &recommend.NotFoundError{State: state}
	}

	rc.Rows = int(rows)
	rc.Averages = make(map[string]float64, len(cols))
	for i, c := range cols {
		if avgs[i].Valid {
			rc.Averages[c] = avgs[i].Float64
		}
	}
	return rc, nil
}

// CropRequirements returns the crop requirement rows in file order.
func (db *DB) CropRequirements(ctx context.Context) (reqs []recommend.CropRequirement, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("crop_requirements", time.Since(start), err)
	}()

	if !db.Loaded() {
		return nil, ErrNotLoaded
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	cols, err := db.columns(ctx, TableRequirements)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(cols))
	var numeric []string
	for _, c := range cols {
		present[c.Name] = true
		if !slices.Contains(requirementStringColumns, c.Name) && isNumericType(c.Type) {
			numeric = append(numeric, c.Name)
		}
	}

	selects := make([]string, 0, len(requirementStringColumns)+len(numeric))
	for _, c := range requirementStringColumns {
		if present[c] {
			selects = append(selects, fmt.Sprintf("CAST(%s AS VARCHAR)", quoteIdent(c)))
		} else {
			selects = append(selects, "NULL")
		}
	}
	for _, c := range numeric {
		selects = append(selects, fmt.Sprintf("CAST(%s AS DOUBLE)", quoteIdent(c)))
	}

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), TableRequirements))
	if err != nil {
		return nil, fmt.Errorf("failed to query crop requirements: %w", err)
	}
	defer closeWithLog(rows, "rows")

	text := make([]sql.NullString, len(requirementStringColumns))
	nums := make([]sql.NullFloat64, len(numeric))
	dest := make([]interface{}, 0, len(text)+len(nums))
	for i := range text {
		dest = append(dest, &text[i])
	}
	for i := range nums {
		dest = append(dest, &nums[i])
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan crop requirement: %w", err)
		}
		req := recommend.CropRequirement{
			Crop:           text[0].String,
			Season:         text[1].String,
			SoilTexture:    text[2].String,
			IrrigationType: text[3].String,
			Unit:           strings.TrimSpace(text[4].String),
		}
		// Categories stay byte-for-byte: the crop model's one-hot columns
		// were named from the raw values, padding included.
		if len(numeric) > 0 {
			req.Attributes = make(map[string]float64, len(numeric))
			for i, c := range numeric {
				// NULL attributes are left out and zero-filled by reconciliation.
				if nums[i].Valid {
					req.Attributes[c] = nums[i].Float64
				}
			}
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crop requirements: %w", err)
	}
	return reqs, nil
}

// States lists the distinct states of the historical table.
func (db *DB) States(ctx context.Context) (states []string, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("states", time.Since(start), err)
	}()

	if !db.Loaded() {
		return nil, ErrNotLoaded
	}
	return db.distinct(ctx, `SELECT DISTINCT "State" FROM historical WHERE "State" IS NOT NULL ORDER BY 1`)
}

// Districts lists the districts of one state. An unknown state fails with
// *recommend.NotFoundError.
func (db *DB) Districts(ctx context.Context, state string) (districts []string, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("districts", time.Since(start), queryError(err))
	}()

	if !db.Loaded() {
		return nil, ErrNotLoaded
	}
	districts, err = db.distinct(ctx,
		`SELECT DISTINCT "District" FROM historical WHERE "State" = ? AND "District" IS NOT NULL ORDER BY 1`, state)
	if err != nil {
		return nil, err
	}
	if len(districts) == 0 {
		return nil, &recommend.NotFoundError{State: state}
	}
	return districts, nil
}

// RowCounts returns the number of rows in the historical and requirement tables.
func (db *DB) RowCounts(ctx context.Context) (historical, requirements int64, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if err = db.conn.QueryRowContext(ctx, "SELECT count(*) FROM historical").Scan(&historical); err != nil {
		return 0, 0, fmt.Errorf("failed to count historical rows: %w", err)
	}
	if err = db.conn.QueryRowContext(ctx, "SELECT count(*) FROM crop_requirements").Scan(&requirements); err != nil {
		return 0, 0, fmt.Errorf("failed to count crop requirement rows: %w", err)
	}
	return historical, requirements, nil
}

func (db *DB) distinct(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (db *DB) historicalContextColumns() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.contextColumns
}

// queryError hides lookups that found nothing from the error metric.
func queryError(err error) error {
	if errors.Is(err, recommend.ErrNotFound) {
		return nil
	}
	return err
}
