package recordsource

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aalvaropc/statemelt/internal/domain"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// readSQLite reads every row of table in rowid order.
func readSQLite(ctx context.Context, path, table string) ([]recordDTO, error) {
	const op = "recordsource.sqlite"

	// sql.Open would silently create a missing database.
	if _, err := os.Stat(path); err != nil {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("%w: %w", err, domain.ErrNotFound),
		}
	}
	if !tableNameRe.MatchString(table) {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("invalid table name %q: %w", table, domain.ErrInvalidConfig),
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, executionError(op, path, err)
	}
	defer db.Close()

	q := fmt.Sprintf(`SELECT "%s" FROM "%s" ORDER BY rowid`, strings.Join(recordColumns, `", "`), table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("query table %q: %v: %w", table, err, domain.ErrInvalidConfig),
		}
	}
	defer rows.Close()

	var dtos []recordDTO
	for i := 0; rows.Next(); i++ {
		var name sql.NullString
		var obesity, mcd, sbux, subway, taco sql.NullFloat64
		if err := rows.Scan(&name, &obesity, &mcd, &sbux, &subway, &taco); err != nil {
			return nil, invalidRecord(path, fmt.Sprintf("records[%d]", i), err.Error())
		}

		dtos = append(dtos, recordDTO{
			Name:              nullString(name),
			ObesityPercentage: nullFloat(obesity),
			McDonalds:         nullFloat(mcd),
			Starbucks:         nullFloat(sbux),
			Subway:            nullFloat(subway),
			TacoBell:          nullFloat(taco),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, executionError(op, path, err)
	}
	return dtos, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
