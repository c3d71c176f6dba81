package marketdata

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/quantfold/fohlcv/pkg/errors"
)

// FileStats describes a previously saved TOHLCV file.
type FileStats struct {
	Rows  int64
	Start time.Time
	End   time.Time
}

// DaysCovered returns the whole days between the first and last bar.
func (s *FileStats) DaysCovered() int {
	return int(s.End.Sub(s.Start).Hours() / 24)
}

// ReadStats reads row count and date range back from a saved Parquet or CSV
// file using DuckDB's file readers.
func ReadStats(path string) (*FileStats, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStatsFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	var view string

	switch filepath.Ext(path) {
	case ".parquet":
		view = fmt.Sprintf(`CREATE VIEW tohlcv AS SELECT * FROM read_parquet('%s')`, path)
	case ".csv":
		view = fmt.Sprintf(`CREATE VIEW tohlcv AS SELECT * FROM read_csv_auto('%s')`, path)
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported file extension: %q", filepath.Ext(path))
	}

	if _, err := db.Exec(view); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStatsFailed, err, "failed to read %s", path)
	}

	stats := &FileStats{}

	if err := db.QueryRow(`SELECT COUNT(*) FROM tohlcv`).Scan(&stats.Rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStatsFailed, "failed to count rows", err)
	}

	if stats.Rows == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptySeries, "file %s contains no rows", path)
	}

	if err := db.QueryRow(`SELECT MIN(time), MAX(time) FROM tohlcv`).Scan(&stats.Start, &stats.End); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStatsFailed, "failed to read date range", err)
	}

	return stats, nil
}
