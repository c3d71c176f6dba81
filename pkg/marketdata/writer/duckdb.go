package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/quantfold/fohlcv/internal/types"
	"github.com/quantfold/fohlcv/pkg/errors"
)

// DuckDBWriter persists TOHLCV bars through an in-memory DuckDB table and
// exports the table to Parquet or CSV on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
	format     Format
}

// NewDuckDBWriter creates a new DuckDBWriter.
// outputPath is the file the final export will be written to; its extension
// should match the format.
func NewDuckDBWriter(outputPath string, format Format) MarketDataWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
		format:     format,
	}
}

// Initialize opens the in-memory database, creates the tohlcv table, begins a
// transaction, and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS tohlcv (
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return fmt.Errorf("failed to create table: %w", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO tohlcv (time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	return nil
}

// Write persists a single bar using the prepared statement within the transaction.
func (w *DuckDBWriter) Write(data types.MarketData) error {
	if w.stmt == nil {
		return fmt.Errorf("writer not initialized or statement is nil")
	}

	_, err := w.stmt.Exec(
		data.Time,
		data.Open,
		data.High,
		data.Low,
		data.Close,
		data.Volume,
	)
	if err != nil {
		return fmt.Errorf("failed to insert data: %w", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table to the output file.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", fmt.Errorf("writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.tx = nil

	if err = os.MkdirAll(filepath.Dir(w.outputPath), 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeOutputPathFailed, err, "failed to create output directory for %s", w.outputPath)
	}

	var copyStmt string

	switch w.format {
	case FormatCSV:
		copyStmt = fmt.Sprintf(`COPY tohlcv TO '%s' (FORMAT CSV, HEADER)`, w.outputPath)
	case FormatParquet:
		copyStmt = fmt.Sprintf(`COPY tohlcv TO '%s' (FORMAT PARQUET)`, w.outputPath)
	default:
		return "", fmt.Errorf("unsupported output format: %q", w.format)
	}

	if _, err = w.db.Exec(copyStmt); err != nil {
		return "", fmt.Errorf("failed to export to %s: %w", w.format, err)
	}

	return w.outputPath, nil
}

// Close cleans up resources used by the writer. If Finalize was not called,
// any pending transaction is rolled back.
func (w *DuckDBWriter) Close() error {
	var closeErrors []error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close statement: %w", err))
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to rollback transaction: %w", err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close db connection: %w", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		errMsg := "errors occurred during close:"
		for _, e := range closeErrors {
			errMsg += fmt.Sprintf("\n- %v", e)
		}

		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
