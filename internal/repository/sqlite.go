package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"go-doc-inspector/pkg/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS document_analyses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	is_quality_good INTEGER NOT NULL,
	is_scanned INTEGER NOT NULL,
	pages_analyzed INTEGER NOT NULL,
	analysis_json TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_document_analyses_created_at
	ON document_analyses (created_at DESC);
`

// SQLiteRepository implements AnalysisRepository on an embedded sqlite file
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (and if needed creates) the history database at
// dsn. Use ":memory:" for an ephemeral store.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// The sqlite driver is single-writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) SaveDocumentAnalysis(ctx context.Context, source string, analysis models.DocumentAnalysis) (int64, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return 0, fmt.Errorf("encode analysis: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO document_analyses
			(source, is_quality_good, is_scanned, pages_analyzed, analysis_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		source,
		boolToInt(analysis.IsQualityGood),
		boolToInt(analysis.IsScanned),
		analysis.PagesAnalyzed,
		string(payload),
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetDocumentAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source, is_quality_good, is_scanned, pages_analyzed, analysis_json, created_at
		 FROM document_analyses WHERE id = ?`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load analysis %d: %w", id, err)
	}
	return record, nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, is_quality_good, is_scanned, pages_analyzed, analysis_json, created_at
		 FROM document_analyses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*AnalysisRecord, error) {
	var (
		record      AnalysisRecord
		goodInt     int
		scannedInt  int
		payloadJSON string
	)
	if err := row.Scan(&record.ID, &record.Source, &goodInt, &scannedInt,
		&record.PagesAnalyzed, &payloadJSON, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.IsQualityGood = goodInt != 0
	record.IsScanned = scannedInt != 0
	if err := json.Unmarshal([]byte(payloadJSON), &record.Analysis); err != nil {
		return nil, err
	}
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
