package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"pdfchat/internal/log"
	"pdfchat/internal/models"
	"pdfchat/internal/types"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config holds the vector store settings.
type Config struct {
	ConnString string
	TableName  string
	VectorDim  int
	BatchSize  int
}

// VectorStore persists embedded chunks in Postgres with the pgvector
// extension and answers cosine-distance queries over them.
type VectorStore struct {
	config Config
	pool   *pgxpool.Pool
}

// NewWithConfig connects to Postgres, ensures the vector extension,
// table and index exist, and returns the store.
func NewWithConfig(ctx context.Context, config Config) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "pdf_documents"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 1536
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	// The table name is interpolated into DDL and queries, so it must
	// be a plain identifier.
	if !identPattern.MatchString(config.TableName) {
		return nil, fmt.Errorf("%w: invalid table name %q", types.ErrConfiguration, config.TableName)
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%w: creating connection pool: %v", types.ErrStore, err)
	}

	store := &VectorStore{
		config: config,
		pool:   pool,
	}

	if err := store.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	if err := vs.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: pinging database: %v", types.ErrStore, err)
	}

	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("%w: creating vector extension: %v", types.ErrStore, err)
	}

	_, err = vs.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			source TEXT,
			chunk_index INTEGER,
			embedding vector(%d),
			created_at TIMESTAMPTZ DEFAULT now()
		)
	`, vs.config.TableName, vs.config.VectorDim))
	if err != nil {
		return fmt.Errorf("%w: creating table: %v", types.ErrStore, err)
	}

	_, err = vs.pool.Exec(ctx, fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)
	`, vs.config.TableName, vs.config.TableName))
	if err != nil {
		return fmt.Errorf("%w: creating vector index: %v", types.ErrStore, err)
	}

	log.Debug("store initialized", "table", vs.config.TableName, "dim", vs.config.VectorDim)
	return nil
}

// Upsert appends entries to the table in batches, one transaction per
// batch. Existing rows are never touched; repeating an ingestion grows
// the table. A failure leaves earlier batches committed.
func (vs *VectorStore) Upsert(ctx context.Context, entries []models.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, content, source, chunk_index, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`, vs.config.TableName)

	for start := 0; start < len(entries); start += vs.config.BatchSize {
		end := start + vs.config.BatchSize
		if end > len(entries) {
			end = len(entries)
		}

		tx, err := vs.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("%w: starting transaction: %v", types.ErrStore, err)
		}

		for _, entry := range entries[start:end] {
			_, err = tx.Exec(ctx, stmt,
				entry.ID,
				sanitizeUTF8(entry.Content),
				entry.Source,
				entry.ChunkIndex,
				pgvector.NewVector(entry.Embedding),
			)
			if err != nil {
				tx.Rollback(ctx)
				return fmt.Errorf("%w: inserting entry %s: %v", types.ErrStore, entry.ID, err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("%w: committing batch: %v", types.ErrStore, err)
		}

		log.Debug("stored batch", "done", end, "total", len(entries))
	}

	return nil
}

// Search returns up to k entries ranked by cosine distance to the
// query embedding, nearest first. An empty table yields an empty
// result, not an error.
func (vs *VectorStore) Search(ctx context.Context, embedding []float32, k int) ([]models.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: search k must be positive, got %d", types.ErrStore, k)
	}

	query := fmt.Sprintf(`
		SELECT id, content, source, chunk_index, embedding <=> $1 AS distance
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("%w: querying similar entries: %v", types.ErrStore, err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.ID, &r.Content, &r.Source, &r.ChunkIndex, &r.Distance); err != nil {
			return nil, fmt.Errorf("%w: scanning result row: %v", types.ErrStore, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading result rows: %v", types.ErrStore, err)
	}

	return results, nil
}

// Clear removes every entry. Clearing an empty table succeeds.
func (vs *VectorStore) Clear(ctx context.Context) error {
	_, err := vs.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", vs.config.TableName))
	if err != nil {
		return fmt.Errorf("%w: clearing table: %v", types.ErrStore, err)
	}
	return nil
}

// Count returns the number of stored entries.
func (vs *VectorStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := vs.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", vs.config.TableName)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting entries: %v", types.ErrStore, err)
	}
	return count, nil
}

// Health checks connectivity and that the vector extension is
// installed.
func (vs *VectorStore) Health(ctx context.Context) error {
	if err := vs.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: pinging database: %v", types.ErrStore, err)
	}

	var installed bool
	err := vs.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'vector')").Scan(&installed)
	if err != nil {
		return fmt.Errorf("%w: checking vector extension: %v", types.ErrStore, err)
	}
	if !installed {
		return fmt.Errorf("%w: pgvector extension is not installed", types.ErrStore)
	}

	return nil
}

// Close releases the connection pool.
func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

// sanitizeUTF8 drops invalid UTF-8 sequences and NUL bytes, which
// Postgres TEXT columns reject.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) && !strings.ContainsRune(s, 0) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError || r == 0 {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
