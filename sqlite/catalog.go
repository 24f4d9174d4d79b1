package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/markdownify"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ markdownify.Catalog = (*Catalog)(nil)

// Catalog implements markdownify.Catalog using SQLite.
type Catalog struct {
	db *DB
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db}
}

// StartCrawl inserts a run with a generated ID.
func (c *Catalog) StartCrawl(ctx context.Context, run *markdownify.CrawlRun) error {
	if run.StartURL == "" {
		return markdownify.Errorf(markdownify.EINVALID, "crawl start URL required")
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO crawls (id, start_url, output_dir, max_pages, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.StartURL, run.OutputDir, run.MaxPages, formatTime(run.StartedAt))
	return err
}

// FinishCrawl stores the final counters of a run.
func (c *Catalog) FinishCrawl(ctx context.Context, run *markdownify.CrawlRun) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	res, err := c.db.ExecContext(ctx, `
		UPDATE crawls
		SET processed = ?, written = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`, run.Processed, run.Written, run.Failed, formatTime(run.FinishedAt), run.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return markdownify.Errorf(markdownify.ENOTFOUND, "crawl not found")
	}
	return nil
}

// RecordPage inserts the outcome of one processed page.
func (c *Catalog) RecordPage(ctx context.Context, rec *markdownify.PageRecord) error {
	if rec.CrawlID == "" {
		return markdownify.Errorf(markdownify.EINVALID, "page crawl ID required")
	}
	if rec.URL == "" {
		return markdownify.Errorf(markdownify.EINVALID, "page URL required")
	}

	rec.ID = uuid.New().String()
	if rec.ProcessedAt.IsZero() {
		rec.ProcessedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (id, crawl_id, url, path, title, status, error, bytes, content_hash, position, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.CrawlID, rec.URL, rec.Path, rec.Title, string(rec.Status), rec.Error,
		rec.Bytes, rec.ContentHash, rec.Position, formatTime(rec.ProcessedAt))
	return err
}

// FindPages returns the pages of a run ordered by position.
func (c *Catalog) FindPages(ctx context.Context, crawlID string) ([]*markdownify.PageRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, crawl_id, url, path, title, status, error, bytes, content_hash, position, processed_at
		FROM pages
		WHERE crawl_id = ?
		ORDER BY position
	`, crawlID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*markdownify.PageRecord
	for rows.Next() {
		var (
			rec         markdownify.PageRecord
			status      string
			processedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.CrawlID, &rec.URL, &rec.Path, &rec.Title, &status,
			&rec.Error, &rec.Bytes, &rec.ContentHash, &rec.Position, &processedAt); err != nil {
			return nil, err
		}
		rec.Status = markdownify.PageStatus(status)
		if rec.ProcessedAt, err = parseRFC3339(processedAt, "processed_at"); err != nil {
			return nil, err
		}
		pages = append(pages, &rec)
	}
	return pages, rows.Err()
}

// FindCrawlByID retrieves a run by ID.
func (c *Catalog) FindCrawlByID(ctx context.Context, id string) (*markdownify.CrawlRun, error) {
	var (
		run        markdownify.CrawlRun
		startedAt  string
		finishedAt string
	)

	err := c.db.QueryRowContext(ctx, `
		SELECT id, start_url, output_dir, max_pages, processed, written, failed, started_at, finished_at
		FROM crawls
		WHERE id = ?
	`, id).Scan(&run.ID, &run.StartURL, &run.OutputDir, &run.MaxPages, &run.Processed,
		&run.Written, &run.Failed, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, markdownify.Errorf(markdownify.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
