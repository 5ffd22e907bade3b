package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"argprep/internal/model"
	"argprep/internal/repository"
)

// CasePostgres is a PostgreSQL implementation of repository.CaseRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CasePostgres struct {
	db *sql.DB
}

// NewCasePostgres creates a new CasePostgres repository.
func NewCasePostgres(db *sql.DB) *CasePostgres {
	return &CasePostgres{db: db}
}

var _ repository.CaseRepository = (*CasePostgres)(nil)

const caseColumns = `id, status, follow_up_count, created_at, updated_at`

const fileColumns = `id, case_id, side, filename, storage_path, raw_text, cleaned_text, format, points, metadata, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCase(row scanner) (*model.Case, error) {
	var c model.Case
	var status string
	if err := row.Scan(&c.ID, &status, &c.FollowUpCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = model.CaseStatus(status)
	return &c, nil
}

func scanFile(row scanner) (*model.CaseFile, error) {
	var (
		f            model.CaseFile
		side, format string
		points, meta []byte
	)
	if err := row.Scan(
		&f.ID,
		&f.CaseID,
		&side,
		&f.Result.Filename,
		&f.StoragePath,
		&f.Result.RawText,
		&f.Result.CleanedText,
		&format,
		&points,
		&meta,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	f.Side = model.Side(side)
	fmtv, err := model.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	f.Result.Format = fmtv
	if err := json.Unmarshal(points, &f.Result.Points); err != nil {
		return nil, fmt.Errorf("decode points of file %s: %w", f.ID, err)
	}
	if err := json.Unmarshal(meta, &f.Result.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata of file %s: %w", f.ID, err)
	}
	return &f, nil
}

// CreateCase inserts a new case row and returns the stored record.
func (r *CasePostgres) CreateCase(ctx context.Context, c *model.Case) (*model.Case, error) {
	const q = `
		INSERT INTO cases (id, status, follow_up_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + caseColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		string(c.Status),
		c.FollowUpCount,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return scanCase(row)
}

// GetCase fetches a single case by its ID.
func (r *CasePostgres) GetCase(ctx context.Context, id string) (*model.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	return scanCase(r.db.QueryRowContext(ctx, q, id))
}

// ListCases returns cases using LIMIT/OFFSET pagination and a total count.
func (r *CasePostgres) ListCases(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Case], error) {
	const qCount = `SELECT COUNT(*) FROM cases`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + caseColumns + `
		FROM cases
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Case]{Items: items, Total: total}, nil
}

// ListFiles returns every file of a case in insertion order. seq is assigned
// while the case row is locked, so it follows commit order.
func (r *CasePostgres) ListFiles(ctx context.Context, caseID string) ([]model.CaseFile, error) {
	const q = `SELECT ` + fileColumns + `
		FROM case_files
		WHERE case_id = $1
		ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]model.CaseFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// GetFile fetches one file of a case.
func (r *CasePostgres) GetFile(ctx context.Context, caseID, fileID string) (*model.CaseFile, error) {
	const q = `SELECT ` + fileColumns + ` FROM case_files WHERE case_id = $1 AND id = $2`
	return scanFile(r.db.QueryRowContext(ctx, q, caseID, fileID))
}

// ListSequence returns the submission entries of a case ordered by ord.
func (r *CasePostgres) ListSequence(ctx context.Context, caseID string) ([]model.SequenceEntry, error) {
	const q = `
		SELECT side, ord, text, point_count
		FROM sequence_entries
		WHERE case_id = $1
		ORDER BY ord`
	rows, err := r.db.QueryContext(ctx, q, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.SequenceEntry, 0)
	for rows.Next() {
		var e model.SequenceEntry
		var side string
		if err := rows.Scan(&side, &e.Order, &e.Text, &e.PointCount); err != nil {
			return nil, err
		}
		e.Side = model.Side(side)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendSubmission writes files and the sequence entry of one batch atomically.
// The case row is locked so concurrent submissions serialize on it.
func (r *CasePostgres) AppendSubmission(ctx context.Context, caseID string, expected model.CaseStatus, files []model.CaseFile, entry model.SequenceEntry) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status string
	if err = tx.QueryRowContext(ctx, `SELECT status FROM cases WHERE id = $1 FOR UPDATE`, caseID).Scan(&status); err != nil {
		return err
	}
	if model.CaseStatus(status) != expected {
		err = repository.ErrStatusConflict
		return err
	}

	var count int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sequence_entries WHERE case_id = $1`, caseID).Scan(&count); err != nil {
		return err
	}
	if entry.Order != count+1 {
		err = repository.ErrSequenceConflict
		return err
	}

	const qFile = `
		INSERT INTO case_files (id, case_id, side, filename, storage_path, raw_text, cleaned_text, format, points, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, f := range files {
		var points, meta []byte
		if points, err = json.Marshal(f.Result.Points); err != nil {
			return err
		}
		if meta, err = json.Marshal(f.Result.Metadata); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, qFile,
			f.ID,
			caseID,
			string(f.Side),
			f.Result.Filename,
			f.StoragePath,
			f.Result.RawText,
			f.Result.CleanedText,
			f.Result.Format.String(),
			points,
			meta,
			f.CreatedAt,
		); err != nil {
			return err
		}
	}

	const qEntry = `
		INSERT INTO sequence_entries (case_id, ord, side, text, point_count)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err = tx.ExecContext(ctx, qEntry, caseID, entry.Order, string(entry.Side), entry.Text, entry.PointCount); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `UPDATE cases SET updated_at = now() WHERE id = $1`, caseID); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus sets the status of a case. It returns sql.ErrNoRows if the case does not exist.
func (r *CasePostgres) UpdateStatus(ctx context.Context, id string, status model.CaseStatus) error {
	const q = `UPDATE cases SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, string(status))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementFollowUps bumps follow_up_count if it is still below limit.
func (r *CasePostgres) IncrementFollowUps(ctx context.Context, id string, limit int) (int, error) {
	const q = `
		UPDATE cases
		SET follow_up_count = follow_up_count + 1, updated_at = now()
		WHERE id = $1 AND follow_up_count < $2
		RETURNING follow_up_count`
	var n int
	if err := r.db.QueryRowContext(ctx, q, id, limit).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Stats counts cases by outcome together with stored documents and follow-ups.
func (r *CasePostgres) Stats(ctx context.Context) (*model.CaseStats, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COALESCE(SUM(follow_up_count), 0),
			(SELECT COUNT(*) FROM case_files)
		FROM cases`
	var st model.CaseStats
	if err := r.db.QueryRowContext(ctx, q, string(model.StatusAdjudicated)).Scan(
		&st.TotalCases, &st.DecidedCases, &st.TotalFollowUps, &st.TotalDocuments,
	); err != nil {
		return nil, err
	}
	st.PendingCases = st.TotalCases - st.DecidedCases
	return &st, nil
}
