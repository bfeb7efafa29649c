package slip

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the CRUD surface over persisted salary slips. Create and Update
// take raw field maps so partial bodies normalize through the same
// whitelist as every other boundary. All operations are atomic at the
// single-record granularity; there are no partial writes.
type Store interface {
	List(ctx context.Context) ([]SalaryRecord, error)
	Get(ctx context.Context, id string) (SalaryRecord, error)
	Create(ctx context.Context, fields map[string]any) (SalaryRecord, error)
	Update(ctx context.Context, id string, fields map[string]any) (SalaryRecord, error)
	Delete(ctx context.Context, id string) error
}

// PGStore keeps the slip collection in Postgres as jsonb documents: one row
// per slip, indexed only by identity and creation time.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) List(ctx context.Context) ([]SalaryRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT doc FROM salary_slips ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]SalaryRecord, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rec SalaryRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id string) (SalaryRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryRecord{}, ErrNotFound
	}

	var doc []byte
	err := s.DB.QueryRow(ctx, `
    SELECT doc FROM salary_slips WHERE id = $1
  `, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryRecord{}, ErrNotFound
	}
	if err != nil {
		return SalaryRecord{}, err
	}

	var rec SalaryRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return SalaryRecord{}, err
	}
	return rec, nil
}

func (s *PGStore) Create(ctx context.Context, fields map[string]any) (SalaryRecord, error) {
	var rec SalaryRecord
	Apply(&rec, fields)
	if err := Validate(rec); err != nil {
		return SalaryRecord{}, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	doc, err := json.Marshal(rec)
	if err != nil {
		return SalaryRecord{}, err
	}
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO salary_slips (id, doc, created_at) VALUES ($1, $2, $3)
  `, rec.ID, doc, rec.CreatedAt); err != nil {
		return SalaryRecord{}, err
	}
	return rec, nil
}

func (s *PGStore) Update(ctx context.Context, id string, fields map[string]any) (SalaryRecord, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return SalaryRecord{}, err
	}

	Apply(&rec, fields)
	if err := Validate(rec); err != nil {
		return SalaryRecord{}, err
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return SalaryRecord{}, err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE salary_slips SET doc = $2 WHERE id = $1
  `, id, doc)
	if err != nil {
		return SalaryRecord{}, err
	}
	if tag.RowsAffected() == 0 {
		return SalaryRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	tag, err := s.DB.Exec(ctx, `
    DELETE FROM salary_slips WHERE id = $1
  `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
