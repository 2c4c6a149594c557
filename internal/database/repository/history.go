package repository

import (
	"context"
	"database/sql"
	"time"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// HistoryRepo handles the valuation history.
type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

const historyColumns = `id, created_at, manufacturer, model, year, transmission,
	mileage, fuel_type, tax, mpg, engine_size, predicted_price`

// Insert stores v and returns its id. A zero CreatedAt takes the current time.
func (r *HistoryRepo) Insert(ctx context.Context, v Valuation) (int64, error) {
	return insert(ctx, r.db, v)
}

// InsertTx is Insert inside a caller-owned transaction.
func (r *HistoryRepo) InsertTx(ctx context.Context, tx *sql.Tx, v Valuation) (int64, error) {
	return insert(ctx, tx, v)
}

func insert(ctx context.Context, ex execer, v Valuation) (int64, error) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	res, err := ex.ExecContext(ctx, `
	INSERT INTO history(created_at, manufacturer, model, year, transmission,
		mileage, fuel_type, tax, mpg, engine_size, predicted_price)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, v.CreatedAt.UTC(), v.Manufacturer, v.Model, v.Year, v.Transmission,
		v.Mileage, v.FuelType, v.Tax, v.MPG, v.EngineSize, v.PredictedPrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns every valuation, newest first.
func (r *HistoryRepo) List(ctx context.Context) ([]Valuation, error) {
	return r.query(ctx, `SELECT `+historyColumns+` FROM history ORDER BY created_at DESC, id DESC`)
}

// Recent returns at most n valuations, newest first.
func (r *HistoryRepo) Recent(ctx context.Context, n int) ([]Valuation, error) {
	return r.query(ctx, `SELECT `+historyColumns+` FROM history ORDER BY created_at DESC, id DESC LIMIT ?`, n)
}

func (r *HistoryRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(predicted_price), 0) FROM history`)
	if err := row.Scan(&t.Count, &t.Value); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// CountSince counts valuations created at or after t.
func (r *HistoryRepo) CountSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE created_at >= ?`, t.UTC())
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// TopBrands returns the n most valued manufacturers; ties go to the name.
func (r *HistoryRepo) TopBrands(ctx context.Context, n int) ([]BrandCount, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT manufacturer, COUNT(*) AS c FROM history
	GROUP BY manufacturer ORDER BY c DESC, manufacturer ASC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BrandCount
	for rows.Next() {
		var b BrandCount
		if err := rows.Scan(&b.Manufacturer, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Clear deletes every valuation and resets the id sequence.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return err
	}
	// sqlite_sequence only exists once an AUTOINCREMENT row was written.
	_, _ = r.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'history'`)
	return nil
}

func (r *HistoryRepo) query(ctx context.Context, q string, args ...any) ([]Valuation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Valuation
	for rows.Next() {
		var v Valuation
		if err := rows.Scan(&v.ID, &v.CreatedAt, &v.Manufacturer, &v.Model, &v.Year,
			&v.Transmission, &v.Mileage, &v.FuelType, &v.Tax, &v.MPG, &v.EngineSize,
			&v.PredictedPrice); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
