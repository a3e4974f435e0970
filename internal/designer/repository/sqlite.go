package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"enclosure-designer/internal/designer/models"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("design not found")

//go:embed migrations/*.sql
var migrationsFS embed.FS

const sqliteDialect = "sqlite3"

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции.
func (r *Repository) Init(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, r.db, "migrations"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

// Save сохраняет результат построения. Пустой ID заменяется новым UUID.
func (r *Repository) Save(ctx context.Context, d *models.Design) (*models.Design, error) {
	params, err := json.Marshal(d.Parameters)
	if err != nil {
		return nil, fmt.Errorf("marshal parameters: %w", err)
	}

	rec := *d
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO designs (id, unit, params, assembly, net_volume)
        VALUES (?, ?, ?, ?, ?)
    `, rec.ID, rec.Unit, string(params), string(rec.Assembly), rec.NetVolume)
	if err != nil {
		return nil, fmt.Errorf("insert design: %w", err)
	}

	return r.GetByID(ctx, rec.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Design, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, unit, params, assembly, net_volume, created_at
        FROM designs
        WHERE id = ?
    `, id)

	d, err := scanDesign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return d, nil
}

// List последние limit записей, новые первыми.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Design, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, unit, params, assembly, net_volume, created_at
        FROM designs
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	designs := []models.Design{}
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, *d)
	}
	return designs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(s scanner) (*models.Design, error) {
	var (
		d        models.Design
		params   string
		assembly string
	)
	if err := s.Scan(&d.ID, &d.Unit, &params, &assembly, &d.NetVolume, &d.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(params), &d.Parameters); err != nil {
		return nil, fmt.Errorf("decode parameters of %s: %w", d.ID, err)
	}
	d.Assembly = []byte(assembly)
	return &d, nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
