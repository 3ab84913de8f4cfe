package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/things/internal/domain"
)

//go:embed schema.sql
var schema string

const objectColumns = `id, kind, name, notes, tag_names, status, activation_date, due_date,
	list_id, project_id, area_id, position, created_at, modified_at, completed_at`

// Store keeps the object graph in a SQLite database
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer; the object graph is driven by one call sequence at a time
	db.SetMaxOpenConns(1)

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.seedLists(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) seedLists() error {
	now := s.now()
	for i, l := range domain.BuiltinLists {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO objects (id, kind, name, position, created_at, modified_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, domain.KindList, l.Name, i, now, now,
		)
		if err != nil {
			return fmt.Errorf("seed list %s: %w", l.ID, err)
		}
	}
	return nil
}

// CreateToDo inserts an open to-do into the inbox
func (s *Store) CreateToDo(ctx context.Context, name, notes string) (*domain.Object, error) {
	return s.insert(ctx, domain.Object{
		Kind:   domain.KindToDo,
		Name:   name,
		Notes:  notes,
		Status: domain.StatusOpen,
		ListID: domain.InboxListID,
	})
}

// AddProject inserts an open project, optionally inside an area
func (s *Store) AddProject(ctx context.Context, name, areaID string) (*domain.Object, error) {
	if areaID != "" {
		if _, err := s.Get(ctx, domain.KindArea, areaID); err != nil {
			return nil, err
		}
	}
	return s.insert(ctx, domain.Object{
		Kind:   domain.KindProject,
		Name:   name,
		Status: domain.StatusOpen,
		AreaID: areaID,
	})
}

// AddArea inserts an area
func (s *Store) AddArea(ctx context.Context, name string) (*domain.Object, error) {
	return s.insert(ctx, domain.Object{Kind: domain.KindArea, Name: name})
}

func (s *Store) insert(ctx context.Context, o domain.Object) (*domain.Object, error) {
	o.ID = uuid.New().String()
	o.CreatedAt = s.now()
	o.ModifiedAt = o.CreatedAt

	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), 0) + 1 FROM objects").Scan(&o.Position)
	if err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}
	if err := s.save(ctx, s.db, &o); err != nil {
		return nil, fmt.Errorf("insert %s: %w", o.Kind, err)
	}
	return &o, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) save(ctx context.Context, db execer, o *domain.Object) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO objects (`+objectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Kind, o.Name, o.Notes, o.TagNames, o.Status, o.ActivationDate, o.DueDate,
		o.ListID, o.ProjectID, o.AreaID, o.Position, o.CreatedAt, o.ModifiedAt, o.CompletedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObject(row rowScanner) (domain.Object, error) {
	var (
		o                            domain.Object
		activation, due, completedAt sql.NullTime
	)
	err := row.Scan(&o.ID, &o.Kind, &o.Name, &o.Notes, &o.TagNames, &o.Status, &activation, &due,
		&o.ListID, &o.ProjectID, &o.AreaID, &o.Position, &o.CreatedAt, &o.ModifiedAt, &completedAt)
	if err != nil {
		return o, err
	}
	o.ActivationDate = nullTime(activation)
	o.DueDate = nullTime(due)
	o.CompletedAt = nullTime(completedAt)
	return o, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Get returns the object of the given kind, or domain.ErrNotFound
func (s *Store) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Object, error) {
	o, err := scanObject(s.db.QueryRowContext(ctx,
		"SELECT "+objectColumns+" FROM objects WHERE id = ? AND kind = ?", id, kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return &o, nil
}

func (s *Store) load(ctx context.Context, id string) (*domain.Object, error) {
	o, err := scanObject(s.db.QueryRowContext(ctx,
		"SELECT "+objectColumns+" FROM objects WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("object %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	if !movable(o.Kind) {
		return nil, fmt.Errorf("%s %s cannot be modified: %w", o.Kind, id, domain.ErrInvalidInput)
	}
	return &o, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]domain.Object, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objs []domain.Object
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		objs = append(objs, o)
	}
	return objs, rows.Err()
}

// Enumerate returns every object of kind in display order
func (s *Store) Enumerate(ctx context.Context, kind domain.Kind) ([]domain.Object, error) {
	objs, err := s.query(ctx,
		"SELECT "+objectColumns+" FROM objects WHERE kind = ? ORDER BY position, created_at", kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return objs, nil
}

// ProjectToDos returns the to-dos of a project in display order
func (s *Store) ProjectToDos(ctx context.Context, projectID string) ([]domain.Object, error) {
	objs, err := s.query(ctx,
		"SELECT "+objectColumns+" FROM objects WHERE kind = ? AND project_id = ? ORDER BY position, created_at",
		domain.KindToDo, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project to-dos: %w", err)
	}
	return objs, nil
}

// AppendToList puts the item at the end of a built-in list
func (s *Store) AppendToList(ctx context.Context, listID, itemID string) error {
	if _, err := s.Get(ctx, domain.KindList, listID); err != nil {
		return err
	}
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), 0) + 1 FROM objects").Scan(&o.Position); err != nil {
		return fmt.Errorf("next position: %w", err)
	}
	o.ListID = listID
	o.ModifiedAt = s.now()
	return s.save(ctx, s.db, o)
}

// Move puts the item into a list, or right after a sibling (taking the
// sibling's project)
func (s *Store) Move(ctx context.Context, itemID string, to domain.MoveTarget) error {
	if to.ListID != "" {
		if _, err := s.Get(ctx, domain.KindList, to.ListID); err != nil {
			return err
		}
		o, err := s.load(ctx, itemID)
		if err != nil {
			return err
		}
		o.ListID = to.ListID
		o.ModifiedAt = s.now()
		return s.save(ctx, s.db, o)
	}

	anchor, err := s.load(ctx, to.AfterID)
	if err != nil {
		return fmt.Errorf("move anchor: %w", err)
	}
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move: %w", err)
	}
	defer tx.Rollback()

	o.ProjectID, o.ListID, o.AreaID = anchor.ProjectID, "", ""
	o.ModifiedAt = s.now()
	if err := s.save(ctx, tx, o); err != nil {
		return fmt.Errorf("move: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id FROM objects WHERE kind = ? AND project_id = ? ORDER BY position, created_at",
		domain.KindToDo, anchor.ProjectID)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("move: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	for i, id := range reorderAfter(ids, itemID, anchor.ID) {
		if _, err := tx.ExecContext(ctx, "UPDATE objects SET position = ? WHERE id = ?", i+1, id); err != nil {
			return fmt.Errorf("reorder: %w", err)
		}
	}
	return tx.Commit()
}

// Schedule sets or clears the activation date
func (s *Store) Schedule(ctx context.Context, itemID string, when *time.Time) error {
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	if when != nil {
		t := *when
		o.ActivationDate = &t
	} else {
		o.ActivationDate = nil
	}
	o.ModifiedAt = s.now()
	return s.save(ctx, s.db, o)
}

// Update applies attribute writes to a to-do or project
func (s *Store) Update(ctx context.Context, itemID string, p domain.Patch) error {
	o, err := s.load(ctx, itemID)
	if err != nil {
		return err
	}
	applyPatch(o, p, s.now())
	if err := s.save(ctx, s.db, o); err != nil {
		return fmt.Errorf("update %s: %w", itemID, err)
	}
	return nil
}
