package podcast

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteStore struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and applies
// the schema.
func OpenStore(path string) (Store, *sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite database: %w", err)
	}

	_, err = db.Exec(`
	PRAGMA busy_timeout  = 10000;
	PRAGMA journal_mode  = WAL;
	PRAGMA synchronous   = NORMAL;
	PRAGMA foreign_keys  = ON;

	create table if not exists podcasts (
		id text primary key,
		title text not null,
		created_at text not null,
		intro text not null,
		outro text not null,
		audio_file text not null,
		duration_sec real not null
	);

	create table if not exists key_points (
		podcast_id text not null references podcasts(id),
		position integer not null,
		title text not null,
		text text not null,
		primary key (podcast_id, position)
	);`)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("apply schema: %w", err)
	}

	return &sqliteStore{db: db}, db, nil
}

// NewStore wraps an existing database handle. The schema must already
// be applied; tests use this with in-memory databases.
func NewStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Insert(ctx context.Context, p Podcast) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert podcast: begin tx: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		insert into podcasts (id, title, created_at, intro, outro, audio_file, duration_sec)
		values ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Title, p.CreatedAt.Format(time.RFC3339), p.Intro, p.Outro, p.AudioFile, p.DurationSec,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert podcast: %w", err)
	}

	for i, kp := range p.KeyPoints {
		_, err = tx.ExecContext(ctx, `
			insert into key_points (podcast_id, position, title, text)
			values ($1, $2, $3, $4)`,
			p.ID, i, kp.Title, kp.Text,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert key point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert podcast: commit: %w", err)
	}
	return nil
}

func (s *sqliteStore) List(ctx context.Context) ([]Podcast, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, title, created_at, intro, outro, audio_file, duration_sec
		from podcasts
		order by created_at desc`)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []Podcast
	for rows.Next() {
		p, err := scanPodcast(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list podcasts: %w", err)
		}
		podcasts = append(podcasts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}

	return podcasts, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (Podcast, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, title, created_at, intro, outro, audio_file, duration_sec
		from podcasts where id = $1`, id)

	p, err := scanPodcast(row.Scan)
	if err != nil {
		return Podcast{}, fmt.Errorf("get podcast %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		select title, text from key_points
		where podcast_id = $1 order by position`, id)
	if err != nil {
		return Podcast{}, fmt.Errorf("get key points for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kp KeyPoint
		if err := rows.Scan(&kp.Title, &kp.Text); err != nil {
			return Podcast{}, fmt.Errorf("scan key point: %w", err)
		}
		p.KeyPoints = append(p.KeyPoints, kp)
	}
	if err := rows.Err(); err != nil {
		return Podcast{}, fmt.Errorf("get key points for %s: %w", id, err)
	}

	return p, nil
}

func scanPodcast(scan func(dest ...any) error) (Podcast, error) {
	var p Podcast
	var createdAt string
	if err := scan(&p.ID, &p.Title, &createdAt, &p.Intro, &p.Outro, &p.AudioFile, &p.DurationSec); err != nil {
		return Podcast{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Podcast{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	p.CreatedAt = t
	return p, nil
}
