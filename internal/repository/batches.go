package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/catalog-engine/internal/batchio"
)

const (
	kindMovie  = "movie"
	kindSerial = "serial"
)

// BatchesRepository stores named batch fixtures: a catalog snapshot plus the
// actions to evaluate against it. Evaluation results are never written back.
type BatchesRepository struct {
	pool *pgxpool.Pool
}

// BatchSummary describes a stored fixture.
type BatchSummary struct {
	Name      string
	Actions   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Save replaces the fixture called name with in, atomically.
func (r *BatchesRepository) Save(ctx context.Context, name string, in batchio.Input) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save batch: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const upsert = `
        INSERT INTO batches (name) VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET updated_at = now()
    `
	if _, err := tx.Exec(ctx, upsert, name); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	for _, table := range []string{"batch_users", "batch_shows", "batch_actors", "batch_actions"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE batch_name = $1", name); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	b := &pgx.Batch{}
	for i, u := range in.Users {
		b.Queue(`
            INSERT INTO batch_users (batch_name, position, username, subscription, history, favorites)
            VALUES ($1,$2,$3,$4,$5,$6)`,
			name, i, u.Username, u.Subscription, orEmptyMap(u.History), orEmpty(u.FavoriteMovies))
	}
	for i, m := range in.Movies {
		b.Queue(`
            INSERT INTO batch_shows (batch_name, kind, position, title, year, cast_names, genres, duration, ratings)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			name, kindMovie, i, m.Title, m.Year, orEmpty(m.Cast), orEmpty(m.Genres), m.Duration, orEmpty(m.Ratings))
	}
	for i, s := range in.Serials {
		seasons := s.Seasons
		if seasons == nil {
			seasons = []batchio.SeasonRecord{}
		}
		b.Queue(`
            INSERT INTO batch_shows (batch_name, kind, position, title, year, cast_names, genres, number_seasons, seasons)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			name, kindSerial, i, s.Title, s.Year, orEmpty(s.Cast), orEmpty(s.Genres), s.NumberSeasons, seasons)
	}
	for i, a := range in.Actors {
		b.Queue(`
            INSERT INTO batch_actors (batch_name, position, name, career_description, filmography, awards)
            VALUES ($1,$2,$3,$4,$5,$6)`,
			name, i, a.Name, a.CareerDescription, orEmpty(a.Filmography), orEmptyMap(a.Awards))
	}
	for i, a := range in.Actions {
		b.Queue(`INSERT INTO batch_actions (batch_name, position, payload) VALUES ($1,$2,$3)`, name, i, a)
	}

	if b.Len() > 0 {
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return fmt.Errorf("insert batch rows: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save batch: %w", err)
	}
	return nil
}

// Load reads the fixture called name back in its original order.
func (r *BatchesRepository) Load(ctx context.Context, name string) (batchio.Input, error) {
	var in batchio.Input

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM batches WHERE name = $1)`, name).Scan(&exists); err != nil {
		return in, fmt.Errorf("lookup batch: %w", err)
	}
	if !exists {
		return in, ErrNotFound
	}

	var err error
	if in.Users, err = r.loadUsers(ctx, name); err != nil {
		return in, err
	}
	if in.Movies, in.Serials, err = r.loadShows(ctx, name); err != nil {
		return in, err
	}
	if in.Actors, err = r.loadActors(ctx, name); err != nil {
		return in, err
	}
	if in.Actions, err = r.loadActions(ctx, name); err != nil {
		return in, err
	}
	return in, nil
}

func (r *BatchesRepository) loadUsers(ctx context.Context, name string) ([]batchio.UserRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT username, subscription, history, favorites
        FROM batch_users WHERE batch_name = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []batchio.UserRecord
	for rows.Next() {
		var u batchio.UserRecord
		if err := rows.Scan(&u.Username, &u.Subscription, &u.History, &u.FavoriteMovies); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *BatchesRepository) loadShows(ctx context.Context, name string) ([]batchio.MovieRecord, []batchio.SerialRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT kind, title, year, cast_names, genres, duration, number_seasons, ratings, seasons
        FROM batch_shows WHERE batch_name = $1 ORDER BY kind, position`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	var (
		movies  []batchio.MovieRecord
		serials []batchio.SerialRecord
	)
	for rows.Next() {
		var (
			kind, title                   string
			year, duration, numberSeasons int
			cast, genres                  []string
			ratings                       []float64
			seasons                       []batchio.SeasonRecord
		)
		if err := rows.Scan(&kind, &title, &year, &cast, &genres, &duration, &numberSeasons, &ratings, &seasons); err != nil {
			return nil, nil, fmt.Errorf("scan show: %w", err)
		}
		switch kind {
		case kindMovie:
			movies = append(movies, batchio.MovieRecord{
				Title: title, Year: year, Cast: cast, Genres: genres, Duration: duration, Ratings: ratings,
			})
		case kindSerial:
			serials = append(serials, batchio.SerialRecord{
				Title: title, Year: year, Cast: cast, Genres: genres, NumberSeasons: numberSeasons, Seasons: seasons,
			})
		}
	}
	return movies, serials, rows.Err()
}

func (r *BatchesRepository) loadActors(ctx context.Context, name string) ([]batchio.ActorRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT name, career_description, filmography, awards
        FROM batch_actors WHERE batch_name = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	defer rows.Close()

	var actors []batchio.ActorRecord
	for rows.Next() {
		var a batchio.ActorRecord
		if err := rows.Scan(&a.Name, &a.CareerDescription, &a.Filmography, &a.Awards); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (r *BatchesRepository) loadActions(ctx context.Context, name string) ([]batchio.ActionRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT payload FROM batch_actions WHERE batch_name = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var actions []batchio.ActionRecord
	for rows.Next() {
		var a batchio.ActionRecord
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// List returns every stored fixture ordered by name.
func (r *BatchesRepository) List(ctx context.Context) ([]BatchSummary, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT b.name, COUNT(a.position)::int, b.created_at, b.updated_at
        FROM batches b
        LEFT JOIN batch_actions a ON a.batch_name = b.name
        GROUP BY b.name, b.created_at, b.updated_at
        ORDER BY b.name`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	summaries := []BatchSummary{}
	for rows.Next() {
		var s BatchSummary
		if err := rows.Scan(&s.Name, &s.Actions, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Delete removes a fixture and everything it owns.
func (r *BatchesRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM batches WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func orEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func orEmptyMap(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
