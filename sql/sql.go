package sql

import (
	"database/sql"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS series (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  CONSTRAINT name_unique UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS sample (
  id INTEGER PRIMARY KEY,
  series_id INTEGER NOT NULL,
  time INTEGER NOT NULL,
  value INTEGER NOT NULL,
  FOREIGN KEY(series_id) REFERENCES series(id)
);

CREATE INDEX IF NOT EXISTS sample_time_idx ON sample (time);
`

type Client struct {
	db *sqlx.DB
	mu sync.RWMutex
}

type Series struct {
	Name    string `db:"name"`
	Samples int64  `db:"samples"`
	Min     int64  `db:"min"`
	Max     int64  `db:"max"`
	Last    int64  `db:"last"`
	Updated int64  `db:"updated"`
}

type Sample struct {
	Time  int64 `db:"time"`
	Value int64 `db:"value"`
}

func New(filename string) (*Client, error) {
	db, err := sqlx.Connect("sqlite3", filename)
	if err != nil {
		return nil, err
	}
	// Ensure foreign keys are enabled (defaults to off)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Client{db: db}, nil
}

func (c *Client) AddSeries(name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, err := c.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var n int64
	id := 0
	err = tx.Get(&id, "SELECT id FROM series WHERE name = $1 LIMIT 1", name)
	if err == sql.ErrNoRows {
		if _, err := tx.Exec("INSERT INTO series (name) VALUES ($1)", name); err != nil {
			return 0, err
		}
		n = 1
	} else if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (c *Client) AddSamples(seriesName string, samples []Sample) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, err := c.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	seriesID := 0
	if err := tx.Get(&seriesID, "SELECT id FROM series WHERE name = $1 LIMIT 1", seriesName); err != nil {
		return 0, errors.Wrapf(err, "invalid series: %s", seriesName)
	}

	query := `
SELECT COUNT(*)
FROM sample
WHERE series_id = $1 AND time = $2 AND value = $3
LIMIT 1`

	insertQuery := `
INSERT INTO sample (series_id, time, value)
VALUES ($1, $2, $3)
`

	var n int64
	for _, s := range samples {
		count := 0
		if err := tx.Get(&count, query, seriesID, s.Time, s.Value); err != nil {
			return n, err
		}
		if count > 0 {
			continue
		}
		if _, err := tx.Exec(insertQuery, seriesID, s.Time, s.Value); err != nil {
			return n, err
		}
		n++
	}
	return n, tx.Commit()
}

func (c *Client) GetSeries(name string) (Series, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var series Series
	query := `
SELECT name,
       COUNT(sample.id) AS samples,
       COALESCE(MIN(value), 0) AS min,
       COALESCE(MAX(value), 0) AS max,
       COALESCE((SELECT value FROM sample s2 WHERE s2.series_id = series.id
                 ORDER BY s2.time DESC, s2.id DESC LIMIT 1), 0) AS last,
       COALESCE(MAX(time), 0) AS updated
FROM series
LEFT JOIN sample ON series_id = series.id
WHERE name = $1
GROUP BY series.id
LIMIT 1`
	if err := c.db.Get(&series, query, name); err != nil {
		return Series{}, err
	}
	return series, nil
}

func (c *Client) SelectSamples(seriesName string) ([]Sample, error) {
	return c.SelectSamplesBetween(seriesName, time.Time{}, time.Time{})
}

func (c *Client) SelectSamplesBetween(seriesName string, since, until time.Time) ([]Sample, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	query := `
SELECT time, value FROM sample
INNER JOIN series ON series_id = series.id
WHERE name = ?`
	args := []interface{}{seriesName}
	if !since.IsZero() {
		query += " AND time >= ?"
		args = append(args, since.Unix())
	}
	if !until.IsZero() {
		query += " AND time <= ?"
		args = append(args, until.Unix())
	}
	query += " ORDER BY time ASC, sample.id ASC"
	var ss []Sample
	if err := c.db.Select(&ss, query, args...); err != nil {
		return nil, err
	}
	return ss, nil
}

func (c *Client) SelectSeries() ([]Series, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	query := `
SELECT name,
       COUNT(sample.id) AS samples,
       COALESCE(MIN(value), 0) AS min,
       COALESCE(MAX(value), 0) AS max,
       COALESCE((SELECT value FROM sample s2 WHERE s2.series_id = series.id
                 ORDER BY s2.time DESC, s2.id DESC LIMIT 1), 0) AS last,
       COALESCE(MAX(time), 0) AS updated
FROM series
LEFT JOIN sample ON series_id = series.id
GROUP BY series.id
ORDER BY name ASC`
	var ss []Series
	if err := c.db.Select(&ss, query); err != nil {
		return nil, err
	}
	return ss, nil
}
