// Package store keeps finished sessions in sqlite so they can be ranked
// and replayed later.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"git.lost.host/meutraa/judge/internal/engine"
	"git.lost.host/meutraa/judge/internal/game"
	"git.lost.host/meutraa/judge/internal/score"
	"git.lost.host/meutraa/judge/internal/window"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const initStatement = `
create table if not exists records
  (
	  id text not null primary key,
	  sum text not null,
	  windows text not null,
	  score real,
	  tp real,
	  max_combo integer,
	  clear integer,
	  step real,
	  inputs blob,
	  created_at integer
  );
create index if not exists records_sum on records(sum, windows);
`

type Store struct {
	db *sql.DB
}

// Record is one finished session
type Record struct {
	ID        string
	Sum       string
	Windows   string // Name of the timing window table used
	Score     float32
	Tp        float32
	MaxCombo  uint32
	Clear     game.ClearType
	Step      float64
	Inputs    []game.Event
	CreatedAt time.Time
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, err
	}
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create records table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashChart identifies a chart by its judged content
func HashChart(c *game.Chart) string {
	h := sha256.New()
	fmt.Fprintf(h, "%v %v\n", c.PageDuration, c.PageShift)
	for _, n := range c.Notes {
		next := "-"
		if id, ok := n.Connected(); ok {
			next = fmt.Sprint(id)
		}
		fmt.Fprintf(h, "%d %v %v %v %s\n", n.ID, n.Archetype, n.Time, n.Duration, next)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Save stores a finished session
func (s *Store) Save(ctx context.Context, c *game.Chart, windows string, d *game.PlayData, inputs []game.Event, step float64) (*Record, error) {
	data, err := json.Marshal(score.Compact(inputs))
	if nil != err {
		return nil, fmt.Errorf("unable to marshal inputs: %w", err)
	}
	r := &Record{
		ID:        uuid.NewString(),
		Sum:       HashChart(c),
		Windows:   windows,
		Score:     d.Score,
		Tp:        d.Tp,
		MaxCombo:  d.MaxCombo,
		Clear:     d.Clear(len(c.Notes)),
		Step:      step,
		Inputs:    inputs,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx,
		"insert into records(id, sum, windows, score, tp, max_combo, clear, step, inputs, created_at) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Sum, r.Windows, r.Score, r.Tp, r.MaxCombo, r.Clear, r.Step, data, r.CreatedAt.Unix(),
	)
	if nil != err {
		return nil, fmt.Errorf("unable to save record: %w", err)
	}
	return r, nil
}

// Load returns every record of a chart, newest first
func (s *Store) Load(ctx context.Context, c *game.Chart) ([]Record, error) {
	return s.query(ctx, "select id, sum, windows, score, tp, max_combo, clear, step, inputs, created_at from records where sum = ? order by created_at desc, rowid desc", HashChart(c))
}

// Best returns the highest scoring record of a chart for a window table, nil
// if there is none
func (s *Store) Best(ctx context.Context, c *game.Chart, windows string) (*Record, error) {
	records, err := s.query(ctx, "select id, sum, windows, score, tp, max_combo, clear, step, inputs, created_at from records where sum = ? and windows = ? order by score desc, tp desc, created_at asc limit 1", HashChart(c), windows)
	if nil != err || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to load records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var inputs []byte
		var created int64
		if err := rows.Scan(&r.ID, &r.Sum, &r.Windows, &r.Score, &r.Tp, &r.MaxCombo, &r.Clear, &r.Step, &inputs, &created); nil != err {
			return nil, err
		}
		var compact []score.InputsCompact
		if err := json.Unmarshal(inputs, &compact); nil != err {
			log.Println("unable to unmarshal inputs of record", r.ID, err)
			continue
		}
		r.Inputs = score.Uncompact(compact)
		r.CreatedAt = time.Unix(created, 0).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// Rescore replays a stored session against a chart and window table
func Rescore(c *game.Chart, table window.Table, r *Record) (game.PlayData, error) {
	return engine.Replay(c, table, r.Inputs, r.Step)
}
