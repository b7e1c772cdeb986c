package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
)

// Storage is a SQLite-backed round history
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.HistoryStore = (*Storage)(nil)

// New opens (or creates) the database and runs migrations
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Storage) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS rounds (
			id          TEXT PRIMARY KEY,
			room        TEXT NOT NULL,
			reason      TEXT NOT NULL,
			players     TEXT NOT NULL,
			holder_id   TEXT,
			holder_name TEXT,
			cards_left  INTEGER NOT NULL DEFAULT 0,
			tricks      INTEGER NOT NULL DEFAULT 0,
			started_at  INTEGER NOT NULL,
			ended_at    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_room_ended ON rounds(room, ended_at DESC);
	`)
	return err
}

func (s *Storage) SaveRound(ctx context.Context, round *model.RoundSummary) error {
	players, err := json.Marshal(round.Players)
	if err != nil {
		return err
	}

	var holderID, holderName sql.NullString
	if round.Holder != nil {
		holderID = sql.NullString{String: string(round.Holder.ID), Valid: true}
		holderName = sql.NullString{String: round.Holder.DisplayName, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rounds (id, room, reason, players, holder_id, holder_name, cards_left, tricks, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			reason = excluded.reason, players = excluded.players,
			holder_id = excluded.holder_id, holder_name = excluded.holder_name,
			cards_left = excluded.cards_left, tricks = excluded.tricks,
			started_at = excluded.started_at, ended_at = excluded.ended_at
	`,
		round.ID, string(round.Room), string(round.Reason), string(players),
		holderID, holderName, round.CardsLeft, round.Tricks,
		round.StartedAt.UnixMilli(), round.EndedAt.UnixMilli(),
	)
	return err
}

const selectRound = `SELECT id, room, reason, players, holder_id, holder_name, cards_left, tricks, started_at, ended_at FROM rounds`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (*model.RoundSummary, error) {
	var (
		r                  model.RoundSummary
		room, reason       string
		players            string
		holderID, holderNm sql.NullString
		started, ended     int64
	)
	if err := row.Scan(&r.ID, &room, &reason, &players, &holderID, &holderNm, &r.CardsLeft, &r.Tricks, &started, &ended); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(players), &r.Players); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	r.Room = model.RoomID(room)
	r.Reason = model.RoundEndReason(reason)
	if holderID.Valid {
		r.Holder = &model.Player{ID: model.PlayerID(holderID.String), DisplayName: holderNm.String}
	}
	r.StartedAt = time.UnixMilli(started).UTC()
	r.EndedAt = time.UnixMilli(ended).UTC()
	return &r, nil
}

func (s *Storage) GetRound(ctx context.Context, id string) (*model.RoundSummary, error) {
	round, err := scanRound(s.db.QueryRowContext(ctx, selectRound+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRoundNotFound
	}
	return round, err
}

func (s *Storage) ListRounds(ctx context.Context, room model.RoomID, limit int) ([]*model.RoundSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}
	rows, err := s.db.QueryContext(ctx, selectRound+" WHERE room = ? ORDER BY ended_at DESC LIMIT ?", string(room), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := []*model.RoundSummary{}
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}
