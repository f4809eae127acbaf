package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pokelog/go-tcg-metrics/internal/model"
)

// MatchExists returns true if a match with the given ID is already stored.
func (db *DB) MatchExists(id string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores a full match record plus its attack events. Uses
// INSERT OR REPLACE keyed on the transcript hash for idempotency.
func (db *DB) InsertMatch(rec *model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(
			id, title, uploaded_at,
			player1, player2, winner, first_player, turns,
			player1_pokemon, player2_pokemon, player1_cards, player2_cards,
			player1_prizes, player2_prizes, player1_damage, player2_damage,
			win_condition, raw_log,
			conf_players, conf_first_player, conf_turns, conf_winner, conf_win_condition
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.Title, rec.UploadedAt,
		rec.Player1, rec.Player2, rec.Winner, rec.FirstPlayer, rec.Turns,
		encodeList(rec.Player1Pokemon), encodeList(rec.Player2Pokemon),
		encodeList(rec.Player1Cards), encodeList(rec.Player2Cards),
		rec.Player1Prizes, rec.Player2Prizes,
		rec.Player1TotalDamage, rec.Player2TotalDamage,
		rec.WinCondition, rec.RawLog,
		boolInt(rec.Confidence.PlayersDetected), boolInt(rec.Confidence.FirstPlayerDetected),
		boolInt(rec.Confidence.TurnsDetected), boolInt(rec.Confidence.WinnerDetected),
		boolInt(rec.Confidence.WinConditionDetected),
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", rec.ID, err)
	}

	if err := replaceAttacks(tx, rec.ID, rec.AttacksUsed); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateDerived rewrites every parser-derived column of a stored match while
// keeping its id, title and upload date. Used when re-parsing stored raw logs
// after a parser change.
func (db *DB) UpdateDerived(rec *model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE matches SET
			player1 = ?, player2 = ?, winner = ?, first_player = ?, turns = ?,
			player1_pokemon = ?, player2_pokemon = ?, player1_cards = ?, player2_cards = ?,
			player1_prizes = ?, player2_prizes = ?, player1_damage = ?, player2_damage = ?,
			win_condition = ?,
			conf_players = ?, conf_first_player = ?, conf_turns = ?, conf_winner = ?, conf_win_condition = ?
		WHERE id = ?`,
		rec.Player1, rec.Player2, rec.Winner, rec.FirstPlayer, rec.Turns,
		encodeList(rec.Player1Pokemon), encodeList(rec.Player2Pokemon),
		encodeList(rec.Player1Cards), encodeList(rec.Player2Cards),
		rec.Player1Prizes, rec.Player2Prizes,
		rec.Player1TotalDamage, rec.Player2TotalDamage,
		rec.WinCondition,
		boolInt(rec.Confidence.PlayersDetected), boolInt(rec.Confidence.FirstPlayerDetected),
		boolInt(rec.Confidence.TurnsDetected), boolInt(rec.Confidence.WinnerDetected),
		boolInt(rec.Confidence.WinConditionDetected),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update match %s: %w", rec.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update match %s: not found", rec.ID)
	}

	if err := replaceAttacks(tx, rec.ID, rec.AttacksUsed); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceAttacks(tx *sql.Tx, matchID string, attacks []model.AttackEvent) error {
	if _, err := tx.Exec("DELETE FROM attacks WHERE match_id = ?", matchID); err != nil {
		return fmt.Errorf("clear attacks for %s: %w", matchID, err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO attacks(match_id, seq, pokemon, attack, damage, turn, player)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range attacks {
		if _, err := stmt.Exec(matchID, i, a.Pokemon, a.Attack, a.Damage, a.Turn, a.Player); err != nil {
			return fmt.Errorf("insert attack for %s: %w", matchID, err)
		}
	}
	return nil
}

const matchColumns = `
	id, title, uploaded_at,
	player1, player2, winner, first_player, turns,
	player1_pokemon, player2_pokemon, player1_cards, player2_cards,
	player1_prizes, player2_prizes, player1_damage, player2_damage,
	win_condition, raw_log,
	conf_players, conf_first_player, conf_turns, conf_winner, conf_win_condition`

// ListMatches returns all stored matches ordered by upload date descending,
// without their attack events.
func (db *DB) ListMatches() ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// GetAllMatches returns every stored match with attack events attached,
// ordered by upload date ascending. This is the aggregator's input.
func (db *DB) GetAllMatches() ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY uploaded_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		attacks, err := db.getAttacks(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].AttacksUsed = attacks
	}
	return out, nil
}

// GetMatchByPrefix finds the first match whose ID starts with the given
// prefix, with attack events attached. Returns nil when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchRecord, error) {
	row := db.conn.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id LIKE ? LIMIT 1`, prefix+"%")
	rec, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	attacks, err := db.getAttacks(rec.ID)
	if err != nil {
		return nil, err
	}
	rec.AttacksUsed = attacks
	return rec, nil
}

func (db *DB) getAttacks(matchID string) ([]model.AttackEvent, error) {
	rows, err := db.conn.Query(`
		SELECT pokemon, attack, damage, turn, player
		FROM attacks WHERE match_id = ? ORDER BY seq`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AttackEvent
	for rows.Next() {
		var a model.AttackEvent
		if err := rows.Scan(&a.Pokemon, &a.Attack, &a.Damage, &a.Turn, &a.Player); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*model.MatchRecord, error) {
	var rec model.MatchRecord
	var p1Pokemon, p2Pokemon, p1Cards, p2Cards string
	var confPlayers, confFirst, confTurns, confWinner, confWinCond int
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.UploadedAt,
		&rec.Player1, &rec.Player2, &rec.Winner, &rec.FirstPlayer, &rec.Turns,
		&p1Pokemon, &p2Pokemon, &p1Cards, &p2Cards,
		&rec.Player1Prizes, &rec.Player2Prizes,
		&rec.Player1TotalDamage, &rec.Player2TotalDamage,
		&rec.WinCondition, &rec.RawLog,
		&confPlayers, &confFirst, &confTurns, &confWinner, &confWinCond,
	)
	if err != nil {
		return nil, err
	}
	rec.Player1Pokemon = decodeList(p1Pokemon)
	rec.Player2Pokemon = decodeList(p2Pokemon)
	rec.Player1Cards = decodeList(p1Cards)
	rec.Player2Cards = decodeList(p2Cards)
	rec.Confidence = model.Confidence{
		PlayersDetected:      confPlayers != 0,
		FirstPlayerDetected:  confFirst != 0,
		TurnsDetected:        confTurns != 0,
		WinnerDetected:       confWinner != 0,
		WinConditionDetected: confWinCond != 0,
	}
	return &rec, nil
}

func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
