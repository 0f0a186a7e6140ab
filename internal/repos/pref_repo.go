package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"shopfront/internal/viewmode"
)

// PrefRepo keeps per-session key/value preferences.
type PrefRepo struct{ db *sqlx.DB }

func NewPrefRepo(db *sqlx.DB) *PrefRepo { return &PrefRepo{db: db} }

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Get returns ok=false when the session has no value for key.
func (r *PrefRepo) Get(sid, key string) (string, bool, error) {
	var v string
	err := r.db.Get(&v, r.db.Rebind(`SELECT value FROM preferences WHERE session_id=? AND pref_key=?`), sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "select preference")
	}
	return v, true, nil
}

func (r *PrefRepo) Set(sid, key, value string) error {
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO preferences(session_id, pref_key, value, updated_at)
		VALUES(?,?,?,?)
		ON CONFLICT(session_id, pref_key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
	`), sid, key, value, now())
	return errors.Wrap(err, "upsert preference")
}

func (r *PrefRepo) Remove(sid, key string) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM preferences WHERE session_id=? AND pref_key=?`), sid, key)
	return errors.Wrap(err, "delete preference")
}

// Touch records that the session was seen.
func (r *PrefRepo) Touch(sid string) error {
	ts := now()
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO sessions(id, created_at, last_seen) VALUES(?,?,?)
		ON CONFLICT(id) DO UPDATE SET last_seen=excluded.last_seen
	`), sid, ts, ts)
	return errors.Wrap(err, "touch session")
}

// ForSession exposes one session's preferences as a view mode store.
func (r *PrefRepo) ForSession(sid string) viewmode.Store {
	return sessionStore{repo: r, sid: sid}
}

type sessionStore struct {
	repo *PrefRepo
	sid  string
}

func (s sessionStore) Get(key string) (string, bool, error) { return s.repo.Get(s.sid, key) }
func (s sessionStore) Set(key, value string) error         { return s.repo.Set(s.sid, key, value) }
func (s sessionStore) Remove(key string) error             { return s.repo.Remove(s.sid, key) }
