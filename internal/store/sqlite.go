package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bilty/internal/core"

	_ "modernc.org/sqlite"
)

// State keys, matching the names the browser client kept in local storage.
const (
	keyAuthToken     = "auth_token"
	keyUserData      = "user_data"
	keyUserTimestamp = "user_data_timestamp"
	keyRememberEmail = "rememberedEmail"
	keyRememberFlag  = "rememberMe"
)

// State is the SQLite-backed local state store. It holds the auth token,
// the cached user snapshot with its freshness timestamp, and the
// remembered login email.
type State struct {
	db *sql.DB
}

func NewState(dbPath string) (*State, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &State{db: db}, nil
}

func (s *State) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetToken implements TokenStore.
func (s *State) SetToken(token string) error {
	return s.set(keyAuthToken, token)
}

// Token implements TokenStore.
func (s *State) Token() (string, bool) {
	return s.get(keyAuthToken)
}

// ClearToken implements TokenStore.
func (s *State) ClearToken() error {
	return s.delete(keyAuthToken)
}

// SetUser implements UserCache. Snapshot and timestamp are written in one
// transaction so consumers never observe one without the other.
func (s *State) SetUser(u core.User, at time.Time) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin user cache write: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for key, value := range map[string]string{
		keyUserData:      string(payload),
		keyUserTimestamp: strconv.FormatInt(at.UnixMilli(), 10),
	} {
		if _, err := tx.Exec(upsertStateSQL, key, value, now); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// User implements UserCache.
func (s *State) User() (core.User, time.Time, bool) {
	var u core.User

	raw, ok := s.get(keyUserData)
	if !ok {
		return u, time.Time{}, false
	}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return u, time.Time{}, false
	}

	var at time.Time
	if ts, ok := s.get(keyUserTimestamp); ok {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			at = time.UnixMilli(ms)
		}
	}

	return u, at, true
}

// ClearUser implements UserCache.
func (s *State) ClearUser() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin user cache clear: %w", err)
	}
	defer tx.Rollback()

	for _, key := range []string{keyUserData, keyUserTimestamp} {
		if _, err := tx.Exec(deleteStateSQL, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// RememberEmail implements CredentialStore.
func (s *State) RememberEmail(email string) error {
	if err := s.set(keyRememberEmail, email); err != nil {
		return err
	}
	return s.set(keyRememberFlag, "true")
}

// RememberedEmail implements CredentialStore.
func (s *State) RememberedEmail() (string, bool) {
	if flag, ok := s.get(keyRememberFlag); !ok || flag != "true" {
		return "", false
	}
	return s.get(keyRememberEmail)
}

// ForgetEmail implements CredentialStore.
func (s *State) ForgetEmail() error {
	if err := s.delete(keyRememberEmail); err != nil {
		return err
	}
	return s.delete(keyRememberFlag)
}

const (
	upsertStateSQL = `INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteStateSQL = `DELETE FROM local_state WHERE key = ?`
	selectStateSQL = `SELECT value FROM local_state WHERE key = ?`
)

func (s *State) set(key, value string) error {
	if _, err := s.db.Exec(upsertStateSQL, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *State) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(selectStateSQL, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *State) delete(key string) error {
	if _, err := s.db.Exec(deleteStateSQL, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
