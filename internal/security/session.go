package security

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"starborg-web/internal/apperr"
	"starborg-web/internal/models"
)

const (
	cookieName   = "starborg_session"
	sessionIDKey = "sid"
)

// SessionRepository persists server-side session rows.
type SessionRepository interface {
	CreateSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionStore maps a signed session cookie to a stored session and its user.
// The cookie only carries the session ID and pending flash messages.
type SessionStore struct {
	store  *sessions.CookieStore
	repo   SessionRepository
	maxAge time.Duration
	now    func() time.Time
}

// SessionOptions configures the cookie written by SessionStore.
type SessionOptions struct {
	MaxAge time.Duration
	Secure bool
}

func NewSessionStore(secret []byte, repo SessionRepository, opts SessionOptions) *SessionStore {
	if opts.MaxAge <= 0 {
		opts.MaxAge = 24 * time.Hour
	}
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{
		store:  store,
		repo:   repo,
		maxAge: opts.MaxAge,
		now:    time.Now,
	}
}

// cookie returns the request's cookie session. A cookie that fails signature
// verification yields an empty session, which the next save replaces.
func (s *SessionStore) cookie(r *http.Request) *sessions.Session {
	sess, _ := s.store.Get(r, cookieName)
	return sess
}

// CreateSession starts a new session for userID and writes the cookie.
// Any session already attached to the request is discarded.
func (s *SessionStore) CreateSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	sess := s.cookie(r)
	if old, ok := sess.Values[sessionIDKey].(string); ok && old != "" {
		if err := s.repo.DeleteSession(r.Context(), old); err != nil {
			return err
		}
	}
	id, err := generateSessionID()
	if err != nil {
		return err
	}
	err = s.repo.CreateSession(r.Context(), models.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.maxAge).UTC(),
	})
	if err != nil {
		return err
	}
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// GetSession returns the valid session attached to r.
// It returns an Unauthorized error when there is none or it has expired.
func (s *SessionStore) GetSession(r *http.Request) (*models.Session, error) {
	sess := s.cookie(r)
	id, ok := sess.Values[sessionIDKey].(string)
	if !ok || id == "" {
		return nil, apperr.New(apperr.CodeUnauthorized, "not logged in")
	}
	stored, err := s.repo.GetSession(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.CodeUnauthorized, "session is no longer valid")
	} else if err != nil {
		return nil, err
	}
	if !s.now().Before(stored.ExpiresAt) {
		return nil, apperr.New(apperr.CodeUnauthorized, "session expired")
	}
	return stored, nil
}

// DestroySession deletes the stored session and clears it from the cookie.
// Pending flash messages survive so a logout page can still show them.
func (s *SessionStore) DestroySession(w http.ResponseWriter, r *http.Request) error {
	sess := s.cookie(r)
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		if err := s.repo.DeleteSession(r.Context(), id); err != nil {
			return err
		}
	}
	delete(sess.Values, sessionIDKey)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// AddFlash queues a message for the next rendered page.
func (s *SessionStore) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	sess := s.cookie(r)
	sess.AddFlash(message)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// Flashes returns and clears the queued flash messages.
func (s *SessionStore) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess := s.cookie(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(string); ok {
			messages = append(messages, m)
		}
	}
	_ = sess.Save(r, w)
	return messages
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
