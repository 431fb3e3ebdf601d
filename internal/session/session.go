// Package session maps capability tokens to connection identities for the
// small set of privileged host operations.
package session

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/fystack/stream-giveaway/pkg/common/logger"
	"github.com/google/uuid"
)

var ErrInvalidPassword = errors.New("invalid password")

// DefaultTTL is the sliding expiration window, measured from last activity.
const DefaultTTL = 24 * time.Hour

type Session struct {
	Token        string
	ConnID       string
	CreatedAt    time.Time
	LastActivity time.Time
}

type Store struct {
	mu          sync.Mutex
	secret      string
	ttl         time.Duration
	sessions    map[string]*Session
	connToToken map[string]string

	now  func() time.Time
	stop chan struct{}
	done chan struct{}
}

func NewStore(secret string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if secret == "" || secret == "change_me" {
		logger.Warn("Admin password not set or using default")
	}
	return &Store{
		secret:      secret,
		ttl:         ttl,
		sessions:    make(map[string]*Session),
		connToToken: make(map[string]string),
		now:         time.Now,
	}
}

// CheckPassword compares against the shared secret in constant time.
func (s *Store) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.secret)) == 1
}

// Login issues a new token bound to connID. Any prior token for the same
// connection is invalidated.
func (s *Store) Login(password, connID string) (string, error) {
	if !s.CheckPassword(password) {
		return "", ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeByConnLocked(connID)

	token := uuid.NewString()
	now := s.now()
	s.sessions[token] = &Session{
		Token:        token,
		ConnID:       connID,
		CreatedAt:    now,
		LastActivity: now,
	}
	s.connToToken[connID] = token
	return token, nil
}

// Validate reports whether the token is live and refreshes its activity
// timestamp (sliding expiration).
func (s *Store) Validate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}

	now := s.now()
	if now.Sub(sess.LastActivity) > s.ttl {
		delete(s.sessions, token)
		delete(s.connToToken, sess.ConnID)
		return false
	}

	sess.LastActivity = now
	return true
}

// Rebind moves a live token to a new connection identity (reconnect support).
func (s *Store) Rebind(token, newConnID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}

	delete(s.connToToken, sess.ConnID)
	sess.ConnID = newConnID
	sess.LastActivity = s.now()
	s.connToToken[newConnID] = token
	return true
}

func (s *Store) RemoveByConn(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeByConnLocked(connID)
}

func (s *Store) removeByConnLocked(connID string) {
	if token, ok := s.connToToken[connID]; ok {
		delete(s.sessions, token)
		delete(s.connToToken, connID)
	}
}

// Sweep drops every expired session and returns how many were removed.
// Expiry is also checked lazily on Validate; the sweep only bounds memory.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.ttl {
			delete(s.sessions, token)
			delete(s.connToToken, sess.ConnID)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a fixed interval until Stop is called.
func (s *Store) StartSweeper(interval time.Duration) {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					logger.Debug("Swept expired sessions", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Store) Stop() {
	if s.stop != nil {
		close(s.stop)
		<-s.done
	}
}
