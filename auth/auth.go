// Package auth is the session-scoped authentication collaborator: it
// owns the current identity of one terminal session and notifies
// subscribers exactly once per real session transition.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/util"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongPassword      = errors.New("wrong password")
	ErrNoAccount          = errors.New("no account for this email")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrRegistrationClosed = errors.New("registration is closed")
)

// Service holds one session's identity. Construct one per session and
// subscribe the dispatcher before presenting any screen.
type Service struct {
	database *db.DB

	// Closed disables registration; existing accounts still sign in.
	Closed bool

	mu      sync.Mutex
	current *domain.Account
	subs    map[int]func(*domain.Account)
	nextSub int
}

func NewService(database *db.DB) *Service {
	return &Service{
		database: database,
		subs:     make(map[int]func(*domain.Account)),
	}
}

// Subscribe registers an identity listener and immediately reports the
// current identity, so a late subscriber still learns the session state.
// The returned func unsubscribes; call it at session teardown.
func (s *Service) Subscribe(onChange func(*domain.Account)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = onChange
	current := s.current
	s.mu.Unlock()

	onChange(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) Current() *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Service) notify(acc *domain.Account) {
	s.mu.Lock()
	s.current = acc
	listeners := make([]func(*domain.Account), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(acc)
	}
}

// AdoptPublicKey signs the session in from an SSH public key already
// attached to an account. Reports "no session" when the key is unknown.
func (s *Service) AdoptPublicKey(pkHash string) {
	acc, err := s.database.ReadAccountByPkHash(pkHash)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Public key lookup failed: %v", err)
		}
		s.notify(nil)
		return
	}
	s.notify(acc)
}

// HasAccount reports whether an account exists for the email, so the
// entry flow can choose between sign-in and registration.
func (s *Service) HasAccount(email string) bool {
	_, err := s.database.ReadAccountByEmail(strings.ToLower(strings.TrimSpace(email)))
	return err == nil
}

func (s *Service) SignIn(email, password string) (*domain.Account, error) {
	acc, err := s.database.ReadAccountByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err == sql.ErrNoRows {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, fmt.Errorf("sign-in lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}

	s.notify(acc)
	return acc, nil
}

func (s *Service) SignOut() error {
	s.notify(nil)
	return nil
}

// CreateAccount registers a new identity and signs the session in.
// Fails when the email or the chosen username already exists.
func (s *Service) CreateAccount(email, password, username, displayName string, sig domain.Signature) (*domain.Account, error) {
	if s.Closed {
		return nil, ErrRegistrationClosed
	}

	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if _, err := s.database.ReadAccountByEmail(email); err == nil {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acc := &domain.Account{
		Id:           uuid.New(),
		Username:     username,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: string(hash),
		Signature:    sig,
		CreatedAt:    time.Now(),
	}

	if err := s.database.CreateAccount(acc); err != nil {
		if strings.Contains(err.Error(), "username") {
			return nil, ErrUsernameTaken
		}
		if strings.Contains(err.Error(), "email") {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.notify(acc)
	return acc, nil
}

// AttachPublicKey binds the session's SSH key to the account so the next
// connection signs in without a password.
func (s *Service) AttachPublicKey(acc *domain.Account, pkHash string) error {
	if pkHash == "" {
		return nil
	}
	return s.database.AttachPublicKey(acc.Id, pkHash)
}

// SendPasswordReset issues a reset token. There is no mailer; the token
// is logged for the operator to pass along out of band.
func (s *Service) SendPasswordReset(email string) error {
	acc, err := s.database.ReadAccountByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err == sql.ErrNoRows {
		return ErrNoAccount
	}
	if err != nil {
		return fmt.Errorf("reset lookup: %w", err)
	}
	token := util.RandomString(32)
	log.Printf("Password reset requested for %s, token: %s", acc.Email, token)
	return nil
}

// DeleteAccount verifies the password, removes the account and ends the
// session.
func (s *Service) DeleteAccount(password string) error {
	s.mu.Lock()
	acc := s.current
	s.mu.Unlock()

	if acc == nil {
		return ErrNoAccount
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return ErrWrongPassword
	}
	if err := s.database.DeleteAccount(acc.Id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	s.notify(nil)
	return nil
}
