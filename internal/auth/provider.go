package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/alexanderramin/studyclock/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Listener is told about every change of the signed-in user. A nil user
// means signed out.
type Listener func(*domain.User)

// Option configures a Provider.
type Option func(*Provider)

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(p *Provider) { p.cost = cost }
}

// WithClock sets the time source used for new accounts and tokens.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
		if p.tokens != nil {
			p.tokens.now = now
		}
	}
}

// Provider is the local credential provider. It holds the signed-in user for
// the process and notifies listeners when that changes.
type Provider struct {
	users  repository.UserRepo
	tokens *TokenStore
	cost   int
	now    func() time.Time

	mu        sync.Mutex
	current   *domain.User
	listeners map[int]Listener
	nextID    int
}

// NewProvider creates a signed-out provider. tokens may be nil, in which
// case sign-ins are never remembered.
func NewProvider(users repository.UserRepo, tokens *TokenStore, opts ...Option) *Provider {
	p := &Provider{
		users:     users,
		tokens:    tokens,
		cost:      bcrypt.DefaultCost,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignUp registers a new account and signs it in. The sign-in is remembered
// like SignIn with remember set.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  strings.SplitN(email, "@", 2)[0],
		PasswordHash: string(hash),
		CreatedAt:    p.now().UTC(),
	}
	if err := p.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	if p.tokens != nil {
		if err := p.tokens.Save(u.ID); err != nil {
			return nil, err
		}
	}

	p.setCurrent(u)
	return u, nil
}

// SignIn checks the credentials and makes the user current. With remember
// set the sign-in survives restarts; otherwise any saved token is dropped.
func (p *Provider) SignIn(ctx context.Context, email, password string, remember bool) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	if p.tokens != nil {
		if remember {
			err = p.tokens.Save(u.ID)
		} else {
			err = p.tokens.Clear()
		}
		if err != nil {
			return nil, err
		}
	}

	p.setCurrent(u)
	return u, nil
}

// SignOut forgets the current user and any remembered sign-in.
func (p *Provider) SignOut(_ context.Context) error {
	if p.tokens != nil {
		if err := p.tokens.Clear(); err != nil {
			return err
		}
	}
	p.setCurrent(nil)
	return nil
}

// Restore signs in the remembered user, if any. It returns nil when nothing
// is remembered. A stale or forged token is removed.
func (p *Provider) Restore(ctx context.Context) (*domain.User, error) {
	if p.tokens == nil {
		return nil, nil
	}
	userID, err := p.tokens.Load()
	if err != nil {
		_ = p.tokens.Clear()
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	u, err := p.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = p.tokens.Clear()
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading remembered user: %w", err)
	}
	p.setCurrent(u)
	return u, nil
}

// CurrentUser returns the signed-in user or nil.
func (p *Provider) CurrentUser() *domain.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// OnAuthChange registers fn and immediately calls it with the current user.
// The returned function unsubscribes.
func (p *Provider) OnAuthChange(fn Listener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

func (p *Provider) setCurrent(u *domain.User) {
	p.mu.Lock()
	p.current = u
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(u)
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}
