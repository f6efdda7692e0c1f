// Package auth implements ports.SessionProvider on a credential table: bcrypt password
// hashes and HS256 session tokens that carry a per-credential version for revocation.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/live"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	issuer = "bolpurmart-partner"

	maxFailedAttempts = 5
	lockoutPeriod     = 15 * time.Minute
)

type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Provider implements ports.SessionProvider.
type Provider struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
	logger *zap.Logger

	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
}

func NewProvider(db *gorm.DB, cfg Config, logger *zap.Logger) (*Provider, error) {
	if cfg.Secret == "" {
		return nil, errs.NewValueIsRequiredError("auth secret")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("token ttl", cfg.TokenTTL, time.Second, nil)
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{
		db:       db,
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TokenTTL,
		cost:     cost,
		now:      time.Now,
		logger:   logger.With(zap.String("component", "auth")),
		watchers: make(map[string]map[*watcher]struct{}),
	}, nil
}

// Register creates a credential under a new partner id and signs it in.
func (p *Provider) Register(ctx context.Context, email, password string) (ports.Identity, error) {
	email, err := partner.NormalizeEmail(email)
	if err != nil {
		return ports.Identity{}, errs.NewAuthError(errs.AuthCodeInvalidEmail, "email address is malformed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return ports.Identity{}, err
	}

	now := p.now()
	dto := CredentialDTO{
		PartnerID:    kernel.NewID().String(),
		Email:        email,
		PasswordHash: string(hash),
		TokenVersion: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	result := p.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return ports.Identity{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Identity{}, errs.NewAuthError(errs.AuthCodeEmailInUse, "email address is already registered")
	}

	return p.identity(dto, now)
}

// Unregister deletes the credential of id.
func (p *Provider) Unregister(ctx context.Context, id kernel.ID) error {
	return p.db.WithContext(ctx).Delete(&CredentialDTO{}, "partner_id = ?", id.String()).Error
}

// SignIn checks the password. Five consecutive failures lock the credential for
// fifteen minutes; a success resets the counter.
func (p *Provider) SignIn(ctx context.Context, email, password string) (ports.Identity, error) {
	email, err := partner.NormalizeEmail(email)
	if err != nil {
		return ports.Identity{}, errs.NewAuthError(errs.AuthCodeInvalidEmail, "email address is malformed")
	}

	var (
		identity ports.Identity
		authErr  error
	)
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto CredentialDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&dto, "email = ?", email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			authErr = errs.NewAuthError(errs.AuthCodeUserNotFound, "no credential for this email")
			return nil
		}
		if err != nil {
			return err
		}

		now := p.now()
		switch {
		case dto.Disabled:
			authErr = errs.NewAuthError(errs.AuthCodeUserDisabled, "credential is disabled")
			return nil
		case dto.LockedUntil != nil && now.Before(*dto.LockedUntil):
			authErr = errs.NewAuthError(errs.AuthCodeTooManyRequests, "credential is temporarily locked")
			return nil
		}

		if bcrypt.CompareHashAndPassword([]byte(dto.PasswordHash), []byte(password)) != nil {
			updates := map[string]any{"failed_attempts": dto.FailedAttempts + 1, "updated_at": now}
			authErr = errs.NewAuthError(errs.AuthCodeWrongPassword, "password does not match")
			if dto.FailedAttempts+1 >= maxFailedAttempts {
				updates["failed_attempts"] = 0
				updates["locked_until"] = now.Add(lockoutPeriod)
				authErr = errs.NewAuthError(errs.AuthCodeTooManyRequests, "credential is temporarily locked")
				p.logger.Warn("credential locked", zap.String("partner_id", dto.PartnerID))
			}
			return tx.Model(&CredentialDTO{}).Where("partner_id = ?", dto.PartnerID).Updates(updates).Error
		}

		if dto.FailedAttempts != 0 || dto.LockedUntil != nil {
			err = tx.Model(&CredentialDTO{}).Where("partner_id = ?", dto.PartnerID).Updates(map[string]any{
				"failed_attempts": 0,
				"locked_until":    nil,
				"updated_at":      now,
			}).Error
			if err != nil {
				return err
			}
		}

		identity, err = p.identity(dto, now)
		return err
	})
	if err != nil {
		return ports.Identity{}, err
	}
	if authErr != nil {
		return ports.Identity{}, authErr
	}
	return identity, nil
}

// SignOut revokes every token of the identity behind token and tells its watchers.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	c, err := p.parse(token)
	if err != nil {
		return err
	}

	result := p.db.WithContext(ctx).
		Model(&CredentialDTO{}).
		Where("partner_id = ? AND token_version = ?", c.Subject, c.Version).
		Updates(map[string]any{
			"token_version": gorm.Expr("token_version + 1"),
			"updated_at":    p.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return invalidToken()
	}

	p.signedOut(c.Subject)
	return nil
}

// Verify resolves token to its identity if it is unexpired and not revoked.
func (p *Provider) Verify(ctx context.Context, token string) (ports.Identity, error) {
	c, err := p.parse(token)
	if err != nil {
		return ports.Identity{}, err
	}

	var dto CredentialDTO
	err = p.db.WithContext(ctx).Take(&dto, "partner_id = ?", c.Subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Identity{}, invalidToken()
	}
	if err != nil {
		return ports.Identity{}, err
	}
	if dto.TokenVersion != c.Version {
		return ports.Identity{}, invalidToken()
	}
	if dto.Disabled {
		return ports.Identity{}, errs.NewAuthError(errs.AuthCodeUserDisabled, "credential is disabled")
	}

	id, err := kernel.IDFromString(c.Subject)
	if err != nil {
		return ports.Identity{}, invalidToken()
	}
	return ports.Identity{
		PartnerID: id,
		Email:     dto.Email,
		Token:     token,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// OnIdentityChange streams the identity behind token, then nil when the session is
// signed out through this provider or the token expires.
func (p *Provider) OnIdentityChange(ctx context.Context, token string) (*live.Stream[*ports.Identity], error) {
	identity, err := p.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	key := identity.PartnerID.String()
	w := &watcher{}
	w.stream = live.NewStream[*ports.Identity](func() { p.unwatch(key, w) })
	w.stream.Publish(&identity)

	p.mu.Lock()
	if p.watchers[key] == nil {
		p.watchers[key] = make(map[*watcher]struct{})
	}
	p.watchers[key][w] = struct{}{}
	p.mu.Unlock()

	w.mu.Lock()
	w.timer = time.AfterFunc(identity.ExpiresAt.Sub(p.now()), w.signOut)
	w.mu.Unlock()

	return w.stream, nil
}

func (p *Provider) identity(dto CredentialDTO, now time.Time) (ports.Identity, error) {
	id, err := kernel.IDFromString(dto.PartnerID)
	if err != nil {
		return ports.Identity{}, err
	}
	token, expires, err := p.sign(dto, now)
	if err != nil {
		return ports.Identity{}, err
	}
	return ports.Identity{PartnerID: id, Email: dto.Email, Token: token, ExpiresAt: expires}, nil
}

func (p *Provider) signedOut(partnerID string) {
	p.mu.Lock()
	watchers := make([]*watcher, 0, len(p.watchers[partnerID]))
	for w := range p.watchers[partnerID] {
		watchers = append(watchers, w)
	}
	p.mu.Unlock()

	for _, w := range watchers {
		w.signOut()
	}
}

func (p *Provider) unwatch(partnerID string, w *watcher) {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.watchers[partnerID], w)
	if len(p.watchers[partnerID]) == 0 {
		delete(p.watchers, partnerID)
	}
}

// watcher serializes publishing on one identity stream.
type watcher struct {
	mu     sync.Mutex
	stream *live.Stream[*ports.Identity]
	timer  *time.Timer
}

func (w *watcher) signOut() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stream.Publish(nil)
}
