package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository"
	"github.com/jafarshop/dealmarket/pkg/errors"
)

// AddressPatch is a partial address update
type AddressPatch struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
	Country *string `json:"country,omitempty"`
}

// PreferencesPatch is a partial preferences update. A nil
// FavoriteCategories leaves the list unchanged; an empty one clears it.
type PreferencesPatch struct {
	Notifications      *bool    `json:"notifications,omitempty"`
	Newsletter         *bool    `json:"newsletter,omitempty"`
	Currency           *string  `json:"currency,omitempty"`
	Language           *string  `json:"language,omitempty"`
	FavoriteCategories []string `json:"favoriteCategories,omitempty"`
}

// ProfilePatch is a partial profile update merged field by field
type ProfilePatch struct {
	Name        *string           `json:"name,omitempty"`
	Email       *string           `json:"email,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	Avatar      *string           `json:"avatar,omitempty"`
	Address     *AddressPatch     `json:"address,omitempty"`
	Preferences *PreferencesPatch `json:"preferences,omitempty"`
}

// ProfileService holds the session profile and the admin flag
type ProfileService struct {
	store        repository.Store
	logger       *zap.Logger
	passcodeHash string
	now          func() time.Time

	mu      sync.Mutex
	loaded  bool
	profile domain.UserProfile
	isAdmin bool
}

// NewProfileService creates a new profile service. passcodeHash is the
// bcrypt hash admin access is checked against; empty disables admin mode.
func NewProfileService(store repository.Store, passcodeHash string, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		store:        store,
		logger:       logger,
		passcodeHash: passcodeHash,
		now:          time.Now,
	}
}

func (s *ProfileService) Get(ctx context.Context) domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return cloneProfile(s.profile)
}

func (s *ProfileService) IsLoggedIn(ctx context.Context) bool {
	return s.Get(ctx).IsLoggedIn()
}

// Login replaces the stored profile. A missing id is generated and a
// zero JoinedAt is stamped with the current time.
func (s *ProfileService) Login(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Email == "" {
		return domain.UserProfile{}, &errors.ErrValidation{Field: "email", Message: "is required"}
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.JoinedAt.IsZero() {
		profile.JoinedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.profile = cloneProfile(profile)
	s.flushProfile(ctx)

	s.logger.Info("User logged in", zap.String("user_id", profile.ID))
	return cloneProfile(s.profile), nil
}

// Update merges patch into the stored profile
func (s *ProfileService) Update(ctx context.Context, patch ProfilePatch) domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	p := &s.profile
	setString(&p.Name, patch.Name)
	setString(&p.Email, patch.Email)
	setString(&p.Phone, patch.Phone)
	setString(&p.Avatar, patch.Avatar)

	if a := patch.Address; a != nil {
		setString(&p.Address.Street, a.Street)
		setString(&p.Address.City, a.City)
		setString(&p.Address.State, a.State)
		setString(&p.Address.ZipCode, a.ZipCode)
		setString(&p.Address.Country, a.Country)
	}

	if pr := patch.Preferences; pr != nil {
		if pr.Notifications != nil {
			p.Preferences.Notifications = *pr.Notifications
		}
		if pr.Newsletter != nil {
			p.Preferences.Newsletter = *pr.Newsletter
		}
		setString(&p.Preferences.Currency, pr.Currency)
		setString(&p.Preferences.Language, pr.Language)
		if pr.FavoriteCategories != nil {
			p.Preferences.FavoriteCategories = slices.Clone(pr.FavoriteCategories)
		}
	}

	s.flushProfile(ctx)
	return cloneProfile(s.profile)
}

// Logout clears the profile and drops admin mode
func (s *ProfileService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := s.profile.ID
	s.profile = domain.UserProfile{}
	s.isAdmin = false
	s.loaded = true
	s.flushProfile(ctx)
	s.flushAdmin(ctx)

	s.logger.Info("User logged out", zap.String("user_id", userID))
}

func (s *ProfileService) IsAdmin(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	return s.isAdmin
}

// EnableAdmin turns on admin mode when passcode matches the configured hash
func (s *ProfileService) EnableAdmin(ctx context.Context, passcode string) error {
	if s.passcodeHash == "" {
		return &errors.ErrUnauthorized{Message: "admin access is not configured"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passcodeHash), []byte(passcode)); err != nil {
		s.logger.Warn("Rejected admin passcode")
		return &errors.ErrUnauthorized{Message: "invalid passcode"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.isAdmin = true
	s.flushAdmin(ctx)
	return nil
}

func (s *ProfileService) DisableAdmin(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.isAdmin = false
	s.flushAdmin(ctx)
}

func (s *ProfileService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.profile = repository.ReadJSON(ctx, s.store, repository.KeyProfile, domain.UserProfile{}, s.logger)
	s.isAdmin = repository.ReadJSON(ctx, s.store, repository.KeyAdmin, false, s.logger)
	s.loaded = true
}

func (s *ProfileService) flushProfile(ctx context.Context) {
	if err := repository.WriteJSON(ctx, s.store, repository.KeyProfile, s.profile); err != nil {
		s.logger.Error("Failed to persist profile", zap.Error(err))
	}
}

func (s *ProfileService) flushAdmin(ctx context.Context) {
	if err := repository.WriteJSON(ctx, s.store, repository.KeyAdmin, s.isAdmin); err != nil {
		s.logger.Error("Failed to persist admin flag", zap.Error(err))
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneProfile(p domain.UserProfile) domain.UserProfile {
	p.Preferences.FavoriteCategories = slices.Clone(p.Preferences.FavoriteCategories)
	return p
}
