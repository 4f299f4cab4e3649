// Package session holds the state of one user's visit: the profile created at
// signup and the current browse query. Nothing here is persisted.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/logger"
	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/waste"
)

var (
	ErrNotSignedUp     = errors.New("sign up first")
	ErrUnknownCompany  = errors.New("unknown company")
	ErrUnknownCategory = errors.New("unknown category")
)

// Profile is the signed-up company. The password is never kept.
type Profile struct {
	CompanyName string
	Email       string
	Bio         string
	Waste       waste.Set
}

// Receipt acknowledges a connect request. Nothing is delivered anywhere.
type Receipt struct {
	SessionID   string
	CompanyID   uuid.UUID
	CompanyName string
	Message     string
	Review      string
	SubmittedAt time.Time
}

// Session is safe for concurrent use.
type Session struct {
	ID ulid.ULID

	classifier ai.Classifier
	matcher    *matching.Matcher
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.RWMutex
	profile *Profile
	query   matching.Query
}

func New(classifier ai.Classifier, matcher *matching.Matcher, log *zap.Logger) *Session {
	id := ulid.Make()
	return &Session{
		ID:         id,
		classifier: classifier,
		matcher:    matcher,
		logger:     logger.WithSession(log, id.String()),
		now:        time.Now,
	}
}

// Signup validates the form, classifies the bio and stores the profile. On
// failure the previous profile, if any, is left in place.
func (s *Session) Signup(ctx context.Context, form SignupForm) (Profile, error) {
	if err := form.Validate(); err != nil {
		return Profile{}, err
	}

	s.logger.Info("classifying company bio", zap.String("company", strings.TrimSpace(form.CompanyName)))

	tags, err := s.classifier.Classify(ctx, form.Bio)
	if err != nil {
		s.logger.Warn("signup failed", zap.Error(err))
		return Profile{}, fmt.Errorf("classify bio: %w", err)
	}

	profile := Profile{
		CompanyName: strings.TrimSpace(form.CompanyName),
		Email:       strings.TrimSpace(form.Email),
		Bio:         strings.TrimSpace(form.Bio),
		Waste:       waste.NewSet(tags...),
	}

	s.mu.Lock()
	s.profile = &profile
	s.query = matching.Query{}
	s.mu.Unlock()

	s.logger.Info("signed up", zap.Strings("waste", profile.Waste.Strings()))
	return profile, nil
}

// SignupAsync runs Signup on its own goroutine. The channel yields exactly one
// value and is then closed.
func (s *Session) SignupAsync(ctx context.Context, form SignupForm) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		_, err := s.Signup(ctx, form)
		done <- err
	}()
	return done
}

// Profile returns a copy of the current profile.
func (s *Session) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

func (s *Session) Query() matching.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetCategory selects a category by key or display name. An empty key clears it.
func (s *Session) SetCategory(key string) error {
	var category *waste.Category
	if strings.TrimSpace(key) != "" {
		c, ok := waste.CategoryByKey(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, key)
		}
		category = c
	}

	s.mu.Lock()
	s.query.Category = category
	s.mu.Unlock()
	return nil
}

// ToggleCategory selects the category, or clears it when it is already selected.
func (s *Session) ToggleCategory(key string) error {
	c, ok := waste.CategoryByKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query.Category != nil && s.query.Category.Key == c.Key {
		s.query.Category = nil
		return nil
	}
	s.query.Category = c
	return nil
}

func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	s.query.Search = text
	s.mu.Unlock()
}

// Results matches the directory against the profile and the current query.
// Before signup the user waste is empty, so nothing is a best match.
func (s *Session) Results() matching.Result {
	s.mu.RLock()
	userWaste := s.userWaste()
	q := s.query
	s.mu.RUnlock()

	result := s.matcher.Match(userWaste, q)
	s.logger.Debug("matched directory",
		zap.Int("companies", len(result.Entries)),
		zap.Int("best_matches", len(result.BestMatches)),
		zap.Any("steps", result.Steps),
	)
	return result
}

// Explain returns the company and the waste it shares with the profile.
func (s *Session) Explain(companyID uuid.UUID) (*directory.Company, []waste.Tag, error) {
	company := s.matcher.Directory().FindByID(companyID)
	if company == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCompany, companyID)
	}

	s.mu.RLock()
	userWaste := s.userWaste()
	s.mu.RUnlock()

	return company, matching.Explain(company, userWaste), nil
}

// Connect records a message and a review for a company and acknowledges it.
// At least one of the two must be non-blank.
func (s *Session) Connect(companyID uuid.UUID, message, review string) (Receipt, error) {
	company := s.matcher.Directory().FindByID(companyID)
	if company == nil {
		return Receipt{}, fmt.Errorf("%w: %s", ErrUnknownCompany, companyID)
	}

	message = strings.TrimSpace(message)
	review = strings.TrimSpace(review)
	if message == "" && review == "" {
		return Receipt{}, fmt.Errorf("%w: write a message or a review", ai.ErrValidation)
	}

	receipt := Receipt{
		SessionID:   s.ID.String(),
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Message:     message,
		Review:      review,
		SubmittedAt: s.now(),
	}

	s.logger.Info("connect request submitted",
		zap.String("company", company.Name),
		zap.Bool("message", message != ""),
		zap.Bool("review", review != ""),
	)
	return receipt, nil
}

// userWaste must be called with s.mu held.
func (s *Session) userWaste() waste.Set {
	if s.profile == nil {
		return waste.Set{}
	}
	return s.profile.Waste
}
