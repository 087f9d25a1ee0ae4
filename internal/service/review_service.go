package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/repository"
	"github.com/jafarshop/dealmarket/pkg/errors"
)

// MaxReviewPhotos caps the attachments accepted on one review
const MaxReviewPhotos = 5

// PhotoUpload is a raw review attachment as received from a client
type PhotoUpload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data"`
}

// ReviewInput is the user-supplied part of a new review
type ReviewInput struct {
	UserID   string        `json:"userId"`
	UserName string        `json:"userName"`
	Rating   int           `json:"rating"`
	Title    string        `json:"title"`
	Comment  string        `json:"comment"`
	Photos   []PhotoUpload `json:"photos,omitempty"`
}

// ReviewService stores reviews for offers and shops. The full collection
// lives under the reviews key; per-subject lists are memoized on first read.
type ReviewService struct {
	store  repository.Store
	logger *zap.Logger
	delay  time.Duration
	now    func() time.Time

	mu        sync.Mutex
	loaded    bool
	all       []domain.Review
	bySubject map[string][]domain.Review
}

// NewReviewService creates a new review service. delay is the simulated
// latency applied to every submission.
func NewReviewService(store repository.Store, delay time.Duration, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		store:     store,
		logger:    logger,
		delay:     delay,
		now:       time.Now,
		bySubject: make(map[string][]domain.Review),
	}
}

// GetReviews returns the reviews of one subject. The first call for a
// subject filters the persisted collection and caches the result.
func (s *ReviewService) GetReviews(ctx context.Context, subjectID string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.subjectReviews(ctx, subjectID))
}

// GetStats aggregates the subject's reviews. The average is rounded to
// one decimal; a subject without reviews reports all zeros.
func (s *ReviewService) GetStats(ctx context.Context, subjectID string) domain.ReviewStats {
	reviews := s.GetReviews(ctx, subjectID)

	stats := domain.ReviewStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if _, ok := stats.RatingDistribution[r.Rating]; ok {
			stats.RatingDistribution[r.Rating]++
		}
	}
	stats.TotalReviews = len(reviews)
	stats.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return stats
}

// SubmitReview validates and stores a new review. The returned review is
// only produced once it has been persisted; on a storage error neither
// the collection nor the subject cache keeps it.
func (s *ReviewService) SubmitReview(
	ctx context.Context,
	subjectID string,
	subjectType domain.SubjectType,
	input ReviewInput,
) (domain.Review, error) {
	if err := validateReview(subjectID, subjectType, input); err != nil {
		return domain.Review{}, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.Review{}, ctx.Err()
		case <-timer.C:
		}
	}

	photos, err := materializePhotos(ctx, input.Photos)
	if err != nil {
		return domain.Review{}, err
	}

	now := s.now().UTC()
	review := domain.Review{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		SubjectType: subjectType,
		UserID:      input.UserID,
		UserName:    input.UserName,
		Rating:      input.Rating,
		Title:       strings.TrimSpace(input.Title),
		Comment:     strings.TrimSpace(input.Comment),
		Photos:      photos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cached := s.subjectReviews(ctx, subjectID)

	next := append(slices.Clone(s.all), review)
	if err := repository.WriteJSON(ctx, s.store, repository.KeyReviews, next); err != nil {
		s.logger.Error("Failed to persist review",
			zap.String("subject_id", subjectID),
			zap.Error(err),
		)
		return domain.Review{}, fmt.Errorf("failed to save review: %w", err)
	}
	s.all = next

	s.bySubject[subjectID] = append([]domain.Review{review}, cached...)

	s.logger.Info("Review submitted",
		zap.String("review_id", review.ID),
		zap.String("subject_id", subjectID),
		zap.Int("rating", review.Rating),
	)
	return review, nil
}

// MarkHelpful increments the helpful counter of a review in the persisted
// collection and in every cached copy. It reports false for unknown ids.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	i := slices.IndexFunc(s.all, func(r domain.Review) bool { return r.ID == reviewID })
	if i < 0 {
		return false
	}
	s.all[i].Helpful++

	for _, reviews := range s.bySubject {
		for j := range reviews {
			if reviews[j].ID == reviewID {
				reviews[j].Helpful++
			}
		}
	}

	if err := repository.WriteJSON(ctx, s.store, repository.KeyReviews, s.all); err != nil {
		s.logger.Error("Failed to persist helpful vote",
			zap.String("review_id", reviewID),
			zap.Error(err),
		)
	}
	return true
}

// UserReviews returns everything a user has written, newest first
func (s *ReviewService) UserReviews(ctx context.Context, userID string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]domain.Review, 0)
	for _, r := range s.all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// subjectReviews must be called with mu held
func (s *ReviewService) subjectReviews(ctx context.Context, subjectID string) []domain.Review {
	if cached, ok := s.bySubject[subjectID]; ok {
		return cached
	}
	s.ensureLoaded(ctx)

	reviews := make([]domain.Review, 0)
	for _, r := range s.all {
		if r.SubjectID == subjectID {
			reviews = append(reviews, r)
		}
	}
	s.bySubject[subjectID] = reviews
	return reviews
}

func (s *ReviewService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.all = repository.ReadJSON(ctx, s.store, repository.KeyReviews, []domain.Review{}, s.logger)
	s.loaded = true
}

func validateReview(subjectID string, subjectType domain.SubjectType, input ReviewInput) error {
	if subjectID == "" {
		return &errors.ErrValidation{Field: "subjectId", Message: "is required"}
	}
	if !subjectType.IsValid() {
		return &errors.ErrValidation{Field: "subjectType", Message: fmt.Sprintf("unknown subject type %q", subjectType)}
	}
	if input.Rating < 1 || input.Rating > 5 {
		return &errors.ErrValidation{Field: "rating", Message: "must be between 1 and 5"}
	}
	if len(input.Photos) > MaxReviewPhotos {
		return &errors.ErrValidation{Field: "photos", Message: fmt.Sprintf("at most %d photos are allowed", MaxReviewPhotos)}
	}
	return nil
}

// materializePhotos turns uploads into self-contained data URIs, one
// goroutine per photo. Result order matches upload order.
func materializePhotos(ctx context.Context, uploads []PhotoUpload) ([]domain.ReviewPhoto, error) {
	photos := make([]domain.ReviewPhoto, len(uploads))
	if len(uploads) == 0 {
		return photos, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if len(upload.Data) == 0 {
				return &errors.ErrValidation{Field: "photos", Message: fmt.Sprintf("%s is empty", upload.Filename)}
			}

			contentType := upload.ContentType
			if contentType == "" {
				contentType = http.DetectContentType(upload.Data)
			}
			if !strings.HasPrefix(contentType, "image/") {
				return &errors.ErrValidation{Field: "photos", Message: fmt.Sprintf("%s is not an image", upload.Filename)}
			}

			photos[i] = domain.ReviewPhoto{
				ID:       uuid.NewString(),
				URI:      "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(upload.Data),
				Filename: upload.Filename,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return photos, nil
}
