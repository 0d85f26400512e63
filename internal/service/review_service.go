package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xxxsen/volcano/internal/model"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
	"github.com/xxxsen/volcano/internal/pkg/jwt"
)

const (
	msgReviewLoginNeeded = "Authorization header not found. Must be logged in to post a review"
	msgRatingRequired    = "Request body incomplete: a rating is required"
	msgInvalidRating     = "Invalid rating: must be 1, 2, 3, 4, or 5"
	msgNoReviews         = "No reviews found for this volcano"
	msgInvalidComment    = "Invalid comment: must be a string"
)

// ReviewInput holds the decoded JSON fields as they arrived.
type ReviewInput struct {
	Rating  interface{}
	Comment interface{}
}

type ReviewService struct {
	reviews ReviewStore
	users   UserStore
}

func NewReviewService(reviews ReviewStore, users UserStore) *ReviewService {
	return &ReviewService{reviews: reviews, users: users}
}

func (s *ReviewService) Create(ctx context.Context, caller jwt.Identity, rawVolcanoID string, in ReviewInput) error {
	if !caller.Authenticated {
		return appErr.New(appErr.ErrUnauthorized, msgReviewLoginNeeded)
	}
	rating, err := ParseRating(in.Rating)
	if err != nil {
		return err
	}
	var comment *string
	switch val := in.Comment.(type) {
	case nil:
	case string:
		comment = &val
	default:
		return appErr.New(appErr.ErrInvalid, msgInvalidComment)
	}
	volcanoID, err := strconv.ParseInt(rawVolcanoID, 10, 64)
	if err != nil {
		return appErr.New(appErr.ErrNotFound, msgVolcanoNotFound)
	}
	user, err := s.users.GetByEmail(ctx, caller.Email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.New(appErr.ErrNotFound, msgUserNotFound)
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	review := &model.Review{VolcanoID: volcanoID, UserID: user.ID, Rating: rating, Comment: comment}
	if err := s.reviews.Create(ctx, review); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.New(appErr.ErrNotFound, msgVolcanoNotFound)
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// List treats a volcano without reviews as not found.
func (s *ReviewService) List(ctx context.Context, rawVolcanoID string) ([]model.ReviewView, error) {
	volcanoID, err := strconv.ParseInt(rawVolcanoID, 10, 64)
	if err != nil {
		return nil, appErr.New(appErr.ErrNotFound, msgNoReviews)
	}
	items, err := s.reviews.ListByVolcano(ctx, volcanoID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if len(items) == 0 {
		return nil, appErr.New(appErr.ErrNotFound, msgNoReviews)
	}
	return items, nil
}

func (s *ReviewService) Average(ctx context.Context, rawVolcanoID string) (*model.RatingSummary, error) {
	volcanoID, err := strconv.ParseInt(rawVolcanoID, 10, 64)
	if err != nil {
		return nil, appErr.New(appErr.ErrNotFound, msgNoReviews)
	}
	avg, ok, err := s.reviews.AverageRating(ctx, volcanoID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if !ok {
		return nil, appErr.New(appErr.ErrNotFound, msgNoReviews)
	}
	return &model.RatingSummary{AverageRating: FormatRating(avg)}, nil
}

// ParseRating accepts a JSON number or a numeric string naming 1 to 5.
func ParseRating(v interface{}) (int, error) {
	var n float64
	switch val := v.(type) {
	case nil:
		return 0, appErr.New(appErr.ErrInvalid, msgRatingRequired)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, appErr.New(appErr.ErrInvalid, msgRatingRequired)
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, appErr.New(appErr.ErrInvalid, msgInvalidRating)
		}
		n = float64(parsed)
	case float64:
		n = val
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, appErr.New(appErr.ErrInvalid, msgInvalidRating)
		}
		n = parsed
	case int:
		n = float64(val)
	default:
		return 0, appErr.New(appErr.ErrInvalid, msgInvalidRating)
	}
	if n != math.Trunc(n) || n < 1 || n > 5 {
		return 0, appErr.New(appErr.ErrInvalid, msgInvalidRating)
	}
	return int(n), nil
}

// FormatRating renders two decimals, rounding halves away from zero.
func FormatRating(avg float64) string {
	return strconv.FormatFloat(math.Round(avg*100)/100, 'f', 2, 64)
}
