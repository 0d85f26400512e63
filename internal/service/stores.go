package service

import (
	"context"

	"github.com/xxxsen/volcano/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, email string, update model.ProfileUpdate) error
}

type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	ListByVolcano(ctx context.Context, volcanoID int64) ([]model.ReviewView, error)
	AverageRating(ctx context.Context, volcanoID int64) (float64, bool, error)
}

type VolcanoStore interface {
	Countries(ctx context.Context) ([]string, error)
	List(ctx context.Context, country, populationColumn string) ([]model.VolcanoSummary, error)
	Get(ctx context.Context, id int64) (*model.Volcano, error)
}
