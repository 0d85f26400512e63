// Package testutil holds in-memory stores and database helpers for tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/xxxsen/volcano/internal/model"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
)

// ErrStoreDown stands in for any database failure.
var ErrStoreDown = errors.New("store down")

// UserStore keys users by email.
type UserStore struct {
	mu     sync.Mutex
	NextID int64
	Users  map[string]*model.User
	Err    error
}

func NewUserStore() *UserStore {
	return &UserStore{Users: map[string]*model.User{}}
}

func (m *UserStore) Create(ctx context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Users[email]; ok {
		return appErr.ErrConflict
	}
	m.NextID++
	m.Users[email] = &model.User{ID: m.NextID, Email: email, PasswordHash: passwordHash}
	return nil
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.Users[email]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *UserStore) UpdateProfile(ctx context.Context, email string, update model.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	user, ok := m.Users[email]
	if !ok {
		return appErr.ErrNotFound
	}
	user.FirstName = &update.FirstName
	user.LastName = &update.LastName
	user.Address = &update.Address
	dob := update.DOB
	user.DOB = &dob
	return nil
}

// ReviewStore rejects volcano ids missing from Known, when Known is set.
type ReviewStore struct {
	mu      sync.Mutex
	Users   *UserStore
	Reviews []model.Review
	Known   map[int64]bool
	Err     error
}

func (m *ReviewStore) Create(ctx context.Context, review *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.Known != nil && !m.Known[review.VolcanoID] {
		return appErr.ErrNotFound
	}
	m.Reviews = append(m.Reviews, *review)
	return nil
}

func (m *ReviewStore) ListByVolcano(ctx context.Context, volcanoID int64) ([]model.ReviewView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	items := make([]model.ReviewView, 0)
	for _, r := range m.Reviews {
		if r.VolcanoID != volcanoID {
			continue
		}
		view := model.ReviewView{Rating: r.Rating, Comment: r.Comment}
		if m.Users != nil {
			for _, u := range m.Users.Users {
				if u.ID == r.UserID {
					view.FirstName = u.FirstName
					view.LastName = u.LastName
				}
			}
		}
		items = append(items, view)
	}
	return items, nil
}

func (m *ReviewStore) AverageRating(ctx context.Context, volcanoID int64) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, false, m.Err
	}
	sum, count := 0, 0
	for _, r := range m.Reviews {
		if r.VolcanoID == volcanoID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, false, nil
	}
	return float64(sum) / float64(count), true, nil
}

// VolcanoStore records the arguments of the last List call.
type VolcanoStore struct {
	Volcanoes   []model.Volcano
	Err         error
	LastCountry string
	LastColumn  string
}

func (m *VolcanoStore) Countries(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, v := range m.Volcanoes {
		if !seen[v.Country] {
			seen[v.Country] = true
			out = append(out, v.Country)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *VolcanoStore) List(ctx context.Context, country, populationColumn string) ([]model.VolcanoSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastCountry = country
	m.LastColumn = populationColumn
	out := make([]model.VolcanoSummary, 0)
	for _, v := range m.Volcanoes {
		if v.Country != country {
			continue
		}
		if populationColumn != "" && populationOf(v, populationColumn) <= 0 {
			continue
		}
		out = append(out, model.VolcanoSummary{ID: v.ID, Name: v.Name, Country: v.Country, Region: v.Region, Subregion: v.Subregion})
	}
	return out, nil
}

func (m *VolcanoStore) Get(ctx context.Context, id int64) (*model.Volcano, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, v := range m.Volcanoes {
		if v.ID == id {
			cp := v
			return &cp, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func populationOf(v model.Volcano, column string) int64 {
	if v.Population == nil {
		return 0
	}
	switch column {
	case "population_5km":
		return v.Population.Population5km
	case "population_10km":
		return v.Population.Population10km
	case "population_30km":
		return v.Population.Population30km
	case "population_100km":
		return v.Population.Population100km
	}
	return 0
}
