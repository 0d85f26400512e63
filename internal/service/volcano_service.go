package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/xxxsen/volcano/internal/model"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
	"github.com/xxxsen/volcano/internal/pkg/jwt"
)

const (
	msgNoQueryParams    = "Query parameters not permitted"
	msgVolcanoParams    = "Invalid query parameters. Only country and populatedWithin are permitted."
	msgCountryRequired  = "Country is a required query parameter"
	msgInvalidPopulated = "Invalid populatedWithin query parameter. Must be 5km, 10km, 30km, or 100km."
	msgVolcanoNotFound  = "Volcano not found"
)

type VolcanoService struct {
	volcanoes VolcanoStore
}

func NewVolcanoService(volcanoes VolcanoStore) *VolcanoService {
	return &VolcanoService{volcanoes: volcanoes}
}

func (s *VolcanoService) Countries(ctx context.Context, query url.Values) ([]string, error) {
	if len(query) > 0 {
		return nil, appErr.New(appErr.ErrInvalid, msgNoQueryParams)
	}
	countries, err := s.volcanoes.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

func (s *VolcanoService) List(ctx context.Context, query url.Values) ([]model.VolcanoSummary, error) {
	for key := range query {
		if key != "country" && key != "populatedWithin" {
			return nil, appErr.New(appErr.ErrInvalid, msgVolcanoParams)
		}
	}
	country := query.Get("country")
	if country == "" {
		return nil, appErr.New(appErr.ErrInvalid, msgCountryRequired)
	}
	column := ""
	if band := query.Get("populatedWithin"); band != "" {
		col, ok := model.PopulationBand(band).Column()
		if !ok {
			return nil, appErr.New(appErr.ErrInvalid, msgInvalidPopulated)
		}
		column = col
	}
	items, err := s.volcanoes.List(ctx, country, column)
	if err != nil {
		return nil, fmt.Errorf("list volcanoes: %w", err)
	}
	return items, nil
}

// Get returns population counts to any authenticated caller and strips them
// for anonymous ones.
func (s *VolcanoService) Get(ctx context.Context, caller jwt.Identity, rawID string) (*model.Volcano, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, appErr.New(appErr.ErrNotFound, msgVolcanoNotFound)
	}
	volcano, err := s.volcanoes.Get(ctx, id)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.New(appErr.ErrNotFound, msgVolcanoNotFound)
		}
		return nil, fmt.Errorf("get volcano: %w", err)
	}
	out := *volcano
	if !caller.Authenticated {
		out.Population = nil
	}
	return &out, nil
}
