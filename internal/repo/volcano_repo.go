package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/volcano/internal/model"
	"github.com/xxxsen/volcano/internal/pkg/dbutil"
	appErr "github.com/xxxsen/volcano/internal/pkg/errors"
)

const catalogTable = "data"

func volcanoDetailFields() []string {
	return []string{
		"id", "name", "country", "region", "subregion",
		"last_eruption", "summit", "elevation", "latitude", "longitude",
		"population_5km", "population_10km", "population_30km", "population_100km",
	}
}

type VolcanoRepo struct {
	db *sql.DB
}

func NewVolcanoRepo(db *sql.DB) *VolcanoRepo {
	return &VolcanoRepo{db: db}
}

func (r *VolcanoRepo) Countries(ctx context.Context) ([]string, error) {
	where := map[string]interface{}{"_groupby": "country", "_orderby": "country asc"}
	sqlStr, args, err := builder.BuildSelect(catalogTable, where, []string{"country"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	countries := make([]string, 0)
	for rows.Next() {
		var country string
		if err := rows.Scan(&country); err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

// List returns the volcanoes of a country. A non-empty populationColumn keeps
// only rows where that column is positive.
func (r *VolcanoRepo) List(ctx context.Context, country, populationColumn string) ([]model.VolcanoSummary, error) {
	where := map[string]interface{}{"country": country, "_orderby": "id asc"}
	if populationColumn != "" {
		where[populationColumn+" >"] = 0
	}
	sqlStr, args, err := builder.BuildSelect(catalogTable, where, []string{"id", "name", "country", "region", "subregion"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.VolcanoSummary, 0)
	for rows.Next() {
		var item model.VolcanoSummary
		if err := rows.Scan(&item.ID, &item.Name, &item.Country, &item.Region, &item.Subregion); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns the full row, population counts included.
func (r *VolcanoRepo) Get(ctx context.Context, id int64) (*model.Volcano, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect(catalogTable, where, volcanoDetailFields())
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	var v model.Volcano
	var pop model.Population
	var lastEruption sql.NullString
	var summit, elevation sql.NullInt64
	var latitude, longitude sql.NullFloat64
	if err := rows.Scan(
		&v.ID, &v.Name, &v.Country, &v.Region, &v.Subregion,
		&lastEruption, &summit, &elevation, &latitude, &longitude,
		&pop.Population5km, &pop.Population10km, &pop.Population30km, &pop.Population100km,
	); err != nil {
		return nil, err
	}
	v.LastEruption = stringPtr(lastEruption)
	v.Summit = int64Ptr(summit)
	v.Elevation = int64Ptr(elevation)
	v.Latitude = float64Ptr(latitude)
	v.Longitude = float64Ptr(longitude)
	v.Population = &pop
	return &v, nil
}

// InsertBatch loads catalog rows, used by the seeder only.
func (r *VolcanoRepo) InsertBatch(ctx context.Context, volcanoes []model.Volcano) error {
	if len(volcanoes) == 0 {
		return nil
	}
	data := make([]map[string]interface{}, 0, len(volcanoes))
	for _, v := range volcanoes {
		row := map[string]interface{}{
			"id":            v.ID,
			"name":          v.Name,
			"country":       v.Country,
			"region":        v.Region,
			"subregion":     v.Subregion,
			"last_eruption": v.LastEruption,
			"summit":        v.Summit,
			"elevation":     v.Elevation,
			"latitude":      v.Latitude,
			"longitude":     v.Longitude,
		}
		pop := model.Population{}
		if v.Population != nil {
			pop = *v.Population
		}
		row["population_5km"] = pop.Population5km
		row["population_10km"] = pop.Population10km
		row["population_30km"] = pop.Population30km
		row["population_100km"] = pop.Population100km
		data = append(data, row)
	}
	sqlStr, args, err := builder.BuildInsert(catalogTable, data)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *VolcanoRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
