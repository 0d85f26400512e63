// Package seed loads the volcano catalog from a CSV export into the data table.
//
// The first row names the columns. id, name and country are required; the
// remaining columns may be absent or empty.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/volcano/internal/catalogsource"
	"github.com/xxxsen/volcano/internal/model"
)

const defaultBatchSize = 200

type Inserter interface {
	InsertBatch(ctx context.Context, volcanoes []model.Volcano) error
}

type Importer struct {
	store     Inserter
	batchSize int
}

func NewImporter(store Inserter, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Importer{store: store, batchSize: batchSize}
}

// Run reads key from src and inserts every row, returning the row count.
func (i *Importer) Run(ctx context.Context, src catalogsource.Source, key string) (int, error) {
	rc, err := src.Open(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("open catalog %s: %w", key, err)
	}
	defer rc.Close()
	volcanoes, err := Parse(rc)
	if err != nil {
		return 0, err
	}
	for start := 0; start < len(volcanoes); start += i.batchSize {
		end := start + i.batchSize
		if end > len(volcanoes) {
			end = len(volcanoes)
		}
		if err := i.store.InsertBatch(ctx, volcanoes[start:end]); err != nil {
			return start, fmt.Errorf("insert rows %d-%d: %w", start+1, end, err)
		}
		logutil.GetLogger(ctx).Debug("catalog batch inserted", zap.Int("from", start+1), zap.Int("to", end))
	}
	logutil.GetLogger(ctx).Info("catalog seeded",
		zap.String("source", src.Type()),
		zap.String("key", key),
		zap.Int("rows", len(volcanoes)),
	)
	return len(volcanoes), nil
}

func Parse(r io.Reader) ([]model.Volcano, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = idx
	}
	for _, required := range []string{"id", "name", "country"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	out := make([]model.Volcano, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := parseRow(row{columns: columns, record: record})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

type row struct {
	columns map[string]int
	record  []string
}

func (r row) get(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

func (r row) optString(name string) *string {
	value := r.get(name)
	if value == "" {
		return nil
	}
	return &value
}

func (r row) optInt(name string) (*int64, error) {
	value := r.get(name)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return &n, nil
}

func (r row) optFloat(name string) (*float64, error) {
	value := r.get(name)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return &f, nil
}

func (r row) count(name string) (int64, error) {
	n, err := r.optInt(name)
	if err != nil || n == nil {
		return 0, err
	}
	return *n, nil
}

func parseRow(r row) (model.Volcano, error) {
	id, err := strconv.ParseInt(r.get("id"), 10, 64)
	if err != nil {
		return model.Volcano{}, fmt.Errorf("column id: %w", err)
	}
	v := model.Volcano{
		ID:           id,
		Name:         r.get("name"),
		Country:      r.get("country"),
		Region:       r.get("region"),
		Subregion:    r.get("subregion"),
		LastEruption: r.optString("last_eruption"),
	}
	if v.Name == "" || v.Country == "" {
		return model.Volcano{}, fmt.Errorf("name and country are required")
	}
	if v.Summit, err = r.optInt("summit"); err != nil {
		return model.Volcano{}, err
	}
	if v.Elevation, err = r.optInt("elevation"); err != nil {
		return model.Volcano{}, err
	}
	if v.Latitude, err = r.optFloat("latitude"); err != nil {
		return model.Volcano{}, err
	}
	if v.Longitude, err = r.optFloat("longitude"); err != nil {
		return model.Volcano{}, err
	}
	pop := &model.Population{}
	for column, dst := range map[string]*int64{
		"population_5km":   &pop.Population5km,
		"population_10km":  &pop.Population10km,
		"population_30km":  &pop.Population30km,
		"population_100km": &pop.Population100km,
	} {
		if *dst, err = r.count(column); err != nil {
			return model.Volcano{}, err
		}
	}
	v.Population = pop
	return v, nil
}
