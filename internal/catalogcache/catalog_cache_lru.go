package catalogcache

import (
	"context"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/volcano/internal/model"
	"github.com/xxxsen/volcano/internal/service"
)

const countriesKey = "countries"

// WrapLruCacheToVolcanoStore puts an expiring LRU in front of the catalog
// reads. A non-positive size or ttl returns store unchanged.
func WrapLruCacheToVolcanoStore(store service.VolcanoStore, size int, ttl time.Duration) service.VolcanoStore {
	if store == nil || size <= 0 || ttl <= 0 {
		return store
	}
	return &lruVolcanoStore{
		next:      store,
		countries: expirable.NewLRU[string, []string](1, nil, ttl),
		lists:     expirable.NewLRU[string, []model.VolcanoSummary](size, nil, ttl),
		details:   expirable.NewLRU[int64, model.Volcano](size, nil, ttl),
	}
}

type lruVolcanoStore struct {
	next      service.VolcanoStore
	countries *expirable.LRU[string, []string]
	lists     *expirable.LRU[string, []model.VolcanoSummary]
	details   *expirable.LRU[int64, model.Volcano]
}

func (l *lruVolcanoStore) Countries(ctx context.Context) ([]string, error) {
	if cached, ok := l.countries.Get(countriesKey); ok {
		logutil.GetLogger(ctx).Debug("catalog cache hit", zap.String("kind", "countries"))
		return append([]string(nil), cached...), nil
	}
	res, err := l.next.Countries(ctx)
	if err != nil {
		return nil, err
	}
	l.countries.Add(countriesKey, append([]string(nil), res...))
	return res, nil
}

func (l *lruVolcanoStore) List(ctx context.Context, country, populationColumn string) ([]model.VolcanoSummary, error) {
	key := country + "\x00" + populationColumn
	if cached, ok := l.lists.Get(key); ok {
		logutil.GetLogger(ctx).Debug("catalog cache hit", zap.String("kind", "list"), zap.String("country", country))
		return append(make([]model.VolcanoSummary, 0, len(cached)), cached...), nil
	}
	res, err := l.next.List(ctx, country, populationColumn)
	if err != nil {
		return nil, err
	}
	l.lists.Add(key, append(make([]model.VolcanoSummary, 0, len(res)), res...))
	return res, nil
}

func (l *lruVolcanoStore) Get(ctx context.Context, id int64) (*model.Volcano, error) {
	if cached, ok := l.details.Get(id); ok {
		logutil.GetLogger(ctx).Debug("catalog cache hit", zap.String("kind", "volcano"), zap.String("id", strconv.FormatInt(id, 10)))
		return cloneVolcano(cached), nil
	}
	res, err := l.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	l.details.Add(id, *cloneVolcano(*res))
	return res, nil
}

func cloneVolcano(v model.Volcano) *model.Volcano {
	cp := v
	if v.Population != nil {
		pop := *v.Population
		cp.Population = &pop
	}
	return &cp
}
