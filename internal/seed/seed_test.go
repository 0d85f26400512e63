package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/volcano/internal/catalogsource"
	"github.com/xxxsen/volcano/internal/config"
	"github.com/xxxsen/volcano/internal/model"
)

const sampleCSV = `id,name,country,region,subregion,last_eruption,summit,elevation,latitude,longitude,population_5km,population_10km,population_30km,population_100km
1,Abu,Japan,"Japan, Taiwan, Marianas",Honshu,6850 BCE,571,1874,34.5,131.6,3597,9594,117805,4071152
2,Acamarachi,Chile,South America,Northern Chile,,6046,19836,-23.293,-67.618,0,7,294,9092
`

type recordingInserter struct {
	batches [][]model.Volcano
	err     error
}

func (r *recordingInserter) InsertBatch(ctx context.Context, volcanoes []model.Volcano) error {
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, append([]model.Volcano(nil), volcanoes...))
	return nil
}

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, items, 2)

	abu := items[0]
	require.Equal(t, int64(1), abu.ID)
	require.Equal(t, "Japan, Taiwan, Marianas", abu.Region)
	require.Equal(t, "6850 BCE", *abu.LastEruption)
	require.Equal(t, int64(571), *abu.Summit)
	require.InDelta(t, 131.6, *abu.Longitude, 1e-9)
	require.Equal(t, int64(4071152), abu.Population.Population100km)

	acamarachi := items[1]
	require.Nil(t, acamarachi.LastEruption)
	require.Equal(t, int64(0), acamarachi.Population.Population5km)
	require.Equal(t, int64(7), acamarachi.Population.Population10km)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)

	_, err = Parse(strings.NewReader("id,name\n1,Abu\n"))
	require.ErrorContains(t, err, "country")

	_, err = Parse(strings.NewReader("id,name,country,summit\n1,Abu,Japan,high\n"))
	require.ErrorContains(t, err, "line 2")

	_, err = Parse(strings.NewReader("id,name,country\nx,Abu,Japan\n"))
	require.ErrorContains(t, err, "column id")
}

func TestImporterBatches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "volcanoes.csv"), []byte(sampleCSV), 0o644))
	src, err := catalogsource.New(config.CatalogSourceConfig{Type: "local", Data: map[string]interface{}{"dir": dir}})
	require.NoError(t, err)

	store := &recordingInserter{}
	n, err := NewImporter(store, 1).Run(context.Background(), src, "volcanoes.csv")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, store.batches, 2)
	require.Equal(t, "Acamarachi", store.batches[1][0].Name)

	store.err = errors.New("db down")
	_, err = NewImporter(store, 0).Run(context.Background(), src, "volcanoes.csv")
	require.ErrorContains(t, err, "db down")

	_, err = NewImporter(store, 0).Run(context.Background(), src, "absent.csv")
	require.Error(t, err)
}
