package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"listingscope/internal/config"
	"listingscope/internal/errors"
	"listingscope/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderLoadsOnce(t *testing.T) {
	source := testkit.NewStaticSource("memory", testkit.TwoListings())
	holder := NewHolder(source)
	assert.False(t, holder.Loaded())

	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := holder.Get(context.Background())
			assert.NoError(t, err)
			tables[i] = table
		}(i)
	}
	wg.Wait()

	for _, table := range tables {
		assert.Same(t, tables[0], table)
	}
	assert.Equal(t, 1, source.Reads())
	assert.True(t, holder.Loaded())
}

func TestHolderFailureIsNotMemoized(t *testing.T) {
	source := testkit.NewFailingSource("broken.csv", fmt.Errorf("disk on fire"))
	holder := NewHolder(source)

	_, err := holder.Get(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeDataUnavailable))
	assert.Contains(t, err.Error(), "broken.csv")

	_, err = holder.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, source.Reads())
	assert.False(t, holder.Loaded())
}

func TestHolderMalformedSource(t *testing.T) {
	source := testkit.NewStaticSource("no-facets", [][]string{{"id", "price"}, {"1", "10"}})

	_, err := NewHolder(source).Get(context.Background())
	assert.True(t, errors.Is(err, errors.CodeDataUnavailable))
}

func TestHolderOverMissingFile(t *testing.T) {
	source, err := NewSource(config.DataConfig{
		Source: config.SourceFile,
		File:   filepath.Join(t.TempDir(), "absent.csv"),
	})
	require.NoError(t, err)

	_, err = NewHolder(source).Get(context.Background())
	assert.True(t, errors.Is(err, errors.CodeDataUnavailable))
}

func TestHolderOverCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.csv")
	content := "id,room_type,neighbourhood_group,price\n1,Private room,Brooklyn,100\n2,Entire home/apt,Manhattan,300\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source, err := NewSource(config.DataConfig{Source: config.SourceFile, File: path})
	require.NoError(t, err)

	table, err := NewHolder(source).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestNewSourceRejectsUnknownKinds(t *testing.T) {
	_, err := NewSource(config.DataConfig{Source: "ftp"})
	assert.True(t, errors.Is(err, errors.CodeConfigInvalid))

	_, err = NewSource(config.DataConfig{Source: config.SourceSQLite, File: "x.db", Table: "drop table;"})
	assert.True(t, errors.Is(err, errors.CodeConfigInvalid))
	assert.ErrorContains(t, err, "invalid sqlite source")

	_, err = NewSource(config.DataConfig{Source: config.SourceAPI})
	assert.True(t, errors.Is(err, errors.CodeConfigInvalid))
}

func TestHolderOverAPISource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"listings":[{"id":1,"room_type":"Private room","neighbourhood_group":"Queens","price":90},`+
			`{"id":2,"room_type":"Shared room","neighbourhood_group":"Bronx","price":null}]}`)
	}))
	defer srv.Close()

	source, err := NewSource(config.DataConfig{Source: config.SourceAPI, URL: srv.URL, JSONPath: "listings"})
	require.NoError(t, err)

	table, err := NewHolder(source).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	missing, err := table.MissingCount("price")
	require.NoError(t, err)
	assert.Equal(t, 1, missing)
}
