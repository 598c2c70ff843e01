package ui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"listingscope/internal/dataset"
	"listingscope/internal/testkit"
)

func TestHealthLoadsDataset(t *testing.T) {
	source := testkit.NewStaticSource("memory", testkit.TwoListings())
	holder := dataset.NewHolder(source)
	app := NewApp(holder)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "ok", gjson.Get(body, "status").String())
	assert.True(t, gjson.Get(body, "loaded").Bool())
	assert.Equal(t, int64(2), gjson.Get(body, "rows").Int())
	assert.True(t, holder.Loaded())
	assert.Equal(t, 1, source.Reads())
}

func TestHealthReportsUnavailableSource(t *testing.T) {
	app := NewApp(dataset.NewHolder(testkit.NewFailingSource("gone.csv", fmt.Errorf("no such file"))))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", gjson.Get(rec.Body.String(), "status").String())
	assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), "gone.csv")
}

func TestProfilerIsMounted(t *testing.T) {
	app := NewApp(dataset.NewHolder(testkit.NewStaticSource("memory", testkit.TwoListings())))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
