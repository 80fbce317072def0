package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandate-engine/internal/model"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, 2000.0, c.BaseAllocation)
	require.Equal(t, -1925.0, c.Levers.TotalFareFree)

	p := c.Project("metro-b-extension")
	require.NotNil(t, p)
	require.Equal(t, 350.0, p.Cost)
	require.Equal(t, 60000.0, p.Impact)

	require.Nil(t, c.Project("nope"))
	require.Equal(t, []string{"tram-airport-shuttle"}, c.Dependents("tram-t1-extension"))
}

func TestLookups_ConcurrentOnUnindexedCatalog(t *testing.T) {
	c := &Catalog{Projects: []Project{
		{ID: "a", Category: CategoryBus, Cost: 1},
		{ID: "b", Category: CategoryBus, Cost: 1, Requires: "a"},
	}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, c.Project("a"))
			assert.Equal(t, []string{"b"}, c.Dependents("a"))
		}()
	}
	wg.Wait()
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a, b := Default(), Default()
	a.Projects[0].Cost = 1
	require.NotEqual(t, a.Projects[0].Cost, b.Projects[0].Cost)
}

func TestParse_RoundTrip(t *testing.T) {
	raw, err := Marshal(Default())
	require.NoError(t, err)

	c, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, Default().Projects, c.Projects)
	require.Equal(t, Default().Presets, c.Presets)
	require.Equal(t, model.PeriodBoth, *c.Preset("green-network").Levers.FleetElectrification)
}

func TestParse_Rejects(t *testing.T) {
	base := `
base_allocation: 100
levers:
  percent_min: -10
  percent_max: 10
  mobility_tax_tiers:
    - {value: 0, amount: 0}
`
	tests := map[string]string{
		"unknown field":      base + "colour: red\n",
		"unknown category":   base + "projects:\n  - {id: a, name: A, category: ferry, cost: 1}\n",
		"dangling requires":  base + "projects:\n  - {id: a, name: A, category: bus, cost: 1, requires: b}\n",
		"self requirement":   base + "projects:\n  - {id: a, name: A, category: bus, cost: 1, requires: a}\n",
		"duplicate id":       base + "projects:\n  - {id: a, name: A, category: bus, cost: 1}\n  - {id: a, name: B, category: bus, cost: 2}\n",
		"bad preset period":  base + "projects:\n  - {id: a, name: A, category: bus, cost: 1}\npresets:\n  - {id: p, name: P, selections: [{project_id: a, period: later}]}\n",
		"preset mandat only": base + "projects:\n  - {id: a, name: A, category: bus, cost: 1, mandat_only: true}\npresets:\n  - {id: p, name: P, selections: [{project_id: a, period: first}]}\n",
		"preset bad tier":    base + "presets:\n  - {id: p, name: P, levers: {mobility_tax_tier: 5}}\n",
		"preset percent":     base + "presets:\n  - {id: p, name: P, levers: {ticket_price_pct: 11}}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default().BaseAllocation, c.BaseAllocation)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
base_allocation: 500
levers:
  total_fare_free: -300
  percent_min: -20
  percent_max: 20
  mobility_tax_tiers: [{value: 0, amount: 0}, {value: 10, amount: 40}]
fleet: {electrification: 10, maintenance: 5}
projects:
  - {id: line-1, name: Line 1, category: tram, cost: 100, impact: 1000}
  - {id: line-1-branch, name: Branch, category: tram, cost: 20, requires: line-1}
presets:
  - id: starter
    name: Starter
    selections: [{project_id: line-1, period: both}]
    levers: {total_fare_free: first}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, 500.0, c.BaseAllocation)
	require.Equal(t, []string{"line-1-branch"}, c.Dependents("line-1"))
	require.Equal(t, model.PeriodFirst, *c.Preset("starter").Levers.TotalFareFree)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFetchRemote(t *testing.T) {
	raw, err := Marshal(Default())
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.HasSuffix(r.URL.Path, "/broken") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write(raw)
	}))
	defer srv.Close()

	ctx := context.Background()
	c, err := FetchRemote(ctx, srv.URL+"/catalog.yaml")
	require.NoError(t, err)
	require.Len(t, c.Projects, len(Default().Projects))

	_, err = FetchRemote(ctx, srv.URL+"/catalog.yaml")
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load(), "second fetch is served from cache")

	c, err = FetchRemote(ctx, srv.URL+"/broken")
	require.Error(t, err)
	require.NotNil(t, c, "falls back to the built-in catalog")
	require.Equal(t, Default().BaseAllocation, c.BaseAllocation)
}
