// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/growth-tables/internal/extract"
	"github.com/pdiddy/growth-tables/pkg/types"
)

// tableCSV returns a survey-shaped CSV with one data row per age. Girl
// percentiles start at 45+age and boy percentiles at 46+age.
func tableCSV(ages ...int) string {
	var b strings.Builder
	b.WriteString("Age,L,M,S,,cent0.4,cent2,cent9,cent25,cent50,cent75,cent91,cent98,cent99.6\n")
	b.WriteString(",Girls,,,,,,,,,,,,,,,,Boys\n")
	for _, age := range ages {
		cols := make([]string, 26)
		cols[0] = fmt.Sprintf("%d.0", age)
		for i := 0; i < 9; i++ {
			cols[5+i] = fmt.Sprintf("%d", 45+age+i)
			cols[17+i] = fmt.Sprintf("%d", 46+age+i)
		}
		b.WriteString(strings.Join(cols, ",") + "\n")
	}
	return b.String()
}

func testConfig(t *testing.T, csv string) types.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := types.DefaultConfig()
	cfg.Input = filepath.Join(dir, "reference", "table.csv")
	cfg.Output = filepath.Join(dir, "data", "hk2020-growth-data.json")
	cfg.Store.DataDir = filepath.Join(dir, "data")
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.MaxRetries = 1
	if csv != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Input), 0o755))
		require.NoError(t, os.WriteFile(cfg.Input, []byte(csv), 0o644))
	}
	return cfg
}

func TestRunExtractThenVerify(t *testing.T) {
	cfg := testConfig(t, tableCSV(0, 1, 216))
	cfg.JSOutput = filepath.Join(filepath.Dir(cfg.Output), "hk2020.js")

	var out bytes.Buffer
	require.NoError(t, runExtract(cfg, &out))
	assert.Contains(t, out.String(), "Data saved to "+cfg.Output)
	assert.Contains(t, out.String(), "data points:   3")

	js, err := os.ReadFile(cfg.JSOutput)
	require.NoError(t, err)
	assert.Contains(t, string(js), "export const "+types.DefaultJSVar)

	out.Reset()
	require.NoError(t, runVerify(cfg.Output, &out))
	assert.Contains(t, out.String(), "boy 216m p50: 266 cm")
	assert.Contains(t, out.String(), "girl 216m p50: 265 cm")
}

func TestRunExtract_MissingInputWritesNothing(t *testing.T) {
	cfg := testConfig(t, "")

	var out bytes.Buffer
	err := runExtract(cfg, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrFileNotFound)
	assert.Contains(t, out.String(), "Failed to extract data")

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunExtract_KeepsPreviousOutputOnFailure(t *testing.T) {
	cfg := testConfig(t, "only one line\n")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Output), 0o755))
	require.NoError(t, os.WriteFile(cfg.Output, []byte("previous"), 0o644))

	require.ErrorIs(t, runExtract(cfg, &bytes.Buffer{}), extract.ErrReadFailure)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestRunVerify_ReportsProblems(t *testing.T) {
	cfg := testConfig(t, tableCSV())
	require.NoError(t, runExtract(cfg, &bytes.Buffer{}))

	var out bytes.Buffer
	err := runVerify(cfg.Output, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem(s) found")
	assert.Contains(t, out.String(), "boy: ages is empty")
}

func TestRunStore(t *testing.T) {
	cfg := testConfig(t, tableCSV(0, 12, 24))
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, runStoreIngest(ctx, cfg, &out))
	assert.Contains(t, out.String(), "stored hk2020: 3 boy, 3 girl points")

	out.Reset()
	require.NoError(t, runStoreList(ctx, cfg, &out))
	assert.Contains(t, out.String(), "hk2020")

	out.Reset()
	require.NoError(t, runStoreLookup(ctx, cfg, types.GenderGirl, 12, false, &out))
	assert.Contains(t, out.String(), "girl, 12 months (1.0 years)")
	assert.Contains(t, out.String(), "50th (median)   61 cm")

	out.Reset()
	require.NoError(t, runStoreLookup(ctx, cfg, types.GenderBoy, 24, true, &out))
	assert.Contains(t, out.String(), `"p99_6": 78`)

	require.Error(t, runStoreLookup(ctx, cfg, types.Gender("other"), 0, false, &out))
	require.Error(t, runStoreLookup(ctx, cfg, types.GenderBoy, 7, false, &out))
}

func TestRunStoreList_Empty(t *testing.T) {
	cfg := testConfig(t, "")
	var out bytes.Buffer
	require.NoError(t, runStoreList(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "No datasets stored.")
}

func TestRunFetch(t *testing.T) {
	body := tableCSV(0, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	defer ts.Close()

	cfg := testConfig(t, "")
	cfg.HTTP.SourceURL = ts.URL

	var out bytes.Buffer
	require.NoError(t, runFetch(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "(2 data rows)")

	data, err := os.ReadFile(cfg.Input)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	_, err = os.Stat(cfg.Input + ".download")
	assert.True(t, os.IsNotExist(err))
}

func TestRunFetch_RejectsUnusableTable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not a table</html>\n"))
	}))
	defer ts.Close()

	cfg := testConfig(t, tableCSV(5))
	cfg.HTTP.SourceURL = ts.URL

	require.Error(t, runFetch(context.Background(), cfg, &bytes.Buffer{}))

	data, err := os.ReadFile(cfg.Input)
	require.NoError(t, err)
	assert.Equal(t, tableCSV(5), string(data), "existing input is kept")
}

func TestRunFetch_RequiresURL(t *testing.T) {
	cfg := testConfig(t, "")
	err := runFetch(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source URL")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(viper.New())
		require.NoError(t, err)
		assert.Equal(t, types.DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		v := viper.New()
		v.Set("input", "in.csv")
		v.Set("output", "out.yaml")
		v.Set("format", "yaml")
		v.Set("js_output", "out.js")
		v.Set("store.dataset", "hk2020-v3")
		v.Set("http.timeout", "5s")
		v.Set("http.max_retries", 2)

		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "in.csv", cfg.Input)
		assert.Equal(t, "out.yaml", cfg.Output)
		assert.Equal(t, types.FormatYAML, cfg.Format)
		assert.Equal(t, "out.js", cfg.JSOutput)
		assert.Equal(t, "hk2020-v3", cfg.Store.Dataset)
		assert.Equal(t, types.DefaultDataDir, cfg.Store.DataDir)
		assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, 2, cfg.HTTP.MaxRetries)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "growth-tables.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: charts/data.json\nstore:\n  data_dir: db\n"), 0o644))

		v := viper.New()
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "charts/data.json", cfg.Output)
		assert.Equal(t, "db", cfg.Store.DataDir)
	})

	t.Run("invalid format", func(t *testing.T) {
		v := viper.New()
		v.Set("format", "xml")
		_, err := loadConfig(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}
