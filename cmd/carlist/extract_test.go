package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/carlist/cmd/carlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints listings and ads from a saved page", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte(searchPage), 0o600))

		var stdout bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"extract", path, "--page", "3"}, &stdout, &bytes.Buffer{})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "title\tdataId\turl\tmileage\tenginePower\tyear\tprice\tisSponsoredInsert\n")
		assert.Contains(t, out, "Model X\t1001\thttps://example.com/oferta/1001\t50 000 km\t300 KM\t2021\t99 000 PLN\tfalse\n")
		assert.Contains(t, out, "page\tposition\tcontent\n")
		assert.Contains(t, out, "3\t1\t<span>Sponsored</span>\n")
	})

	t.Run("reports pages without listings or ads", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.html")
		require.NoError(t, os.WriteFile(path, []byte(`<html><body></body></html>`), 0o600))

		var stdout bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{"extract", path}, &stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No main data found.")
		assert.Contains(t, stdout.String(), "No ads found on page 1.")
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(),
			[]string{"extract", filepath.Join(t.TempDir(), "missing.html")}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports an empty database", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		err := main.NewMain().Run(context.Background(),
			[]string{"runs", "--db", filepath.Join(t.TempDir(), "empty.db")}, &stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs found.")
	})
}
