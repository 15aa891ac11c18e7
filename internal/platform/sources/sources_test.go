package sources_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFile = `
sources:
  - name: metro-motors
    kind: cardgrid
    baseUrl: https://metro-motors.example/inventory
    maxPages: 5
    delay: 1500ms
    requireImage: true
    detail: true
    contact:
      phone: "+1 555 0100"
      email: sales@metro-motors.example
    location:
      state: TX
      city: Austin
    selectors:
      card: div.vehicle
  - name: lakeside-auto
    kind: nextdata
    baseUrl: https://lakeside.example/used
    firstPage: 0
    pageParam: p
    location:
      state: Florida
`

func TestUnitDecode(t *testing.T) {
	got, err := sources.Decode(strings.NewReader(validFile))
	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, got, 2, "should decode all sources")

	metro := got[0]
	assert.Equal(t, "metro-motors", metro.Name)
	assert.Equal(t, sources.KindCardGrid, metro.Kind)
	assert.Equal(t, 5, metro.MaxPages)
	assert.Equal(t, 1500*time.Millisecond, metro.Delay, "should decode duration")
	assert.Equal(t, 1, metro.StartPage(), "should default first page to 1")
	assert.Equal(t, "page", metro.PageParam, "should default page param")
	assert.Equal(t, 1, metro.Workers, "should default to single worker")
	assert.Equal(t, sources.RenderHTTP, metro.Render, "should default to http rendering")
	assert.True(t, metro.RequireImage)
	assert.Equal(t, "div.vehicle", metro.Selector("card", "article"), "should return configured selector")
	assert.Equal(t, "a", metro.Selector("link", "a"), "should return default selector")

	lakeside := got[1]
	assert.Equal(t, 0, lakeside.StartPage(), "should keep zero-based pagination")
	assert.Equal(t, "p", lakeside.PageParam)
	assert.Equal(t, 10, lakeside.MaxPages, "should default max pages")
	assert.Equal(t, "props.pageProps.items", lakeside.Path("items", "props.pageProps.items"))
}

func TestUnitDecodeErrors(t *testing.T) {
	tests := map[string]struct {
		file    string
		wantErr error
		wantMsg string
	}{
		"no sources": {
			file:    "sources: []",
			wantMsg: "invalid sources file",
		},
		"unknown kind": {
			file: `
sources:
  - name: a
    kind: carousel
    baseUrl: https://a.example
    location: {state: TX}
`,
			wantMsg: "invalid sources file",
		},
		"missing state": {
			file: `
sources:
  - name: a
    kind: jsonld
    baseUrl: https://a.example
`,
			wantMsg: "invalid sources file",
		},
		"too many workers": {
			file: `
sources:
  - name: a
    kind: jsonld
    baseUrl: https://a.example
    workers: 9
    location: {state: TX}
`,
			wantMsg: "invalid sources file",
		},
		"concurrent detail fetches": {
			file: `
sources:
  - name: a
    kind: jsonld
    baseUrl: https://a.example
    workers: 2
    location: {state: TX}
`,
			wantMsg: "invalid sources file",
		},
		"duplicate name": {
			file: `
sources:
  - name: a
    kind: jsonld
    baseUrl: https://a.example
    location: {state: TX}
  - name: a
    kind: jsonld
    baseUrl: https://b.example
    location: {state: TX}
`,
			wantErr: sources.ErrDuplicateSource,
		},
		"bad yaml": {
			file:    "sources: [",
			wantMsg: "can't decode sources file",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := sources.Decode(strings.NewReader(tt.file))

			require.Error(t, err, "should return error")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			}
			if tt.wantMsg != "" {
				require.ErrorContains(t, err, tt.wantMsg, "should return correct error")
			}
		})
	}
}

func TestUnitLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o600))

	got, err := sources.Load(path)

	require.NoError(t, err, "shouldn't return any error")
	assert.Len(t, got, 2, "should load all sources")

	_, err = sources.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "can't open sources file", "should return open error")
}
