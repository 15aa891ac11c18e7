package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/autolistings/listing-sync/internal/adapter"
	"github.com/autolistings/listing-sync/internal/fetcher"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

// dealerSite serves inventory pages from testdata and counts requests per path.
type dealerSite struct {
	t     *testing.T
	pages map[string]string
	srv   *httptest.Server

	mu       sync.Mutex
	requests map[string]int
}

func newDealerSite(t *testing.T, pages map[string]string) *dealerSite {
	t.Helper()

	site := &dealerSite{t: t, pages: pages, requests: make(map[string]int)}
	site.srv = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.srv.Close)

	return site
}

func (s *dealerSite) serve(wrt http.ResponseWriter, req *http.Request) {
	key := req.URL.Path
	if page := req.URL.Query().Get("page"); page != "" {
		key += "?page=" + page
	}

	s.mu.Lock()
	s.requests[key]++
	s.mu.Unlock()

	file, ok := s.pages[key]
	if !ok {
		http.NotFound(wrt, req)
		return
	}
	if file == "500" {
		wrt.WriteHeader(http.StatusInternalServerError)
		return
	}

	body, err := os.ReadFile(filepath.Join("testdata", file))
	require.NoError(s.t, err, "can't read fixture")

	wrt.Header().Set("Content-Type", "text/html; charset=utf-8")
	wrt.Write(body)
}

func (s *dealerSite) requested(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key]
}

func (s *dealerSite) fetcher() *fetcher.Fetcher {
	return fetcher.NewFetcher(s.srv.Client(), "listing-sync-test")
}

func collect(ctx context.Context, a adapter.Adapter) ([]models.RawListing, error) {
	out := make(chan models.RawListing)
	done := make(chan struct{})

	var listings []models.RawListing
	go func() {
		defer close(done)
		for listing := range out {
			listings = append(listings, listing)
		}
	}()

	err := a.FetchListings(ctx, out)
	close(out)
	<-done

	return listings, err
}

func cardGridConfig(baseURL string, ops ...func(*sources.SourceConfig)) sources.SourceConfig {
	cfg := sources.SourceConfig{
		Name:      "lone-star-motors",
		Kind:      sources.KindCardGrid,
		BaseURL:   baseURL + "/inventory",
		PageParam: "page",
		FirstPage: lo.ToPtr(1),
		MaxPages:  5,
		Workers:   1,
		Render:    sources.RenderHTTP,
		Selectors: map[string]string{
			"title": ".title",
			"link":  ".title",
		},
	}
	for _, op := range ops {
		op(&cfg)
	}
	return cfg
}

func TestUnitCardGridFetchListings(t *testing.T) {
	site := newDealerSite(t, map[string]string{
		"/inventory?page=1": "cardgrid_page1.html",
		"/inventory?page=2": "cardgrid_page2.html",
		"/inventory?page=3": "cardgrid_empty.html",
	})
	base := site.srv.URL

	listings, err := collect(context.TODO(), adapter.NewCardGrid(cardGridConfig(base), site.fetcher(), &logger))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, []string{"A100", "A101", "B200", "A103"}, lo.Map(listings, func(l models.RawListing, _ int) string {
		return l.ExternalID
	}), "should emit listings once, in page order, without listings missing price")

	corolla := listings[0]
	assert.Equal(t, base+"/vehicles/A100", corolla.ExternalURL)
	assert.Equal(t, "2021 Toyota Corolla LE", corolla.Title)
	assert.Equal(t, lo.ToPtr("$15,200"), corolla.Price)
	assert.Nil(t, corolla.Mileage, "first rendering of a listing wins")

	assert.Equal(t, []string{base + "/img/a101-1.jpg"}, listings[1].ImageURLs, "should prefer lazy image source")
	assert.Equal(t, lo.ToPtr("41k mi"), listings[2].Mileage)
	assert.Equal(t, base+"/vehicles/B200/", listings[2].ExternalURL)
	assert.Equal(t, []string{"https://cdn.example.com/a103-small.jpg"}, listings[3].ImageURLs)

	assert.Equal(t, 1, site.requested("/inventory?page=3"), "should fetch empty page")
	assert.Equal(t, 0, site.requested("/inventory?page=4"), "should stop after empty page")
}

func TestUnitCardGridStopsOnFailedPage(t *testing.T) {
	site := newDealerSite(t, map[string]string{
		"/inventory?page=1": "cardgrid_page1.html",
		"/inventory?page=2": "500",
		"/inventory?page=3": "cardgrid_page2.html",
	})

	listings, err := collect(context.TODO(), adapter.NewCardGrid(cardGridConfig(site.srv.URL), site.fetcher(), &logger))

	require.NoError(t, err, "failed page shouldn't be returned as error")
	assert.Len(t, listings, 3, "should return listings collected before failure")
	assert.Equal(t, 0, site.requested("/inventory?page=3"), "should stop pagination on failed page")
}

func TestUnitCardGridLimits(t *testing.T) {
	pages := map[string]string{
		"/inventory?page=1": "cardgrid_page1.html",
		"/inventory?page=2": "cardgrid_page2.html",
		"/inventory?page=3": "cardgrid_empty.html",
	}

	tests := map[string]struct {
		op      func(*sources.SourceConfig)
		wantIDs []string
	}{
		"max listings": {
			op:      func(cfg *sources.SourceConfig) { cfg.MaxListings = 2 },
			wantIDs: []string{"A100", "A101"},
		},
		"max pages": {
			op:      func(cfg *sources.SourceConfig) { cfg.MaxPages = 1 },
			wantIDs: []string{"A100", "A101", "B200"},
		},
		"require image": {
			op:      func(cfg *sources.SourceConfig) { cfg.RequireImage = true },
			wantIDs: []string{"A101", "A103"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			site := newDealerSite(t, pages)

			listings, err := collect(context.TODO(), adapter.NewCardGrid(cardGridConfig(site.srv.URL, tt.op), site.fetcher(), &logger))

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, lo.Map(listings, func(l models.RawListing, _ int) string { return l.ExternalID }))
		})
	}
}

func TestUnitCardGridRepeatedPage(t *testing.T) {
	pages := map[string]string{"/vehicles/P1": "500", "/vehicles/P2": "500"}
	for page := 1; page <= 5; page++ {
		pages["/inventory?page="+strconv.Itoa(page)] = "cardgrid_unpriced.html"
	}
	site := newDealerSite(t, pages)

	cfg := cardGridConfig(site.srv.URL, func(cfg *sources.SourceConfig) { cfg.Detail = true })
	listings, err := collect(context.TODO(), adapter.NewCardGrid(cfg, site.fetcher(), &logger))

	require.NoError(t, err)
	assert.Empty(t, listings, "listings without price should be dropped")
	assert.Equal(t, 1, site.requested("/inventory?page=2"), "should stop on page repeating dropped listings")
	assert.Zero(t, site.requested("/inventory?page=3"), "shouldn't fetch pages after repeated page")
	assert.Equal(t, 1, site.requested("/vehicles/P1"), "should fetch detail page of dropped listing once")
	assert.Equal(t, 1, site.requested("/vehicles/P2"), "should fetch detail page of dropped listing once")
}

func TestUnitCardGridDetail(t *testing.T) {
	site := newDealerSite(t, map[string]string{
		"/inventory?page=1": "cardgrid_page1.html",
		"/inventory?page=2": "cardgrid_empty.html",
		"/vehicles/A100":    "detail_A100.html",
		"/vehicles/A101":    "500",
	})
	base := site.srv.URL

	cfg := cardGridConfig(base, func(cfg *sources.SourceConfig) { cfg.Detail = true })
	listings, err := collect(context.TODO(), adapter.NewCardGrid(cfg, site.fetcher(), &logger))

	require.NoError(t, err, "failed detail page shouldn't be returned as error")
	require.Len(t, listings, 3)

	corolla := listings[0]
	assert.Equal(t, []string{
		base + "/img/a100-large-1.jpg",
		base + "/img/a100-large-2.jpg",
		base + "/img/a100-large-3.jpg",
	}, corolla.ImageURLs, "should use detail gallery")
	assert.Equal(t, lo.ToPtr("2T1BURHE5JC034461"), corolla.VIN)
	assert.Equal(t, lo.ToPtr("CVT Automatic"), corolla.Transmission)
	assert.Equal(t, lo.ToPtr("Gasoline"), corolla.FuelType)
	assert.Equal(t, lo.ToPtr("Sedan"), corolla.VehicleType)

	ford := listings[1]
	assert.Equal(t, "A101", ford.ExternalID, "should yield listing with failed detail page")
	assert.Equal(t, []string{base + "/img/a101-1.jpg"}, ford.ImageURLs, "should keep card data")
	assert.Nil(t, ford.VIN)

	assert.Equal(t, 1, site.requested("/vehicles/A100"), "should fetch detail page of repeated listing once")
	assert.Equal(t, 1, site.requested("/vehicles/A102"), "should look for missing price on detail page")
}

func TestUnitCardGridCanceled(t *testing.T) {
	site := newDealerSite(t, map[string]string{"/inventory?page=1": "cardgrid_page1.html"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collect(ctx, adapter.NewCardGrid(cardGridConfig(site.srv.URL), site.fetcher(), &logger))

	require.ErrorIs(t, err, context.Canceled, "should return context error")
}

func TestUnitNextDataFetchListings(t *testing.T) {
	site := newDealerSite(t, map[string]string{
		"/used?page=1": "nextdata.html",
		"/used?page=2": "500",
	})
	base := site.srv.URL

	cfg := sources.SourceConfig{
		Name:      "valley-auto",
		Kind:      sources.KindNextData,
		BaseURL:   base + "/used",
		PageParam: "page",
		FirstPage: lo.ToPtr(1),
		MaxPages:  3,
		Workers:   1,
		Paths: map[string]string{
			"items":   "props.pageProps.inventory.vehicles",
			"id":      "stockNumber",
			"url":     "slug",
			"price":   "pricing.internetPrice",
			"mileage": "odometer",
			"fuel":    "fuel",
			"body":    "body",
			"images":  "photos.#.url",
		},
	}

	listings, err := collect(context.TODO(), adapter.NewNextData(cfg, site.fetcher(), &logger))

	require.NoError(t, err)
	require.Len(t, listings, 2, "should drop item without price")

	assert.Equal(t, models.RawListing{
		ExternalID:   "N-1",
		ExternalURL:  base + "/used/2020-honda-accord-n-1",
		Title:        "2020 Honda Accord",
		Description:  "2020 Honda Accord",
		Make:         lo.ToPtr("Honda"),
		Model:        lo.ToPtr("Accord"),
		Year:         lo.ToPtr("2020"),
		Price:        lo.ToPtr("24995"),
		Mileage:      lo.ToPtr("28,400 miles"),
		Transmission: lo.ToPtr("Automatic"),
		FuelType:     lo.ToPtr("Gasoline"),
		VehicleType:  lo.ToPtr("Sedan"),
		VIN:          lo.ToPtr("1HGCV1F34LA012345"),
		ImageURLs:    []string{base + "/photos/n1-a.jpg", "https://cdn.example.com/n1-b.jpg"},
	}, listings[0])
	assert.Equal(t, "N-2", listings[1].ExternalID)
	assert.Empty(t, listings[1].ImageURLs)
}

func TestUnitNextDataMissingScript(t *testing.T) {
	site := newDealerSite(t, map[string]string{"/used?page=1": "cardgrid_page1.html"})

	cfg := sources.SourceConfig{
		Name: "valley-auto", Kind: sources.KindNextData, BaseURL: site.srv.URL + "/used",
		PageParam: "page", FirstPage: lo.ToPtr(1), MaxPages: 3, Workers: 1,
	}

	listings, err := collect(context.TODO(), adapter.NewNextData(cfg, site.fetcher(), &logger))

	require.NoError(t, err, "page without data should end pagination")
	assert.Empty(t, listings)
	assert.Equal(t, 0, site.requested("/used?page=2"))
}

func TestUnitJSONLDFetchListings(t *testing.T) {
	site := newDealerSite(t, map[string]string{
		"/inventory?page=1": "jsonld.html",
		"/inventory?page=2": "jsonld.html",
	})
	base := site.srv.URL

	cfg := sources.SourceConfig{
		Name: "blue-ridge-auto", Kind: sources.KindJSONLD, BaseURL: base + "/inventory",
		PageParam: "page", FirstPage: lo.ToPtr(1), MaxPages: 5, Workers: 1,
	}

	listings, err := collect(context.TODO(), adapter.NewJSONLD(cfg, site.fetcher(), &logger))

	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, 0, site.requested("/inventory?page=3"), "should stop when page repeats listings")

	outback := listings[0]
	assert.Equal(t, models.RawListing{
		ExternalID:   "BR-77",
		ExternalURL:  base + "/cars/br-77",
		Title:        "2019 Subaru Outback 2.5i Premium",
		Description:  "2019 Subaru Outback 2.5i Premium",
		Make:         lo.ToPtr("Subaru"),
		Model:        lo.ToPtr("Outback"),
		Year:         lo.ToPtr("2019"),
		Price:        lo.ToPtr("21450"),
		Mileage:      lo.ToPtr("52310 mi"),
		Transmission: lo.ToPtr("Automatic"),
		FuelType:     lo.ToPtr("Gasoline"),
		VehicleType:  lo.ToPtr("Wagon"),
		VIN:          lo.ToPtr("4S4BSAFC5K3312345"),
		ImageURLs:    []string{base + "/img/br-77-1.jpg", base + "/img/br-77-2.jpg"},
	}, outback)

	silverado := listings[1]
	assert.Equal(t, "3GCUKREC5FG123456", silverado.ExternalID, "should fall back to VIN as id")
	assert.Equal(t, lo.ToPtr("19900"), silverado.Price, "should read price of first offer")
	assert.Equal(t, []string{base + "/img/br-78-1.jpg"}, silverado.ImageURLs)

	jetta := listings[2]
	assert.Equal(t, "BR-79", jetta.ExternalID)
	assert.Equal(t, lo.ToPtr("180000 km"), jetta.Mileage)
	assert.Equal(t, lo.ToPtr("6,800"), jetta.Price)
}

func TestUnitPageURL(t *testing.T) {
	tests := map[string]struct {
		cfg  sources.SourceConfig
		page int
		want string
	}{
		"query param": {
			cfg:  sources.SourceConfig{BaseURL: "https://dealer.example.com/inventory?sort=new", PageParam: "page"},
			page: 2,
			want: "https://dealer.example.com/inventory?page=2&sort=new",
		},
		"custom param": {
			cfg:  sources.SourceConfig{BaseURL: "https://dealer.example.com/cars", PageParam: "pg"},
			page: 0,
			want: "https://dealer.example.com/cars?pg=0",
		},
		"path placeholder": {
			cfg:  sources.SourceConfig{BaseURL: "https://dealer.example.com/used/page/{page}/", PageParam: "page"},
			page: 3,
			want: "https://dealer.example.com/used/page/3/",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := adapter.PageURL(tt.cfg, tt.page)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnitRegistryBuild(t *testing.T) {
	httpFetcher := fetcher.NewFetcher(http.DefaultClient, "test")

	tests := map[string]struct {
		browser  adapter.PageFetcher
		cfg      sources.SourceConfig
		wantErr  error
		wantName string
	}{
		"card grid": {
			cfg:      sources.SourceConfig{Name: "a", Kind: sources.KindCardGrid, Render: sources.RenderHTTP},
			wantName: "a",
		},
		"json-ld": {
			cfg:      sources.SourceConfig{Name: "b", Kind: sources.KindJSONLD, Render: sources.RenderHTTP},
			wantName: "b",
		},
		"browser": {
			browser:  httpFetcher,
			cfg:      sources.SourceConfig{Name: "c", Kind: sources.KindNextData, Render: sources.RenderBrowser},
			wantName: "c",
		},
		"browser disabled error": {
			cfg:     sources.SourceConfig{Name: "d", Kind: sources.KindNextData, Render: sources.RenderBrowser},
			wantErr: adapter.ErrRendererDisabled,
		},
		"unknown kind error": {
			cfg:     sources.SourceConfig{Name: "e", Kind: "rss"},
			wantErr: adapter.ErrUnknownKind,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			registry := adapter.NewRegistry(httpFetcher, tt.browser, &logger)

			got, err := registry.Build(tt.cfg)

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == nil {
				assert.Equal(t, tt.wantName, got.Name())
			}
		})
	}
}

func TestUnitRegistryValidate(t *testing.T) {
	tests := map[string]struct {
		browser adapter.PageFetcher
		cfgs    []sources.SourceConfig
		wantErr error
	}{
		"valid": {
			cfgs: []sources.SourceConfig{
				{Name: "first", Kind: sources.KindCardGrid, Render: sources.RenderHTTP},
				{Name: "second", Kind: sources.KindJSONLD, Render: sources.RenderHTTP},
			},
		},
		"browser enabled": {
			browser: fetcher.NewFetcher(http.DefaultClient, "test"),
			cfgs:    []sources.SourceConfig{{Name: "spa", Kind: sources.KindNextData, Render: sources.RenderBrowser}},
		},
		"unknown kind": {
			cfgs:    []sources.SourceConfig{{Name: "ok", Kind: sources.KindJSONLD}, {Name: "bad", Kind: "unknown"}},
			wantErr: adapter.ErrUnknownKind,
		},
		"browser disabled": {
			cfgs:    []sources.SourceConfig{{Name: "spa", Kind: sources.KindNextData, Render: sources.RenderBrowser}},
			wantErr: adapter.ErrRendererDisabled,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			registry := adapter.NewRegistry(fetcher.NewFetcher(http.DefaultClient, "test"), tt.browser, &logger)

			err := registry.Validate(tt.cfgs)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
