package helpers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/autolistings/listing-sync/internal/platform/lock"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/storage/storagetesting"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	runTimeout  = 30 * time.Second
)

// jpeg is a minimal JPEG header served as listing image.
var jpeg = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

// Card is a listing card rendered on mocked dealer inventory page.
type Card struct {
	ID      string
	Title   string
	Price   string
	Mileage string
	Image   string
}

var inventoryTemplate = template.Must(template.New("inventory").Parse(`<!DOCTYPE html>
<html><body><section class="results">
{{range .}}<div class="vehicle-card" data-id="{{.ID}}">
  <a href="/vehicles/{{.ID}}">{{.Title}}</a>
  <span class="price">{{.Price}}</span>
  {{if .Mileage}}<span class="mileage">{{.Mileage}}</span>{{end}}
  {{if .Image}}<img src="{{.Image}}">{{end}}
</div>
{{end}}</section></body></html>`))

// InventoryPage renders cards as inventory page.
func InventoryPage(t *testing.T, cards []Card) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := inventoryTemplate.Execute(&buf, cards); err != nil {
		require.FailNow(t, "can't render inventory page", err)
	}

	return buf.Bytes()
}

// PrepareMockedDealerSite is helper function for mocking dealer website serving single inventory page and images.
// Returns function for setting inventory page to return, page number is from 0 to len(pages) exclusive.
func PrepareMockedDealerSite(t *testing.T, pages [][]byte) (*httptest.Server, func(int)) {
	t.Helper()

	var mu sync.Mutex
	pageToReturnIx := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/inventory", func(wrt http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("page") != "1" {
			wrt.Header().Add(contentType, "text/html")
			_, _ = wrt.Write([]byte("<html><body></body></html>"))
			return
		}

		mu.Lock()
		page := pages[pageToReturnIx]
		mu.Unlock()

		wrt.Header().Add(contentType, "text/html; charset=utf-8")
		_, _ = wrt.Write(page)
	})
	mux.HandleFunc("/img/", func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.Header().Add(contentType, "image/jpeg")
		_, _ = wrt.Write(jpeg)
	})

	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
	})

	return srv, func(i int) {
		mu.Lock()
		defer mu.Unlock()
		pageToReturnIx = i
	}
}

// PrepareMockedS3 is helper function for mocking S3 compatible storage in path-style.
// Returns function listing paths of all received PUT requests.
func PrepareMockedS3(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var puts []string

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPut {
			wrt.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		mu.Lock()
		puts = append(puts, req.URL.Path)
		mu.Unlock()

		wrt.Header().Set("ETag", `"e2e"`)
		wrt.WriteHeader(http.StatusOK)
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), puts...)
	}
}

// WaitForRunToBeFinished is blocking helper function, returns latest run of source newer than afterRunID after it is finished.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, source string, afterRunID int) *models.Run {
	t.Helper()

	deadline := time.After(runTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "run not finished in time", source)
		case <-time.After(time.Millisecond * 250):
		}

		latestRun := storagetesting.GetLatestRun(t, queryable, source)
		if latestRun != nil && latestRun.ID > afterRunID && latestRun.FinishedAt != nil {
			return latestRun
		}
	}
}

// ListingsByExternalID is helper function for getting listings of source keyed by external ID.
func ListingsByExternalID(t *testing.T, queryable qrm.Queryable, source string) map[string]models.Listing {
	t.Helper()

	listings := storagetesting.GetListingsBySource(t, queryable, source)
	byID := make(map[string]models.Listing, len(listings))
	for _, listing := range listings {
		byID[listing.ExternalID] = listing
	}

	return byID
}

// CountPrefix returns number of paths starting with prefix.
func CountPrefix(paths []string, prefix string) int {
	count := 0
	for _, path := range paths {
		if strings.HasPrefix(path, prefix) {
			count++
		}
	}
	return count
}

// DeleteRMQQueueOnCleanup is helper function for deleting RMQ queue after test is finished.
func DeleteRMQQueueOnCleanup(t *testing.T, channel *amqp.Channel, queueName string) {
	t.Helper()

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// LocalLocker is in-process lock used in place of Redis lock.
type LocalLocker struct {
	mu sync.Mutex
}

// Do runs fn holding the lock or returns lock.ErrLocked.
func (l *LocalLocker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if !l.mu.TryLock() {
		return lock.ErrLocked
	}
	defer l.mu.Unlock()

	return fn(ctx)
}

// ImageURL returns URL of image stored in mocked S3.
func ImageURL(s3URL, bucket, prefix, source, externalID string, slot int) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s/%d.jpg", s3URL, bucket, prefix, source, externalID, slot)
}
