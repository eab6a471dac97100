package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "lakeshore_hotel/internal/adapters/http_server"
	"lakeshore_hotel/internal/adapters/render"
	"lakeshore_hotel/internal/app"
	"lakeshore_hotel/internal/domain"
	"lakeshore_hotel/internal/shared"
)

// ---- fakes ----

type fakeStore struct {
	pages   map[domain.CollectionID]domain.RawPage
	errs    map[domain.CollectionID]error
	pingErr error
}

func (f *fakeStore) Fetch(_ context.Context, c domain.CollectionID) (domain.RawPage, error) {
	if err, ok := f.errs[c]; ok {
		return domain.RawPage{}, err
	}
	p, ok := f.pages[c]
	if !ok {
		return domain.RawPage{}, domain.NotFound(c)
	}
	return p, nil
}
func (f *fakeStore) Ping(context.Context) error { return f.pingErr }
func (f *fakeStore) Name() string               { return "fake" }

func page(items ...map[string]any) domain.RawPage {
	return domain.RawPage{Items: items, TotalCount: len(items)}
}

func newServer(t *testing.T, store *fakeStore, ratePerMin int) http.Handler {
	t.Helper()
	site, err := shared.LoadSite("")
	if err != nil {
		t.Fatalf("site: %v", err)
	}
	view, err := render.New("")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	client := app.NewClient(store)
	policy := app.RetryPolicy{MaxRetries: 0}

	srv := httpserver.New(ratePerMin)
	srv.MountHandlers(&httpserver.Handlers{
		Pages:  app.NewPageService(client, site, policy),
		Client: client,
		View:   view,
	})
	return srv.Mux()
}

func get(t *testing.T, h http.Handler, path string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func healthyStore() *fakeStore {
	return &fakeStore{pages: map[domain.CollectionID]domain.RawPage{
		domain.RoomTypes:      page(map[string]any{"_id": "r1", "roomTypeName": "Deluxe King"}),
		domain.HotelAmenities: page(map[string]any{"_id": "a1", "amenityName": "Indoor Pool"}),
		domain.SpecialOffers:  page(),
	}}
}

// ---- tests ----

func TestCollectionsAPI_OKAndETag(t *testing.T) {
	h := newServer(t, healthyStore(), 0)

	rr := get(t, h, "/api/v1/collections/roomtypes")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Items      []map[string]any `json:"items"`
		TotalCount int              `json:"totalCount"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TotalCount != 1 || len(body.Items) != 1 || body.Items[0]["roomTypeName"] != "Deluxe King" {
		t.Fatalf("unexpected body: %+v", body)
	}
	etag := rr.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("missing weak etag: %q", etag)
	}

	rr = get(t, h, "/api/v1/collections/roomtypes", "If-None-Match", etag)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
}

func TestCollectionsAPI_Errors(t *testing.T) {
	transient := domain.Transient(domain.DiningOptions, errors.New("503"))
	transient.RetryAfter = 2500 * time.Millisecond
	store := healthyStore()
	store.errs = map[domain.CollectionID]error{
		domain.DiningOptions:   transient,
		domain.CustomerReviews: domain.Malformed(domain.CustomerReviews, errors.New("bad json")),
	}
	h := newServer(t, store, 0)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/v1/collections/guestbook", http.StatusNotFound},
		{"/api/v1/collections/nearbyattractions", http.StatusNotFound},
		{"/api/v1/collections/diningoptions", http.StatusBadGateway},
		{"/api/v1/collections/customerreviews", http.StatusBadGateway},
		{"/api/v2/anything", http.StatusNotFound},
	}
	for _, tt := range tests {
		rr := get(t, h, tt.path)
		if rr.Code != tt.status {
			t.Fatalf("%s: status %d, want %d", tt.path, rr.Code, tt.status)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("%s: content type %q", tt.path, ct)
		}
	}

	rr := get(t, h, "/api/v1/collections/diningoptions")
	if got := rr.Header().Get("Retry-After"); got != "3" {
		t.Fatalf("Retry-After: %q", got)
	}
}

func TestPages_RenderHTML(t *testing.T) {
	h := newServer(t, healthyStore(), 0)

	rr := get(t, h, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type: %q", ct)
	}
	for _, want := range []string{"Deluxe King", "Indoor Pool", "1000 Lakeshore Parkway"} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Fatalf("home missing %q", want)
		}
	}

	rr = get(t, h, "/policies")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "100% smoke-free") {
		t.Fatalf("policies: %d", rr.Code)
	}
}

func TestPages_DegradeToPlaceholder(t *testing.T) {
	store := healthyStore()
	store.errs = map[domain.CollectionID]error{domain.RoomTypes: domain.Transient(domain.RoomTypes, errors.New("down"))}
	h := newServer(t, store, 0)

	for _, path := range []string{"/", "/rooms"} {
		rr := get(t, h, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Temporarily unavailable") {
			t.Fatalf("%s: expected placeholder", path)
		}
	}
}

func TestUnknownRouteRedirectsHome(t *testing.T) {
	h := newServer(t, healthyStore(), 0)

	rr := get(t, h, "/does/not/exist")
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestHealthAndReadiness(t *testing.T) {
	store := healthyStore()
	h := newServer(t, store, 0)

	if rr := get(t, h, "/healthz"); rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
	if rr := get(t, h, "/readyz"); rr.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rr.Code)
	}

	store.pingErr = errors.New("connection refused")
	if rr := get(t, h, "/readyz"); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with store down: %d", rr.Code)
	}
}

func TestRateLimitByIP(t *testing.T) {
	h := newServer(t, healthyStore(), 2)

	for i := 0; i < 2; i++ {
		if rr := get(t, h, "/healthz"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, rr.Code)
		}
	}
	if rr := get(t, h, "/healthz"); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}
