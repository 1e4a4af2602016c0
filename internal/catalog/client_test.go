package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewClient(server.URL, WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestExtractID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"3", "3"},
		{"https://rickandmortyapi.com/api/location/3", "3"},
		{"https://rickandmortyapi.com/api/episode/28/", "28"},
		{"  42  ", "42"},
		{"https://rickandmortyapi.com/api/location", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractID(tc.in); got != tc.want {
			t.Errorf("ExtractID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClient_ListCharactersEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CharacterPage{
			Info:    PageInfo{Count: 826, Pages: 42},
			Results: []Character{{ID: 1, Name: "Rick Sanchez"}},
		})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListCharacters(ctx, 0, " rick ")
	if err != nil {
		t.Fatalf("ListCharacters returned error: %v", err)
	}
	if gotPath != "/character" {
		t.Fatalf("path = %q, want /character", gotPath)
	}
	if gotQuery.Get("page") != "1" || gotQuery.Get("name") != "rick" {
		t.Fatalf("query = %v, want page=1 name=rick", gotQuery)
	}
	if page.Info.Pages != 42 || len(page.Results) != 1 || page.Results[0].ID != 1 {
		t.Fatalf("page = %#v, want pages=42 one result id=1", page)
	}

	if _, err := c.ListCharacters(ctx, 3, ""); err != nil {
		t.Fatalf("ListCharacters returned error: %v", err)
	}
	if gotQuery.Get("page") != "3" {
		t.Fatalf("page param = %q, want 3", gotQuery.Get("page"))
	}
	if _, ok := gotQuery["name"]; ok {
		t.Fatalf("name param present for empty search: %v", gotQuery)
	}
}

func TestClient_GetRecordAcceptsURLOrID(t *testing.T) {
	t.Parallel()

	var gotPaths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Location{ID: 3, Name: "Citadel of Ricks"})
	}))

	ctx := context.Background()
	if _, err := c.GetLocation(ctx, "3"); err != nil {
		t.Fatalf("GetLocation(id) returned error: %v", err)
	}
	if _, err := c.GetLocation(ctx, "https://rickandmortyapi.com/api/location/3"); err != nil {
		t.Fatalf("GetLocation(url) returned error: %v", err)
	}
	if len(gotPaths) != 2 || gotPaths[0] != gotPaths[1] {
		t.Fatalf("paths = %v, want both requests to hit the same target", gotPaths)
	}
	if gotPaths[0] != "/location/3" {
		t.Fatalf("path = %q, want /location/3", gotPaths[0])
	}
}

func TestClient_GetRecordRejectsUnparseableTarget(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.GetCharacter(context.Background(), "not-an-id")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetCharacter error = %v, want *NotFoundError", err)
	}
}

func TestClient_BatchNormalizesSingleton(t *testing.T) {
	t.Parallel()

	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, ",") {
			_ = json.NewEncoder(w).Encode([]Episode{{ID: 1}, {ID: 2}})
			return
		}
		// singleton id list: upstream returns a bare object
		_ = json.NewEncoder(w).Encode(Episode{ID: 28, Name: "The Ricklantis Mixup"})
	}))

	ctx := context.Background()
	eps, err := c.GetEpisodesBatch(ctx, []string{"28"})
	if err != nil {
		t.Fatalf("GetEpisodesBatch returned error: %v", err)
	}
	if len(eps) != 1 || eps[0].ID != 28 {
		t.Fatalf("singleton batch = %#v, want one episode id=28", eps)
	}
	if gotPath != "/episode/28" {
		t.Fatalf("path = %q, want /episode/28", gotPath)
	}

	eps, err = c.GetEpisodesBatch(ctx, []string{"1", "https://rickandmortyapi.com/api/episode/2"})
	if err != nil {
		t.Fatalf("GetEpisodesBatch returned error: %v", err)
	}
	if len(eps) != 2 {
		t.Fatalf("batch len = %d, want 2", len(eps))
	}
	if gotPath != "/episode/1,2" {
		t.Fatalf("path = %q, want /episode/1,2", gotPath)
	}
}

func TestClient_BatchEmptyIDsIsNoop(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	eps, err := c.GetEpisodesBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetEpisodesBatch(nil) returned error: %v", err)
	}
	if len(eps) != 0 {
		t.Fatalf("batch = %#v, want empty", eps)
	}
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/character/404":
			http.NotFound(w, r)
		case "/character/500":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		}
	}))

	ctx := context.Background()

	_, err := c.GetCharacter(ctx, "404")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("404 error = %v, want *NotFoundError", err)
	}

	_, err = c.GetCharacter(ctx, "500")
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.StatusCode != 500 {
		t.Fatalf("500 error = %v, want *NetworkError status 500", err)
	}

	_, err = c.GetCharacter(ctx, "1")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("decode error = %v, want decode response error", err)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", WithRateLimit(0), WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListCharacters(context.Background(), 1, "")
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("transport error = %v, want *NetworkError", err)
	}
}
