package lavalink

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// newTestNode creates a node pointed at the given handler.
func newTestNode(t *testing.T, handler http.Handler) (*Node, *ClientConfig) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config := &ClientConfig{
		UserAgent:   "reverb-test",
		RestTimeout: 2 * time.Second,
	}
	node := NewNode(ConnectionOptions{
		Name:   "test",
		URL:    strings.TrimPrefix(srv.URL, "http://"),
		Auth:   "youshallnotpass",
		Secure: false,
	}, config)
	return node, config
}

func TestResolve(t *testing.T) {
	var gotMethod, gotPath, gotIdentifier, gotAuth, gotAgent string

	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotIdentifier = r.URL.Query().Get("identifier")
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"loadType": "TRACK_LOADED",
			"playlistInfo": {},
			"tracks": [{
				"track": "QAAAjQIAJFJp",
				"info": {
					"identifier": "dQw4w9WgXcQ",
					"isSeekable": true,
					"author": "RickAstleyVEVO",
					"length": 212000,
					"isStream": false,
					"position": 0,
					"title": "Never Gonna Give You Up",
					"uri": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
				}
			}]
		}`))
	}))

	resp, err := node.Rest().Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resp == nil {
		t.Fatal("Resolve() returned nil response")
	}

	if gotMethod != http.MethodGet {
		t.Errorf("method = %q, want %q", gotMethod, http.MethodGet)
	}
	if gotPath != "/loadtracks" {
		t.Errorf("path = %q, want %q", gotPath, "/loadtracks")
	}
	if gotIdentifier != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("identifier = %q", gotIdentifier)
	}
	if gotAuth != "youshallnotpass" {
		t.Errorf("Authorization = %q, want credential verbatim", gotAuth)
	}
	if gotAgent != "reverb-test" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "reverb-test")
	}

	if resp.LoadType != LoadTypeTrackLoaded {
		t.Errorf("LoadType = %q, want %q", resp.LoadType, LoadTypeTrackLoaded)
	}
	if len(resp.Tracks) != 1 {
		t.Fatalf("len(Tracks) = %d, want 1", len(resp.Tracks))
	}
	track := resp.First()
	if track == nil {
		t.Fatal("First() = nil")
	}
	if track.Info.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", track.Info.Title)
	}
	if got, want := track.Info.Duration(), 212*time.Second; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestResolveEncodesIdentifier(t *testing.T) {
	var gotIdentifier, gotRawQuery string

	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentifier = r.URL.Query().Get("identifier")
		gotRawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))

	identifier := "ytsearch:rick & morty theme"
	if _, err := node.Rest().Resolve(context.Background(), identifier); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if gotIdentifier != identifier {
		t.Errorf("identifier round-trip = %q, want %q", gotIdentifier, identifier)
	}
	if !strings.Contains(gotRawQuery, "%26") {
		t.Errorf("raw query %q does not percent-encode the ampersand", gotRawQuery)
	}
	if strings.Contains(gotRawQuery, " ") {
		t.Errorf("raw query %q contains an unencoded space", gotRawQuery)
	}
}

func TestRequestError(t *testing.T) {
	codes := []int{400, 401, 403, 404, 429, 500, 503}

	for _, code := range codes {
		node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", code)
		}))

		_, err := node.Rest().Resolve(context.Background(), "test")
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("status %d: error = %v, want *RequestError", code, err)
		}
		if reqErr.StatusCode != code {
			t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, code)
		}
	}
}

func TestRequestErrorAllOperations(t *testing.T) {
	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	rest := node.Rest()
	ctx := context.Background()

	calls := []struct {
		name string
		call func() error
	}{
		{"Resolve", func() error { _, err := rest.Resolve(ctx, "x"); return err }},
		{"Decode", func() error { _, err := rest.Decode(ctx, "x"); return err }},
		{"RoutePlannerStatus", func() error { _, err := rest.RoutePlannerStatus(ctx); return err }},
		{"UnmarkFailedAddress", func() error { return rest.UnmarkFailedAddress(ctx, "1.2.3.4") }},
	}

	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("error = %v, want *RequestError", err)
			}
			if reqErr.StatusCode != http.StatusUnauthorized {
				t.Errorf("StatusCode = %d, want 401", reqErr.StatusCode)
			}
			if !reqErr.IsUnauthorized() {
				t.Error("IsUnauthorized() = false, want true")
			}
		})
	}
}

func TestEmptyBodyIsEmptyResult(t *testing.T) {
	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp, err := node.Rest().Resolve(context.Background(), "test")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if resp != nil {
		t.Errorf("Resolve() = %+v, want nil", resp)
	}
}

func TestNonJSONBodyIsEmptyResult(t *testing.T) {
	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))

	track, err := node.Rest().Decode(context.Background(), "token")
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if track != nil {
		t.Errorf("Decode() = %+v, want nil", track)
	}
}

func TestTimeout(t *testing.T) {
	node, config := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("identifier") == "slow" {
			<-r.Context().Done()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	config.RestTimeout = 50 * time.Millisecond

	_, err := node.Rest().Resolve(context.Background(), "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}

	// The deadline from the timed-out call must not leak into later calls.
	if _, err := node.Rest().Resolve(context.Background(), "fast"); err != nil {
		t.Errorf("follow-up Resolve() error = %v, want nil", err)
	}
}

func TestSharedConfigReadAtCallTime(t *testing.T) {
	var gotAgent string

	node, config := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))

	// Changing the shared config after construction affects the next call.
	config.UserAgent = "reverb-live-update"

	if _, err := node.Rest().Resolve(context.Background(), "test"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if gotAgent != "reverb-live-update" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "reverb-live-update")
	}
}

func TestHeaderOverrideWins(t *testing.T) {
	var gotAgent string

	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))

	_, err := fetch[struct{}](context.Background(), node.Rest(), "/loadtracks", requestOptions{
		headers: map[string]string{"User-Agent": "custom-agent"},
	})
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	if gotAgent != "custom-agent" {
		t.Errorf("User-Agent = %q, want the per-call override", gotAgent)
	}
}

func TestBodyOnlyRidesOnGetAndHead(t *testing.T) {
	tests := []struct {
		method   string
		wantBody bool
	}{
		{"GET", true},
		{"get", true}, // method is uppercased before the check
		{"HEAD", true},
		{"POST", false},
		{"PUT", false},
		{"DELETE", false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var gotBody []byte
			var gotMethod string

			node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotBody, _ = io.ReadAll(r.Body)
				w.WriteHeader(http.StatusOK)
			}))

			_, err := fetch[struct{}](context.Background(), node.Rest(), "/loadtracks", requestOptions{
				method: tt.method,
				body:   map[string]string{"address": "1.2.3.4"},
			})
			if err != nil {
				t.Fatalf("fetch() error = %v", err)
			}

			if gotMethod != strings.ToUpper(tt.method) {
				t.Errorf("method = %q, want %q", gotMethod, strings.ToUpper(tt.method))
			}
			if tt.wantBody && len(gotBody) == 0 {
				t.Error("server received no body, want JSON body")
			}
			if !tt.wantBody && len(gotBody) != 0 {
				t.Errorf("server received body %q, want none", gotBody)
			}
		})
	}
}

func TestUnmarkFailedAddress(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte

	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := node.Rest().UnmarkFailedAddress(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("UnmarkFailedAddress() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/routeplanner/free/address" {
		t.Errorf("path = %q, want /routeplanner/free/address", gotPath)
	}
	// Pins current behavior: POST is not GET/HEAD, so the payload is dropped
	// before transmission and the node receives an empty body.
	if len(gotBody) != 0 {
		t.Errorf("server received body %q, want none", gotBody)
	}
}

func TestRoutePlannerStatus(t *testing.T) {
	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/routeplanner/status" {
			t.Errorf("path = %q, want /routeplanner/status", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"class": "RotatingIpRoutePlanner",
			"details": {
				"ipBlock": {"type": "Inet6Address", "size": "18446744073709551616"},
				"failingAddresses": [
					{"failingAddress": "2001:db8::1", "failingTimestamp": 1711000000000, "failingTime": "Thu Mar 21 06:26:40 UTC 2024"}
				],
				"rotateIndex": "1",
				"ipIndex": "4",
				"currentAddress": "2001:db8::2"
			}
		}`))
	}))

	status, err := node.Rest().RoutePlannerStatus(context.Background())
	if err != nil {
		t.Fatalf("RoutePlannerStatus() error = %v", err)
	}
	if status == nil {
		t.Fatal("RoutePlannerStatus() = nil")
	}
	if status.Class == nil || *status.Class != "RotatingIpRoutePlanner" {
		t.Errorf("Class = %v, want RotatingIpRoutePlanner", status.Class)
	}
	if status.Details == nil {
		t.Fatal("Details = nil")
	}
	if got := status.Details.IPBlock.Type; got != "Inet6Address" {
		t.Errorf("IPBlock.Type = %q", got)
	}
	if len(status.Details.FailingAddresses) != 1 {
		t.Fatalf("len(FailingAddresses) = %d, want 1", len(status.Details.FailingAddresses))
	}
	addr := status.Details.FailingAddresses[0]
	if addr.Address != "2001:db8::1" {
		t.Errorf("Address = %q", addr.Address)
	}
	if got, want := addr.FailedAt(), time.UnixMilli(1711000000000); !got.Equal(want) {
		t.Errorf("FailedAt() = %v, want %v", got, want)
	}
}

func TestDecode(t *testing.T) {
	var gotTrack string

	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/decodetrack" {
			t.Errorf("path = %q, want /decodetrack", r.URL.Path)
		}
		gotTrack = r.URL.Query().Get("track")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"track": "QAAAjQIAJFJp",
			"info": {"identifier": "abc", "title": "Some Song", "author": "Someone", "length": 1000, "uri": "https://example.com/abc"}
		}`))
	}))

	track, err := node.Rest().Decode(context.Background(), "QAAAjQIAJFJp")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if gotTrack != "QAAAjQIAJFJp" {
		t.Errorf("track param = %q", gotTrack)
	}
	if track == nil {
		t.Fatal("Decode() = nil")
	}
	if track.Info.Title != "Some Song" {
		t.Errorf("Title = %q", track.Info.Title)
	}
}

func TestConcurrentCalls(t *testing.T) {
	node, _ := newTestNode(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"loadType": "NO_MATCHES", "tracks": []}`))
	}))

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := node.Rest().Resolve(context.Background(), "test")
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent Resolve() error = %v", err)
		}
	}
}

func TestBaseURLScheme(t *testing.T) {
	tests := []struct {
		name   string
		secure bool
		want   string
	}{
		{"insecure", false, "http://node.example.com:2333"},
		{"secure", true, "https://node.example.com:2333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewNode(ConnectionOptions{URL: "node.example.com:2333", Secure: tt.secure}, nil)
			if got := node.Rest().baseURL; got != tt.want {
				t.Errorf("baseURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryOrderPreservesValues(t *testing.T) {
	// Repeated values under one key must all survive encoding.
	params := url.Values{}
	params.Add("identifier", "one")
	params.Add("identifier", "two")

	encoded := params.Encode()
	if encoded != "identifier=one&identifier=two" {
		t.Errorf("Encode() = %q", encoded)
	}
}
