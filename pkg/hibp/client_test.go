package hibp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// SHA-1("password") = 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8
const (
	passwordPrefix = "5BAA6"
	passwordSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"
)

func noBackoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return 0
}

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(5*time.Second, maxRetries, WithBaseURL(baseURL), WithBackoff(noBackoff))
}

func TestCheckSendsOnlyHashPrefix(t *testing.T) {
	var gotPath, gotAgent, gotPadding string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		gotPadding = r.Header.Get("Add-Padding")
		fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n%s:3861493\r\n", passwordSuffix)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	res, err := client.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check should not fail: %s", err)
	}

	if gotPath != "/range/"+passwordPrefix {
		t.Errorf("Request path: %s, want: /range/%s", gotPath, passwordPrefix)
	}
	if strings.Contains(gotPath, passwordSuffix) {
		t.Errorf("Hash suffix must never leave the process, path was %s", gotPath)
	}
	if gotAgent != userAgent {
		t.Errorf("User-Agent: %s, want: %s", gotAgent, userAgent)
	}
	if gotPadding != "true" {
		t.Errorf("Add-Padding: %s, want: true", gotPadding)
	}

	if !res.Compromised || res.Count != 3861493 {
		t.Errorf("Should be compromised 3861493 times, have %+v", res)
	}
	if res.Risk != RiskVeryHigh {
		t.Errorf("Risk: %s, want: %s", res.Risk, RiskVeryHigh)
	}
	if !strings.Contains(res.Message, "3,861,493") {
		t.Errorf("Message should carry a grouped count, have %q", res.Message)
	}
}

func TestCheckNoMatchingSuffix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\nFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF:12\r\n")
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	res, err := client.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check should not fail: %s", err)
	}

	if res.Compromised || res.Count != 0 {
		t.Errorf("Should not be compromised, have %+v", res)
	}
	if res.Risk != RiskSafe {
		t.Errorf("Risk: %s, want: %s", res.Risk, RiskSafe)
	}
	if res.Unavailable {
		t.Errorf("A clean bucket is a definitive answer, not unavailable")
	}
}

func TestCheckEmptyBucket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	res, err := client.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check should not fail: %s", err)
	}

	if res.Compromised || res.Count != 0 || res.Unavailable {
		t.Errorf("404 should mean zero matches, have %+v", res)
	}
}

func TestCheckRetriesRateLimit(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprintf(w, "%s:42\r\n", passwordSuffix)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	res, err := client.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check should not fail: %s", err)
	}

	if attempts.Load() != 2 {
		t.Errorf("Should have retried once, attempts: %d", attempts.Load())
	}
	if !res.Compromised || res.Count != 42 {
		t.Errorf("Retry should recover the answer, have %+v", res)
	}
}

func TestCheckExhaustionIsUnavailable(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	res, err := client.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Exhaustion should not surface as an error: %s", err)
	}

	if attempts.Load() != 3 {
		t.Errorf("Should have made 3 attempts, have %d", attempts.Load())
	}
	if !res.Unavailable {
		t.Errorf("Should be unavailable, have %+v", res)
	}
	if res.Compromised {
		t.Errorf("Unavailable must not claim the password is compromised")
	}
}

func TestCheckCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s:1\r\n", passwordSuffix)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL, 3)
	res, err := client.Check(ctx, "password")
	if err != nil {
		t.Fatalf("Cancellation should not surface as an error: %s", err)
	}
	if !res.Unavailable {
		t.Errorf("Cancelled lookup should be unavailable, have %+v", res)
	}
}

func TestCheckEmptyPassword(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0", 0)
	if _, err := client.Check(context.Background(), ""); err != ErrEmptyPassword {
		t.Errorf("Check should fail with ErrEmptyPassword, have %v", err)
	}
}

func TestMatchSuffix(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		suffix string
		want   uint64
	}{
		{"exact match", "AAAA:1\r\nBBBB:7\r\n", "BBBB", 7},
		{"case-insensitive", "bbbb:7\r\n", "BBBB", 7},
		{"padding zero counts", "AAAA:0\r\nBBBB:7\r\n", "AAAA", 0},
		{"no colon skipped", "AAAA\r\nAAAA:5\r\n", "AAAA", 5},
		{"bad count skipped", "AAAA:x\r\nAAAA:5\r\n", "AAAA", 5},
		{"surrounding whitespace", "  AAAA : 9 \r\n", "AAAA", 9},
		{"absent", "AAAA:1\r\n", "CCCC", 0},
		{"empty body", "", "AAAA", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchSuffix(tc.body, tc.suffix); got != tc.want {
				t.Errorf("matchSuffix: %d, want: %d", got, tc.want)
			}
		})
	}
}
