// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"bufio"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultBaseURL = "https://api.pwnedpasswords.com"
	// This user agent string is identifying enough, I think...
	userAgent = "pwd-analyzer/1.0"
)

// Checker is the breach-lookup capability. Implemented by Client and by the
// optional caching wrapper.
type Checker interface {
	Check(ctx context.Context, password string) (*Result, error)
}

// Client queries the Pwned Passwords range API under k-anonymity: only the
// first 5 hex characters of the password's SHA-1 ever leave the process.
// The zero value is not usable; construct with NewClient. A Client holds no
// per-check mutable state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	printer *message.Printer
}

// ClientOption adjusts a Client at construction time.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API base. Used by tests to
// target a local double.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithBackoff replaces the wait strategy between attempts. Used by tests to
// avoid real sleeping.
func WithBackoff(b retryablehttp.Backoff) ClientOption {
	return func(c *Client) {
		c.http.Backoff = b
	}
}

// NewClient builds a breach checker with a per-attempt timeout and a retry
// ceiling. Rate-limited (429) and failed attempts back off with a wait that
// grows with the attempt number.
func NewClient(timeout time.Duration, maxRetries int, opts ...ClientOption) *Client {
	client := retryablehttp.NewClient()
	// The default logger is too noisy for an interactive tool.
	client.Logger = nil
	client.RetryMax = maxRetries
	client.RetryWaitMin = 1 * time.Second
	client.RetryWaitMax = 30 * time.Second

	// 200 and 404 are both terminal answers; everything else, including 429
	// and transport errors, is retried until the ceiling.
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return true, nil
	}

	client.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     10 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}

	c := &Client{
		baseURL: defaultBaseURL,
		http:    client,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check looks up the password in the breach corpus. Network exhaustion and
// cancellation yield an Unavailable result, not an error; the password
// itself never leaves this function.
func (c *Client) Check(ctx context.Context, password string) (*Result, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := hash[:5], hash[5:]

	body, ok := c.queryRange(ctx, prefix)
	if !ok {
		return c.unavailableResult(), nil
	}

	count := matchSuffix(body, suffix)
	return c.resultFor(count), nil
}

// queryRange fetches the suffix bucket for a 5-character hash prefix. The
// second return is false when the lookup could not be completed.
func (c *Client) queryRange(ctx context.Context, prefix string) (string, bool) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/range/%s", c.baseURL, prefix),
		nil,
	)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)
	// The server pads responses to a minimum line count, hiding the real
	// bucket size from anyone timing or sizing the transfer.
	req.Header.Set("Add-Padding", "true")

	res, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Msgf("breach range lookup gave up for prefix %s", prefix)
		return "", false
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing breach lookup response body")
		}
	}(res.Body)

	switch res.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(res.Body)
		if err != nil {
			log.Debug().Err(err).Msg("error reading breach lookup response body")
			return "", false
		}
		return string(data), true
	case http.StatusNotFound:
		// Empty bucket, same as no matching suffix.
		return "", true
	}

	return "", false
}

// matchSuffix scans the SUFFIX:COUNT lines of a range response for a
// case-insensitive suffix match. Malformed lines are skipped; a bucket with
// no match means a count of zero.
func matchSuffix(body string, suffix string) uint64 {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		candidate, countText, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(candidate), suffix) {
			continue
		}
		count, err := strconv.ParseUint(strings.TrimSpace(countText), 10, 64)
		if err != nil {
			continue
		}
		return count
	}
	return 0
}

func (c *Client) resultFor(count uint64) *Result {
	res := &Result{
		Compromised:    count > 0,
		Count:          count,
		Risk:           riskForCount(count),
		Recommendation: recommendationFor(count),
	}
	if count > 0 {
		res.Message = c.printer.Sprintf("Password found in %d data breaches", count)
	} else {
		res.Message = "Password not found in known data breaches"
	}
	return res
}

func (c *Client) unavailableResult() *Result {
	return &Result{
		Unavailable:    true,
		Message:        "Breach status unknown - the lookup service could not be reached",
		Recommendation: "Try again later; do not assume this password is safe.",
	}
}
