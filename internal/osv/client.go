// Package osv is the advisory-source collaborator: a thin client for the
// OSV.dev query API plus the normalization of raw OSV documents into the
// records the core consumes. The core itself never performs network calls;
// this package is the only asynchronous boundary in the system.
package osv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/osv-scanner/pkg/models"

	"github.com/depscout/depscout-backend/model"
	"github.com/depscout/depscout-backend/util"
)

// Source is the advisory source name reported in response metadata.
const Source = "osv.dev"

var logger = util.InitLogger()

// Sentinel errors for advisory-query failures; ErrorCode maps them onto
// envelope error codes.
var (
	ErrRateLimited = errors.New("osv: rate limited")
	ErrUpstream    = errors.New("osv: upstream failure")
)

// Client queries the OSV.dev vulnerability database.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client from the environment: OSV_URL for the API base
// and OSV_TIMEOUT_SECONDS for the per-request deadline.
func NewClient() *Client {
	timeoutSecs, err := strconv.Atoi(util.GetEnvDefault("OSV_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSecs <= 0 {
		timeoutSecs = 30
	}
	return &Client{
		baseURL:    util.GetEnvDefault("OSV_URL", "https://api.osv.dev"),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second},
	}
}

type queryRequest struct {
	Package queryPackage `json:"package"`
	Version string       `json:"version,omitempty"`
}

type queryPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type queryResponse struct {
	Vulns []models.Vulnerability `json:"vulns"`
}

// Query fetches the raw OSV vulnerability documents for one dependency.
// Transient upstream failures are retried with exponential backoff; a 429
// stops retrying immediately so the caller can surface the rate limit.
func (c *Client) Query(ctx context.Context, dep model.Dependency) ([]models.Vulnerability, error) {
	request := queryRequest{
		Package: queryPackage{Name: dep.Name, Ecosystem: dep.Ecosystem},
	}
	if dep.Version != "" && dep.Version != model.WildcardVersion {
		request.Version = dep.Version
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	var vulns []models.Vulnerability
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second

	err = backoff.Retry(func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/query", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			logger.Sugar().Warnf("OSV query for %s failed, retrying: %v", dep.Name, err)
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return backoff.Permanent(ErrRateLimited)
		case resp.StatusCode >= http.StatusInternalServerError:
			logger.Sugar().Warnf("OSV query for %s returned %d, retrying", dep.Name, resp.StatusCode)
			return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
		}

		var decoded queryResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: decoding response: %v", ErrUpstream, err))
		}
		vulns = decoded.Vulns
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx))
	if err != nil {
		return nil, err
	}
	return vulns, nil
}

// Lookup runs the advisory query for every dependency and returns the
// normalized, version-filtered records paired with their dependency.
func (c *Client) Lookup(ctx context.Context, deps []model.Dependency) ([]model.VulnResult, error) {
	results := make([]model.VulnResult, 0, len(deps))
	for _, dep := range deps {
		vulns, err := c.Query(ctx, dep)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", dep.Name, err)
		}
		results = append(results, model.VulnResult{
			Dependency:      dep,
			Vulnerabilities: Normalize(vulns, dep),
		})
	}
	return results, nil
}

// ErrorCode maps an advisory-query failure onto the envelope error code
// the caller should report.
func ErrorCode(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, ErrRateLimited):
		return model.CodeRateLimited
	case errors.Is(err, context.DeadlineExceeded):
		return model.CodeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return model.CodeTimeout
	}
	return model.CodeUpstreamError
}
