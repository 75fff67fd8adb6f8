// Package verifier implements port.LinkVerifier by fetching proof pages over
// HTTP and inspecting their anchors.
package verifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"linkswap/internal/config/configs"
	"linkswap/internal/core/domain"
	"linkswap/internal/observability/metrics"
)

// LinkVerifier fetches a proof page and checks it against a placement
// requirement. It is safe for concurrent use.
type LinkVerifier struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	timeout   time.Duration
	limiter   *rate.Limiter
	now       func() time.Time
}

// New builds a LinkVerifier from configuration.
func New(cfg configs.Verifier) *LinkVerifier {
	maxRedirects := cfg.MaxRedirects
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &LinkVerifier{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodyBytes,
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(limit, burst),
		now:       time.Now,
	}
}

// Verify never returns an error: fetch failures, non-2xx answers and parse
// problems all produce an unverified result whose Details say why.
func (v *LinkVerifier) Verify(ctx context.Context, proofURL string, req domain.Requirement) domain.VerificationResult {
	res := v.verify(ctx, proofURL, req)
	res.CheckedAt = v.now().UTC()
	metrics.RecordVerification(res)
	return res
}

func (v *LinkVerifier) verify(ctx context.Context, proofURL string, req domain.Requirement) domain.VerificationResult {
	var res domain.VerificationResult
	page, err := v.fetch(ctx, proofURL)
	if err != nil {
		res.Details = append(res.Details, fmt.Sprintf("Could not fetch proof page: %v", err))
		return res
	}

	if req.LinkType == domain.LinkBrandMention {
		res = checkMention(page.body, req.TargetKeyword)
	} else {
		links, err := extractLinks(page.body, page.base)
		if err != nil {
			res.Details = append(res.Details, fmt.Sprintf("Could not parse proof page: %v", err))
			return res
		}
		res = evaluate(links, req)
	}
	if page.truncated {
		res.Details = append(res.Details,
			fmt.Sprintf("Proof page is larger than %d bytes; only the first %d bytes were inspected", v.maxBody, v.maxBody))
	}
	return res
}

// fetchedPage is a proof page body and the final URL after redirects, which
// is the base for resolving relative hrefs. truncated is set when the body
// was cut at the size cap.
type fetchedPage struct {
	body      []byte
	base      *url.URL
	truncated bool
}

// statusError is a non-2xx answer from the proof host.
type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("proof page returned HTTP %d %s", e.code, http.StatusText(e.code))
}

func (v *LinkVerifier) fetch(ctx context.Context, proofURL string) (*fetchedPage, error) {
	if err := domain.ValidateHTTPURL("proof url", proofURL); err != nil {
		return nil, err
	}
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch throttled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(proofURL), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", v.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := v.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, fmt.Errorf("timed out after %s", v.timeout)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError{code: resp.StatusCode}
	}

	var r io.Reader = resp.Body
	if v.maxBody > 0 {
		r = io.LimitReader(resp.Body, v.maxBody+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	page := &fetchedPage{body: body, base: resp.Request.URL}
	if v.maxBody > 0 && int64(len(body)) > v.maxBody {
		page.body, page.truncated = body[:v.maxBody], true
	}
	return page, nil
}

func checkMention(body []byte, keyword string) domain.VerificationResult {
	kw := strings.TrimSpace(keyword)
	found := kw != "" && strings.Contains(strings.ToLower(string(body)), strings.ToLower(kw))
	res := domain.VerificationResult{
		Verified:        found,
		AnchorTextMatch: found,
		LinkTypeMatch:   true,
	}
	if found {
		res.Details = []string{fmt.Sprintf("Brand mention %q found on page", kw)}
	} else {
		res.Details = []string{fmt.Sprintf("Brand mention %q not found on page", kw)}
	}
	return res
}
