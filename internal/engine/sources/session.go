package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Session is the transport context for one cascade run: a cookie jar shared
// across strategies (consent cookies preset, later Set-Cookie responses
// accumulate), default browser headers, the optional upstream proxy, and
// request pacing toward the caption host.
type Session struct {
	client      *http.Client // API and timedtext calls
	watchClient *http.Client // watch page; same jar, longer timeout
	browser     *engine.BrowserClient
	limiter     *rate.Limiter
	cookie      string // externally supplied auth cookie blob
}

var consentHosts = []string{
	"https://www.youtube.com/",
	"https://www.googleapis.com/",
}

// NewSession builds a session from the engine configuration.
func NewSession() (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	for _, h := range consentHosts {
		u, err := url.Parse(h)
		if err != nil {
			continue
		}
		jar.SetCookies(u, []*http.Cookie{
			{Name: "SOCS", Value: cookieSOCS},
			{Name: "CONSENT", Value: cookieConsent},
		})
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	}
	if engine.Cfg.ProxyURL != "" {
		proxy, err := url.Parse(engine.Cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	fetchTimeout := engine.Cfg.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 15 * time.Second
	}
	watchTimeout := engine.Cfg.WatchTimeout
	if watchTimeout == 0 {
		watchTimeout = 30 * time.Second
	}

	s := &Session{
		client: &http.Client{
			Timeout:   fetchTimeout,
			Jar:       jar,
			Transport: transport,
		},
		watchClient: &http.Client{
			Timeout:   watchTimeout,
			Jar:       jar,
			Transport: transport,
		},
		browser: engine.Cfg.BrowserClient,
		cookie:  engine.Cfg.CookieBlob,
	}
	if rps := engine.Cfg.RateLimitRPS; rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return s, nil
}

func (s *Session) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

func (s *Session) decorate(req *http.Request) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", chromeUA)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if s.cookie != "" {
		req.Header.Set("Cookie", s.cookie)
	}
}

// Get issues a single GET with the session's headers and pacing. No retry:
// the cascade's own variant enumeration is the only repetition allowed.
func (s *Session) Get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	s.decorate(req)
	return s.client.Do(req)
}

// PostJSON issues a single POST with a JSON body and the given headers.
func (s *Session) PostJSON(ctx context.Context, rawURL string, headers map[string]string, body io.Reader) (*http.Response, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	s.decorate(req)
	return s.client.Do(req)
}

// GetBrowser fetches a URL through the Chrome-TLS-fingerprint client when
// one is configured, falling back to the plain client otherwise. Used for
// the watch page, which is fingerprinted far more aggressively than the
// API endpoints. Returns body bytes and status code.
func (s *Session) GetBrowser(ctx context.Context, rawURL string, maxBytes int64) ([]byte, int, error) {
	if s.browser != nil {
		if err := s.wait(ctx); err != nil {
			return nil, 0, err
		}
		headers := engine.ChromeHeaders()
		if s.cookie != "" {
			headers["cookie"] = s.cookie
		}
		body, _, status, err := s.browser.Do(http.MethodGet, rawURL, headers, nil)
		return body, status, err
	}

	if err := s.wait(ctx); err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	s.decorate(req)
	resp, err := s.watchClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
