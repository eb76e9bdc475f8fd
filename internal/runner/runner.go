package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/promiseofcake/artifactsmmo-go-client/client"
	"github.com/sagikazarmark/slog-shim"
)

const DefaultURL = "https://api.artifactsmmo.com"

type Config struct {
	Token   string
	URL     string
	Timeout time.Duration
	// HTTPClient replaces the pooled cleanhttp client when set.
	HTTPClient client.HttpRequestDoer
	Logger     *slog.Logger
}

// Runner is the shared connection to the API. Every request it sends carries the
// bearer token and JSON headers, so callers only supply the method, target and body.
type Runner struct {
	Client *client.Client
	logger *slog.Logger
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}

	doer := cfg.HTTPClient
	if doer == nil {
		hc := cleanhttp.DefaultPooledClient()
		hc.Timeout = cfg.Timeout
		doer = hc
	}

	c, err := client.NewClient(cfg.URL,
		client.WithHTTPClient(doer),
		client.WithRequestEditorFn(client.NewBearerAuthorizationRequestFunc(cfg.Token)),
		client.WithRequestEditorFn(jsonHeaders),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		Client: c,
		logger: logger.With("source", "runner"),
	}, nil
}

func jsonHeaders(_ context.Context, req *http.Request) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return nil
}

// CharacterURL returns /my/<character> for state queries, or
// /my/<character>/action/<action> when an action is named.
func (r *Runner) CharacterURL(character, action string) string {
	u := strings.TrimSuffix(r.Client.Server, "/") + "/my/" + url.PathEscape(character)
	if action != "" {
		u += "/action/" + strings.Trim(action, "/")
	}
	return u
}

// Send performs one round trip and returns the body of a 2xx response. A nil body
// sends the request without one.
func (r *Runner) Send(ctx context.Context, method, character, action string, body []byte) ([]byte, error) {
	target := r.CharacterURL(character, action)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	for _, edit := range r.Client.RequestEditors {
		if err := edit(ctx, req); err != nil {
			return nil, &TransportError{Method: method, URL: target, Err: err}
		}
	}

	r.logger.Debug("sending request", "method", method, "url", target)
	resp, err := r.Client.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		r.logger.Debug("got non 2xx status", "method", method, "url", target, "status", resp.StatusCode)
		return nil, NewStatusError(resp.StatusCode, data)
	}

	return data, nil
}
