package category

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=source.go -destination=source_mock.go -package=category
type Source interface {
	Load(ctx context.Context, variant Variant) (*Table, error)
}

// document is the on-disk layout of a chart of accounts.
type document struct {
	Variant    Variant `yaml:"variant"`
	Name       string  `yaml:"name"`
	Categories []Info  `yaml:"categories"`
}

// Decode reads a chart of accounts document. The variant recorded in the
// document must match the requested one when both are set.
func Decode(r io.Reader, variant Variant) (*Table, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode chart %s: %w", variant, err)
	}

	if doc.Variant != "" && variant != "" && doc.Variant != variant {
		return nil, fmt.Errorf("decode chart %s: document describes %s", variant, doc.Variant)
	}

	if variant == "" {
		variant = doc.Variant
	}

	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("decode chart %s: no categories", variant)
	}

	return NewTable(variant, doc.Name, doc.Categories)
}

//go:embed data/*.yaml
var embedded embed.FS

// EmbeddedSource serves the charts compiled into the binary.
type EmbeddedSource struct{}

func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Load(_ context.Context, variant Variant) (*Table, error) {
	if !variant.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	f, err := embedded.Open("data/" + string(variant) + ".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
		}

		return nil, fmt.Errorf("open chart %s: %w", variant, err)
	}
	defer f.Close()

	return Decode(f, variant)
}

// HTTPSource fetches charts from {baseURL}/{variant}.yaml, retrying
// transient failures with exponential backoff.
type HTTPSource struct {
	baseURL    string
	client     *http.Client
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithBackOff replaces the exponential backoff policy between attempts.
func WithBackOff(f func() backoff.BackOff) HTTPOption {
	return func(s *HTTPSource) { s.newBackOff = f }
}

func NewHTTPSource(baseURL string, maxRetries uint64, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *HTTPSource) Load(ctx context.Context, variant Variant) (*Table, error) {
	if !variant.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	url := s.baseURL + "/" + string(variant) + ".yaml"

	var table *Table

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", url, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrUnknownVariant, variant))
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, url)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, url))
		}

		t, err := Decode(resp.Body, variant)
		if err != nil {
			return backoff.Permanent(err)
		}

		table = t

		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}

	return table, nil
}

// ChainSource tries each source in order and returns the first table found.
type ChainSource []Source

func (c ChainSource) Load(ctx context.Context, variant Variant) (*Table, error) {
	var errs []error

	for _, src := range c {
		t, err := src.Load(ctx, variant)
		if err == nil {
			return t, nil
		}

		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: %s (no sources)", ErrUnknownVariant, variant)
	}

	return nil, errors.Join(errs...)
}
