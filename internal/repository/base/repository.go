package base

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Freeeeeet/club_admin/internal/session"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ErrNotFound ресурс не найден на сервере
var ErrNotFound = errors.New("resource not found")

// APIError ответ Fields API с кодом не 2xx
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is позволяет errors.Is(err, ErrNotFound) для 404
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Options параметры HTTP клиента
type Options struct {
	BaseURL    string
	KeyHeader  string
	Timeout    time.Duration
	RateLimit  float64 // запросов в секунду, 0 - без ограничения
	Burst      int
	HTTPClient *http.Client
}

// Repository базовый репозиторий поверх Fields API
type Repository struct {
	client    *http.Client
	baseURL   string
	keyHeader string
	session   *session.Session
	limiter   *rate.Limiter
}

// NewRepository создаёт новый базовый репозиторий
func NewRepository(sess *session.Session, opts Options) *Repository {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	keyHeader := opts.KeyHeader
	if keyHeader == "" {
		keyHeader = "X-API-Key"
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Repository{
		client:    client,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		keyHeader: keyHeader,
		session:   sess,
		limiter:   limiter,
	}
}

// Do выполняет запрос: body кодируется в JSON, ответ декодируется в out (если не nil)
func (r *Repository) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	creds, err := r.session.Credentials()
	if err != nil {
		return err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	target := r.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(r.keyHeader, creds.APIKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    errorMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsNotFound проверяет является ли ошибка "ресурс не найден"
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
