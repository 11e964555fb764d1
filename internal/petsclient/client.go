// Package petsclient es un cliente JSON tipado para /api/v1/pets.
package petsclient

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
)

const (
	DefaultTimeout = 10 * time.Second

	basePath = "/api/v1/pets"
)

type Pet struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Age       int    `json:"age"`
	OwnerName string `json:"owner_name"`
}

// PetInput es el body de POST y PUT.
type PetInput struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Age       int    `json:"age"`
	OwnerName string `json:"owner_name"`
}

// Client envuelve *http.Client con la BaseURL del servicio.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New valida baseURL y arma un Client con timeout razonable.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("petsclient: invalid base url: %w", err)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("petsclient: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("petsclient: status=%d message=%s", e.StatusCode, e.Message)
}

// IsNotFound reporta si err es un 404 del servicio.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

func (c *Client) Create(ctx context.Context, in PetInput) (Pet, string, error) {
	var out Pet
	h, err := c.do(ctx, http.MethodPost, basePath, in, &out)
	if err != nil {
		return Pet{}, "", err
	}
	return out, h.Get("Location"), nil
}

func (c *Client) Get(ctx context.Context, id int64) (Pet, error) {
	var out Pet
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", basePath, id), nil, &out)
	return out, err
}

func (c *Client) List(ctx context.Context) ([]Pet, error) {
	var out []Pet
	_, err := c.do(ctx, http.MethodGet, basePath, nil, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int64, in PetInput) (Pet, error) {
	var out Pet
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", basePath, id), in, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", basePath, id), nil, nil)
	return err
}

func (c *Client) CountSpecies(ctx context.Context) (int, error) {
	var n int
	_, err := c.do(ctx, http.MethodGet, basePath+"/species", nil, &n)
	return n, err
}

// do hace un request JSON.
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna *HTTPError si status no es 2xx.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("petsclient: nil client")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("petsclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("petsclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("petsclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1MB max

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode}
		var apiErr struct {
			Message     string            `json:"message"`
			FieldErrors map[string]string `json:"field_errors"`
		}
		if json.Unmarshal(raw, &apiErr) == nil {
			he.Message = apiErr.Message
			he.Fields = apiErr.FieldErrors
		} else {
			he.Message = strings.TrimSpace(string(raw))
		}
		return resp.Header, he
	}

	if out == nil || len(raw) == 0 {
		return resp.Header, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.Header, fmt.Errorf("petsclient: unmarshal json: %w", err)
	}
	return resp.Header, nil
}
