package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
)

// ErrUnsuccessful is matched by every APIError.
var ErrUnsuccessful = errors.New("request unsuccessful")

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrUnsuccessful }

// Client talks to the civic reports HTTP API with an anon key.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func New(baseURL, anonKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// NewReport is the body of POST /problems.
type NewReport struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	ImageURL    string `json:"imageUrl,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	ReportedBy  string `json:"reportedBy,omitempty"`
}

type SignUp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type Media struct {
	URL         string `json:"url"`
	Kind        string `json:"kind"`
	ContentType string `json:"contentType"`
}

func (c *Client) ListProblems(ctx context.Context) ([]entity.Report, error) {
	var out struct {
		envelope
		Problems []entity.Report `json:"problems"`
	}
	if err := c.call(ctx, http.MethodGet, "/problems", nil, &out, &out.envelope); err != nil {
		return nil, err
	}
	if out.Problems == nil {
		out.Problems = []entity.Report{}
	}
	return out.Problems, nil
}

func (c *Client) CreateProblem(ctx context.Context, in NewReport) (*entity.Report, error) {
	var out struct {
		envelope
		Problem *entity.Report `json:"problem"`
	}
	if err := c.call(ctx, http.MethodPost, "/problems", in, &out, &out.envelope); err != nil {
		return nil, err
	}
	if out.Problem == nil {
		return nil, errors.New("response has no problem")
	}
	return out.Problem, nil
}

func (c *Client) DeleteProblem(ctx context.Context, id string) error {
	var out envelope
	return c.call(ctx, http.MethodDelete, "/problems/"+url.PathEscape(id), nil, &out, &out)
}

func (c *Client) SignUp(ctx context.Context, in SignUp) (*entity.PublicAccount, error) {
	return c.account(ctx, "/signup", in)
}

func (c *Client) Login(ctx context.Context, email, password string) (*entity.PublicAccount, error) {
	return c.account(ctx, "/login", map[string]string{"email": email, "password": password})
}

func (c *Client) account(ctx context.Context, path string, body any) (*entity.PublicAccount, error) {
	var out struct {
		envelope
		User *entity.PublicAccount `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, path, body, &out, &out.envelope); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errors.New("response has no user")
	}
	return out.User, nil
}

// ReverseGeocode returns a display location for the coordinates.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, bool, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	var out struct {
		envelope
		Location string `json:"location"`
		Resolved bool   `json:"resolved"`
	}
	if err := c.call(ctx, http.MethodGet, "/geocode/reverse?"+q.Encode(), nil, &out, &out.envelope); err != nil {
		return "", false, err
	}
	return out.Location, out.Resolved, nil
}

// UploadMedia sends r as the multipart "file" part of POST /media.
func (c *Client) UploadMedia(ctx context.Context, filename string, r io.Reader) (*Media, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read media: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/media", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		envelope
		Media
	}
	if err := c.send(req, &out, &out.envelope); err != nil {
		return nil, err
	}
	return &out.Media, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any, env *envelope) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out, env)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any, env *envelope) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call api: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Details: env.Details}
	}
	return nil
}
