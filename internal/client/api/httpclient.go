package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haidang99/oceanchat/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the chat server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type userRequest struct {
	Action   string       `json:"action"`
	ID       string       `json:"id,omitempty"`
	Password string       `json:"password,omitempty"`
	Token    string       `json:"token,omitempty"`
	User     *models.User `json:"user,omitempty"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type listMessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

type presignResponse struct {
	UploadURL string `json:"uploadUrl"`
	URL       string `json:"url"`
	Error     string `json:"error,omitempty"`
}

// do sends a JSON request and decodes the JSON response into out.
// Transport failures and 5xx answers wrap ErrUnavailable; 4xx answers become
// a *RejectedError carrying the server's message.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		rejected := &RejectedError{StatusCode: resp.StatusCode}
		var e userResponse
		if json.Unmarshal(data, &e) == nil {
			rejected.Message = e.Error
		}
		return rejected
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (c *HTTPClient) userAction(ctx context.Context, req *userRequest) (*models.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, user *models.User) (*models.User, error) {
	return c.userAction(ctx, &userRequest{Action: "register", User: user})
}

func (c *HTTPClient) Login(ctx context.Context, id string, password string) (*models.User, error) {
	return c.userAction(ctx, &userRequest{Action: "login", ID: id, Password: password})
}

func (c *HTTPClient) Verify(ctx context.Context, id string, token string) (*models.User, error) {
	return c.userAction(ctx, &userRequest{Action: "verify", ID: id, Token: token})
}

func (c *HTTPClient) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := c.userAction(ctx, &userRequest{Action: "update", User: user})
	return err
}

func (c *HTTPClient) ListMessages(ctx context.Context) ([]models.Message, error) {
	var resp listMessagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *HTTPClient) PostMessage(ctx context.Context, msg *models.Message) error {
	return c.do(ctx, http.MethodPost, "/api/chat", msg, nil)
}

func (c *HTTPClient) PresignAvatar(ctx context.Context) (string, string, error) {
	var resp presignResponse
	if err := c.do(ctx, http.MethodPost, "/api/avatars", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.UploadURL, resp.URL, nil
}

// UploadAvatar PUTs the image bytes straight to object storage using a
// presigned URL.
func (c *HTTPClient) UploadAvatar(ctx context.Context, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
