package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/logging"
	"github.com/haidang99/oceanchat/internal/server/messages"
	"github.com/haidang99/oceanchat/internal/server/users"
)

type fakeUserService struct {
	registerErr error
	loginErr    error
	verifyErr   error
	updateErr   error
	updated     *users.User
}

func (f *fakeUserService) Register(_ context.Context, c *users.User) (*users.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	out := *c
	out.Password = ""
	out.SessionToken = "tok-register"
	return &out, nil
}

func (f *fakeUserService) Login(_ context.Context, id, _ string) (*users.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &users.User{ID: id, Username: "dory", SessionToken: "tok-login", Credits: 50}, nil
}

func (f *fakeUserService) Verify(_ context.Context, id, token string) (*users.User, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &users.User{ID: id, Username: "dory", SessionToken: token}, nil
}

func (f *fakeUserService) Update(_ context.Context, u *users.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = u
	return nil
}

type fakeMessageService struct {
	listErr   error
	appendErr error
	stored    []messages.Message
}

func (f *fakeMessageService) List(_ context.Context) ([]messages.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stored, nil
}

func (f *fakeMessageService) Append(_ context.Context, m *messages.Message) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.stored = append(f.stored, *m)
	return nil
}

type fakeAvatarService struct {
	err error
}

func (f *fakeAvatarService) GetPresignedPutUrl(_ context.Context) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "avatars/k", "http://s3/put", "http://s3/avatars/k", nil
}

func newTestRouter(u *fakeUserService, m *fakeMessageService, a *fakeAvatarService) http.Handler {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewRouter(NewHandlers(u, m, a, logger))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUserAction_RegisterSuccess(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodPost, "/api/users", userActionRequest{
		Action: "register",
		User:   &userPayload{ID: "nemo1", Username: "nemo", Password: "abc123", Credits: 50},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp userActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "nemo1", resp.User.ID)
	assert.Empty(t, resp.User.Password)
	assert.Equal(t, "tok-register", resp.User.Token)
}

func TestUserAction_RegisterErrorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"short id", common.ErrIDTooShort, http.StatusBadRequest},
		{"duplicate id", common.ErrDuplicateID, http.StatusBadRequest},
		{"internal", common.ErrorInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeUserService{registerErr: tt.err}, &fakeMessageService{}, &fakeAvatarService{})

			rec := doJSON(t, router, http.MethodPost, "/api/users", userActionRequest{
				Action: "register",
				User:   &userPayload{ID: "nemo1"},
			})

			assert.Equal(t, tt.status, rec.Code)

			var resp userActionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestUserAction_LoginErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown account", common.ErrorNotFound, http.StatusNotFound},
		{"wrong password", common.ErrorUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeUserService{loginErr: tt.err}, &fakeMessageService{}, &fakeAvatarService{})

			rec := doJSON(t, router, http.MethodPost, "/api/users", userActionRequest{
				Action: "login", ID: "nemo1", Password: "nope",
			})

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestUserAction_VerifyExpired(t *testing.T) {
	router := newTestRouter(&fakeUserService{verifyErr: common.ErrSessionExpired}, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodPost, "/api/users", userActionRequest{
		Action: "verify", ID: "nemo1", Token: "stale",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserAction_UpdatePassesTokenThrough(t *testing.T) {
	svc := &fakeUserService{}
	router := newTestRouter(svc, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodPost, "/api/users", userActionRequest{
		Action: "update",
		User:   &userPayload{ID: "nemo1", Username: "nemo", Credits: 51, Token: "tok-login"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated)
	assert.Equal(t, "tok-login", svc.updated.SessionToken)
	assert.Equal(t, 51, svc.updated.Credits)
}

func TestUserAction_UnknownAction(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodPost, "/api/users", userActionRequest{Action: "destroy"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_PostThenList(t *testing.T) {
	msgs := &fakeMessageService{}
	router := newTestRouter(&fakeUserService{}, msgs, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", messagePayload{
		ID:        "1700000000000-12345",
		UserID:    "nemo1",
		Username:  "nemo",
		Text:      "hello reef",
		Timestamp: 1700000000000,
		ReplyTo:   &replyPayload{ID: "169", Username: "dory", Text: "hi"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/chat", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listMessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hello reef", resp.Messages[0].Text)
	require.NotNil(t, resp.Messages[0].ReplyTo)
	assert.Equal(t, "dory", resp.Messages[0].ReplyTo.Username)
}

func TestChat_ListEmptyReturnsArray(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodGet, "/api/chat", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"messages":[]}`, rec.Body.String())
}

func TestAvatars_Presign(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodPost, "/api/avatars", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp presignAvatarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "http://s3/put", resp.UploadURL)
	assert.Equal(t, "http://s3/avatars/k", resp.URL)
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, &fakeMessageService{}, &fakeAvatarService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeUserService{}, &fakeMessageService{}, &fakeAvatarService{})

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
