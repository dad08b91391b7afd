package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/server/users"
)

// userActionRequest is the account endpoint envelope. A single POST route
// dispatches on the action field; the other fields are filled depending on
// the action.
type userActionRequest struct {
	Action   string       `json:"action"`
	ID       string       `json:"id,omitempty"`
	Password string       `json:"password,omitempty"`
	Token    string       `json:"token,omitempty"`
	User     *userPayload `json:"user,omitempty"`
}

type userActionResponse struct {
	Success bool         `json:"success"`
	User    *userPayload `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeUserError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, userActionResponse{Success: false, Error: msg})
}

func (h *Handlers) HandleUserAction(w http.ResponseWriter, r *http.Request) {
	var req userActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "register":
		h.handleRegister(w, r, &req)
	case "login":
		h.handleLogin(w, r, &req)
	case "verify":
		h.handleVerify(w, r, &req)
	case "update":
		h.handleUpdate(w, r, &req)
	default:
		writeUserError(w, http.StatusBadRequest, "unknown action")
	}
}

func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request, req *userActionRequest) {
	if req.User == nil {
		writeUserError(w, http.StatusBadRequest, "missing user")
		return
	}

	candidate := &users.User{
		ID:        req.User.ID,
		Username:  req.User.Username,
		Password:  req.User.Password,
		Avatar:    req.User.Avatar,
		Color:     req.User.Color,
		NameColor: req.User.NameColor,
		Credits:   req.User.Credits,
	}

	created, err := h.users.Register(r.Context(), candidate)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrIDTooShort):
			writeUserError(w, http.StatusBadRequest, "id must be at least 5 characters")
		case errors.Is(err, common.ErrDuplicateID):
			writeUserError(w, http.StatusBadRequest, "id already taken")
		default:
			h.logger.Error(r.Context(), "register failed", "error", err.Error())
			writeUserError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, userActionResponse{Success: true, User: toUserPayload(created)})
}

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request, req *userActionRequest) {
	user, err := h.users.Login(r.Context(), req.ID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeUserError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, common.ErrorUnauthorized):
			writeUserError(w, http.StatusUnauthorized, "wrong password")
		default:
			h.logger.Error(r.Context(), "login failed", "error", err.Error())
			writeUserError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, userActionResponse{Success: true, User: toUserPayload(user)})
}

func (h *Handlers) handleVerify(w http.ResponseWriter, r *http.Request, req *userActionRequest) {
	user, err := h.users.Verify(r.Context(), req.ID, req.Token)
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			writeUserError(w, http.StatusUnauthorized, "session expired")
			return
		}
		h.logger.Error(r.Context(), "verify failed", "error", err.Error())
		writeUserError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, userActionResponse{Success: true, User: toUserPayload(user)})
}

func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request, req *userActionRequest) {
	if req.User == nil {
		writeUserError(w, http.StatusBadRequest, "missing user")
		return
	}

	incoming := &users.User{
		ID:           req.User.ID,
		Username:     req.User.Username,
		Avatar:       req.User.Avatar,
		NameColor:    req.User.NameColor,
		Credits:      req.User.Credits,
		SessionToken: req.User.Token,
	}

	if err := h.users.Update(r.Context(), incoming); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeUserError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, common.ErrorUnauthorized):
			writeUserError(w, http.StatusUnauthorized, "invalid session")
		default:
			h.logger.Error(r.Context(), "update failed", "error", err.Error())
			writeUserError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, userActionResponse{Success: true})
}
