package httpapi

import (
	"encoding/json"
	"net/http"
)

type listMessagesResponse struct {
	Messages []*messagePayload `json:"messages"`
}

type postMessageResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (h *Handlers) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "listing messages failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, postMessageResponse{Error: "server error"})
		return
	}

	resp := listMessagesResponse{Messages: make([]*messagePayload, 0, len(msgs))}
	for i := range msgs {
		resp.Messages = append(resp.Messages, toMessagePayload(&msgs[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	var p messagePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, postMessageResponse{Error: "invalid request body"})
		return
	}

	if err := h.messages.Append(r.Context(), fromMessagePayload(&p)); err != nil {
		h.logger.Error(r.Context(), "appending message failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, postMessageResponse{Error: "server error"})
		return
	}

	writeJSON(w, http.StatusOK, postMessageResponse{Success: true})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
