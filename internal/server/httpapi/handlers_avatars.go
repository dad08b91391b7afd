package httpapi

import (
	"net/http"
)

type presignAvatarResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	URL       string `json:"url"`
	Error     string `json:"error,omitempty"`
}

// HandlePresignAvatar hands the client a one-shot PUT URL for the avatar
// object and the public URL to store on the profile afterwards.
func (h *Handlers) HandlePresignAvatar(w http.ResponseWriter, r *http.Request) {
	key, uploadURL, publicURL, err := h.avatars.GetPresignedPutUrl(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "presigning avatar upload failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, presignAvatarResponse{Error: "server error"})
		return
	}

	writeJSON(w, http.StatusOK, presignAvatarResponse{Key: key, UploadURL: uploadURL, URL: publicURL})
}
