package handler

import (
	"encoding/json"
	"net/http"

	"github.com/qinzstore/storefront/internal/apperr"
	"github.com/qinzstore/storefront/internal/model"
)

// HandleChatDemo forwards a transcript to the completion API behind the
// per-cookie message quota. The counter is charged only after a
// confirmed successful completion, so a failed upstream call never
// consumes quota.
func (h *Handler) HandleChatDemo(w http.ResponseWriter, r *http.Request) {
	if !h.chat.Configured() {
		writeError(w, apperr.Config("server missing OPENAI_API_KEY"))
		return
	}

	count := h.quota.CountFromRequest(r)
	if count >= h.quota.Max() {
		writeError(w, apperr.QuotaExceeded(h.quota.Max()))
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid JSON"))
		return
	}
	if err := validateTranscript(req.Messages); err != nil {
		writeError(w, err)
		return
	}

	content, err := h.chat.Complete(r.Context(), req.Messages)
	if err != nil {
		writeError(w, err)
		return
	}

	next := count + 1
	if next > h.quota.Max() {
		next = h.quota.Max()
	}
	http.SetCookie(w, h.quota.Cookie(next))
	writeJSON(w, http.StatusOK, model.ChatResponse{
		Content:   content,
		Remaining: h.quota.Max() - next,
	})
}

func validateTranscript(messages []model.ChatTurn) error {
	if len(messages) == 0 {
		return apperr.Validation("invalid body: messages[] required")
	}
	for i, m := range messages {
		switch m.Role {
		case "user", "assistant", "system":
		default:
			return apperr.Validation("message %d: unknown role %q", i, m.Role)
		}
		if m.Content == "" {
			return apperr.Validation("message %d: empty content", i)
		}
	}
	return nil
}
