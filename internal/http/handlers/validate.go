package handlers

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/preston-bernstein/season-weeks-service/internal/validation"
)

const maxSignupBody = 16 << 10

type signupValidation struct {
	Valid  bool                   `json:"valid"`
	Errors validation.FieldErrors `json:"errors,omitempty"`
}

// ValidateSignup checks a signup form without creating an account.
func (h *Handler) ValidateSignup(w nethttp.ResponseWriter, r *nethttp.Request) {
	var form validation.Signup
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxSignupBody))
	if err := dec.Decode(&form); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if errs := form.Validate(); errs != nil {
		writeJSON(w, nethttp.StatusUnprocessableEntity, signupValidation{Valid: false, Errors: errs}, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, signupValidation{Valid: true}, h.logger)
}
