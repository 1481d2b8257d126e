package http

import (
	"errors"
	"net/http"

	"socprobe/internal/domain"
	"socprobe/internal/transport/http/request"
	"socprobe/internal/transport/http/response"
	"socprobe/internal/transport/http/validator"
)

type TokenIssuer interface {
	IssueToken(apiKey string) (*domain.TokenResponse, error)
}

type AuthHandler struct {
	svc       TokenIssuer
	decoder   request.RequestDecoder
	res       response.ResponseWriter
	validator validator.Validator
}

func NewAuthHandler(svc TokenIssuer, decoder request.RequestDecoder, res response.ResponseWriter, v validator.Validator) *AuthHandler {
	return &AuthHandler{
		svc:       svc,
		decoder:   decoder,
		res:       res,
		validator: v,
	}
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.res.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if errs := h.validator.Validate(&req); len(errs) > 0 {
		h.res.WriteValidationError(w, r, errs)
		return
	}

	token, err := h.svc.IssueToken(req.APIKey)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.res.Error(w, r, http.StatusUnauthorized, "invalid api key")
			return
		}

		h.res.Error(w, r, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    token,
	})
}
