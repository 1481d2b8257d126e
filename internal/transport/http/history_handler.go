package http

import (
	"net/http"
	"time"

	"socprobe/internal/domain"
	"socprobe/internal/transport/http/response"
	"socprobe/internal/transport/http/validator"
)

const defaultHistoryLimit = 100

type HistoryHandler struct {
	repo      domain.HistoryRepository
	res       response.ResponseWriter
	validator validator.Validator
}

// NewHistoryHandler accepts a nil repo; every request then answers 404.
func NewHistoryHandler(repo domain.HistoryRepository, res response.ResponseWriter, v validator.Validator) *HistoryHandler {
	return &HistoryHandler{
		repo:      repo,
		res:       res,
		validator: v,
	}
}

func (h *HistoryHandler) Index(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		h.res.Error(w, r, http.StatusNotFound, domain.ErrHistoryDisabled.Error())
		return
	}

	q := r.URL.Query()
	req := domain.HistoryQuery{
		Limit: GetInt(q, "limit", defaultHistoryLimit),
		Since: GetString(q, "since", ""),
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		h.res.WriteValidationError(w, r, errs)
		return
	}

	var since time.Time
	if req.Since != "" {
		since = GetTime(q, "since")
	}

	samples, total, err := h.repo.List(r.Context(), since, req.Limit)
	if err != nil {
		h.res.Error(w, r, http.StatusInternalServerError, "failed to list history")
		return
	}

	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    samples,
		Meta: domain.Meta{
			Limit: req.Limit,
			Total: total,
		},
	})
}
