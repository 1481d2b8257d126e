package http

import (
	"errors"
	"net/http"

	"socprobe/internal/domain"
	"socprobe/internal/storage/snapshot"
	"socprobe/internal/telemetry"
	"socprobe/internal/transport/http/response"
)

type TelemetryHandler struct {
	svc   *telemetry.Service
	store *snapshot.SnapshotStore
	res   response.ResponseWriter
}

func NewTelemetryHandler(svc *telemetry.Service, store *snapshot.SnapshotStore, res response.ResponseWriter) *TelemetryHandler {
	return &TelemetryHandler{
		svc:   svc,
		store: store,
		res:   res,
	}
}

// Snapshot serves the sampler's latest snapshot, or a live one when the
// sampler has not produced anything yet.
func (h *TelemetryHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot

	latest, ok := h.latest()
	if ok && r.URL.Query().Get("live") != "true" {
		snap = latest
	} else {
		snap = h.svc.Snapshot()
	}

	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    snap,
	})
}

func (h *TelemetryHandler) latest() (domain.Snapshot, bool) {
	if h.store == nil {
		return domain.Snapshot{}, false
	}
	return h.store.Latest()
}

func (h *TelemetryHandler) Families(w http.ResponseWriter, r *http.Request) {
	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    telemetry.Families(),
	})
}

func (h *TelemetryHandler) Family(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Family(r.PathValue("family"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownFamily) {
			h.res.Error(w, r, http.StatusNotFound, "metric family not found")
			return
		}

		h.res.Error(w, r, http.StatusInternalServerError, "failed to read metric family")
		return
	}

	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    data,
	})
}

func (h *TelemetryHandler) Prop(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value := h.svc.Prop(key)
	if value == "" {
		h.res.Error(w, r, http.StatusNotFound, "property not found")
		return
	}

	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    map[string]string{key: value},
	})
}

func (h *TelemetryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    h.svc.Stats(),
	})
}

func (h *TelemetryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.svc.Reset()

	h.res.Write(w, r, http.StatusOK, &response.Response{
		Message: "Caches cleared",
	})
}
