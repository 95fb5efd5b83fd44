package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"rinklog/pkg/model"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 10 << 20

type handler struct {
	repo Repository
}

func getIndex(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, indexResponse{Service: "rinklog", Status: "ok"})
}

func (h *handler) getData(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.Load(r.Context())
	if err != nil {
		log.WithError(err).Error("get-data failed")
		sendJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to load data from the workbook.",
			Detail:  err.Error(),
		})
		return
	}
	snap.Normalize()
	sendJSON(w, http.StatusOK, snap)
}

func (h *handler) saveData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Message: "Request body too large."})
			return
		}
		sendJSON(w, http.StatusBadRequest, errorResponse{Message: "Unable to read request body.", Detail: err.Error()})
		return
	}
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		sendJSON(w, http.StatusBadRequest, errorResponse{Message: "Missing request body."})
		return
	}

	var snap model.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body.", Detail: err.Error()})
		return
	}
	snap.Normalize()

	if err := h.repo.Save(r.Context(), snap); err != nil {
		log.WithError(err).Error("save-data failed")
		sendJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to persist data to the workbook.",
			Detail:  err.Error(),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
		status = http.StatusInternalServerError
		body = []byte(`{"message":"Failed to encode response."}`)
	}
	sendResponse(w, status, body)
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
