package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-predictor/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func (h *ResultHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	var input services.ResultInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.resultService.SubmitResult(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "recorded"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) SubmitBulkResults(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Results []services.ResultInput `json:"results"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Results) == 0 {
		badRequestResponse(w, r, errors.New("results must not be empty"))
		return
	}

	outcomes, err := h.resultService.SubmitBulkResults(r.Context(), input.Results)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Частичные отказы не делают весь запрос ошибочным.
	if err := writeJSON(w, http.StatusMultiStatus, jsonResponse{"outcomes": outcomes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
