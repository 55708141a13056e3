package rtu

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lootcase_backend/internal/api/apierr"
	dto "lootcase_backend/internal/api/dto/rtu"
	"lootcase_backend/internal/converter"
	"lootcase_backend/internal/service"
	"lootcase_backend/pkg/req"
	"lootcase_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.RtuService
}

type Handler struct {
	serv service.RtuService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Ledger - снапшот учета и последние события по паре (кейс, токен)
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	caseID, err := strconv.Atoi(chi.URLParam(r, "caseID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}
	tokenSymbol := chi.URLParam(r, "token")

	led, events, err := h.serv.Ledger(r.Context(), caseID, tokenSymbol)
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLedgerResponse(*led, events))
}

// Stats - in-memory статистика фактического RTU кейса
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	caseID, err := strconv.Atoi(chi.URLParam(r, "caseID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(caseID, h.serv.Stats(caseID)))
}

// Adjust - ручная корректировка учета с обязательной причиной
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.AdjustRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Reason == "" {
		resp.WriteError(w, http.StatusBadRequest, "reason is required")
		return
	}

	led, err := h.serv.Adjust(r.Context(), payload.CaseID, payload.TokenSymbol,
		payload.DeltaSpentUsdt, payload.DeltaToken, payload.Reason)
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLedgerResponse(*led, nil))
}
