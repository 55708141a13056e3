package cases

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lootcase_backend/internal/api/apierr"
	dto "lootcase_backend/internal/api/dto/cases"
	"lootcase_backend/internal/converter"
	"lootcase_backend/internal/service"
	"lootcase_backend/pkg/req"
	"lootcase_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.CaseService
}

type Handler struct {
	serv service.CaseService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Create заводит новый кейс; вероятности наград фиксирует солвер
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateCaseRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Create(r.Context(), converter.ToCaseInput(payload))
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCaseResponse(*result))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	result, err := h.serv.Get(r.Context(), id)
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCaseResponse(*result))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.List(r.Context())
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCaseResponses(result))
}
