package open

import (
	"net/http"

	"lootcase_backend/internal/api/apierr"
	dto "lootcase_backend/internal/api/dto/open"
	"lootcase_backend/internal/converter"
	"lootcase_backend/internal/service"
	"lootcase_backend/pkg/req"
	"lootcase_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.OpenService
}

type Handler struct {
	serv service.OpenService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.OpenRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Open(r.Context(), payload.CaseID)
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOpenResponse(*result))
}
