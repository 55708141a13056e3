package battle

import (
	"net/http"

	"lootcase_backend/internal/api/apierr"
	dto "lootcase_backend/internal/api/dto/battle"
	"lootcase_backend/internal/converter"
	"lootcase_backend/internal/model"
	"lootcase_backend/internal/service"
	"lootcase_backend/pkg/req"
	"lootcase_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.BattleService
}

type Handler struct {
	serv service.BattleService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BattleRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Resolve(r.Context(), payload.CaseIDs, model.BattleMode(payload.Mode))
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBattleResponse(*result))
}
