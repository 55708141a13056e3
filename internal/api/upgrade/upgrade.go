package upgrade

import (
	"net/http"

	"github.com/google/uuid"

	"lootcase_backend/internal/api/apierr"
	dto "lootcase_backend/internal/api/dto/upgrade"
	"lootcase_backend/internal/converter"
	"lootcase_backend/internal/service"
	"lootcase_backend/pkg/req"
	"lootcase_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.UpgradeService
}

type Handler struct {
	serv service.UpgradeService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Upgrade(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.UpgradeRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	itemID, err := uuid.Parse(payload.ItemID)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	result, err := h.serv.Upgrade(r.Context(), itemID, payload.TargetRewardID)
	if err != nil {
		resp.WriteError(w, apierr.Status(err), err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUpgradeResponse(*result))
}
