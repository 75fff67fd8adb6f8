package httpadapter

import (
	"net/http"

	"github.com/google/uuid"

	"linkswap/internal/core/port"
)

type createdCampaignResponse struct {
	Campaign campaignResponse    `json:"campaign"`
	Slots    []slotResponse      `json:"slots"`
	Funding  transactionResponse `json:"funding"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.svc.Campaigns.Create(r.Context(), callerFrom(r), req.toDomain())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, createdCampaignResponse{
		Campaign: newCampaignResponse(out.Campaign),
		Slots:    newSlotResponses(out.Slots),
		Funding:  newTransactionResponse(out.Funding),
	})
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.svc.Campaigns.Get(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newCampaignResponse(*c))
}

func (h *Handler) handleCampaignSlots(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	slots, err := h.svc.Campaigns.Slots(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newSlotResponses(slots))
}

func (h *Handler) handleFulfillment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	f, err := h.svc.Campaigns.Fulfillment(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, fulfillmentResponse{
		CampaignID: f.CampaignID,
		Status:     string(f.Status),
		Quantity:   f.Quantity,
		Filled:     f.Filled,
		Remaining:  f.Remaining,
		Open:       f.Open,
		Reserved:   f.Reserved,
		Submitted:  f.Submitted,
		Approved:   f.Approved,
		Rejected:   f.Rejected,
	})
}

func (h *Handler) handlePauseCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.svc.Campaigns.Pause(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newCampaignResponse(*c))
}

func (h *Handler) handleResumeCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.svc.Campaigns.Resume(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newCampaignResponse(*c))
}

func (h *Handler) handleCancelCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.svc.Campaigns.Cancel(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newCancelResponse(out))
}

func (h *Handler) handleCancelSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.svc.Campaigns.CancelSlot(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newCancelResponse(out))
}

func newCancelResponse(out *port.CancelOutcome) cancelResponse {
	removed := out.RemovedSlots
	if removed == nil {
		removed = []uuid.UUID{}
	}
	return cancelResponse{
		Campaign:     newCampaignResponse(out.Campaign),
		RemovedSlots: removed,
		Refund:       newOptionalTransaction(out.Refund),
	}
}
