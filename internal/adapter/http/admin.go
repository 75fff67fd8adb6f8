package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.svc.Slots.Approve(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, reviewResponse{
		Slot:     newSlotResponse(out.Slot),
		Campaign: newCampaignResponse(out.Campaign),
		Payout:   newOptionalTransaction(out.Transaction),
	})
}

type reviewResponse struct {
	Slot     slotResponse         `json:"slot"`
	Campaign campaignResponse     `json:"campaign"`
	Payout   *transactionResponse `json:"payout,omitempty"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Slots.Reject(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newSlotResponse(*s))
}

type adjustFunc = func(ctx context.Context, caller domain.Caller, userID uuid.UUID, amount int64, reason string) (*domain.Transaction, error)

func (h *Handler) handleCreditsAdd(w http.ResponseWriter, r *http.Request) {
	h.handleAdjust(w, r, h.svc.Ledger.AdminAdd)
}

func (h *Handler) handleCreditsRemove(w http.ResponseWriter, r *http.Request) {
	h.handleAdjust(w, r, h.svc.Ledger.AdminRemove)
}

func (h *Handler) handleAdjust(w http.ResponseWriter, r *http.Request, adjust adjustFunc) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req creditRequest
	if err = decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	tx, err := adjust(r.Context(), callerFrom(r), id, req.Amount, req.Reason)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newTransactionResponse(*tx))
}

func (h *Handler) handleSyncUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req syncUserRequest
	if err = decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.svc.Directory.SyncUser(r.Context(), callerFrom(r), domain.User{
		ID:     id,
		Email:  req.Email,
		Role:   domain.Role(req.Role),
		Status: domain.AccountStatus(req.Status),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		Credits:   u.Credits,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
}

func (h *Handler) handleSyncAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req syncAssetRequest
	if err = decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	in := domain.Asset{
		ID:       id,
		OwnerID:  req.OwnerID,
		Domain:   req.Domain,
		Industry: req.Industry,
		Status:   domain.AssetStatus(req.Status),
	}
	if m := req.Metrics; m != nil {
		in.Metrics = &domain.AssetMetrics{
			DomainRating:   m.DomainRating,
			Backlinks:      m.Backlinks,
			MonthlyTraffic: m.MonthlyTraffic,
			Summary:        m.Summary,
			FetchedAt:      m.FetchedAt,
		}
	}
	a, err := h.svc.Directory.SyncAsset(r.Context(), callerFrom(r), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := assetResponse{
		ID:       a.ID,
		OwnerID:  a.OwnerID,
		Domain:   a.Domain,
		Industry: a.Industry,
		Status:   string(a.Status),
	}
	if m := a.Metrics; m != nil {
		out.Metrics = &assetMetricsDTO{
			DomainRating:   m.DomainRating,
			Backlinks:      m.Backlinks,
			MonthlyTraffic: m.MonthlyTraffic,
			Summary:        m.Summary,
			FetchedAt:      m.FetchedAt,
		}
	}
	h.respond(w, http.StatusOK, out)
}
