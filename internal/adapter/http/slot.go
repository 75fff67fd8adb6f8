package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

func (h *Handler) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Slots.GetSlot(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newSlotResponse(*s))
}

func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req claimRequest
	if err = decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Slots.Claim(r.Context(), callerFrom(r), id, req.AssetID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newSlotResponse(*s))
}

func (h *Handler) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	h.handleProof(w, r, h.svc.Slots.SubmitProof)
}

func (h *Handler) handleRetryProof(w http.ResponseWriter, r *http.Request) {
	h.handleProof(w, r, h.svc.Slots.RetryProof)
}

type proofFunc = func(ctx context.Context, caller domain.Caller, slotID uuid.UUID, proofURL string) (*port.ProofOutcome, error)

// handleProof serves both first submissions and retries. A proof that does
// not verify is still a 200: the slot moved to submitted and the verdict
// explains why.
func (h *Handler) handleProof(w http.ResponseWriter, r *http.Request, submit proofFunc) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req proofRequest
	if err = decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := submit(r.Context(), callerFrom(r), id, req.ProofURL)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, proofResponse{
		Slot:         newSlotResponse(out.Slot),
		Campaign:     newCampaignResponse(out.Campaign),
		Verification: newVerificationResponse(out.Verification),
		Payout:       newOptionalTransaction(out.Payout),
	})
}

func (h *Handler) handleRelease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Slots.Release(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newSlotResponse(*s))
}
