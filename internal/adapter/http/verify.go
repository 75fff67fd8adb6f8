package httpadapter

import (
	"net/http"

	"linkswap/internal/core/domain"
)

// handleVerify checks a page against an ad-hoc requirement. Nothing is
// stored and no credits move.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.svc.Slots.Preview(r.Context(), callerFrom(r), req.ProofURL, domain.Requirement{
		TargetURL:     req.TargetURL,
		TargetKeyword: req.Keyword,
		LinkType:      domain.LinkType(req.LinkType),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newVerificationResponse(*res))
}
