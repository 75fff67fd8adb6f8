package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

func (h *Handler) handleMyBalance(w http.ResponseWriter, r *http.Request) {
	h.writeBalance(w, r, callerFrom(r).UserID)
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeBalance(w, r, id)
}

func (h *Handler) writeBalance(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	credits, err := h.svc.Ledger.Balance(r.Context(), callerFrom(r), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, balanceResponse{UserID: userID, Credits: credits})
}

func (h *Handler) handleMyTransactions(w http.ResponseWriter, r *http.Request) {
	h.writeHistory(w, r, callerFrom(r).UserID)
}

func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeHistory(w, r, id)
}

func (h *Handler) writeHistory(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	limit, err := queryLimit(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	entries, err := h.svc.Ledger.History(r.Context(), callerFrom(r), userID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]transactionResponse, len(entries))
	for i, e := range entries {
		out[i] = newTransactionResponse(e.Transaction)
		out[i].Direction = string(e.Direction)
	}
	h.respond(w, http.StatusOK, out)
}

// queryLimit reads ?limit=. Zero means the use-case default.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrValidation)
	}
	return n, nil
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := h.svc.Ledger.Reconcile(r.Context(), callerFrom(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, reconciliationResponse{
		UserID:     rec.UserID,
		Balance:    rec.Balance,
		Received:   rec.Received,
		Given:      rec.Given,
		Derived:    rec.Derived,
		Consistent: rec.Consistent,
	})
}
