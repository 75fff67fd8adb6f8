package metrics

import (
	"linkswap/internal/core/domain"
)

// RecordSlotTransition counts a committed slot transition.
func RecordSlotTransition(from, to domain.SlotStatus) {
	if !enabled {
		return
	}
	slotTransitionTotal.WithLabelValues(string(from), string(to)).Inc()
}

// RecordVerification counts a verifier verdict.
func RecordVerification(res domain.VerificationResult) {
	if !enabled {
		return
	}
	result := "verified"
	switch {
	case res.Verified:
	case res.LinkFound:
		result = "mismatch"
	default:
		result = "not_found"
	}
	verificationTotal.WithLabelValues(result).Inc()
}

// RecordTransaction counts a recorded ledger entry and the credits it moved.
func RecordTransaction(tx *domain.Transaction) {
	if !enabled || tx == nil {
		return
	}
	ledgerTransferTotal.WithLabelValues(string(tx.Type)).Inc()
	ledgerTransferCredits.WithLabelValues(string(tx.Type)).Add(float64(tx.Amount))
}

// RecordCampaignEvent counts a campaign lifecycle event such as created,
// completed or cancelled.
func RecordCampaignEvent(event string) {
	if !enabled {
		return
	}
	campaignEventTotal.WithLabelValues(event).Inc()
}
