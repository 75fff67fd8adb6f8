package port

import (
	"context"

	"linkswap/internal/core/domain"
)

// LinkVerifier inspects a proof page and decides whether it satisfies a
// placement requirement. Fetch and parse failures are reported inside the
// result, never as an error.
type LinkVerifier interface {
	Verify(ctx context.Context, proofURL string, req domain.Requirement) domain.VerificationResult
}
