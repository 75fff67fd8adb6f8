package domain

import "time"

// VerificationResult is the verdict of inspecting a proof page. A negative
// verdict is a normal outcome, not an error.
type VerificationResult struct {
	Verified        bool
	LinkFound       bool
	AnchorTextMatch bool
	LinkTypeMatch   bool
	Details         []string
	FoundLink       *FoundLink
	CheckedAt       time.Time
}

// FoundLink is the anchor selected as the best match on the proof page.
type FoundLink struct {
	Href       string
	AnchorText string
	Rel        string
	Nofollow   bool
}
