package httpadapter

import (
	"time"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
)

type slotOverrideRequest struct {
	TargetURL       string `json:"target_url" validate:"omitempty,http_url"`
	TargetKeyword   string `json:"target_keyword" validate:"max=200"`
	LinkType        string `json:"link_type" validate:"omitempty,oneof=hyperlink_dofollow hyperlink_nofollow brand_mention"`
	PlacementFormat string `json:"placement_format" validate:"max=100"`
}

type createCampaignRequest struct {
	Name            string                `json:"name" validate:"required,max=200"`
	TargetURL       string                `json:"target_url" validate:"omitempty,http_url"`
	TargetKeyword   string                `json:"target_keyword" validate:"max=200"`
	LinkType        string                `json:"link_type" validate:"required,oneof=hyperlink_dofollow hyperlink_nofollow brand_mention"`
	PlacementFormat string                `json:"placement_format" validate:"max=100"`
	Industry        string                `json:"industry" validate:"max=100"`
	Quantity        int                   `json:"quantity" validate:"required,min=1,max=1000"`
	CreditReward    int64                 `json:"credit_reward" validate:"required,min=1,max=1000000000"`
	Slots           []slotOverrideRequest `json:"slots" validate:"omitempty,dive"`
}

func (req createCampaignRequest) toDomain() domain.NewCampaign {
	in := domain.NewCampaign{
		Name:            req.Name,
		TargetURL:       req.TargetURL,
		TargetKeyword:   req.TargetKeyword,
		LinkType:        domain.LinkType(req.LinkType),
		PlacementFormat: req.PlacementFormat,
		Industry:        req.Industry,
		Quantity:        req.Quantity,
		CreditReward:    req.CreditReward,
	}
	for _, o := range req.Slots {
		in.Overrides = append(in.Overrides, domain.SlotOverride{
			TargetURL:       o.TargetURL,
			TargetKeyword:   o.TargetKeyword,
			LinkType:        domain.LinkType(o.LinkType),
			PlacementFormat: o.PlacementFormat,
		})
	}
	return in
}

type claimRequest struct {
	AssetID uuid.UUID `json:"asset_id" validate:"required"`
}

type proofRequest struct {
	ProofURL string `json:"proof_url" validate:"required,http_url"`
}

type creditRequest struct {
	Amount int64  `json:"amount" validate:"required,min=1"`
	Reason string `json:"reason" validate:"required,max=500"`
}

type verifyRequest struct {
	ProofURL  string `json:"proof_url" validate:"required,http_url"`
	TargetURL string `json:"target_url" validate:"omitempty,http_url"`
	Keyword   string `json:"keyword" validate:"max=200"`
	LinkType  string `json:"link_type" validate:"required,oneof=hyperlink_dofollow hyperlink_nofollow brand_mention"`
}

type syncUserRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"omitempty,oneof=user admin"`
	Status string `json:"status" validate:"omitempty,oneof=active suspended"`
}

type assetMetricsDTO struct {
	DomainRating   int       `json:"domain_rating" validate:"min=0,max=100"`
	Backlinks      int64     `json:"backlinks" validate:"min=0"`
	MonthlyTraffic int64     `json:"monthly_traffic" validate:"min=0"`
	Summary        string    `json:"summary,omitempty"`
	FetchedAt      time.Time `json:"fetched_at"`
}

type syncAssetRequest struct {
	OwnerID  uuid.UUID        `json:"owner_id" validate:"required"`
	Domain   string           `json:"domain" validate:"required,max=255"`
	Industry string           `json:"industry" validate:"max=100"`
	Status   string           `json:"status" validate:"omitempty,oneof=pending approved rejected disabled"`
	Metrics  *assetMetricsDTO `json:"metrics"`
}

type campaignResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Name            string    `json:"name"`
	TargetURL       string    `json:"target_url"`
	TargetKeyword   string    `json:"target_keyword"`
	LinkType        string    `json:"link_type"`
	PlacementFormat string    `json:"placement_format,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	Quantity        int       `json:"quantity"`
	FilledSlots     int       `json:"filled_slots"`
	CreditReward    int64     `json:"credit_reward"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		Name:            c.Name,
		TargetURL:       c.TargetURL,
		TargetKeyword:   c.TargetKeyword,
		LinkType:        string(c.LinkType),
		PlacementFormat: c.PlacementFormat,
		Industry:        c.Industry,
		Quantity:        c.Quantity,
		FilledSlots:     c.FilledSlots,
		CreditReward:    c.CreditReward,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type slotResponse struct {
	ID               uuid.UUID  `json:"id"`
	CampaignID       uuid.UUID  `json:"campaign_id"`
	TargetURL        string     `json:"target_url,omitempty"`
	TargetKeyword    string     `json:"target_keyword,omitempty"`
	LinkType         string     `json:"link_type,omitempty"`
	PlacementFormat  string     `json:"placement_format,omitempty"`
	Status           string     `json:"status"`
	PublisherID      *uuid.UUID `json:"publisher_id,omitempty"`
	PublisherAssetID *uuid.UUID `json:"publisher_asset_id,omitempty"`
	ProofURL         string     `json:"proof_url,omitempty"`
	Verified         *bool      `json:"verified,omitempty"`
	Details          []string   `json:"verification_details,omitempty"`
	ReservedAt       *time.Time `json:"reserved_at,omitempty"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func newSlotResponse(s domain.Slot) slotResponse {
	return slotResponse{
		ID:               s.ID,
		CampaignID:       s.CampaignID,
		TargetURL:        s.TargetURL,
		TargetKeyword:    s.TargetKeyword,
		LinkType:         string(s.LinkType),
		PlacementFormat:  s.PlacementFormat,
		Status:           string(s.Status),
		PublisherID:      s.PublisherID,
		PublisherAssetID: s.PublisherAssetID,
		ProofURL:         s.ProofURL,
		Verified:         s.Verified,
		Details:          s.Details,
		ReservedAt:       s.ReservedAt,
		SubmittedAt:      s.SubmittedAt,
		ApprovedAt:       s.ApprovedAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func newSlotResponses(slots []domain.Slot) []slotResponse {
	out := make([]slotResponse, len(slots))
	for i, s := range slots {
		out[i] = newSlotResponse(s)
	}
	return out
}

type transactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	FromUserID    *uuid.UUID `json:"from_user_id"`
	ToUserID      *uuid.UUID `json:"to_user_id"`
	Amount        int64      `json:"amount"`
	Type          string     `json:"type"`
	ReferenceType string     `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty"`
	Description   string     `json:"description,omitempty"`
	Direction     string     `json:"direction,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newTransactionResponse(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		FromUserID:    t.FromUserID,
		ToUserID:      t.ToUserID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		ReferenceType: string(t.ReferenceType),
		ReferenceID:   t.ReferenceID,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

func newOptionalTransaction(t *domain.Transaction) *transactionResponse {
	if t == nil {
		return nil
	}
	r := newTransactionResponse(*t)
	return &r
}

type verificationResponse struct {
	Verified        bool           `json:"verified"`
	LinkFound       bool           `json:"link_found"`
	AnchorTextMatch bool           `json:"anchor_text_match"`
	LinkTypeMatch   bool           `json:"link_type_match"`
	Details         []string       `json:"details"`
	FoundLink       *foundLinkJSON `json:"found_link,omitempty"`
	CheckedAt       time.Time      `json:"checked_at"`
}

type foundLinkJSON struct {
	Href       string `json:"href"`
	AnchorText string `json:"anchor_text"`
	Rel        string `json:"rel,omitempty"`
	Nofollow   bool   `json:"nofollow"`
}

func newVerificationResponse(v domain.VerificationResult) verificationResponse {
	out := verificationResponse{
		Verified:        v.Verified,
		LinkFound:       v.LinkFound,
		AnchorTextMatch: v.AnchorTextMatch,
		LinkTypeMatch:   v.LinkTypeMatch,
		Details:         v.Details,
		CheckedAt:       v.CheckedAt,
	}
	if out.Details == nil {
		out.Details = []string{}
	}
	if v.FoundLink != nil {
		out.FoundLink = &foundLinkJSON{
			Href:       v.FoundLink.Href,
			AnchorText: v.FoundLink.AnchorText,
			Rel:        v.FoundLink.Rel,
			Nofollow:   v.FoundLink.Nofollow,
		}
	}
	return out
}

type proofResponse struct {
	Slot         slotResponse         `json:"slot"`
	Campaign     campaignResponse     `json:"campaign"`
	Verification verificationResponse `json:"verification"`
	Payout       *transactionResponse `json:"payout,omitempty"`
}

type cancelResponse struct {
	Campaign     campaignResponse     `json:"campaign"`
	RemovedSlots []uuid.UUID          `json:"removed_slots"`
	Refund       *transactionResponse `json:"refund,omitempty"`
}

type fulfillmentResponse struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Status     string    `json:"status"`
	Quantity   int       `json:"quantity"`
	Filled     int       `json:"filled"`
	Remaining  int       `json:"remaining"`
	Open       int       `json:"open"`
	Reserved   int       `json:"reserved"`
	Submitted  int       `json:"submitted"`
	Approved   int       `json:"approved"`
	Rejected   int       `json:"rejected"`
}

type balanceResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Credits int64     `json:"credits"`
}

type reconciliationResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Balance    int64     `json:"balance"`
	Received   int64     `json:"received"`
	Given      int64     `json:"given"`
	Derived    int64     `json:"derived"`
	Consistent bool      `json:"consistent"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Credits   int64     `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type assetResponse struct {
	ID       uuid.UUID        `json:"id"`
	OwnerID  uuid.UUID        `json:"owner_id"`
	Domain   string           `json:"domain"`
	Industry string           `json:"industry,omitempty"`
	Status   string           `json:"status"`
	Metrics  *assetMetricsDTO `json:"metrics,omitempty"`
}
