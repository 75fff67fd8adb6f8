// Package memory implements port.Store in process memory. A single mutex
// serializes every operation, which makes each repository call atomic in the
// same way a serializable database transaction would be.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

// Store is a thread-safe in-memory port.Store.
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]domain.User
	assets    map[uuid.UUID]domain.Asset
	campaigns map[uuid.UUID]domain.Campaign
	slots     map[uuid.UUID]domain.Slot
	order     []uuid.UUID // slot creation order
	ledger    []domain.Transaction
	now       func() time.Time
}

var _ port.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]domain.User),
		assets:    make(map[uuid.UUID]domain.Asset),
		campaigns: make(map[uuid.UUID]domain.Campaign),
		slots:     make(map[uuid.UUID]domain.Slot),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// UpsertUser stores u. The balance of an existing user is kept; balances
// only move through transfers.
func (s *Store) UpsertUser(_ context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.users[u.ID]; ok {
		u.Credits = prev.Credits
		u.CreatedAt = prev.CreatedAt
	} else {
		u.Credits = 0
		u.CreatedAt = s.now()
	}
	u.UpdatedAt = s.now()
	s.users[u.ID] = u
	return nil
}

// UpsertAsset stores a.
func (s *Store) UpsertAsset(_ context.Context, a domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[a.OwnerID]; !ok {
		return fmt.Errorf("asset owner %s: %w", a.OwnerID, domain.ErrNotFound)
	}
	s.assets[a.ID] = a
	return nil
}

// GetAsset returns a copy of the asset.
func (s *Store) GetAsset(_ context.Context, id uuid.UUID) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

// GetUser returns a copy of the user.
func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

// ApplyTransfer settles t and appends its transaction.
func (s *Store) ApplyTransfer(_ context.Context, t domain.Transfer) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.applyTransferLocked(t)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// applyTransferLocked works on copies and writes back only on success, so a
// failed transfer leaves no trace.
func (s *Store) applyTransferLocked(t domain.Transfer) (domain.Transaction, error) {
	if err := t.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	var from, to *domain.User
	if t.From != nil {
		u, ok := s.users[*t.From]
		if !ok {
			return domain.Transaction{}, fmt.Errorf("user %s: %w", *t.From, domain.ErrNotFound)
		}
		from = &u
	}
	if t.To != nil {
		u, ok := s.users[*t.To]
		if !ok {
			return domain.Transaction{}, fmt.Errorf("user %s: %w", *t.To, domain.ErrNotFound)
		}
		to = &u
	}
	if err := t.Settle(from, to); err != nil {
		return domain.Transaction{}, err
	}
	now := s.now()
	if from != nil {
		from.UpdatedAt = now
		s.users[from.ID] = *from
	}
	if to != nil {
		to.UpdatedAt = now
		s.users[to.ID] = *to
	}
	tx := t.Record(now)
	s.ledger = append(s.ledger, tx)
	return tx, nil
}

// ListTransactions returns the user's transactions newest first.
func (s *Store) ListTransactions(_ context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for i := len(s.ledger) - 1; i >= 0; i-- {
		tx := s.ledger[i]
		if involves(tx, userID) {
			out = append(out, tx)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func involves(tx domain.Transaction, userID uuid.UUID) bool {
	return (tx.FromUserID != nil && *tx.FromUserID == userID) || (tx.ToUserID != nil && *tx.ToUserID == userID)
}

// LedgerTotals sums the user's ledger since genesis.
func (s *Store) LedgerTotals(_ context.Context, userID uuid.UUID) (domain.Reconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return domain.Reconciliation{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	var received, given int64
	for _, tx := range s.ledger {
		if tx.ToUserID != nil && *tx.ToUserID == userID {
			received += tx.Amount
		}
		if tx.FromUserID != nil && *tx.FromUserID == userID {
			given += tx.Amount
		}
	}
	return domain.NewReconciliation(userID, u.Credits, received, given), nil
}

// CreateCampaign debits funding and stores the campaign with its slots.
func (s *Store) CreateCampaign(_ context.Context, c domain.Campaign, slots []domain.Slot, funding domain.Transfer) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; ok {
		return nil, fmt.Errorf("%w: campaign %s already exists", domain.ErrStateConflict, c.ID)
	}
	tx, err := s.applyTransferLocked(funding)
	if err != nil {
		return nil, err
	}
	s.campaigns[c.ID] = c
	for _, sl := range slots {
		s.slots[sl.ID] = sl
		s.order = append(s.order, sl.ID)
	}
	return &tx, nil
}

// GetCampaign returns a copy of the campaign.
func (s *Store) GetCampaign(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// ListCampaignSlots returns the campaign's slots in creation order.
func (s *Store) ListCampaignSlots(_ context.Context, campaignID uuid.UUID) ([]domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[campaignID]; !ok {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, domain.ErrNotFound)
	}
	return s.campaignSlotsLocked(campaignID), nil
}

func (s *Store) campaignSlotsLocked(campaignID uuid.UUID) []domain.Slot {
	var out []domain.Slot
	for _, id := range s.order {
		if sl, ok := s.slots[id]; ok && sl.CampaignID == campaignID {
			out = append(out, sl)
		}
	}
	return out
}

// SetCampaignPaused pauses or resumes the campaign.
func (s *Store) SetCampaignPaused(_ context.Context, id uuid.UUID, paused bool) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	if err := c.SetPaused(paused, s.now()); err != nil {
		return nil, err
	}
	s.campaigns[id] = c
	return &c, nil
}

// CancelCampaign cancels the campaign when all its slots are open.
func (s *Store) CancelCampaign(_ context.Context, id uuid.UUID) (*port.CancelOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, domain.ErrNotFound)
	}
	ids, refund, err := domain.PlanCancellation(&c, s.campaignSlotsLocked(id), s.now())
	if err != nil {
		return nil, err
	}
	out := &port.CancelOutcome{RemovedSlots: ids}
	if refund != nil {
		tx, err := s.applyTransferLocked(*refund)
		if err != nil {
			return nil, err
		}
		out.Refund = &tx
	}
	for _, sid := range ids {
		s.deleteSlotLocked(sid)
	}
	s.campaigns[id] = c
	out.Campaign = c
	return out, nil
}

// RemoveSlot deletes one open slot and refunds it.
func (s *Store) RemoveSlot(_ context.Context, slotID uuid.UUID) (*port.CancelOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[slotID]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	c := s.campaigns[sl.CampaignID]
	refund, err := domain.PlanSlotRemoval(&c, sl, s.now())
	if err != nil {
		return nil, err
	}
	tx, err := s.applyTransferLocked(*refund)
	if err != nil {
		return nil, err
	}
	s.deleteSlotLocked(slotID)
	s.campaigns[c.ID] = c
	return &port.CancelOutcome{Campaign: c, RemovedSlots: []uuid.UUID{slotID}, Refund: &tx}, nil
}

func (s *Store) deleteSlotLocked(id uuid.UUID) {
	delete(s.slots, id)
	s.order = slices.DeleteFunc(s.order, func(v uuid.UUID) bool { return v == id })
}

// GetSlot returns a copy of the slot.
func (s *Store) GetSlot(_ context.Context, id uuid.UUID) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[id]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", id, domain.ErrNotFound)
	}
	return &sl, nil
}

// TransitionSlot applies ch atomically with any resulting payout.
func (s *Store) TransitionSlot(_ context.Context, ch domain.SlotChange) (*port.TransitionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch.At.IsZero() {
		ch.At = s.now()
	}
	sl, ok := s.slots[ch.SlotID]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", ch.SlotID, domain.ErrNotFound)
	}
	c, ok := s.campaigns[sl.CampaignID]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", sl.CampaignID, domain.ErrNotFound)
	}
	if ch.Event == domain.EventClaim && ch.AssetID != nil {
		a, ok := s.assets[*ch.AssetID]
		if !ok {
			return nil, fmt.Errorf("asset %s: %w", *ch.AssetID, domain.ErrNotFound)
		}
		if err := ch.CheckAsset(a); err != nil {
			return nil, err
		}
	}
	from := sl.Status
	payout, err := ch.Apply(&sl, &c)
	if err != nil {
		return nil, err
	}
	out := &port.TransitionOutcome{From: from}
	if payout != nil {
		tx, err := s.applyTransferLocked(*payout)
		if err != nil {
			return nil, err
		}
		out.Transaction = &tx
	}
	s.slots[sl.ID] = sl
	s.campaigns[c.ID] = c
	out.Slot = sl
	out.Campaign = c
	return out, nil
}
