package models

import (
	"fmt"
)

// CreditKind is the kind of usage credit granted to a user
type CreditKind string

const (
	CreditKindAI          CreditKind = "AI"
	CreditKindRecruiterCV CreditKind = "RECRUITER_CV"
)

// Entitlement is what a confirmed payment grants. Exactly one of the
// variants below implements it.
type Entitlement interface {
	Purpose() Purpose
	isEntitlement()
}

// CreditGrant tops up usage credits
type CreditGrant struct {
	Kind    CreditKind
	Credits int // 0 means derive from the paid amount
}

// SubscriptionRenewal activates or extends the payer's subscription
type SubscriptionRenewal struct {
	Plan     Plan
	Interval Interval
}

// GiftPurchase issues a claimable gift subscription
type GiftPurchase struct {
	Plan           Plan
	Interval       Interval
	RecipientEmail string
	Message        string
}

// NoEntitlement marks the transaction paid and nothing else
type NoEntitlement struct{}

func (g CreditGrant) Purpose() Purpose {
	if g.Kind == CreditKindRecruiterCV {
		return PurposeRecruiterCVCredits
	}
	return PurposeAICredits
}

func (SubscriptionRenewal) Purpose() Purpose { return PurposeSubscription }
func (GiftPurchase) Purpose() Purpose        { return PurposeGift }
func (NoEntitlement) Purpose() Purpose       { return PurposeOther }

func (CreditGrant) isEntitlement()         {}
func (SubscriptionRenewal) isEntitlement() {}
func (GiftPurchase) isEntitlement()        {}
func (NoEntitlement) isEntitlement()       {}

// Entitlement decodes the purpose-specific columns of the transaction
func (t *PaymentTransaction) Entitlement() (Entitlement, error) {
	switch t.Purpose {
	case PurposeAICredits, PurposeRecruiterCVCredits:
		grant := CreditGrant{Kind: CreditKindAI}
		if t.Purpose == PurposeRecruiterCVCredits {
			grant.Kind = CreditKindRecruiterCV
		}
		if t.Credits != nil {
			grant.Credits = *t.Credits
		}
		return grant, nil
	case PurposeSubscription:
		plan, interval, err := t.planAndInterval()
		if err != nil {
			return nil, err
		}
		return SubscriptionRenewal{Plan: plan, Interval: interval}, nil
	case PurposeGift:
		plan, interval, err := t.planAndInterval()
		if err != nil {
			return nil, err
		}
		gift := GiftPurchase{Plan: plan, Interval: interval}
		if t.RecipientEmail != nil {
			gift.RecipientEmail = *t.RecipientEmail
		}
		if t.Message != nil {
			gift.Message = *t.Message
		}
		return gift, nil
	case PurposeOther, "":
		return NoEntitlement{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPurpose, t.Purpose)
}

func (t *PaymentTransaction) planAndInterval() (Plan, Interval, error) {
	if t.Plan == nil || !t.Plan.Valid() {
		return "", "", fmt.Errorf("%w: transaction %s has no valid plan", ErrInvalidEntitlement, t.ID)
	}
	if t.Interval == nil || t.Interval.Months() == 0 {
		return "", "", fmt.Errorf("%w: transaction %s has no valid interval", ErrInvalidEntitlement, t.ID)
	}
	return *t.Plan, *t.Interval, nil
}
