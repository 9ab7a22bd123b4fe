package usecase

import (
	"fmt"

	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/shopspring/decimal"
)

const maxCreditsPerPurchase = 10000

func (uc *paymentUC) creditUnitPrice(kind models.CreditKind) decimal.Decimal {
	if kind == models.CreditKindRecruiterCV {
		return uc.cfg.Pricing.RecruiterCVCreditPrice
	}
	return uc.cfg.Pricing.AICreditUnitPrice
}

// creditsFor converts a paid amount into whole credits
func (uc *paymentUC) creditsFor(kind models.CreditKind, amount decimal.Decimal) int {
	price := uc.creditUnitPrice(kind)
	if !price.IsPositive() || !amount.IsPositive() {
		return 0
	}
	return int(amount.Div(price).Floor().IntPart())
}

// planPrice is the monthly price, or twelve months minus the yearly discount
func (uc *paymentUC) planPrice(plan models.Plan, interval models.Interval) (decimal.Decimal, error) {
	monthly, ok := uc.cfg.Pricing.PlanMonthlyPrices[plan]
	if !ok || !monthly.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no price for plan %s", models.ErrInvalidCheckout, plan)
	}
	switch interval {
	case models.IntervalMonthly:
		return monthly, nil
	case models.IntervalYearly:
		months := 12 - uc.cfg.Pricing.YearlyDiscountMonths
		if months <= 0 {
			months = 12
		}
		return monthly.Mul(decimal.NewFromInt(int64(months))), nil
	}
	return decimal.Zero, fmt.Errorf("%w: unknown interval %q", models.ErrInvalidCheckout, interval)
}

// bundleCredits is what a renewal of plan grants on top of the subscription
func (uc *paymentUC) bundleCredits(renewal models.SubscriptionRenewal) int {
	if renewal.Plan != models.PlanGrowth || uc.cfg.Pricing.GrowthBundleCredits <= 0 {
		return 0
	}
	return uc.cfg.Pricing.GrowthBundleCredits * renewal.Interval.Months()
}

func (uc *paymentUC) bundleCreditKind() models.CreditKind {
	if uc.cfg.Pricing.GrowthBundleCreditKind == "" {
		return models.CreditKindRecruiterCV
	}
	return uc.cfg.Pricing.GrowthBundleCreditKind
}
