package usecase

import (
	"time"

	"github.com/piresc/payrecon/internal/pkg/models"
)

// ExtendPeriod computes the subscription window after a renewal of
// intervalMonths. A lapsed or missing subscription starts at now; an active
// one keeps its start and extends from its current end.
func ExtendPeriod(existing *models.Subscription, intervalMonths int, now time.Time) models.Period {
	if existing == nil || !existing.CurrentPeriodEnd.After(now) {
		return models.Period{
			Start: now,
			End:   now.AddDate(0, intervalMonths, 0),
		}
	}
	return models.Period{
		Start: existing.CurrentPeriodStart,
		End:   existing.CurrentPeriodEnd.AddDate(0, intervalMonths, 0),
	}
}
