package elaboration

import (
	"fmt"
	"time"

	"github.com/openhorizon/seed-backend/internal/elaboration/extract"
	"github.com/openhorizon/seed-backend/internal/entity"
)

const (
	minParticipants = 16
	maxParticipants = 60
	minTotalBudget  = 5000.0
	minDuration     = 1
)

// validateCandidates checks every extracted candidate against the domain
// rules and strips the rejected ones, so a rejected value never reaches the
// metadata. Errors accumulate; one bad slot does not block the others.
func validateCandidates(c extract.Candidates, meta entity.SeedMetadata) (extract.Candidates, []string) {
	var errs []string

	if c.ParticipantCount != nil {
		n := *c.ParticipantCount
		if n < minParticipants || n > maxParticipants {
			errs = append(errs, fmt.Sprintf(
				"For Erasmus+ projects, participant count should be between %d and %d", minParticipants, maxParticipants))
			c.ParticipantCount = nil
		}
	}

	// the floor applies once a total is derivable from what this turn and
	// the prior metadata together establish
	knownCount := c.ParticipantCount
	if knownCount == nil {
		knownCount = meta.ParticipantCount
	}
	per := c.BudgetPerParticipant
	if per == nil {
		per = meta.BudgetPerParticipant
	}
	total := c.TotalBudget
	if total == nil && per != nil && knownCount != nil {
		t := *per * float64(*knownCount)
		total = &t
	}
	if total != nil && *total < minTotalBudget {
		errs = append(errs, fmt.Sprintf(
			"The total budget of €%.0f is below the €%.0f minimum for a viable exchange", *total, minTotalBudget))
		if c.BudgetPerParticipant != nil || c.TotalBudget != nil {
			c.BudgetPerParticipant = nil
			c.TotalBudget = nil
		} else {
			// the count alone pushed the derived total under the floor
			c.ParticipantCount = nil
		}
	}

	if c.Duration != nil && *c.Duration < minDuration {
		errs = append(errs, "The exchange must last at least 1 day")
		c.Duration = nil
	}

	dateErrs := validateDates(c.StartDate, c.EndDate)
	if len(dateErrs) > 0 {
		errs = append(errs, dateErrs...)
		// a duration derived from a rejected date range goes with it
		if c.StartDate != nil && c.EndDate != nil && c.Duration != nil {
			span := int(c.EndDate.Sub(*c.StartDate).Hours()/24) + 1
			if span == *c.Duration {
				c.Duration = nil
			}
		}
		c.StartDate = nil
		c.EndDate = nil
	}

	return c, errs
}

func validateDates(start, end *time.Time) []string {
	var errs []string
	today := time.Now().UTC().Truncate(24 * time.Hour)

	if start != nil && start.Before(today) {
		errs = append(errs, fmt.Sprintf("The start date %s lies in the past", start.Format("2006-01-02")))
	}
	if start != nil && end != nil && !end.After(*start) {
		errs = append(errs, "The end date must be after the start date")
	}
	return errs
}
