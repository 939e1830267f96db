// Package reminders derives a prioritized follow-up worklist from campaign, content and
// contract rows. Everything here is a pure function of its inputs and the supplied time.
package reminders

import (
	"fmt"
	"sort"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
)

const dayMillis = 24 * 60 * 60 * 1000

// DaysSince returns whole days elapsed from the date in s until now, rounded down.
// ok is false when s is empty or unparseable
func DaysSince(now time.Time, s string) (days int, ok bool) {
	t, ok := hub.ParseDate(s)
	if !ok {
		return 0, false
	}
	return floorDays(now.UnixMilli() - t.UnixMilli()), true
}

// DaysUntil returns whole days from now until the date in s, rounded down; negative once passed
func DaysUntil(now time.Time, s string) (days int, ok bool) {
	t, ok := hub.ParseDate(s)
	if !ok {
		return 0, false
	}
	return floorDays(t.UnixMilli() - now.UnixMilli()), true
}

// floorDays divides a millisecond span into whole days, rounding toward negative infinity
func floorDays(ms int64) int {
	days := ms / dayMillis
	if ms%dayMillis != 0 && ms < 0 {
		days--
	}
	return int(days)
}

// Build evaluates every rule against the collections and returns the reminders sorted by urgency
func Build(now time.Time, campaigns, content, contracts []hub.Record) []Reminder {
	reminders := []Reminder{}

	reminders = append(reminders, campaignReminders(now, campaigns)...)
	reminders = append(reminders, contentReminders(now, campaigns, content)...)
	reminders = append(reminders, contractReminders(now, contracts)...)

	Sort(reminders)
	return reminders
}

// Sort orders reminders high to low priority, then by most days since update.
// Missing day counts sort as zero and ties keep their input order
func Sort(reminders []Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() < b.Priority.rank()
		}
		return daysOrZero(a.DaysSinceUpdate) > daysOrZero(b.DaysSinceUpdate)
	})
}

// Filter keeps the reminders at or above a priority
func Filter(reminders []Reminder, floor Priority) []Reminder {
	out := []Reminder{}
	for _, r := range reminders {
		if r.Priority.rank() <= floor.rank() {
			out = append(out, r)
		}
	}
	return out
}

// Summarize counts reminders by priority and type
func Summarize(reminders []Reminder) Summary {
	summary := Summary{
		Total:      len(reminders),
		ByPriority: map[Priority]int{PriorityHigh: 0, PriorityMedium: 0, PriorityLow: 0},
		ByType:     map[Type]int{},
	}
	for _, r := range reminders {
		summary.ByPriority[r.Priority]++
		summary.ByType[r.Type]++
	}
	return summary
}

/** ---- RULES ---- */

func campaignReminders(now time.Time, campaigns []hub.Record) []Reminder {
	var out []Reminder

	for _, campaign := range campaigns {
		updatedAt := campaign.FirstNonEmpty(hub.ColUpdatedAt, hub.ColCreatedAt)
		days, ok := DaysSince(now, updatedAt)
		if !ok {
			continue
		}

		for _, rule := range campaignRules {
			if !rule.matches(campaign, days) {
				continue
			}

			out = append(out, Reminder{
				ID:              campaign.ID() + rule.suffix,
				CampaignID:      campaign.ID(),
				InfluencerName:  campaign[hub.ColInfluencerName],
				Type:            rule.kind,
				Reason:          rule.reason,
				Detail:          fmt.Sprintf(rule.detail, days),
				DaysSinceUpdate: intPtr(days),
				Priority:        rule.priority(days),
			})
		}
	}

	return out
}

func contentReminders(now time.Time, campaigns, content []hub.Record) []Reminder {
	var out []Reminder

	// The first campaign with a given ID owns its content
	owners := make(map[string]hub.Record, len(campaigns))
	for _, c := range campaigns {
		if _, seen := owners[c.ID()]; !seen {
			owners[c.ID()] = c
		}
	}

	for _, item := range content {
		campaignID := item[hub.ColCampaignID]
		name := item[hub.ColInfluencerName]

		// Post is live but whitelisting never confirmed
		if owner, ok := owners[campaignID]; ok && owner[hub.ColStatus] == hub.StatusPosted && item["Whitelisting Approved"] == "" {
			var since *int
			if days, ok := DaysSince(now, item[hub.ColCreatedAt]); ok {
				since = intPtr(days)
			}

			out = append(out, Reminder{
				ID:              campaignID + "-whitelisting",
				CampaignID:      campaignID,
				InfluencerName:  name,
				Type:            TypeWhitelisting,
				Reason:          "Confirm whitelisting with creator",
				Detail:          "Post is live but whitelisting not confirmed",
				DaysSinceUpdate: since,
				Priority:        PriorityMedium,
			})
		}

		// Ad access running out
		if daysLeft, ok := DaysUntil(now, item["Ad Access Expiry Date"]); ok && inExpiryWindow(daysLeft) {
			out = append(out, Reminder{
				ID:             campaignID + "-ad-expiry",
				CampaignID:     campaignID,
				InfluencerName: name,
				Type:           TypeAdExpiry,
				Reason:         "Whitelisting expiring soon",
				Detail:         fmt.Sprintf("Ad access expires in %d days", daysLeft),
				Priority:       expiryPriority(daysLeft),
			})
		}
	}

	return out
}

func contractReminders(now time.Time, contracts []hub.Record) []Reminder {
	var out []Reminder

	for _, contract := range contracts {
		daysLeft, ok := DaysUntil(now, contract["End Date"])
		if !ok || !inExpiryWindow(daysLeft) {
			continue
		}

		campaignID := contract[hub.ColCampaignID]
		out = append(out, Reminder{
			ID:             campaignID + "-contract-renewal",
			CampaignID:     campaignID,
			InfluencerName: contract[hub.ColInfluencerName],
			Type:           TypeContractRenewal,
			Reason:         "Contract renewal coming up",
			Detail:         fmt.Sprintf("Contract ends in %d days", daysLeft),
			Priority:       expiryPriority(daysLeft),
		})
	}

	return out
}

/** ---- HELPERS ---- */

func inExpiryWindow(daysLeft int) bool {
	return daysLeft >= 0 && daysLeft <= EXPIRY_WINDOW_DAYS
}

func expiryPriority(daysLeft int) Priority {
	if daysLeft <= EXPIRY_URGENT_DAYS {
		return PriorityHigh
	}
	return PriorityMedium
}

func daysOrZero(days *int) int {
	if days == nil {
		return 0
	}
	return *days
}

func intPtr(v int) *int {
	return &v
}
