package reminders

import "github.com/ethanbaker/influencer-hub/pkg/hub"

const (
	// EXPIRY_WINDOW_DAYS is how far ahead ad access and contract end dates are watched
	EXPIRY_WINDOW_DAYS = 30

	// EXPIRY_URGENT_DAYS marks an expiring item as high priority
	EXPIRY_URGENT_DAYS = 7

	// ESCALATE_AFTER_DAYS turns a stale follow-up into a high priority one
	ESCALATE_AFTER_DAYS = 7
)

// campaignRule fires when a campaign sits in a status for at least minDays
type campaignRule struct {
	status     string
	giftedOnly bool
	minDays    int

	suffix   string
	kind     Type
	reason   string
	detail   string // printf format taking the day count
	priority func(days int) Priority
}

func escalating(days int) Priority {
	if days >= ESCALATE_AFTER_DAYS {
		return PriorityHigh
	}
	return PriorityMedium
}

func fixed(p Priority) func(int) Priority {
	return func(int) Priority { return p }
}

// campaignRules are evaluated in order against every campaign
var campaignRules = []campaignRule{
	{
		status: hub.StatusDMSent, minDays: 3,
		suffix: "-dm-sent", kind: TypeFollowUp,
		reason: "Follow up — no response yet", detail: "DM sent %d days ago",
		priority: escalating,
	},
	{
		status: hub.StatusInterested, minDays: 3,
		suffix: "-interested", kind: TypeFollowUp,
		reason: "Follow up — still interested?", detail: "Marked interested %d days ago",
		priority: escalating,
	},
	{
		status: hub.StatusDelivered, minDays: 14,
		suffix: "-delivered-no-post", kind: TypeCheckIn,
		reason: "Check in — product delivered, no post yet", detail: "Delivered %d days ago",
		priority: fixed(PriorityHigh),
	},
	{
		status: hub.StatusProductSent, minDays: 10,
		suffix: "-shipped-no-delivery", kind: TypeCheckTracking,
		reason: "Check tracking — may be delivered", detail: "Shipped %d days ago",
		priority: fixed(PriorityMedium),
	},
	{
		status: hub.StatusPosted, giftedOnly: true, minDays: 7,
		suffix: "-posted-gifted", kind: TypeConversion,
		reason: "Ask if they want a paid collab", detail: "Posted %d days ago",
		priority: fixed(PriorityMedium),
	},
	{
		status: hub.StatusReachedOut, minDays: 3,
		suffix: "-reached-out", kind: TypeFollowUp,
		reason: "Follow up — no response yet", detail: "Reached out %d days ago",
		priority: escalating,
	},
}

// matches reports whether the rule applies to a campaign that has been idle for days
func (r campaignRule) matches(campaign hub.Record, days int) bool {
	if campaign[hub.ColStatus] != r.status {
		return false
	}
	if r.giftedOnly && campaign[hub.ColType] != hub.TypeGifted {
		return false
	}
	return days >= r.minDays
}
