package reminders

// Priority of a reminder
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities for sorting, most urgent first
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority accepts high, medium and low; ok is false otherwise
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(s); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	default:
		return "", false
	}
}

// Type classifies what action a reminder asks for
type Type string

const (
	TypeFollowUp        Type = "follow_up"
	TypeCheckIn         Type = "check_in"
	TypeCheckTracking   Type = "check_tracking"
	TypeConversion      Type = "conversion"
	TypeWhitelisting    Type = "whitelisting"
	TypeAdExpiry        Type = "ad_expiry"
	TypeContractRenewal Type = "contract_renewal"
)

// Reminder is a derived follow-up action. It is recomputed on every read
type Reminder struct {
	ID              string   `json:"id"`
	CampaignID      string   `json:"campaignId"`
	InfluencerName  string   `json:"influencerName"`
	Type            Type     `json:"type"`
	Reason          string   `json:"reason"`
	Detail          string   `json:"detail"`
	DaysSinceUpdate *int     `json:"daysSinceUpdate"`
	Priority        Priority `json:"priority"`
}

// Summary counts reminders by priority and by type
type Summary struct {
	Total      int              `json:"total"`
	ByPriority map[Priority]int `json:"byPriority"`
	ByType     map[Type]int     `json:"byType"`
}
