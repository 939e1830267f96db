package hub

import "slices"

// Platforms
const (
	PlatformInstagram = "Instagram"
	PlatformTikTok    = "TikTok"
	PlatformYouTube   = "YouTube"
)

// Campaign tracks
const (
	TypeGifted   = "Gifted"
	TypePaid     = "Paid"
	TypeRetainer = "Retainer"
)

// Campaign statuses
const (
	StatusDMSent           = "DM Sent"
	StatusReachedOut       = "Reached Out"
	StatusInterested       = "Interested"
	StatusAddressCollected = "Address Collected"
	StatusProductSent      = "Product Sent"
	StatusDelivered        = "Delivered"
	StatusPosted           = "Posted"
	StatusConvertedToPaid  = "Converted to Paid"
	StatusRateNegotiating  = "Rate Negotiating"
	StatusContractSent     = "Contract Sent"
	StatusContractSigned   = "Contract Signed"
	StatusComplete         = "Complete"
	StatusNotInterested    = "Not Interested"
	StatusNoResponse       = "No Response"
	StatusTooExpensive     = "Too Expensive"
	StatusGhosted          = "Ghosted"
	StatusActive           = "Active"
	StatusPaused           = "Paused"
)

// Outreach channels
const (
	ChannelInstagramDM        = "Instagram DM"
	ChannelCreatorMarketplace = "Facebook Creator Marketplace"
	ChannelEmail              = "Email"
)

var (
	platforms = []string{PlatformInstagram, PlatformTikTok, PlatformYouTube}
	types     = []string{TypeGifted, TypePaid, TypeRetainer}

	giftedStatuses = []string{
		StatusDMSent, StatusInterested, StatusAddressCollected, StatusProductSent,
		StatusDelivered, StatusPosted, StatusConvertedToPaid,
		StatusNotInterested, StatusNoResponse, StatusTooExpensive,
	}
	paidStatuses = []string{
		StatusReachedOut, StatusInterested, StatusRateNegotiating, StatusContractSent,
		StatusContractSigned, StatusProductSent, StatusPosted, StatusComplete,
		StatusNotInterested, StatusGhosted,
	}
	retainerStatuses = []string{StatusActive, StatusPaused, StatusComplete}
)

// StatusesForType returns the status vocabulary of a track. Unknown tracks fall back to Gifted
func StatusesForType(campaignType string) []string {
	switch campaignType {
	case TypePaid:
		return slices.Clone(paidStatuses)
	case TypeRetainer:
		return slices.Clone(retainerStatuses)
	default:
		return slices.Clone(giftedStatuses)
	}
}

// DefaultStatus is the first status of a track's vocabulary
func DefaultStatus(campaignType string) string {
	return StatusesForType(campaignType)[0]
}

// ValidPlatform reports whether p is a supported platform
func ValidPlatform(p string) bool {
	return slices.Contains(platforms, p)
}

// ValidType reports whether t is a supported campaign track
func ValidType(t string) bool {
	return slices.Contains(types, t)
}

// ValidTriState accepts '', 'Y' and 'N'
func ValidTriState(v string) bool {
	return v == "" || v == "Y" || v == "N"
}
