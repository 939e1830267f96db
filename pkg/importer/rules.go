package importer

import "github.com/ethanbaker/influencer-hub/pkg/hub"

const (
	// IMPORT_NOTE marks influencers created by an import
	IMPORT_NOTE = "Imported from existing sheet"

	// REASON_NO_INFLUENCER is the flag reason for rows without a name or handle
	REASON_NO_INFLUENCER = "Could not identify influencer (no name or handle)"

	// PREVIEW_SAMPLE_ROWS is how many data rows a preview shows per tab
	PREVIEW_SAMPLE_ROWS = 3
)

// statusRule maps free-text status keywords onto a canonical status
type statusRule struct {
	keywords []string
	status   string
}

// statusRules are checked in order against the lower-cased status cell; the first hit wins
var statusRules = []statusRule{
	{[]string{"posted", "live"}, hub.StatusPosted},
	{[]string{"delivered", "received"}, hub.StatusDelivered},
	{[]string{"shipped", "sent"}, hub.StatusProductSent},
	{[]string{"address"}, hub.StatusAddressCollected},
	{[]string{"interested", "yes"}, hub.StatusInterested},
	{[]string{"signed"}, hub.StatusContractSigned},
	{[]string{"contract"}, hub.StatusContractSent},
	{[]string{"negotiat"}, hub.StatusRateNegotiating},
	{[]string{"not interested", "declined"}, hub.StatusNotInterested},
	{[]string{"no response", "ghost"}, hub.StatusNoResponse},
}

// Header candidates per field, tried in order
var (
	nameFields   = []string{"name", "influencer"}
	handleFields = []string{"handle", "username", "instagram", "@"}
	emailFields  = []string{"email", "contact"}
	statusFields = []string{"status", "stage"}

	deliverableFields = []string{"deliverable", "content", "post type"}
	rateFields        = []string{"rate", "fee", "price", "$"}
	productFields     = []string{"product", "item", "gift"}
	dmLinkFields      = []string{"dm link", "link", "url"}
	noteFields        = []string{"note", "comment", "remark"}

	addressFields   = []string{"address", "shipping"}
	orderFields     = []string{"order", "order no", "order number", "order #"}
	trackingFields  = []string{"tracking", "track"}
	shippedFields   = []string{"shipped", "ship date"}
	deliveredFields = []string{"delivered", "delivery date"}
	expectedFields  = []string{"expected", "post date"}

	postLinkFields     = []string{"post link", "post url", "instagram link", "tiktok link"}
	postedDateFields   = []string{"posted date", "post date", "date posted"}
	whitelistFields    = []string{"whitelist", "whitelisting"}
	adExpiryFields     = []string{"expiry", "ad access", "access expiry"}
	contractRateFields = []string{"rate", "fee", "price"}
	startFields        = []string{"start", "start date"}
	endFields          = []string{"end", "end date"}
	perMonthFields     = []string{"deliverable", "content"}
	signedFields       = []string{"signed", "contract signed"}
)

// Tab name keywords
var (
	giftedTabKeywords     = []string{"gifted", "gift"}
	paidTabKeywords       = []string{"paid"}
	reachedOutTabKeywords = []string{"reached out", "outreach"}
)
