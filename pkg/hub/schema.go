package hub

/** Tabs and column layout shared by every store */

// Tab names, one per record collection
const (
	TabInfluencers = "Influencers"
	TabCampaigns   = "Campaigns"
	TabShipments   = "Shipments"
	TabContent     = "Content"
	TabContracts   = "Contracts"
	TabActivityLog = "ActivityLog"
)

// DEFAULT_SPREADSHEET_TITLE is used to locate or create the backing spreadsheet
const DEFAULT_SPREADSHEET_TITLE = "Italic Influencer Hub"

// Column names used by more than one tab
const (
	ColID             = "ID"
	ColCampaignID     = "Campaign ID"
	ColInfluencerID   = "Influencer ID"
	ColInfluencerName = "Influencer Name"
	ColCreatedAt      = "Created At"
	ColUpdatedAt      = "Updated At"
	ColStatus         = "Status"
	ColType           = "Type"
)

// Column describes one header of a tab and how it is accepted from request bodies
type Column struct {
	Header  string // Canonical header, also the record key
	Alias   string // camelCase JSON alias accepted in request bodies
	Default string // Value used on create when the body leaves it empty
}

// Schema is the ordered column layout of a tab
type Schema struct {
	Tab     string
	Columns []Column
}

// Headers returns the column headers in order
func (s Schema) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

// Project returns the record's values in header order, empty for missing keys
func (s Schema) Project(rec Record) []string {
	row := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		row[i] = rec[col.Header]
	}
	return row
}

// FromRow zips a row of cells with the given headers. Short rows are padded with empty values
func FromRow(headers []string, row []string) Record {
	rec := make(Record, len(headers))
	for i, header := range headers {
		if i < len(row) {
			rec[header] = row[i]
		} else {
			rec[header] = ""
		}
	}
	return rec
}

var schemas = []Schema{
	{
		Tab: TabInfluencers,
		Columns: []Column{
			{Header: ColID, Alias: "id"},
			{Header: "Name", Alias: "name"},
			{Header: "Handle", Alias: "handle"},
			{Header: "Instagram URL", Alias: "instagramUrl"},
			{Header: "Follower Count", Alias: "followerCount"},
			{Header: "Email", Alias: "email"},
			{Header: "Platform", Alias: "platform", Default: PlatformInstagram},
			{Header: "Notes", Alias: "notes"},
			{Header: ColCreatedAt, Alias: "createdAt"},
		},
	},
	{
		Tab: TabCampaigns,
		Columns: []Column{
			{Header: ColID, Alias: "id"},
			{Header: ColInfluencerID, Alias: "influencerId"},
			{Header: ColInfluencerName, Alias: "influencerName"},
			{Header: ColType, Alias: "type", Default: TypeGifted},
			{Header: ColStatus, Alias: "status"},
			{Header: "Deliverable", Alias: "deliverable"},
			{Header: "Rate", Alias: "rate"},
			{Header: "Product", Alias: "product"},
			{Header: "Outreach Channel", Alias: "outreachChannel"},
			{Header: "DM Link", Alias: "dmLink"},
			{Header: "Contact Email", Alias: "contactEmail"},
			{Header: "Notes", Alias: "notes"},
			{Header: ColCreatedAt, Alias: "createdAt"},
			{Header: ColUpdatedAt, Alias: "updatedAt"},
		},
	},
	{
		Tab: TabShipments,
		Columns: []Column{
			{Header: ColID, Alias: "id"},
			{Header: ColCampaignID, Alias: "campaignId"},
			{Header: ColInfluencerName, Alias: "influencerName"},
			{Header: "Address", Alias: "address"},
			{Header: "Order Number", Alias: "orderNumber"},
			{Header: "Tracking Number", Alias: "trackingNumber"},
			{Header: "Date Shipped", Alias: "dateShipped"},
			{Header: "Date Delivered", Alias: "dateDelivered"},
			{Header: "Expected Posting Date", Alias: "expectedPostingDate"},
			{Header: ColCreatedAt, Alias: "createdAt"},
		},
	},
	{
		Tab: TabContent,
		Columns: []Column{
			{Header: ColID, Alias: "id"},
			{Header: ColCampaignID, Alias: "campaignId"},
			{Header: ColInfluencerName, Alias: "influencerName"},
			{Header: "Post Link", Alias: "postLink"},
			{Header: "Posted Date", Alias: "postedDate"},
			{Header: "Whitelisting Approved", Alias: "whitelistingApproved"},
			{Header: "Ad Access Expiry Date", Alias: "adAccessExpiryDate"},
			{Header: "Usage Rights Notes", Alias: "usageRightsNotes"},
			{Header: ColCreatedAt, Alias: "createdAt"},
		},
	},
	{
		Tab: TabContracts,
		Columns: []Column{
			{Header: ColID, Alias: "id"},
			{Header: ColCampaignID, Alias: "campaignId"},
			{Header: ColInfluencerName, Alias: "influencerName"},
			{Header: "Start Date", Alias: "startDate"},
			{Header: "End Date", Alias: "endDate"},
			{Header: "Monthly Rate", Alias: "monthlyRate"},
			{Header: "Total Value", Alias: "totalValue"},
			{Header: "Deliverables Per Month", Alias: "deliverablesPerMonth"},
			{Header: "Whitelisting Required", Alias: "whitelistingRequired"},
			{Header: "Contract File URL", Alias: "contractFileUrl"},
			{Header: "Signed", Alias: "signed"},
			{Header: ColCreatedAt, Alias: "createdAt"},
		},
	},
	{
		Tab: TabActivityLog,
		Columns: []Column{
			{Header: ColID, Alias: "id"},
			{Header: ColCampaignID, Alias: "campaignId"},
			{Header: ColInfluencerName, Alias: "influencerName"},
			{Header: "Note", Alias: "note"},
			{Header: "Created By", Alias: "createdBy", Default: "Team"},
			{Header: ColCreatedAt, Alias: "createdAt"},
		},
	},
}

// Schemas returns every tab schema in spreadsheet order
func Schemas() []Schema {
	out := make([]Schema, len(schemas))
	copy(out, schemas)
	return out
}

// Tabs returns every tab name in spreadsheet order
func Tabs() []string {
	tabs := make([]string, len(schemas))
	for i, s := range schemas {
		tabs[i] = s.Tab
	}
	return tabs
}

// SchemaFor returns the schema of a tab
func SchemaFor(tab string) (Schema, error) {
	for _, s := range schemas {
		if s.Tab == tab {
			return s, nil
		}
	}
	return Schema{}, &UnknownTabError{Tab: tab}
}
