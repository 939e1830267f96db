package importer

import (
	"fmt"
	"strings"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/google/uuid"
)

// classification is what a tab's name says about its rows
type classification struct {
	Gifted     bool
	Paid       bool
	ReachedOut bool // recognized, not yet used when building records
	Channel    string
}

func classifyTab(name string) classification {
	lower := strings.ToLower(name)

	c := classification{
		Gifted:     containsAny(lower, giftedTabKeywords),
		Paid:       containsAny(lower, paidTabKeywords),
		ReachedOut: containsAny(lower, reachedOutTabKeywords),
		Channel:    hub.ChannelInstagramDM,
	}
	if strings.Contains(lower, "yes") && strings.Contains(lower, "both") {
		c.Channel = hub.ChannelCreatorMarketplace
	}
	return c
}

// campaignType is the track implied by the tab
func (c classification) campaignType() string {
	if c.Paid {
		return hub.TypePaid
	}
	return hub.TypeGifted
}

// mapStatus resolves free text to a canonical status, falling back on the track default
func (c classification) mapStatus(raw string) string {
	raw = strings.ToLower(raw)
	for _, rule := range statusRules {
		if containsAny(raw, rule.keywords) {
			return rule.status
		}
	}
	if c.Paid {
		return hub.StatusReachedOut
	}
	return hub.StatusDMSent
}

// influencerIndex dedups influencers within one mapping run
type influencerIndex map[string]string

func dedupKey(name, handle string) string {
	key := name
	if key == "" {
		key = handle
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// mapper carries the state of a single Map call
type mapper struct {
	opts   Options
	now    string
	index  influencerIndex
	result *Result
}

// Map converts fetched sources into hub records. Unreadable sources and unidentifiable
// rows end up in FlaggedRows; Map itself never fails
func Map(opts Options, sources []Source) *Result {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	m := &mapper{
		opts:  opts,
		now:   hub.Timestamp(opts.Now),
		index: influencerIndex{},
		result: &Result{
			Influencers: []hub.Record{},
			Campaigns:   []hub.Record{},
			Shipments:   []hub.Record{},
			Content:     []hub.Record{},
			Contracts:   []hub.Record{},
			FlaggedRows: []FlaggedRow{},
		},
	}

	for _, source := range sources {
		if source.Err != nil {
			m.result.FlaggedRows = append(m.result.FlaggedRows, FlaggedRow{
				URL:   source.URL,
				Error: fmt.Sprintf("Could not read sheet: %s", source.Err.Error()),
			})
			continue
		}

		for _, tab := range source.Tabs {
			m.mapTab(tab)
		}
	}

	return m.result
}

func (m *mapper) mapTab(tab Tab) {
	if len(tab.Rows) < 2 {
		return
	}

	headers := make([]string, len(tab.Rows[0]))
	for i, h := range tab.Rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	class := classifyTab(tab.Name)

	for i, row := range tab.Rows[1:] {
		if blankRow(row) {
			m.result.Skipped++
			continue
		}
		m.mapRow(tab.Name, i+2, class, fieldReader{headers: headers, row: row})
	}
}

func (m *mapper) mapRow(sheet string, displayRow int, class classification, f fieldReader) {
	name := f.get(nameFields...)
	handle := f.get(handleFields...)
	email := f.get(emailFields...)

	if name == "" && handle == "" {
		m.result.FlaggedRows = append(m.result.FlaggedRows, FlaggedRow{
			Sheet:  sheet,
			Row:    displayRow,
			Reason: REASON_NO_INFLUENCER,
			Data:   f.row,
		})
		return
	}

	displayName := name
	if displayName == "" {
		displayName = handle
	}

	influencerID := m.influencer(name, handle, email)
	campaignID := m.opts.NewID()

	m.result.Campaigns = append(m.result.Campaigns, hub.Record{
		hub.ColID:             campaignID,
		hub.ColInfluencerID:   influencerID,
		hub.ColInfluencerName: displayName,
		hub.ColType:           class.campaignType(),
		hub.ColStatus:         class.mapStatus(f.get(statusFields...)),
		"Deliverable":         f.get(deliverableFields...),
		"Rate":                f.get(rateFields...),
		"Product":             f.get(productFields...),
		"Outreach Channel":    class.Channel,
		"DM Link":             f.get(dmLinkFields...),
		"Contact Email":       email,
		"Notes":               f.get(noteFields...),
		hub.ColCreatedAt:      m.now,
		hub.ColUpdatedAt:      m.now,
	})

	address := f.get(addressFields...)
	order := f.get(orderFields...)
	tracking := f.get(trackingFields...)
	if address != "" || order != "" || tracking != "" {
		m.result.Shipments = append(m.result.Shipments, hub.Record{
			hub.ColID:               m.opts.NewID(),
			hub.ColCampaignID:       campaignID,
			hub.ColInfluencerName:   displayName,
			"Address":               address,
			"Order Number":          order,
			"Tracking Number":       tracking,
			"Date Shipped":          f.get(shippedFields...),
			"Date Delivered":        f.get(deliveredFields...),
			"Expected Posting Date": f.get(expectedFields...),
			hub.ColCreatedAt:        m.now,
		})
	}

	if postLink := f.get(postLinkFields...); postLink != "" {
		m.result.Content = append(m.result.Content, hub.Record{
			hub.ColID:               m.opts.NewID(),
			hub.ColCampaignID:       campaignID,
			hub.ColInfluencerName:   displayName,
			"Post Link":             postLink,
			"Posted Date":           f.get(postedDateFields...),
			"Whitelisting Approved": f.get(whitelistFields...),
			"Ad Access Expiry Date": f.get(adExpiryFields...),
			"Usage Rights Notes":    "",
			hub.ColCreatedAt:        m.now,
		})
	}

	if !class.Paid {
		return
	}
	rate := f.get(contractRateFields...)
	start := f.get(startFields...)
	end := f.get(endFields...)
	if rate != "" || start != "" || end != "" {
		m.result.Contracts = append(m.result.Contracts, hub.Record{
			hub.ColID:                m.opts.NewID(),
			hub.ColCampaignID:        campaignID,
			hub.ColInfluencerName:    displayName,
			"Start Date":             start,
			"End Date":               end,
			"Monthly Rate":           rate,
			"Total Value":            "",
			"Deliverables Per Month": f.get(perMonthFields...),
			"Whitelisting Required":  "",
			"Contract File URL":      "",
			"Signed":                 f.get(signedFields...),
			hub.ColCreatedAt:         m.now,
		})
	}
}

// influencer returns the id for a name/handle pair, creating the influencer on first sight
func (m *mapper) influencer(name, handle, email string) string {
	key := dedupKey(name, handle)
	if id, ok := m.index[key]; ok {
		return id
	}

	id := m.opts.NewID()

	m.result.Influencers = append(m.result.Influencers, hub.Record{
		hub.ColID:        id,
		"Name":           name,
		"Handle":         handle,
		"Instagram URL":  hub.InstagramURL(handle),
		"Follower Count": "",
		"Email":          email,
		"Platform":       hub.PlatformInstagram,
		"Notes":          IMPORT_NOTE,
		hub.ColCreatedAt: m.now,
	})
	m.index[key] = id
	return id
}

/** ---- FIELDS ---- */

// fieldReader resolves canonical fields from a row by header substring
type fieldReader struct {
	headers []string
	row     []string
}

// get tries each candidate in order. Only the first header containing a candidate is
// considered; an empty cell there moves on to the next candidate
func (f fieldReader) get(candidates ...string) string {
	for _, candidate := range candidates {
		candidate = strings.ToLower(candidate)

		idx := -1
		for i, h := range f.headers {
			if strings.Contains(h, candidate) {
				idx = i
				break
			}
		}
		if idx < 0 || idx >= len(f.row) || f.row[idx] == "" {
			continue
		}
		return strings.TrimSpace(f.row[idx])
	}
	return ""
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
