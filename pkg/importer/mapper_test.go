package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	n := 0
	return Options{
		Now: now,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func source(tabs ...Tab) Source {
	return Source{URL: "https://docs.google.com/spreadsheets/d/abc/edit", Tabs: tabs}
}

func TestMapDedupAcrossTabs(t *testing.T) {
	gifted := Tab{Name: "Gifted 2024", Rows: [][]string{
		{"Name", "Handle", "Status"},
		{"Mia Chen", "@mia", "posted"},
	}}
	paid := Tab{Name: "Paid Collabs", Rows: [][]string{
		{"Influencer", "Status"},
		{"  mia chen ", "negotiating"},
	}}

	result := Map(testOptions(), []Source{source(gifted, paid)})

	require.Len(t, result.Influencers, 1)
	require.Len(t, result.Campaigns, 2)
	id := result.Influencers[0].ID()
	assert.Equal(t, id, result.Campaigns[0][hub.ColInfluencerID])
	assert.Equal(t, id, result.Campaigns[1][hub.ColInfluencerID])

	assert.Equal(t, hub.TypeGifted, result.Campaigns[0][hub.ColType])
	assert.Equal(t, hub.StatusPosted, result.Campaigns[0][hub.ColStatus])
	assert.Equal(t, hub.TypePaid, result.Campaigns[1][hub.ColType])
	assert.Equal(t, hub.StatusRateNegotiating, result.Campaigns[1][hub.ColStatus])
	assert.Empty(t, result.FlaggedRows)
}

func TestMapDedupIsNotFuzzy(t *testing.T) {
	tab := Tab{Name: "Gifted", Rows: [][]string{
		{"Name"},
		{"Mia Chen"},
		{"MiaChen"},
		{"Mia  Chen"},
	}}

	result := Map(testOptions(), []Source{source(tab)})
	assert.Len(t, result.Influencers, 3)
}

func TestMapFlagging(t *testing.T) {
	tab := Tab{Name: "Gifted", Rows: [][]string{
		{"Name", "Handle", "Product"},
		{"", "", "Linen Shirt"},
		{"", "  ", ""},
		{},
		{"Jake", "", ""},
	}}

	result := Map(testOptions(), []Source{source(tab)})

	require.Len(t, result.FlaggedRows, 1)
	flagged := result.FlaggedRows[0]
	assert.Equal(t, "Gifted", flagged.Sheet)
	assert.Equal(t, 2, flagged.Row)
	assert.Equal(t, REASON_NO_INFLUENCER, flagged.Reason)
	assert.Equal(t, []string{"", "", "Linen Shirt"}, flagged.Data)
	assert.Equal(t, 2, result.Skipped)

	require.Len(t, result.Influencers, 1)
	require.Len(t, result.Campaigns, 1)
	assert.Equal(t, "Jake", result.Campaigns[0][hub.ColInfluencerName])
}

func TestMapStatusFallback(t *testing.T) {
	tests := []struct {
		tab    string
		status string
		want   string
	}{
		{"Paid", "not yet replied", hub.StatusReachedOut},
		{"Gifted", "not yet replied", hub.StatusDMSent},
		{"Sheet1", "", hub.StatusDMSent},
		{"Gifted", "Live on feed", hub.StatusPosted},
		{"Gifted", "package received", hub.StatusDelivered},
		{"Gifted", "got address", hub.StatusAddressCollected},
		{"Paid", "Contract signed", hub.StatusContractSigned},
		{"Paid", "contract out", hub.StatusContractSent},
		{"Gifted", "declined", hub.StatusNotInterested},
		{"Gifted", "ghosted", hub.StatusNoResponse},
		// "interested" is checked before "not interested"
		{"Gifted", "not interested", hub.StatusInterested},
	}

	for _, tt := range tests {
		t.Run(tt.tab+"/"+tt.status, func(t *testing.T) {
			tab := Tab{Name: tt.tab, Rows: [][]string{{"Name", "Status"}, {"Sofia", tt.status}}}
			result := Map(testOptions(), []Source{source(tab)})
			require.Len(t, result.Campaigns, 1)
			assert.Equal(t, tt.want, result.Campaigns[0][hub.ColStatus])
		})
	}
}

func TestMapConditionalRecords(t *testing.T) {
	t.Run("tracking only yields a shipment", func(t *testing.T) {
		tab := Tab{Name: "Gifted", Rows: [][]string{
			{"Name", "Tracking #", "Address", "Order"},
			{"Lena", "1Z999", "", ""},
		}}
		result := Map(testOptions(), []Source{source(tab)})
		require.Len(t, result.Shipments, 1)
		assert.Equal(t, "1Z999", result.Shipments[0]["Tracking Number"])
		assert.Equal(t, result.Campaigns[0].ID(), result.Shipments[0][hub.ColCampaignID])
	})

	t.Run("no shipping info yields no shipment", func(t *testing.T) {
		tab := Tab{Name: "Gifted", Rows: [][]string{
			{"Name", "Tracking #", "Address", "Order"},
			{"Lena", "", "", ""},
		}}
		result := Map(testOptions(), []Source{source(tab)})
		assert.Len(t, result.Campaigns, 1)
		assert.Empty(t, result.Shipments)
	})

	t.Run("post link yields content", func(t *testing.T) {
		tab := Tab{Name: "Gifted", Rows: [][]string{
			{"Name", "Post Link", "Whitelisting", "Ad Access Expiry"},
			{"Priya", "https://tiktok.com/v/1", "Y", "2024-07-01"},
		}}
		result := Map(testOptions(), []Source{source(tab)})
		require.Len(t, result.Content, 1)
		assert.Equal(t, "Y", result.Content[0]["Whitelisting Approved"])
		assert.Equal(t, "2024-07-01", result.Content[0]["Ad Access Expiry Date"])
	})

	t.Run("contracts only on paid tabs", func(t *testing.T) {
		rows := [][]string{{"Name", "Rate", "Start Date", "End Date"}, {"Marcus", "$800", "2024-06-01", "2024-09-01"}}

		paid := Map(testOptions(), []Source{source(Tab{Name: "Paid", Rows: rows})})
		require.Len(t, paid.Contracts, 1)
		assert.Equal(t, "$800", paid.Contracts[0]["Monthly Rate"])
		assert.Equal(t, "2024-09-01", paid.Contracts[0]["End Date"])

		gifted := Map(testOptions(), []Source{source(Tab{Name: "Gifted", Rows: rows})})
		assert.Empty(t, gifted.Contracts)
	})
}

func TestMapInfluencerAndCampaignFields(t *testing.T) {
	tab := Tab{Name: "Yes - Both", Rows: [][]string{
		{" Instagram Handle ", "Email", "Product", "DM Link", "Notes"},
		{"@yuki.creates", "yuki@example.com", "Scarf", "https://ig.me/yuki", "  loves knitwear  "},
	}}

	result := Map(testOptions(), []Source{source(tab)})
	require.Len(t, result.Influencers, 1)
	require.Len(t, result.Campaigns, 1)

	inf := result.Influencers[0]
	assert.Equal(t, "", inf["Name"])
	assert.Equal(t, "@yuki.creates", inf["Handle"])
	assert.Equal(t, "https://instagram.com/yuki.creates", inf["Instagram URL"])
	assert.Equal(t, hub.PlatformInstagram, inf["Platform"])
	assert.Equal(t, IMPORT_NOTE, inf["Notes"])
	assert.Equal(t, hub.Timestamp(now), inf[hub.ColCreatedAt])

	c := result.Campaigns[0]
	assert.Equal(t, "@yuki.creates", c[hub.ColInfluencerName])
	assert.Equal(t, hub.ChannelCreatorMarketplace, c["Outreach Channel"])
	assert.Equal(t, "Scarf", c["Product"])
	assert.Equal(t, "https://ig.me/yuki", c["DM Link"])
	assert.Equal(t, "loves knitwear", c["Notes"])
	assert.Equal(t, "yuki@example.com", c["Contact Email"])
	assert.Equal(t, c[hub.ColCreatedAt], c[hub.ColUpdatedAt])
}

func TestFieldReader(t *testing.T) {
	f := fieldReader{
		headers: []string{"full name", "influencer name", "rate"},
		row:     []string{"", "Tom", "   "},
	}

	// first header containing "name" is empty, "influencer" then hits column 1
	assert.Equal(t, "Tom", f.get("name", "influencer"))
	// whitespace-only cells are taken and trimmed to nothing
	assert.Equal(t, "", f.get("rate", "influencer"))
	assert.Equal(t, "", f.get("missing"))

	short := fieldReader{headers: []string{"name", "email"}, row: []string{"Ava"}}
	assert.Equal(t, "", short.get("email"))
}

func TestClassifyTab(t *testing.T) {
	c := classifyTab("Reached Out - Paid")
	assert.True(t, c.Paid)
	assert.True(t, c.ReachedOut)
	assert.False(t, c.Gifted)
	assert.Equal(t, hub.ChannelInstagramDM, c.Channel)

	c = classifyTab("YES BOTH gifts")
	assert.True(t, c.Gifted)
	assert.Equal(t, hub.ChannelCreatorMarketplace, c.Channel)
	assert.Equal(t, hub.TypeGifted, c.campaignType())
}

func TestMapSourceErrors(t *testing.T) {
	sources := []Source{
		{URL: "https://bad.example", Err: errors.New("permission denied")},
		source(Tab{Name: "Gifted", Rows: [][]string{{"Name"}, {"Ava"}}}),
		source(Tab{Name: "Header only", Rows: [][]string{{"Name"}}}),
	}

	result := Map(testOptions(), sources)
	require.Len(t, result.FlaggedRows, 1)
	assert.Equal(t, "https://bad.example", result.FlaggedRows[0].URL)
	assert.Equal(t, "Could not read sheet: permission denied", result.FlaggedRows[0].Error)
	assert.Len(t, result.Campaigns, 1)
}

func TestMapEmpty(t *testing.T) {
	result := Map(Options{Now: now}, nil)
	assert.NotNil(t, result.Influencers)
	assert.NotNil(t, result.FlaggedRows)
	assert.Empty(t, result.Campaigns)
}

func TestPreview(t *testing.T) {
	sources := []Source{
		source(
			Tab{Name: "Gifted", Rows: [][]string{{"Name"}, {"a"}, {"b"}, {"c"}, {"d"}}},
			Tab{Name: "Header only", Rows: [][]string{{"Name", "Rate"}}},
			Tab{Name: "Empty"},
		),
		{URL: "https://bad.example", Err: errors.New("not found")},
	}

	results := Preview(sources)
	require.Len(t, results, 2)

	sheets := results[0].Sheets
	require.Len(t, sheets, 2)
	assert.Nil(t, results[0].Error)
	assert.Equal(t, 4, sheets["Gifted"].RowCount)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, sheets["Gifted"].Sample)
	assert.Equal(t, 0, sheets["Header only"].RowCount)
	assert.Empty(t, sheets["Header only"].Sample)

	assert.Nil(t, results[1].Sheets)
	require.NotNil(t, results[1].Error)
	assert.Equal(t, "not found", *results[1].Error)
}

type stubFetcher struct {
	calls []string
}

func (s *stubFetcher) FetchExternalSheet(_ context.Context, url string) ([]Tab, error) {
	s.calls = append(s.calls, url)
	if url == "bad" {
		return nil, errors.New("boom")
	}
	return []Tab{{Name: "Gifted", Rows: [][]string{{"Name"}, {"Ava"}}}}, nil
}

func TestFetchAll(t *testing.T) {
	fetcher := &stubFetcher{}
	sources := FetchAll(context.Background(), fetcher, []string{" good ", "", "   ", "bad"})

	assert.Equal(t, []string{"good", "bad"}, fetcher.calls)
	require.Len(t, sources, 2)
	assert.NoError(t, sources[0].Err)
	assert.Equal(t, " good ", sources[0].URL)
	assert.EqualError(t, sources[1].Err, "boom")
}
