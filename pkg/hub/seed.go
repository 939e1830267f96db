package hub

import (
	"strconv"
	"strings"
	"time"
)

// SeedData is a demo dataset keyed by tab
type SeedData map[string][]Record

type seedInfluencer struct {
	name, handle, platform, email string
	followers                     int
}

type seedCampaign struct {
	inf                                        int
	campaignType, status, deliverable, product string
	channel, rate                              string
	updatedDaysAgo                             int
}

var demoInfluencers = []seedInfluencer{
	{"Mia Chen", "@mia.chen.lifestyle", PlatformInstagram, "mia@example.com", 45000},
	{"Jake Torres", "@jakefitlife", PlatformInstagram, "jake@example.com", 125000},
	{"Priya Kapoor", "@priya.kapoor", PlatformTikTok, "priya@example.com", 230000},
	{"Lena Schmidt", "@lena_schmidt", PlatformInstagram, "lena@example.com", 68000},
	{"Marcus Lee", "@marcuslee", PlatformYouTube, "marcus@example.com", 89000},
	{"Sofia Rivera", "@sofia.style", PlatformInstagram, "sofia@example.com", 32000},
	{"Aisha Johnson", "@aishabeauty", PlatformTikTok, "aisha@example.com", 510000},
	{"Tom Walsh", "@tomwalksthetalk", PlatformInstagram, "tom@example.com", 21000},
	{"Yuki Tanaka", "@yuki.creates", PlatformInstagram, "yuki@example.com", 175000},
	{"Bianca Flores", "@bianca.daily", PlatformYouTube, "bianca@example.com", 95000},
	{"Ethan Park", "@ethan_park_", PlatformInstagram, "ethan@example.com", 54000},
	{"Camille Dupont", "@camille.dupont", PlatformInstagram, "camille@example.com", 83000},
}

var demoCampaigns = []seedCampaign{
	{0, TypeGifted, StatusDMSent, "1 Instagram Reel", "Italic Cashmere Sweater", ChannelInstagramDM, "", 5},
	{1, TypeGifted, StatusDelivered, "1 Instagram Post + Story", "Italic Linen Shirt", ChannelInstagramDM, "", 16},
	{2, TypeGifted, StatusPosted, "1 TikTok Video", "Italic Silk Blouse", ChannelInstagramDM, "", 8},
	{3, TypeGifted, StatusInterested, "1 Instagram Reel", "Italic Leather Bag", ChannelInstagramDM, "", 4},
	{4, TypeGifted, StatusNoResponse, "1 YouTube Short", "Italic Merino Wool Scarf", ChannelEmail, "", 14},
	{5, TypePaid, StatusContractSigned, "2 Instagram Reels", "Italic Collection SS24", ChannelInstagramDM, "$800", 3},
	{6, TypePaid, StatusPosted, "1 TikTok + 2 Stories", "Italic Sunglasses", ChannelCreatorMarketplace, "$2,500", 6},
	{7, TypePaid, StatusRateNegotiating, "1 Instagram Reel", "Italic Sneakers", ChannelInstagramDM, "$400", 2},
	{8, TypePaid, StatusComplete, "3 Instagram Reels", "Italic Denim Jacket", ChannelEmail, "$1,800", 30},
	{9, TypeRetainer, StatusActive, "4 posts/month", "All Italic products", ChannelEmail, "$3,500/mo", 1},
	{10, TypeRetainer, StatusActive, "2 Reels + 4 Stories/month", "Italic Essentials", ChannelInstagramDM, "$1,500/mo", 7},
	{11, TypeGifted, StatusAddressCollected, "1 Instagram Reel + Story", "Italic Linen Pants", ChannelInstagramDM, "", 2},
}

// GenerateSeedData builds the demo dataset relative to now
func GenerateSeedData(now time.Time, newID func() string) SeedData {
	daysAgo := func(n int) string { return DateOnly(now.AddDate(0, 0, -n)) }
	daysFromNow := func(n int) string { return DateOnly(now.AddDate(0, 0, n)) }

	// Influencers
	influencerIDs := make([]string, len(demoInfluencers))
	influencers := make([]Record, len(demoInfluencers))
	for i, inf := range demoInfluencers {
		influencerIDs[i] = newID()
		influencers[i] = Record{
			ColID:            influencerIDs[i],
			"Name":           inf.name,
			"Handle":         inf.handle,
			"Instagram URL":  InstagramURL(inf.handle),
			"Follower Count": strconv.Itoa(inf.followers),
			"Email":          inf.email,
			"Platform":       inf.platform,
			"Notes":          "",
			ColCreatedAt:     daysAgo(30 - i),
		}
	}

	// Campaigns
	campaigns := make([]Record, len(demoCampaigns))
	for i, c := range demoCampaigns {
		inf := demoInfluencers[c.inf]
		campaigns[i] = Record{
			ColID:              newID(),
			ColInfluencerID:    influencerIDs[c.inf],
			ColInfluencerName:  inf.name,
			ColType:            c.campaignType,
			ColStatus:          c.status,
			"Deliverable":      c.deliverable,
			"Rate":             c.rate,
			"Product":          c.product,
			"Outreach Channel": c.channel,
			"DM Link":          "",
			"Contact Email":    inf.email,
			"Notes":            "",
			ColCreatedAt:       daysAgo(max(20-i, c.updatedDaysAgo)),
			ColUpdatedAt:       daysAgo(c.updatedDaysAgo),
		}
	}
	campaignRef := func(i int) (string, string) {
		return campaigns[i][ColID], demoInfluencers[demoCampaigns[i].inf].name
	}

	// Shipments for delivered/posted gifted campaigns
	shipment := func(camp int, address, order, tracking, shipped, delivered, expected, created string) Record {
		id, name := campaignRef(camp)
		return Record{
			ColID: newID(), ColCampaignID: id, ColInfluencerName: name,
			"Address": address, "Order Number": order, "Tracking Number": tracking,
			"Date Shipped": shipped, "Date Delivered": delivered, "Expected Posting Date": expected,
			ColCreatedAt: created,
		}
	}
	shipments := []Record{
		shipment(1, "123 Fitness Ave, Los Angeles, CA 90001", "ORD-20241", "1Z999AA10123456784", daysAgo(20), daysAgo(18), daysAgo(4), daysAgo(21)),
		shipment(2, "456 Creator Blvd, New York, NY 10001", "ORD-20242", "1Z999AA10123456785", daysAgo(15), daysAgo(12), daysAgo(9), daysAgo(16)),
		shipment(5, "789 Style St, Miami, FL 33101", "ORD-20243", "1Z999AA10123456786", daysAgo(6), daysAgo(4), daysFromNow(5), daysAgo(7)),
		shipment(11, "Awaiting confirmation", "", "", "", "", daysFromNow(14), daysAgo(2)),
	}

	// Content for posted campaigns
	content := func(camp int, link, posted, whitelisted, expiry, notes string) Record {
		id, name := campaignRef(camp)
		return Record{
			ColID: newID(), ColCampaignID: id, ColInfluencerName: name,
			"Post Link": link, "Posted Date": posted, "Whitelisting Approved": whitelisted,
			"Ad Access Expiry Date": expiry, "Usage Rights Notes": notes, ColCreatedAt: posted,
		}
	}
	contents := []Record{
		content(2, "https://www.tiktok.com/@priya.kapoor/video/example", daysAgo(8), "", daysFromNow(22), "Usage rights for 30 days"),
		content(6, "https://www.tiktok.com/@aishabeauty/video/example", daysAgo(6), "Y", daysFromNow(24), "Whitelisting approved for 30 days"),
		content(8, "https://www.instagram.com/p/example", daysAgo(30), "Y", daysFromNow(2), "Full rights granted"),
	}

	// Contracts for paid/retainer campaigns
	contract := func(camp int, start, end, monthly, total, deliverables, whitelisting, created string) Record {
		id, name := campaignRef(camp)
		return Record{
			ColID: newID(), ColCampaignID: id, ColInfluencerName: name,
			"Start Date": start, "End Date": end, "Monthly Rate": monthly, "Total Value": total,
			"Deliverables Per Month": deliverables, "Whitelisting Required": whitelisting,
			"Contract File URL": "", "Signed": "Y", ColCreatedAt: created,
		}
	}
	contracts := []Record{
		contract(5, daysAgo(10), daysFromNow(20), "800", "800", "2 Reels", "N", daysAgo(12)),
		contract(9, daysAgo(60), daysFromNow(30), "3500", "10500", "4 posts", "Y", daysAgo(62)),
		contract(10, daysAgo(30), daysFromNow(60), "1500", "4500", "2 Reels + 4 Stories", "Y", daysAgo(32)),
	}

	// Activity log
	activity := func(camp int, note, at string) Record {
		id, name := campaignRef(camp)
		return Record{
			ColID: newID(), ColCampaignID: id, ColInfluencerName: name,
			"Note": note, "Created By": "Team", ColCreatedAt: at,
		}
	}
	activityLog := []Record{
		activity(0, "Sent DM on Instagram introducing Italic brand", daysAgo(5)+"T10:00:00Z"),
		activity(1, "Package delivered per tracking update", daysAgo(18)+"T14:30:00Z"),
		activity(2, "Post went live - great engagement! 12k views in first hour", daysAgo(8)+"T09:15:00Z"),
		activity(6, "TikTok posted, whitelisting approved. Performance looks strong.", daysAgo(6)+"T11:00:00Z"),
		activity(9, "Monthly check-in call completed. Great relationship.", daysAgo(1)+"T15:00:00Z"),
	}

	return SeedData{
		TabInfluencers: influencers,
		TabCampaigns:   campaigns,
		TabShipments:   shipments,
		TabContent:     contents,
		TabContracts:   contracts,
		TabActivityLog: activityLog,
	}
}

// InstagramURL builds a profile link from a handle, dropping its first '@'
func InstagramURL(handle string) string {
	if handle == "" {
		return ""
	}
	return "https://instagram.com/" + strings.Replace(handle, "@", "", 1)
}
