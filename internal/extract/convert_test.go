package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/reconcile"
	"github.com/waymarkhq/waymark/pkg/sites"
	"github.com/waymarkhq/waymark/pkg/trips"
)

func TestDecodeFullAnalysis(t *testing.T) {
	env := &Envelope{
		InputType:        "recommendation",
		RecommendationID: "rec-1",
		SourceURL:        "https://example.com/guide",
		SourceTitle:      "Tel Aviv Guide",
		Analysis: json.RawMessage(`{
			"sites_hierarchy": [
				{"site": "Israel", "site_type": "country", "sub_sites": [
					{"site": "Tel Aviv", "site_type": "city"}
				]}
			],
			"recommendations": [
				{"name": "Hilton", "category": "hotel", "sentiment": "positive",
				 "site": "Tel Aviv",
				 "location": {"address": "Independence Park", "coordinates": {"lat": 32.08, "lng": 34.77}}}
			],
			"contacts": [
				{"name": "Dana", "role": "guide", "email": "dana@example.com"}
			]
		}`),
	}

	bundle := Decode(context.Background(), env)
	require.Len(t, bundle.Entities, 2)
	require.Len(t, bundle.Observed, 1)

	poi := bundle.Entities[0]
	assert.Equal(t, trips.KindPointOfInterest, poi.Kind)
	assert.Equal(t, "Hilton", poi.Name)
	assert.Equal(t, reconcile.StatusCandidate, poi.Status)
	assert.Equal(t, []string{"rec-1"}, poi.Refs[reconcile.RefRecommendations])

	category, _ := poi.Data.Field("category").AsString()
	assert.Equal(t, "hotel", category)
	assert.True(t, poi.Data.Field("location").HasField("coordinates"))
	title, _ := poi.Data.Field("source").Field("title").AsString()
	assert.Equal(t, "Tel Aviv Guide", title)

	person := bundle.Entities[1]
	assert.Equal(t, trips.KindContact, person.Kind)
	assert.Equal(t, "Dana", person.Name)
	email, _ := person.Data.Field("email").AsString()
	assert.Equal(t, "dana@example.com", email)

	tree := bundle.Observed[0]
	assert.Equal(t, "Israel", tree.Name)
	assert.Equal(t, sites.SiteTypeCountry, tree.Type)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "Tel Aviv", tree.Children[0].Name)
}

func TestDecodeUnreadableAnalysis(t *testing.T) {
	env := &Envelope{
		InputType:        "recommendation",
		RecommendationID: "rec-1",
		Analysis:         json.RawMessage(`{"recommendations": "not a list"}`),
	}

	bundle := Decode(context.Background(), env)
	assert.Empty(t, bundle.Entities)
	assert.Empty(t, bundle.Observed)
}

func TestDecodeBlankFieldsOmitted(t *testing.T) {
	env := &Envelope{
		InputType:        "recommendation",
		RecommendationID: "rec-1",
		Analysis: json.RawMessage(`{
			"recommendations": [{"name": "Hilton", "category": "", "sentiment": "  "}]
		}`),
	}

	bundle := Decode(context.Background(), env)
	require.Len(t, bundle.Entities, 1)

	data := bundle.Entities[0].Data
	assert.False(t, data.HasField("category"), "blank fields must stay absent, not empty")
	assert.False(t, data.HasField("sentiment"))
	assert.False(t, data.HasField("source"), "no source metadata on the envelope")
}

func TestEnvelopeRefsByInputType(t *testing.T) {
	email := envelopeRefs(&Envelope{InputType: "email", RecommendationID: "msg-1"})
	assert.Equal(t, []string{"msg-1"}, email[reconcile.RefEmails])
	assert.Empty(t, email[reconcile.RefRecommendations])

	manual := envelopeRefs(&Envelope{InputType: "manual", RecommendationID: "rec-9"})
	assert.Equal(t, []string{"rec-9"}, manual[reconcile.RefRecommendations])
}

func TestSiteNodeConversionSkipsBlankNames(t *testing.T) {
	node := siteNode{
		Site:     "Israel",
		SiteType: "country",
		SubSites: []siteNode{
			{Site: "  ", SiteType: "city"},
			{Site: "Tel Aviv", SiteType: "city"},
		},
	}

	tree := node.toSite()
	require.NotNil(t, tree)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "Tel Aviv", tree.Children[0].Name)

	assert.Nil(t, siteNode{Site: ""}.toSite())
}
