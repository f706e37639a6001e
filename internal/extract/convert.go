package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/waymarkhq/waymark/pkg/facts"
	"github.com/waymarkhq/waymark/pkg/logging"
	"github.com/waymarkhq/waymark/pkg/reconcile"
	"github.com/waymarkhq/waymark/pkg/sites"
	"github.com/waymarkhq/waymark/pkg/trips"
)

// analysis is the shape upstream extraction produces. Node keys follow the
// extractor's vocabulary (site/sub_sites), not the canonical document's.
type analysis struct {
	SitesHierarchy  []siteNode       `json:"sites_hierarchy"`
	Recommendations []recommendation `json:"recommendations"`
	Contacts        []contact        `json:"contacts"`
}

type siteNode struct {
	Site     string     `json:"site"`
	SiteType string     `json:"site_type"`
	SubSites []siteNode `json:"sub_sites"`
}

type recommendation struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Sentiment    string          `json:"sentiment"`
	Paragraph    string          `json:"paragraph"`
	Site         string          `json:"site"`
	LocationType string          `json:"location_type"`
	Location     json.RawMessage `json:"location"`
}

type contact struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
	Paragraph string `json:"paragraph"`
	Site      string `json:"site"`
}

// Decode turns a validated envelope into a fact bundle. The analysis blob is
// untrusted: a shape that fails to decode yields an empty bundle, never an
// error.
func Decode(ctx context.Context, env *Envelope) trips.Bundle {
	var parsed analysis
	if err := json.Unmarshal(env.Analysis, &parsed); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("recommendation_id", env.RecommendationID).
			Msg("Discarding unreadable analysis payload")
		return trips.Bundle{}
	}

	bundle := trips.Bundle{}
	refs := envelopeRefs(env)

	for _, rec := range parsed.Recommendations {
		bundle.Entities = append(bundle.Entities, trips.EntityFacts{
			Kind:   trips.KindPointOfInterest,
			Name:   rec.Name,
			Status: reconcile.StatusCandidate,
			Refs:   refs,
			Data:   recommendationFacts(env, rec),
		})
	}
	for _, c := range parsed.Contacts {
		bundle.Entities = append(bundle.Entities, trips.EntityFacts{
			Kind:   trips.KindContact,
			Name:   c.Name,
			Status: reconcile.StatusCandidate,
			Refs:   refs,
			Data:   contactFacts(env, c),
		})
	}
	for _, node := range parsed.SitesHierarchy {
		if tree := node.toSite(); tree != nil {
			bundle.Observed = append(bundle.Observed, tree)
		}
	}
	return bundle
}

// envelopeRefs derives the provenance reference for the source document.
func envelopeRefs(env *Envelope) reconcile.RefSet {
	category := reconcile.RefRecommendations
	if env.InputType == "email" {
		category = reconcile.RefEmails
	}
	refs := reconcile.RefSet{}
	refs.Add(category, env.RecommendationID)
	return refs
}

func (n siteNode) toSite() *sites.Site {
	if strings.TrimSpace(n.Site) == "" {
		return nil
	}
	out := &sites.Site{Name: n.Site, Type: sites.SiteType(n.SiteType)}
	for _, sub := range n.SubSites {
		if child := sub.toSite(); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}

// recommendationFacts builds the partial record for a recommendation.
// Blank fields are omitted so the merge treats them as unanswered.
func recommendationFacts(env *Envelope, rec recommendation) facts.Value {
	fields := map[string]facts.Value{}
	setString(fields, "category", rec.Category)
	setString(fields, "sentiment", rec.Sentiment)
	setString(fields, "paragraph", rec.Paragraph)
	setString(fields, "site", rec.Site)
	setString(fields, "location_type", rec.LocationType)

	if len(rec.Location) > 0 {
		var loc facts.Value
		if err := json.Unmarshal(rec.Location, &loc); err == nil && loc.Present() {
			fields["location"] = loc
		}
	}
	if source := sourceFacts(env); source.Present() {
		fields["source"] = source
	}
	return facts.Record(fields)
}

func contactFacts(env *Envelope, c contact) facts.Value {
	fields := map[string]facts.Value{}
	setString(fields, "role", c.Role)
	setString(fields, "phone", c.Phone)
	setString(fields, "email", c.Email)
	setString(fields, "website", c.Website)
	setString(fields, "paragraph", c.Paragraph)
	setString(fields, "site", c.Site)

	if source := sourceFacts(env); source.Present() {
		fields["source"] = source
	}
	return facts.Record(fields)
}

func sourceFacts(env *Envelope) facts.Value {
	fields := map[string]facts.Value{}
	setString(fields, "url", env.SourceURL)
	setString(fields, "title", env.SourceTitle)
	setString(fields, "image", env.SourceImage)
	if len(fields) == 0 {
		return facts.Absent()
	}
	return facts.Record(fields)
}

func setString(fields map[string]facts.Value, name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fields[name] = facts.String(value)
}
