package extract

import (
	"fmt"
	"strings"
)

// DefaultCategories is the allowed category vocabulary for recommendations.
var DefaultCategories = []string{
	"restaurant", "hotel", "attraction", "museum", "beach",
	"nightlife", "shopping", "nature", "activity", "transport",
}

// DefaultGeoTypes is the allowed site-type vocabulary for hierarchy nodes.
var DefaultGeoTypes = []string{
	"country", "region", "city", "neighborhood", "landmark",
}

// BuildPrompt assembles the analysis prompt sent to the model. The response
// contract mirrors the analysis shape Decode expects.
func BuildPrompt(categories, geoTypes []string) string {
	return fmt.Sprintf(`Extract the travel recommendations from the input you got.
Your output must be a RFC8259 compliant JSON object with this structure:

{
  "sites_hierarchy": [
    {"site": "Country Name", "site_type": "country", "sub_sites": [
      {"site": "City/Region Name", "site_type": "city", "sub_sites": []}
    ]}
  ],
  "recommendations": [
    {"name": "...", "category": "...", "sentiment": "good | bad",
     "paragraph": "...", "site": "...", "location_type": "specific | general",
     "location": {"address": "", "coordinates": {"lat": 0, "lng": 0}}}
  ],
  "contacts": [
    {"name": "...", "role": "guide | host | rental | restaurant | driver | agency | other",
     "phone": null, "email": null, "website": null, "paragraph": "...", "site": "..."}
  ]
}

Rules:
1. Category must be strictly one of: %s.
2. sites_hierarchy is a nested geographical tree. The first level must be the
   country or countries in the input. Site types must be strictly one of: %s,
   following the path country -> region -> city -> neighborhood/landmark.
   Use english names and include only sites the recommendations mention.
3. If a recommendation is "general" leave the location object empty. Fill
   coordinates and address only when explicitly provided.
4. Extract contacts only when a specific provider is recommended by name with
   direct contact information; set unknown fields to null.
5. Only provide the JSON object. No prose or explanations.`,
		strings.Join(categories, ", "), strings.Join(geoTypes, ", "))
}
