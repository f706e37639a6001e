package sites_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/sites"
)

func TestFlatten(t *testing.T) {
	root := &sites.Site{
		Name: "Israel",
		Type: sites.SiteTypeCountry,
		Children: []*sites.Site{
			{Name: "Tel Aviv", Type: sites.SiteTypeCity, Children: []*sites.Site{
				{Name: "Jaffa", Type: sites.SiteTypeNeighborhood},
			}},
		},
	}

	flat := sites.Flatten(root)
	require.Len(t, flat, 3)

	assert.Equal(t, []string{"Israel"}, flat[0].Path)
	assert.Equal(t, []string{"Israel", "Tel Aviv"}, flat[1].Path)
	assert.Equal(t, []string{"Israel", "Tel Aviv", "Jaffa"}, flat[2].Path)

	assert.Equal(t, "Jaffa, Tel Aviv, Israel", flat[2].Breadcrumb())
	assert.Equal(t, "Israel", flat[0].Breadcrumb())
}

func TestFlattenForest(t *testing.T) {
	forest := []*sites.Site{
		{Name: "Israel", Type: sites.SiteTypeCountry},
		{Name: "Portugal", Type: sites.SiteTypeCountry, Children: []*sites.Site{
			{Name: "Lisbon", Type: sites.SiteTypeCity},
		}},
	}

	flat := sites.FlattenForest(forest)
	require.Len(t, flat, 3)
	assert.Equal(t, "Lisbon, Portugal", flat[2].Breadcrumb())

	assert.Nil(t, sites.Flatten(nil))
}
