package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waymarkhq/waymark/pkg/match"
)

func TestNames(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Hilton", "Hilton Garden Inn", true},
		{"hilton garden inn", "Hilton", true},
		{"Hilton", "Marriott", false},
		{"", "Hilton", false},
		{"Hilton", "", false},
		{"   ", "Hilton", false},
		{"TEL AVIV", "tel aviv", true},
		{"  Tel Aviv ", "tel aviv", true},
		{"Jaffa", "Old Jaffa Port", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, match.Names(tt.a, tt.b))
		})
	}
}

func TestFirst(t *testing.T) {
	got, ok := match.First("Hilton", "Marriott", "Hilton Garden Inn", "Hilton Tel Aviv")
	assert.True(t, ok)
	assert.Equal(t, "Hilton Garden Inn", got)

	_, ok = match.First("Hilton", "Marriott", "Dan Panorama")
	assert.False(t, ok)

	_, ok = match.First("")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	got := match.All("Hilton", "Marriott", "Hilton Garden Inn", "Hilton Tel Aviv")
	assert.Equal(t, []string{"Hilton Garden Inn", "Hilton Tel Aviv"}, got)

	assert.Empty(t, match.All("Hilton", "Marriott"))
}

func TestAny(t *testing.T) {
	assert.True(t, match.Any("Jaffa", "Old Jaffa Port"))
	assert.False(t, match.Any("Jaffa", "Haifa"))
}
