package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricFormatting(t *testing.T) {
	assert.Equal(t, "$12,340", MetricOf(12340.4).Currency())
	assert.Equal(t, "$1,234.56", MetricOf(1234.561).Currency2())
	assert.Equal(t, "2.67", MetricOf(2.6667).Ratio())
	assert.Equal(t, "1,000,000", MetricOf(1e6).Count())
	assert.Equal(t, "$-1,500", MetricOf(-1500).Currency())

	un := Unavailable()
	assert.Equal(t, Placeholder, un.Currency())
	assert.Equal(t, Placeholder, un.Currency2())
	assert.Equal(t, Placeholder, un.Ratio())
	assert.Equal(t, Placeholder, un.Count())
}

func TestMetricJSONNullRoundTrip(t *testing.T) {
	b, err := json.Marshal(Snapshot{Spend: MetricOf(150)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"spend":150`)
	assert.Contains(t, string(b), `"roas":null`)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(b, &snap))
	assert.True(t, snap.Spend.Valid)
	assert.Equal(t, 150.0, snap.Spend.Value)
	assert.False(t, snap.ROAS.Valid)
}

func TestCriteriaSourceFilter(t *testing.T) {
	var c Criteria
	assert.True(t, c.AllowsSource("Facebook"), "empty selection filters nothing")

	c.Sources = []string{"facebook", " TikTok "}
	assert.True(t, c.AllowsSource("Facebook"))
	assert.True(t, c.AllowsSource("tiktok"))
	assert.False(t, c.AllowsSource("Google"))
}

func TestCriteriaCampaignSentinel(t *testing.T) {
	assert.False(t, Criteria{}.FilterByCampaign())
	assert.False(t, Criteria{Campaign: CampaignAll}.FilterByCampaign())
	assert.True(t, Criteria{Campaign: "Spring Sale"}.FilterByCampaign())
}
