package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestNewCloudEvent(t *testing.T) {
	ce, err := NewCloudEvent("service-listing", "listing.created", testPayload{Name: "Milo", Count: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "service-listing", ce.Source)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, "listing.created", ce.Type)
	assert.False(t, ce.Time.IsZero())
}

func TestCloudEvent_RoundTrip(t *testing.T) {
	ce, err := NewCloudEvent("service-listing", "listing.adopted", testPayload{Name: "Milo", Count: 1})
	require.NoError(t, err)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, parsed.ID)
	assert.Equal(t, ce.Type, parsed.Type)

	var payload testPayload
	require.NoError(t, parsed.ParseData(&payload))
	assert.Equal(t, "Milo", payload.Name)
	assert.Equal(t, 1, payload.Count)
}

func TestParseCloudEvent_Invalid(t *testing.T) {
	_, err := ParseCloudEvent([]byte("{not json"))
	assert.Error(t, err)
}
