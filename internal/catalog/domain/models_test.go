package domain

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceNormalize(t *testing.T) {
	tests := []struct {
		in   ResourceKind
		want ResourceKind
	}{
		{"hardware", ResourceKindHardware},
		{"HARDWARE", ResourceKindHardware},
		{"sOftWare", ResourceKindSoftware},
		{" software ", ResourceKindSoftware},
	}
	for _, tt := range tests {
		r := Resource{Kind: tt.in}
		r.Normalize()
		assert.Equal(t, tt.want, r.Kind)
	}
}

func TestResourceQuantitiesXMLIsSortedByID(t *testing.T) {
	cfg := Configuration{
		ID:   7,
		Name: "small",
		Resources: ResourceQuantities{
			3: 0.5,
			1: 2,
			2: 1,
		},
	}

	raw, err := xml.Marshal(cfg)
	require.NoError(t, err)

	out := string(raw)
	first := strings.Index(out, `id="1"`)
	second := strings.Index(out, `id="2"`)
	third := strings.Index(out, `id="3"`)
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("missing resource entries in %s", out)
	}
	if !(first < second && second < third) {
		t.Fatalf("resource entries not sorted by id: %s", out)
	}
}

func TestResourceQuantitiesXMLRoundTrip(t *testing.T) {
	in := Configuration{
		ID:        1,
		Name:      "standard",
		Resources: ResourceQuantities{1: 2, 9: 0.25},
	}

	raw, err := xml.Marshal(in)
	require.NoError(t, err)

	var out Configuration
	require.NoError(t, xml.Unmarshal(raw, &out))
	assert.Equal(t, in.Resources, out.Resources)
}

func TestCategoryXMLRoundTrip(t *testing.T) {
	in := Category{
		ID:       4,
		Name:     "compute",
		Workload: "general",
		Configurations: []Configuration{
			{ID: 40, Name: "small", Resources: ResourceQuantities{1: 1}},
			{ID: 41, Name: "large", Resources: ResourceQuantities{1: 4, 2: 2}},
		},
	}

	raw, err := xml.Marshal(in)
	require.NoError(t, err)

	var out Category
	require.NoError(t, xml.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}
