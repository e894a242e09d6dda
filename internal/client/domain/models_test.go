package domain

import (
	"testing"

	"github.com/chapincloud/meterbill/pkg/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTaxID(t *testing.T) {
	valid := []string{"12345678-9", "1-0", "99999999-K", "1234-k"}
	for _, id := range valid {
		assert.True(t, ValidTaxID(id), "expected %q valid", id)
	}

	invalid := []string{"", "123456", "12345678-", "-9", "1234567a-9", "12345678-KK", "12345678_9"}
	for _, id := range invalid {
		assert.False(t, ValidTaxID(id), "expected %q invalid", id)
	}
}

func TestClientValidate(t *testing.T) {
	c := Client{TaxID: "12345678-9", Name: "acme"}
	require.NoError(t, c.Validate())

	c.TaxID = "123456"
	assert.ErrorIs(t, c.Validate(), ErrInvalidTaxID)
}

func TestInstanceNormalizeClearsEndDateWhenActive(t *testing.T) {
	end, err := dates.ParseDate("31/12/2024")
	require.NoError(t, err)

	inst := Instance{ID: 1, ConfigurationID: 10, Status: "active", EndDate: &end}
	inst.Normalize()

	assert.Equal(t, InstanceStatusActive, inst.Status)
	assert.Nil(t, inst.EndDate)
}

func TestInstanceValidate(t *testing.T) {
	end, err := dates.ParseDate("31/12/2024")
	require.NoError(t, err)

	tests := []struct {
		name string
		inst Instance
		want error
	}{
		{"active", Instance{Status: InstanceStatusActive}, nil},
		{"cancelled with end", Instance{Status: InstanceStatusCancelled, EndDate: &end}, nil},
		{"cancelled without end", Instance{Status: InstanceStatusCancelled}, ErrCancelledWithoutEnd},
		{"unknown status", Instance{Status: "Paused"}, ErrInvalidInstanceStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inst.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInstanceByID(t *testing.T) {
	c := Client{
		TaxID: "12345678-9",
		Instances: []Instance{
			{ID: 1, ConfigurationID: 10},
			{ID: 2, ConfigurationID: 20},
		},
	}

	inst, ok := c.InstanceByID(2)
	require.True(t, ok)
	assert.Equal(t, int64(20), inst.ConfigurationID)

	_, ok = c.InstanceByID(3)
	assert.False(t, ok)
}
