package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name   string
		raised float64
		target float64
		want   float64
	}{
		{"partial progress rounds to two decimals", 125000, 350000, 35.71},
		{"zero target yields zero", 100, 0, 0},
		{"negative target yields zero", 100, -5, 0},
		{"zero raised", 0, 500000, 0},
		{"fully funded", 500000, 500000, 100},
		{"over-funded exceeds 100", 600000, 500000, 120},
		{"exact two decimals", 1, 3, 33.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercentage(tt.raised, tt.target))
		})
	}
}

func TestParseUrgency(t *testing.T) {
	for _, valid := range []string{"critical", "urgent", "moderate"} {
		u, err := ParseUrgency(valid)
		assert.NoError(t, err)
		assert.Equal(t, Urgency(valid), u)
	}

	_, err := ParseUrgency("somewhat-urgent")
	assert.Error(t, err)
	_, err = ParseUrgency("")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"cardiac", "cancer", "emergency", "orthopedic", "neurological", "pediatric", "general"} {
		cat, err := ParseCategory(valid)
		assert.NoError(t, err)
		assert.Equal(t, Category(valid), cat)
	}

	_, err := ParseCategory("dental")
	assert.Error(t, err)
}

func TestPatientResponseEmbedsHospitalAndProgress(t *testing.T) {
	p := Patient{
		PublicID:     "pat-1",
		Name:         "Rajesh Kumar",
		TargetAmount: 350000,
		RaisedAmount: 125000,
	}
	h := Hospital{PublicID: "hos-1", Name: "Apollo Hospital", Location: "Mumbai"}

	resp := p.Response(&h)
	assert.Equal(t, 35.71, resp.ProgressPercentage)
	assert.Equal(t, "Apollo Hospital", resp.Hospital.Name)

	// hospital lookup failures serialize as null, not a zero struct
	orphan := p.Response(nil)
	assert.Nil(t, orphan.Hospital)
}
