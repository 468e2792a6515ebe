package bias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_CheckGender(t *testing.T) {
	t.Parallel()

	d := NewDetector()
	tests := []struct {
		name   string
		text   string
		biased bool
		issue  string
	}{
		{name: "masculine strength", text: "Boys are tough.", biased: true, issue: issueMasculine},
		{name: "feminine emotion", text: "Girls are fragile.", biased: true, issue: issueFeminine},
		{name: "both, feminine wins", text: "Men are naturally strong and women are emotional", biased: true, issue: issueFeminine},
		{name: "neutral", text: "Everyone experiences emotions and strength differently.", biased: false},
		{name: "gender without trait", text: "My brother is a man of few words.", biased: false},
		{name: "trait without gender", text: "You were brave to share that.", biased: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := d.CheckGender(tt.text)
			assert.Equal(t, tt.biased, got.Biased)
			assert.Equal(t, tt.issue, got.Issue)
			if tt.biased {
				assert.Equal(t, TypeGenderStereotype, got.Type)
			} else {
				assert.Empty(t, got.Type)
			}
		})
	}
}

func TestDetector_CheckCultural(t *testing.T) {
	t.Parallel()

	d := NewDetector()

	got := d.CheckCultural("You should tell your family. A Western therapy approach works best.")
	assert.False(t, got.CulturallySensitive)
	assert.Equal(t, []string{
		"Potential cultural assumption: you should tell your family",
		"Potential cultural assumption: western therapy approach",
	}, got.Issues)

	got = d.CheckCultural("What feels right for you?")
	assert.True(t, got.CulturallySensitive)
	assert.Empty(t, got.Issues)
}

func TestDetector_FullCheck(t *testing.T) {
	t.Parallel()

	d := NewDetector()

	t.Run("stereotype fails", func(t *testing.T) {
		t.Parallel()
		r := d.FullCheck("Men are naturally strong and women are emotional")
		assert.False(t, r.PassedEthicalCheck)
		assert.Equal(t, TypeGenderStereotype, r.Type())
	})

	t.Run("neutral passes", func(t *testing.T) {
		t.Parallel()
		r := d.FullCheck("Everyone experiences emotions and strength differently.")
		assert.True(t, r.PassedEthicalCheck)
	})

	t.Run("cultural only", func(t *testing.T) {
		t.Parallel()
		r := d.FullCheck("Focus on individual achievement.")
		assert.False(t, r.PassedEthicalCheck)
		assert.False(t, r.GenderBias.Biased)
		assert.Equal(t, TypeCulturalAssumption, r.Type())
	})
}
