package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFromContributions_Boundaries(t *testing.T) {
	tests := []struct {
		name          string
		contributions uint32
		want          Tier
	}{
		{"zero", 0, TierNovice},
		{"last novice", 199, TierNovice},
		{"first pro", 200, TierPro},
		{"last pro", 999, TierPro},
		{"first architect", 1000, TierArchitect},
		{"last architect", 2999, TierArchitect},
		{"first legend", 3000, TierLegend},
		{"last legend", 4999, TierLegend},
		{"first singularity", 5000, TierSingularity},
		{"max uint32", math.MaxUint32, TierSingularity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFromContributions(tt.contributions))
		})
	}
}

func TestTier_PublicContract(t *testing.T) {
	tiers := []Tier{TierNovice, TierPro, TierArchitect, TierLegend, TierSingularity}
	names := []string{"Novice", "Pro", "Architect", "Legend", "Singularity"}
	colors := []string{"#CD7F32", "#C0C0C0", "#FFD700", "#E5E4E2", "#39FF14"}

	for i, tier := range tiers {
		assert.Equal(t, uint8(i+1), tier.Number())
		assert.Equal(t, names[i], tier.String())
		assert.Equal(t, colors[i], tier.Color())
	}
}

func FuzzTierFromContributions(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(199))
	f.Add(uint32(200))
	f.Add(uint32(4999))
	f.Add(uint32(5000))
	f.Add(uint32(math.MaxUint32))

	f.Fuzz(func(t *testing.T, contributions uint32) {
		tier := TierFromContributions(contributions)

		// Total: every input maps onto a named tier.
		if tier < TierNovice || tier > TierSingularity {
			t.Fatalf("contributions %d produced out-of-range tier %d", contributions, tier)
		}

		// Consistent with the threshold table.
		switch {
		case contributions < ProThreshold:
			assertTier(t, contributions, tier, TierNovice)
		case contributions < ArchitectThreshold:
			assertTier(t, contributions, tier, TierPro)
		case contributions < LegendThreshold:
			assertTier(t, contributions, tier, TierArchitect)
		case contributions < SingularityThreshold:
			assertTier(t, contributions, tier, TierLegend)
		default:
			assertTier(t, contributions, tier, TierSingularity)
		}

		// Monotone: one more contribution never lowers the tier.
		if contributions < math.MaxUint32 {
			if next := TierFromContributions(contributions + 1); next < tier {
				t.Fatalf("tier regressed from %v to %v at %d", tier, next, contributions)
			}
		}
	})
}

func assertTier(t *testing.T, contributions uint32, got, want Tier) {
	t.Helper()
	if got != want {
		t.Fatalf("contributions %d: got tier %v, want %v", contributions, got, want)
	}
}
