package models

// Tier classifies a credential by verified contribution count. The numeric
// values are part of the public contract (tier numbers 1..5) and must not be
// reordered.
type Tier uint8

const (
	TierNovice Tier = iota + 1
	TierPro
	TierArchitect
	TierLegend
	TierSingularity
)

// Contribution thresholds. Lower bound inclusive, upper bound exclusive;
// the top tier is unbounded.
const (
	ProThreshold         = 200
	ArchitectThreshold   = 1000
	LegendThreshold      = 3000
	SingularityThreshold = 5000
)

// TierFromContributions derives the tier for a contribution count. Total
// over the full uint32 range; tier is always recomputed from the stored
// count, never cached on its own.
func TierFromContributions(contributions uint32) Tier {
	switch {
	case contributions >= SingularityThreshold:
		return TierSingularity
	case contributions >= LegendThreshold:
		return TierLegend
	case contributions >= ArchitectThreshold:
		return TierArchitect
	case contributions >= ProThreshold:
		return TierPro
	default:
		return TierNovice
	}
}

// Number reports the tier as its public 1..5 rank.
func (t Tier) Number() uint8 {
	return uint8(t)
}

// String reports the tier name as it appears on the wire and in the badge.
func (t Tier) String() string {
	switch t {
	case TierNovice:
		return "Novice"
	case TierPro:
		return "Pro"
	case TierArchitect:
		return "Architect"
	case TierLegend:
		return "Legend"
	case TierSingularity:
		return "Singularity"
	default:
		return "Unknown"
	}
}

// Color reports the badge accent color associated with the tier.
func (t Tier) Color() string {
	switch t {
	case TierNovice:
		return "#CD7F32"
	case TierPro:
		return "#C0C0C0"
	case TierArchitect:
		return "#FFD700"
	case TierLegend:
		return "#E5E4E2"
	case TierSingularity:
		return "#39FF14"
	default:
		return "#000000"
	}
}
