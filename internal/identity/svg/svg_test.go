package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

func credential(tier models.Tier, username string, contributions uint32) models.Credential {
	return models.Credential{
		TokenID:       1,
		Owner:         "GALICE",
		Username:      username,
		Contributions: contributions,
		Tier:          tier,
	}
}

func TestRender_Deterministic(t *testing.T) {
	cred := credential(models.TierPro, "alice", 250)

	first := Render(cred)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(cred), "repeated renders must be byte-identical")
	}
}

func TestRender_ContributionsDoNotChangeBadgeWithinTier(t *testing.T) {
	a := Render(credential(models.TierPro, "alice", 200))
	b := Render(credential(models.TierPro, "alice", 999))
	assert.Equal(t, a, b)
}

func TestRender_TierAndUsernameChangeBadge(t *testing.T) {
	base := Render(credential(models.TierPro, "alice", 250))

	assert.NotEqual(t, base, Render(credential(models.TierArchitect, "alice", 1200)))
	assert.NotEqual(t, base, Render(credential(models.TierPro, "bob", 250)))
}

func TestRender_OneTemplatePerTier(t *testing.T) {
	fills := map[models.Tier]string{
		models.TierNovice:      "#b0c4de",
		models.TierPro:         "#90ee90",
		models.TierArchitect:   "#ffd700",
		models.TierLegend:      "#ff8c00",
		models.TierSingularity: "#8a2be2",
	}

	seen := make(map[string]bool)
	for tier, fill := range fills {
		markup := Render(credential(tier, "alice", 0))
		require.Contains(t, markup, "fill='"+fill+"'")
		require.Contains(t, markup, ">"+tier.String()+"<")
		require.False(t, seen[markup], "templates must differ per tier")
		seen[markup] = true
	}
}

func TestRender_EscapesUsername(t *testing.T) {
	markup := Render(credential(models.TierNovice, `<script>"x"&'y'</script>`, 0))

	assert.NotContains(t, markup, "<script>")
	assert.Contains(t, markup, "&lt;script&gt;")
	assert.Contains(t, markup, "&quot;x&quot;")
	assert.Contains(t, markup, "&amp;")
	assert.Contains(t, markup, "&apos;y&apos;")
}

func TestRender_WellFormedEnvelope(t *testing.T) {
	markup := Render(credential(models.TierSingularity, "alice", 9000))

	assert.True(t, strings.HasPrefix(markup, "<svg xmlns='http://www.w3.org/2000/svg' width='350' height='200'>"))
	assert.True(t, strings.HasSuffix(markup, "</svg>"))
}
