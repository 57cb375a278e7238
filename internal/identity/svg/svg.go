// Package svg renders the on-chain credential badge. Rendering is pure and
// deterministic: identical (tier, username) inputs produce byte-identical
// markup, which is what makes the metadata verifiable. No timestamps, no
// randomness, no external calls.
package svg

import (
	"fmt"
	"strings"

	"github.com/devfelipenunes/zolvency-contracts/internal/identity/models"
)

// One fixed template per tier. Background and text colors are part of the
// public contract; changing them changes every badge of that tier.
var backgrounds = map[models.Tier]struct {
	fill string
	text string
}{
	models.TierNovice:      {fill: "#b0c4de", text: "#181c2f"},
	models.TierPro:         {fill: "#90ee90", text: "#181c2f"},
	models.TierArchitect:   {fill: "#ffd700", text: "#181c2f"},
	models.TierLegend:      {fill: "#ff8c00", text: "#fff"},
	models.TierSingularity: {fill: "#8a2be2", text: "#fff"},
}

// Render produces the badge markup for a credential. Only the tier and the
// username participate; intra-tier contribution changes do not alter the
// badge.
func Render(cred models.Credential) string {
	return render(cred.Tier, cred.Username)
}

func render(tier models.Tier, username string) string {
	colors, ok := backgrounds[tier]
	if !ok {
		colors = backgrounds[models.TierNovice]
	}
	return fmt.Sprintf(
		"<svg xmlns='http://www.w3.org/2000/svg' width='350' height='200'>"+
			"<rect width='100%%' height='100%%' fill='%s'/>"+
			"<text x='50%%' y='100' font-size='24' fill='%s' text-anchor='middle'>%s</text>"+
			"<text x='50%%' y='140' font-size='16' fill='%s' text-anchor='middle'>%s</text>"+
			"</svg>",
		colors.fill, colors.text, tier, colors.text, escape(username),
	)
}

// escape neutralizes markup metacharacters in the attacker-controlled
// username so it cannot break out of the text node.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&apos;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
