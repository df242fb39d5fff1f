package detail

import (
	"strings"

	"github.com/nao1215/dexview/internal/model"
)

// FlattenEvolutionChain turns an evolution tree into a display sequence.
//
// Nodes are visited depth-first in pre-order. Each node yields a Stage;
// a node with successors is followed by exactly one Transition before its
// first child, and every child subtree is then emitted in service order.
// So A->B->C gives [A, T, B, T, C] and A->[B, C] gives [A, T, B, C].
//
// Stage images come from the node's ImageURL, or are derived from its
// species URL with ArtworkURL.
func FlattenEvolutionChain(root *model.EvolutionNode, artworkTemplate string) []model.EvolutionStep {
	if root == nil {
		return nil
	}

	steps := make([]model.EvolutionStep, 0, 8)

	var visit func(n *model.EvolutionNode)
	visit = func(n *model.EvolutionNode) {
		img := n.ImageURL
		if img == "" {
			img = ArtworkURL(artworkTemplate, n.SpeciesURL)
		}
		steps = append(steps, model.Stage(model.Capitalize(n.SpeciesName), img))

		if len(n.Children) == 0 {
			return
		}
		steps = append(steps, model.Transition())
		for _, child := range n.Children {
			if child != nil {
				visit(child)
			}
		}
	}
	visit(root)

	return steps
}

// ArtworkURL derives the official artwork URL of a species.
//
// The identifier is the second-to-last "/"-separated segment of
// speciesURL, so ".../pokemon-species/4/" yields "4". It replaces the
// first "%s" in template. URLs with fewer than two segments yield "".
func ArtworkURL(template, speciesURL string) string {
	parts := strings.Split(speciesURL, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.Replace(template, "%s", parts[len(parts)-2], 1)
}
