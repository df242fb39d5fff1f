package pokeapi

import (
	"encoding/json"

	"github.com/nao1215/dexview/internal/model"
)

// namedResource is the {name, url} reference used all over the service.
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listResponse is the paginated listing body.
type listResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []namedResource `json:"results"`
}

// pokemonResponse is the subset of a full record dexview reads.
type pokemonResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
		Slot     int           `json:"slot"`
	} `json:"abilities"`
	Species namedResource `json:"species"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
		// Versions is keyed by generation; each generation has its own
		// shape, so only the configured one is decoded.
		Versions map[string]json.RawMessage `json:"versions"`
	} `json:"sprites"`
}

// iconSprites is the shape of a sprite generation that carries icons.
type iconSprites struct {
	Icons *struct {
		FrontDefault *string `json:"front_default"`
	} `json:"icons"`
}

// speciesResponse is the subset of a species body dexview reads.
type speciesResponse struct {
	EggGroups      []namedResource `json:"egg_groups"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// chainLink is one recursive link of an evolution chain.
type chainLink struct {
	Species   namedResource `json:"species"`
	EvolvesTo []chainLink   `json:"evolves_to"`
}

// evolutionChainResponse is the evolution chain body.
type evolutionChainResponse struct {
	ID    int       `json:"id"`
	Chain chainLink `json:"chain"`
}

// abilityResponse is the subset of an ability body dexview reads.
type abilityResponse struct {
	Name string `json:"name"`
}

// deref returns the pointed-to string or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toRecord converts a decoded record, picking the icon of iconGeneration.
// A missing generation or icon degrades to an empty IconURL.
func (p *pokemonResponse) toRecord(iconGeneration string) *model.CreatureRecord {
	r := &model.CreatureRecord{
		ID:          p.ID,
		Name:        p.Name,
		Weight:      p.Weight,
		Height:      p.Height,
		SpriteURL:   deref(p.Sprites.FrontDefault),
		ArtworkURL:  deref(p.Sprites.Other.OfficialArtwork.FrontDefault),
		SpeciesName: p.Species.Name,
		SpeciesURL:  p.Species.URL,
		Types:       make([]string, 0, len(p.Types)),
		AbilityURLs: make([]string, 0, len(p.Abilities)),
	}
	for _, t := range p.Types {
		r.Types = append(r.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		r.AbilityURLs = append(r.AbilityURLs, a.Ability.URL)
	}

	if raw, ok := p.Sprites.Versions[iconGeneration]; ok {
		var gen iconSprites
		if err := json.Unmarshal(raw, &gen); err == nil && gen.Icons != nil {
			r.IconURL = deref(gen.Icons.FrontDefault)
		}
	}
	return r
}

// toNode converts a chain link and its successors into a tree.
func (l *chainLink) toNode() *model.EvolutionNode {
	n := &model.EvolutionNode{
		SpeciesName: l.Species.Name,
		SpeciesURL:  l.Species.URL,
	}
	if len(l.EvolvesTo) > 0 {
		n.Children = make([]*model.EvolutionNode, 0, len(l.EvolvesTo))
		for i := range l.EvolvesTo {
			n.Children = append(n.Children, l.EvolvesTo[i].toNode())
		}
	}
	return n
}
