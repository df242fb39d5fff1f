package model

// CatalogEntry is one entry of a catalog listing.
// It is immutable once produced by a listing fetch.
type CatalogEntry struct {
	// Name is the lower-case catalog name (e.g. "bulbasaur").
	Name string `json:"name"`

	// DetailURL is the absolute URL of the entry's full record.
	DetailURL string `json:"detail_url"`
}

// CreatureRecord is the full record fetched from an entry's detail URL.
type CreatureRecord struct {
	// ID is the catalog identifier (national dex number).
	ID int `json:"id"`

	// Name is the lower-case catalog name.
	Name string `json:"name"`

	// Types holds the type names in slot order.
	Types []string `json:"types"`

	// Weight is expressed in tenths of a kilogram.
	Weight int `json:"weight"`

	// Height is expressed in tenths of the display unit.
	Height int `json:"height"`

	// SpriteURL is the default front sprite.
	SpriteURL string `json:"sprite_url,omitempty"`

	// ArtworkURL is the official artwork image.
	ArtworkURL string `json:"artwork_url,omitempty"`

	// IconURL is the small list icon. Empty when the icon generation
	// is absent from the record.
	IconURL string `json:"icon_url,omitempty"`

	// AbilityURLs references each ability, in slot order.
	AbilityURLs []string `json:"ability_urls"`

	// SpeciesName is the name of the species the record belongs to.
	SpeciesName string `json:"species_name"`

	// SpeciesURL references the species resource.
	SpeciesURL string `json:"species_url"`
}

// ListItem returns the list-row view of the record.
func (r *CreatureRecord) ListItem() ListItem {
	return ListItem{
		ID:      r.ID,
		Number:  PadNumber(r.ID),
		Name:    Capitalize(r.Name),
		IconURL: r.IconURL,
	}
}

// SpeciesInfo holds the species-level data needed by the detail view.
type SpeciesInfo struct {
	// EggGroups holds egg group names in the order the service returns them.
	EggGroups []string `json:"egg_groups"`

	// EvolutionChainURL references the evolution chain of the species.
	EvolutionChainURL string `json:"evolution_chain_url"`
}

// ListItem is what a single row of the entry list displays.
type ListItem struct {
	ID      int    `json:"id"`
	Number  string `json:"number"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// ListItems converts records to list rows, keeping their order.
func ListItems(records []*CreatureRecord) []ListItem {
	items := make([]ListItem, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		items = append(items, r.ListItem())
	}
	return items
}
