package model

// DetailView holds the display-ready summary of one record.
// It is filled in by the detail assembly steps; the rendering
// collaborator only reads it.
type DetailView struct {
	// ID is the catalog identifier.
	ID int `json:"id"`

	// Number is the zero-padded display number, e.g. "#004".
	Number string `json:"number"`

	// Name is the capitalized record name.
	Name string `json:"name"`

	// ArtworkURL is the large image shown in the panel.
	ArtworkURL string `json:"artwork_url,omitempty"`

	// Types is the capitalized type names joined with a space.
	Types string `json:"types"`

	// Weight is formatted with a "kg" suffix, e.g. "6.9 kg".
	Weight string `json:"weight"`

	// Height is formatted with a "cm" suffix, e.g. "0.7 cm".
	Height string `json:"height"`

	// Species is the capitalized species name.
	Species string `json:"species"`

	// EggGroups is the capitalized egg group names joined with ", ".
	EggGroups string `json:"egg_groups"`

	// Abilities is the capitalized ability names joined with ", ".
	Abilities string `json:"abilities"`

	// Evolution is the flattened lineage.
	Evolution []EvolutionStep `json:"evolution,omitempty"`

	// CompletedSteps lists the assembly steps that ran successfully.
	CompletedSteps []string `json:"completed_steps,omitempty"`

	// Errors holds messages of steps that failed when assembly was
	// allowed to continue past failures.
	Errors []string `json:"errors,omitempty"`

	// Record is the source record.
	Record *CreatureRecord `json:"-"`

	// SpeciesInfo is the fetched species data.
	SpeciesInfo *SpeciesInfo `json:"-"`

	// AbilityNames holds the fetched ability names in slot order.
	AbilityNames []string `json:"-"`

	// Chain is the fetched evolution tree.
	Chain *EvolutionNode `json:"-"`
}

// NewDetailView creates an empty view bound to the given record.
func NewDetailView(record *CreatureRecord) *DetailView {
	v := &DetailView{Record: record}
	if record != nil {
		v.ID = record.ID
		v.Number = PadNumber(record.ID)
		v.Name = Capitalize(record.Name)
		v.ArtworkURL = record.ArtworkURL
	}
	return v
}

// HasErrors reports whether any assembly step failed.
func (v *DetailView) HasErrors() bool {
	return len(v.Errors) > 0
}
