package model

import "fmt"

// EvolutionNode is one node of an evolution tree.
// A node may have several children: some species branch into
// multiple successor forms.
type EvolutionNode struct {
	// SpeciesName is the lower-case species name.
	SpeciesName string `json:"species_name"`

	// SpeciesURL identifies the species. Its trailing path segment is the
	// catalog identifier used to derive the artwork URL.
	SpeciesURL string `json:"species_url"`

	// ImageURL overrides the derived artwork URL when set.
	ImageURL string `json:"image_url,omitempty"`

	// Children are the successor forms in service order.
	Children []*EvolutionNode `json:"evolves_to,omitempty"`
}

// StepKind distinguishes the entries of a flattened evolution sequence.
type StepKind int

const (
	// StepStage is a species stage with a name and an image.
	StepStage StepKind = iota

	// StepTransition marks the arrow between a stage and its successors.
	StepTransition
)

// String returns a human-readable representation of the step kind.
func (k StepKind) String() string {
	switch k {
	case StepStage:
		return "stage"
	case StepTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output carries
// the readable kind name.
func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StepKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "stage":
		*k = StepStage
	case "transition":
		*k = StepTransition
	default:
		return fmt.Errorf("unknown step kind %q", text)
	}
	return nil
}

// EvolutionStep is one element of a flattened evolution sequence.
// Transition steps carry no name or image.
type EvolutionStep struct {
	Kind     StepKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// Stage builds a stage step.
func Stage(name, imageURL string) EvolutionStep {
	return EvolutionStep{Kind: StepStage, Name: name, ImageURL: imageURL}
}

// Transition builds a transition marker.
func Transition() EvolutionStep {
	return EvolutionStep{Kind: StepTransition}
}

// Stages returns only the stage steps of a sequence, in order.
func Stages(steps []EvolutionStep) []EvolutionStep {
	out := make([]EvolutionStep, 0, len(steps))
	for _, s := range steps {
		if s.Kind == StepStage {
			out = append(out, s)
		}
	}
	return out
}
