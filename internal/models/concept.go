package models

// EntityType is the named-entity label of a concept, empty when untyped.
type EntityType string

const (
	EntityNone         EntityType = ""
	EntityPerson       EntityType = "PERSON"
	EntityLocation     EntityType = "LOCATION"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityDate         EntityType = "DATE"
	EntityQuantity     EntityType = "QUANTITY"
	EntityProper       EntityType = "PROPER"
)

// Concept is a ranked candidate key term. ID is its rank within the run;
// SourceChunk and Occurrences are chunk order indexes.
type Concept struct {
	ID              int        `json:"id"`
	SurfaceForm     string     `json:"surface_form"`
	Lemma           string     `json:"lemma"`
	POSTag          string     `json:"pos_tag"`
	EntityType      EntityType `json:"entity_type,omitempty"`
	SourceChunk     int        `json:"source_chunk"`
	TokenPosition   int        `json:"token_position"`
	Occurrences     []int      `json:"occurrences"`
	FrequencyScore  float64    `json:"frequency_score"`
	FormattingBonus float64    `json:"formatting_bonus"`
	PositionalBonus float64    `json:"positional_bonus"`
	FinalScore      float64    `json:"final_score"`
}

// IsQuantity reports whether the concept is a numeric quantity or date.
func (c Concept) IsQuantity() bool {
	return c.EntityType == EntityQuantity || c.EntityType == EntityDate
}
