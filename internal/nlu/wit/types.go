package wit

// Candidate is one ranked match for an entity.
type Candidate struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Entities maps an entity name to its ranked candidates, best first.
type Entities map[string][]Candidate

// First returns the top candidate for the named entity, or nil when the
// entity is absent or has no candidates.
func (e Entities) First(name string) *Candidate {
	candidates, ok := e[name]
	if !ok || len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// messageResponse is the wire shape of the Wit /message endpoint.
type messageResponse struct {
	Text     string   `json:"_text"`
	Entities Entities `json:"entities"`
}
