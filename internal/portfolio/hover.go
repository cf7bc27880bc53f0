package portfolio

// HoverState tracks which gallery card is under the pointer. It only drives
// styling.
type HoverState struct {
	id     int
	active bool
}

func (h *HoverState) Enter(id int) {
	h.id = id
	h.active = true
}

func (h *HoverState) Leave() {
	h.id = 0
	h.active = false
}

// Hovered returns the hovered card id, or false when none is hovered.
func (h HoverState) Hovered() (int, bool) {
	return h.id, h.active
}

func (h HoverState) IsHovered(id int) bool {
	return h.active && h.id == id
}

// Card is the view model for one gallery card.
type Card struct {
	Project
	Hovered bool
}

// Cards pairs every project with its hover flag.
func Cards(projects []Project, hover HoverState) []Card {
	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, Card{Project: p, Hovered: hover.IsHovered(p.ID)})
	}
	return cards
}
