package portfolio

import (
	"errors"
	"fmt"
	"slices"
)

// ErrProjectNotFound is returned when no project has the requested id.
var ErrProjectNotFound = errors.New("project not found")

// FeaturedID is the project shown in the featured section.
const FeaturedID = 6

// Project represents one showcased web application
type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HasImage reports whether a thumbnail is set
func (p Project) HasImage() bool {
	return p.Image != ""
}

var catalog = []Project{
	{
		ID:          1,
		Title:       "Prestige Health (Main)",
		Description: "Healthcare platform with patient/provider experiences.",
		URL:         "https://prestigehealth.app",
		Image:       "https://prestigehealth.app/Group.png",
		Tags:        []string{"React", "JavaScript", "Tailwind"},
	},
	{
		ID:          2,
		Title:       "Prestige Health — Provider",
		Description: "Provider portal for clinicians and staff.",
		URL:         "https://provider.prestigehealth.app/",
		Image:       "https://provider.prestigehealth.app/Group.png",
		Tags:        []string{"React", "TypeScript", "Tailwind"},
	},
	{
		ID:          3,
		Title:       "Prestige Health — Admin",
		Description: "Admin dashboard for managing the healthcare product.",
		URL:         "https://admin.prestigehealth.app/",
		Image:       "https://admin.prestigehealth.app/Group.png",
		Tags:        []string{"React", "JavaScript", "Dashboard"},
	},
	{
		ID:          4,
		Title:       "Space Tourism (Demo)",
		Description: "A Beautiful responsive multi-page UI demo (Vercel).",
		URL:         "https://space-tourism-alpha-mocha.vercel.app/",
		Image:       "https://space-tourism-alpha-mocha.vercel.app/logo.svg",
		Tags:        []string{"React", "CSS", "Responsive"},
	},
	{
		ID:          5,
		Title:       "Mineral (Portfolio Demo)",
		Description: "A minimal portfolio / landing demo.",
		URL:         "https://mineral-chi.vercel.app/",
		Image:       "https://mineral-chi.vercel.app/favicon.png",
		Tags:        []string{"React", "Tailwind", "TypeScript"},
	},
	{
		ID:          6,
		Title:       "Stingy Discussion — Todo (Featured)",
		Description: "A focused Todo app built with Next.js and TypeScript. Click to open the live demo and explore the implementation details.",
		URL:         "https://stingy-discussion.pipeops.app/",
		Image:       "https://stingy-discussion.pipeops.app/favicon.png",
		Tags:        []string{"Next.js", "TypeScript", "Todo"},
	},
}

// Catalog serves the fixed project list. The backing slice is never handed
// out, so every caller gets its own copy.
type Catalog struct {
	projects []Project
}

// NewCatalog returns the catalog of showcased projects
func NewCatalog() *Catalog {
	return &Catalog{projects: catalog}
}

// All returns every project in display order
func (c *Catalog) All() []Project {
	out := make([]Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = clone(p)
	}
	return out
}

// Len returns the number of projects
func (c *Catalog) Len() int {
	return len(c.projects)
}

// ByID returns a specific project by ID
func (c *Catalog) ByID(id int) (Project, error) {
	i := slices.IndexFunc(c.projects, func(p Project) bool { return p.ID == id })
	if i < 0 {
		return Project{}, fmt.Errorf("%w: %d", ErrProjectNotFound, id)
	}
	return clone(c.projects[i]), nil
}

// Featured returns the project highlighted above the gallery
func (c *Catalog) Featured() (Project, error) {
	return c.ByID(FeaturedID)
}

func clone(p Project) Project {
	p.Tags = slices.Clone(p.Tags)
	return p
}
