package main

// Profile is the site owner as shown in the header, hero card and footer.
type Profile struct {
	Name    string
	Role    string
	Tagline string
	Credit  string
}

type SkillLevel struct {
	Name  string
	Level string
}

type Hero struct {
	Badge     string
	Lead      string
	Highlight string
	Tail      string
	Intro     string
	CardLine  string
	Levels    []SkillLevel
}

type ContactInfo struct {
	Email    string
	Location string
}

// Spotlight is the featured section copy. Link and logo come from the catalog.
type Spotlight struct {
	Title string
	Blurb string
	Tags  []string
}

type SocialLink struct {
	Name string
	URL  string
}

var (
	SiteProfile = Profile{
		Name:    "Aibueku Osariemen",
		Role:    "Frontend Engineer",
		Tagline: "Frontend Engineer — HTML • CSS • JavaScript • TypeScript • React • Tailwind",
		Credit:  "Crafted with Go + HTMX + Tailwind.",
	}

	NavSections = []string{"Projects", "About", "Contact"}

	SiteHero = Hero{
		Badge:     "✨ Available for new projects",
		Lead:      "Building",
		Highlight: "polished",
		Tail:      "interfaces that scale",
		Intro: `I'm a frontend engineer focused on fast, accessible, and delightful user experiences.
	Specializing in React, TypeScript, and modern CSS frameworks.`,
		CardLine: "Building the future of web interfaces",
		Levels: []SkillLevel{
			{Name: "React", Level: "95%"},
			{Name: "TypeScript", Level: "90%"},
			{Name: "Tailwind", Level: "88%"},
		},
	}

	AboutMe = []string{
		`I build frontend applications using modern toolchains and care deeply about
	performance, accessibility, and developer experience. My approach combines
	technical excellence with creative problem-solving.`,
		`With expertise in React, TypeScript, and modern CSS frameworks, I create
	interfaces that not only look great but perform exceptionally across all devices.`,
	}

	CoreSkills = []string{
		"HTML & Semantic Markup",
		"Responsive CSS & Tailwind",
		"JavaScript & TypeScript",
		"React, Hooks, Context",
		"Vite & Dev Tooling",
		"Testing (Jest / RTL)",
		"Performance Optimization",
		"Accessibility (WCAG)",
	}

	FeaturedCopy = Spotlight{
		Title: "Stingy Discussion — Todo",
		Blurb: "A polished Todo app built with Next.js + TypeScript. Clean architecture, fast UX, and focused feature set. Live demo linked.",
		Tags:  []string{"Next.js", "TypeScript", "Todo"},
	}

	Location = "Edo, Nigeria"
)

// socialLinks returns the footer links. Email points at the contact address.
func socialLinks(email string) []SocialLink {
	return []SocialLink{
		{Name: "GitHub", URL: "https://github.com/Osariemen7"},
		{Name: "LinkedIn", URL: "https://www.linkedin.com/in/osariemen-aibueku-11b31a265/"},
		{Name: "Email", URL: "mailto:" + email},
	}
}
