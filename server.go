package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Osariemen7/portfolio/internal/config"
	"github.com/Osariemen7/portfolio/internal/contact"
	"github.com/Osariemen7/portfolio/internal/delivery"
	"github.com/Osariemen7/portfolio/internal/logging"
	"github.com/Osariemen7/portfolio/internal/metrics"
	"github.com/Osariemen7/portfolio/internal/portfolio"
	"github.com/Osariemen7/portfolio/web"
)

// Server holds what the routes need.
type Server struct {
	catalog       *portfolio.Catalog
	submitter     *contact.Submitter
	tracker       metrics.VisitRecorder
	logger        *zap.Logger
	retentionDays int
	now           func() time.Time
}

// newServer wires the contact flow from cfg. store may be nil when metrics
// are disabled.
func newServer(cfg *config.Config, logger *zap.Logger, store *metrics.Store) (*Server, error) {
	opts := []contact.Option{
		contact.WithLogger(logger),
		contact.WithClearOnRejection(cfg.Contact.ClearDraftOnRejection),
	}
	if cfg.HasEndpoint() {
		client, err := delivery.New(cfg.Contact.Endpoint, cfg.Contact.Timeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contact.WithDeliverer(client))
	}

	s := &Server{
		catalog:       portfolio.NewCatalog(),
		logger:        logger,
		retentionDays: cfg.Metrics.RetentionDays,
		now:           time.Now,
	}
	if store != nil {
		opts = append(opts, contact.WithRecorder(store))
		s.tracker = store
	}
	s.submitter = contact.NewSubmitter(cfg.Contact.Address, opts...)

	return s, nil
}

// Router configures all routes and returns the engine
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := web.Templates(template.FuncMap{
		"lower": strings.ToLower,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(s.logger))
	if s.tracker != nil {
		r.Use(metrics.TrackVisits(s.tracker, s.logger))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	// Home page route
	r.GET("/", s.index)

	// HTMX contact form endpoints - return just the form HTML
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)

	r.GET("/privacy", s.privacy)

	api := r.Group("/api")
	api.GET("/projects", s.listProjects)
	api.GET("/projects/:id", s.getProject)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

type pageData struct {
	Profile     Profile
	Nav         []string
	Hero        Hero
	Featured    *portfolio.Project
	Spotlight   Spotlight
	Cards       []portfolio.Card
	About       []string
	Skills      []string
	ContactInfo ContactInfo
	Contact     *contact.Form
	Social      []SocialLink
	Year        int
}

func (s *Server) page(form *contact.Form) pageData {
	data := pageData{
		Profile:     SiteProfile,
		Nav:         NavSections,
		Hero:        SiteHero,
		Spotlight:   FeaturedCopy,
		Cards:       portfolio.Cards(s.catalog.All(), portfolio.HoverState{}),
		About:       AboutMe,
		Skills:      CoreSkills,
		ContactInfo: ContactInfo{Email: s.submitter.Address(), Location: Location},
		Contact:     form,
		Social:      socialLinks(s.submitter.Address()),
		Year:        s.now().Year(),
	}
	if featured, err := s.catalog.Featured(); err == nil {
		data.Featured = &featured
	}
	return data
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(contact.NewForm()))
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact-form.html", contact.NewForm())
}

// mailHandoff captures the fallback URI so the response can ask the browser
// to open it.
type mailHandoff struct {
	uri string
}

func (m *mailHandoff) OpenMail(uri string) error {
	m.uri = uri
	return nil
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// Handle contact form submission with HTMX
func (s *Server) submitContact(c *gin.Context) {
	var draft contact.Draft
	if err := c.ShouldBind(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact form"})
		return
	}

	form := contact.NewForm()
	form.Edit(contact.FieldName, draft.Name)
	form.Edit(contact.FieldEmail, draft.Email)
	form.Edit(contact.FieldMessage, draft.Message)

	handoff := &mailHandoff{}
	s.submitter.Submit(c.Request.Context(), form, handoff)

	if handoff.uri != "" {
		trigger, err := json.Marshal(map[string]string{"openMailClient": handoff.uri})
		if err == nil {
			c.Header("HX-Trigger", string(trigger))
		}
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, "contact-form.html", form)
		return
	}
	c.HTML(http.StatusOK, "index.html", s.page(form))
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":         "Privacy Policy",
		"owner":         s.submitter.Address(),
		"retentionDays": s.retentionDays,
	})
}

// listProjects handles GET /api/projects
func (s *Server) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.All())
}

// getProject handles GET /api/projects/:id
func (s *Server) getProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := s.catalog.ByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}
