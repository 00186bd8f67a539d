// Package httpapi exposes the REST surface. Handlers resolve identity, run
// validation, and hand off to domain services; every error reaches the client
// through the taxonomy mapping in writeError.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"propflow/agent"
	"propflow/cms"
	"propflow/config"
	"propflow/development"
	"propflow/favorite"
	"propflow/identity"
	"propflow/lead"
	"propflow/property"
	"propflow/revalidate"
)

// PageSource is the read-only CMS contract consumed by the pages route.
type PageSource interface {
	GetPageContent(ctx context.Context, urlPath string) (*cms.Page, error)
}

// Deps carries the constructed services the router wires handlers to.
type Deps struct {
	Resolver     *identity.Resolver
	Profiles     *identity.Manager
	Agents       agent.Directory
	Properties   *property.Service
	Developments *development.Service
	Leads        *lead.Service
	Favorites    *favorite.Service
	Pages        PageSource
	Signal       revalidate.Signal
}

type server struct {
	cfg          config.Config
	profiles     *identity.Manager
	agents       agent.Directory
	properties   *property.Service
	developments *development.Service
	leads        *lead.Service
	favorites    *favorite.Service
	pages        PageSource
	signal       revalidate.Signal
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &server{
		cfg:          cfg,
		profiles:     deps.Profiles,
		agents:       deps.Agents,
		properties:   deps.Properties,
		developments: deps.Developments,
		leads:        deps.Leads,
		favorites:    deps.Favorites,
		pages:        deps.Pages,
		signal:       deps.Signal,
	}
	if s.signal == nil {
		s.signal = revalidate.Nop{}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(withSession(deps.Resolver))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/site/contact", s.siteContact)

	r.GET("/agents", s.listAgents)

	r.GET("/properties", s.listProperties)
	r.GET("/properties/:id", s.getProperty)
	r.DELETE("/properties/:id", s.deleteProperty)

	r.GET("/developments", s.listDevelopments)
	r.GET("/developments/:id", s.getDevelopment)
	r.POST("/developments", s.createDevelopment)
	r.PUT("/developments/:id", s.updateDevelopment)
	r.PUT("/developments/:id/progress", s.updateDevelopmentProgress)
	r.DELETE("/developments/:id", s.deleteDevelopment)

	r.POST("/leads", s.createLead)
	r.GET("/leads", s.listLeads)

	r.POST("/favorites/toggle", s.toggleFavorite)
	r.GET("/favorites", s.listFavorites)

	r.POST("/admin/setup", s.adminSetup)
	r.PUT("/admin/profiles/:userID/role", s.setProfileRole)

	r.GET("/pages/*path", s.getPage)
	r.POST("/webhooks/cms", s.cmsWebhook)

	return r
}
