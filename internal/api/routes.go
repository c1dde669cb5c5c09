package api

import (
	"net/http"

	"github.com/JaimeStill/aica/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	groups := []routes.Group{domain.Drafts.Handler().Routes()}
	if domain.Prompts != nil {
		groups = append(groups, domain.Prompts.Handler().Routes())
	}
	routes.Register(mux, groups...)
}
