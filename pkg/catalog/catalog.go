// Package catalog holds the informational API catalog served by GET /api/docs.
// The storefront renders it verbatim on the docs view.
package catalog

import (
	"fmt"
	"strings"
)

type Catalog struct {
	Version   string     `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	Method       string      `json:"method"`
	Path         string      `json:"path"`
	RequiresAuth bool        `json:"requiresAuth"`
	Description  string      `json:"description"`
	Example      string      `json:"example,omitempty"`
	Response     interface{} `json:"response,omitempty"`
}

// Render formats the catalog as the docs view displays it.
func (c *Catalog) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "JWT Pizza API (version %s)\n", c.Version)
	for _, ep := range c.Endpoints {
		auth := ""
		if ep.RequiresAuth {
			auth = " [auth]"
		}
		fmt.Fprintf(&b, "%s %s%s\n  %s\n", ep.Method, ep.Path, auth, ep.Description)
		if ep.Example != "" {
			fmt.Fprintf(&b, "  example: %s\n", ep.Example)
		}
	}
	return b.String()
}
