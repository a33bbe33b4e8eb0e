// Package graphqlapi exposes the catalog as a GraphQL schema served over HTTP.
package graphqlapi

import (
	_ "embed"
	"net/http"

	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the SDL against the resolver. It panics on a mismatch,
// which can only be a programming error.
func NewSchema(l logging.Logger, bs *services.BookService, m *metrics.Recorder) *graphql.Schema {
	r := &Resolver{
		books:   bs,
		logger:  l.With("module", "graphql"),
		metrics: m,
	}
	return graphql.MustParseSchema(schemaSDL, r)
}

// NewHandler serves POST requests of the form {query, operationName, variables}.
func NewHandler(l logging.Logger, bs *services.BookService, m *metrics.Recorder) http.Handler {
	return &relay.Handler{Schema: NewSchema(l, bs, m)}
}
