// Package tmdb is a thin client for The Movie Database HTTP API, covering
// the search, discover and movie-details endpoints the catalog needs.
package tmdb
