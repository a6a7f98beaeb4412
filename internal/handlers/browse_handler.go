package handlers

import (
	"net/http"
	"sort"

	"github.com/cinelist/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// GenreShelf is one genre's worth of browsable movies.
type GenreShelf struct {
	Genre  string         `json:"genre"`
	Movies []models.Movie `json:"movies"`
}

const ungroupedShelf = "Uncategorized"

// Browse lists the combined libraries of the authenticated user's friends,
// grouped by genre. A movie with several genres appears on each of its
// shelves; a movie with none lands on the Uncategorized shelf.
func (h *LibraryHandler) Browse(c echo.Context) error {
	claims := authUser(c)

	friends, err := h.userRepository.GetFriends(claims.UserID)
	if err != nil {
		return httpError(err)
	}
	if len(friends) == 0 {
		return c.JSON(http.StatusOK, []GenreShelf{})
	}

	friendIDs := make([]uint, 0, len(friends))
	for i := range friends {
		friendIDs = append(friendIDs, friends[i].ID)
	}

	movies, err := h.movieRepository.ListByUserIDs(friendIDs)
	if err != nil {
		return httpError(err)
	}
	if err := h.markOnLoan(movies); err != nil {
		return httpError(err)
	}

	byGenre := make(map[string][]models.Movie)
	for i := range movies {
		if len(movies[i].Genres) == 0 {
			byGenre[ungroupedShelf] = append(byGenre[ungroupedShelf], movies[i])
			continue
		}
		for _, genre := range movies[i].Genres {
			byGenre[genre] = append(byGenre[genre], movies[i])
		}
	}

	names := make([]string, 0, len(byGenre))
	for name := range byGenre {
		names = append(names, name)
	}
	sort.Strings(names)

	shelves := make([]GenreShelf, 0, len(names))
	for _, name := range names {
		shelves = append(shelves, GenreShelf{Genre: name, Movies: byGenre[name]})
	}
	return c.JSON(http.StatusOK, shelves)
}
