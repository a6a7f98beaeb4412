package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/internal/repositories"
	"github.com/cinelist/backend/pkg/apperrors"
	"github.com/cinelist/backend/pkg/logger"
	"github.com/cinelist/backend/pkg/tmdb"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const posterBaseURL = "http://image.tmdb.org/t/p/w185"

// LibraryHandler handles HTTP requests for the movie catalog
type LibraryHandler struct {
	movieRepository  repositories.MovieRepository
	userRepository   repositories.UserRepository
	borrowRepository repositories.BorrowRequestRepository
	genreRepository  repositories.GenreRepository
	tmdbClient       tmdb.Searcher
}

// NewLibraryHandler creates a new LibraryHandler
func NewLibraryHandler(
	movieRepo repositories.MovieRepository,
	userRepo repositories.UserRepository,
	borrowRepo repositories.BorrowRequestRepository,
	genreRepo repositories.GenreRepository,
	tmdbClient tmdb.Searcher,
) *LibraryHandler {
	return &LibraryHandler{
		movieRepository:  movieRepo,
		userRepository:   userRepo,
		borrowRepository: borrowRepo,
		genreRepository:  genreRepo,
		tmdbClient:       tmdbClient,
	}
}

// RegisterLibraryRoutes registers catalog-related routes
func (h *LibraryHandler) RegisterLibraryRoutes(g *echo.Group) {
	g.POST("/library", h.AddMovie)
	g.GET("/library", h.GetOwnLibrary)
	g.GET("/library/search", h.SearchLibrary)
	g.DELETE("/library/:id", h.DeleteMovie)
	g.PUT("/library/:id/format", h.UpdateFormat)
	g.GET("/users/:id/library", h.GetFriendLibrary)
	g.GET("/movies/search", h.SearchTmdbMovies)
	g.GET("/browse", h.Browse)
}

// AddMovie adds a TMDB title to the authenticated user's library. The
// metadata is fetched from TMDB in a single synchronous call.
func (h *LibraryHandler) AddMovie(c echo.Context) error {
	claims := authUser(c)

	var req models.AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// An already-owned title is returned as-is, never duplicated
	existing, err := h.movieRepository.GetByUserAndTmdbID(claims.UserID, req.TmdbID)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"code":    apperrors.ErrCodeDuplicateItem,
			"message": "this movie is already in your library",
			"movie":   existing,
		})
	}
	if apperrors.Code(err) != apperrors.ErrCodeNotFound {
		return httpError(err)
	}

	details, err := h.tmdbClient.GetMovieDetails(c.Request().Context(), req.TmdbID)
	if err != nil {
		logger.Error("TMDB details fetch failed", "tmdb_id", req.TmdbID, "error", err)
		return httpError(apperrors.Wrap(err, apperrors.ErrCodeUpstreamUnavailable, "movie metadata provider unavailable"))
	}

	if details.Title == "" || details.ReleaseDate == "" {
		return httpError(apperrors.New(apperrors.ErrCodeIncompleteMetadata, "provider response is missing title or release date"))
	}
	releaseDate, err := time.Parse("2006-01-02", details.ReleaseDate)
	if err != nil {
		return httpError(apperrors.Wrap(err, apperrors.ErrCodeIncompleteMetadata, "provider returned an unparseable release date"))
	}

	genres := make(models.StringList, 0, len(details.Genres))
	for _, genre := range details.Genres {
		genres = append(genres, genre.Name)
		if err := h.genreRepository.Upsert(genre.ID, genre.Name); err != nil {
			logger.Warn("Failed to record genre", "genre", genre.Name, "error", err)
		}
	}

	imageLink := ""
	if details.PosterPath != "" {
		imageLink = posterBaseURL + details.PosterPath
	}

	movie := &models.Movie{
		UserID:                claims.UserID,
		TmdbID:                req.TmdbID,
		Title:                 details.Title,
		ReleaseDate:           releaseDate,
		SearchableReleaseDate: details.ReleaseDate,
		RuntimeMinutes:        details.Runtime,
		Description:           details.Overview,
		ImageLink:             imageLink,
		TmdbLink:              fmt.Sprintf("http://tmdb.org/movie/%d", req.TmdbID),
		Budget:                details.Budget,
		Revenue:               details.Revenue,
		Rating:                details.USCertification(),
		Genres:                genres,
		Status:                models.MovieStatusAvailable,
		Format:                req.Format,
	}

	if err := h.movieRepository.Create(movie); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, movie)
}

// markOnLoan sets the derived on-loan flag on each movie. Availability is
// computed from accepted borrow requests covering today, not from the
// stored status column.
func (h *LibraryHandler) markOnLoan(movies []models.Movie) error {
	ids := make([]uint, 0, len(movies))
	for i := range movies {
		ids = append(ids, movies[i].ID)
	}
	active, err := h.borrowRepository.ActiveLoanMovieIDs(ids, today())
	if err != nil {
		return err
	}
	for i := range movies {
		movies[i].OnLoan = active[movies[i].ID]
	}
	return nil
}

// GetOwnLibrary lists the authenticated user's library
func (h *LibraryHandler) GetOwnLibrary(c echo.Context) error {
	claims := authUser(c)

	movies, err := h.movieRepository.ListByUser(claims.UserID)
	if err != nil {
		return httpError(err)
	}
	if err := h.markOnLoan(movies); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, movies)
}

// GetFriendLibrary lists another user's library; only friends may browse it
func (h *LibraryHandler) GetFriendLibrary(c echo.Context) error {
	claims := authUser(c)

	otherID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if uint(otherID) != claims.UserID {
		friends, err := h.userRepository.AreFriends(claims.UserID, uint(otherID))
		if err != nil {
			return httpError(err)
		}
		if !friends {
			return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "you are not friends with this user"))
		}
	}

	movies, err := h.movieRepository.ListByUser(uint(otherID))
	if err != nil {
		return httpError(err)
	}
	if err := h.markOnLoan(movies); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, movies)
}

// DeleteMovie removes a title from the authenticated user's library.
// Deleting an id that is already gone succeeds as a no-op.
func (h *LibraryHandler) DeleteMovie(c echo.Context) error {
	claims := authUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid movie ID")
	}

	movie, err := h.movieRepository.GetByID(uint(id))
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrCodeNotFound {
			return c.NoContent(http.StatusNoContent)
		}
		return httpError(err)
	}
	if movie.UserID != claims.UserID {
		return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "you do not own this movie"))
	}

	if err := h.movieRepository.Delete(uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateFormat changes the physical format of an owned title
func (h *LibraryHandler) UpdateFormat(c echo.Context) error {
	claims := authUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid movie ID")
	}

	var req models.UpdateFormatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.movieRepository.GetByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	if movie.UserID != claims.UserID {
		return httpError(apperrors.New(apperrors.ErrCodePermissionDenied, "you do not own this movie"))
	}

	updated, err := h.movieRepository.UpdateFormat(uint(id), req.Format)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SearchLibrary filters the authenticated user's library
func (h *LibraryHandler) SearchLibrary(c echo.Context) error {
	claims := authUser(c)

	format := c.QueryParam("format")
	if format != "" && !models.ValidFormat(format) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown format")
	}

	movies, err := h.movieRepository.Search(models.MovieSearchFilters{
		UserIDs:  []uint{claims.UserID},
		Format:   format,
		Status:   c.QueryParam("status"),
		Keywords: c.QueryParam("keywords"),
	})
	if err != nil {
		return httpError(err)
	}
	if err := h.markOnLoan(movies); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, movies)
}

// SearchTmdbMovies is a passthrough to the metadata provider's search. An
// empty query falls back to the popular-movies listing.
func (h *LibraryHandler) SearchTmdbMovies(c echo.Context) error {
	query := c.QueryParam("query")

	var (
		resp *tmdb.Response
		err  error
	)
	if query == "" {
		resp, err = h.tmdbClient.Discover(c.Request().Context())
	} else {
		resp, err = h.tmdbClient.SearchMovie(c.Request().Context(), query)
	}
	if err != nil {
		logger.Error("TMDB search failed", "query", query, "error", err)
		return httpError(apperrors.Wrap(err, apperrors.ErrCodeUpstreamUnavailable, "movie metadata provider unavailable"))
	}

	return c.JSON(http.StatusOK, resp.Results)
}
