package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/domains/genre/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

const (
	ListURL = "/catalog/genres"

	tmplList   = "genre_list"
	tmplDetail = "genre_detail"
	tmplForm   = "genre_form"
	tmplDelete = "genre_delete"
)

// GenreHandler renders the genre pages
type GenreHandler struct {
	service service.ServiceInterface
}

func NewGenreHandler(s service.ServiceInterface) *GenreHandler {
	return &GenreHandler{
		service: s,
	}
}

// List handles GET /catalog/genres
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.service.ListGenres(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplList, gin.H{
		"title":      "Genre List",
		"genre_list": genres,
	})
}

// Detail handles GET /catalog/genre/:id
func (h *GenreHandler) Detail(c *gin.Context) {
	detail, err := h.service.GetGenreDetail(c.Request.Context(), pathID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplDetail, gin.H{
		"title":       "Genre Detail",
		"genre":       detail.Genre,
		"genre_books": detail.Books,
	})
}

// CreateForm handles GET /catalog/genre/create
func (h *GenreHandler) CreateForm(c *gin.Context) {
	response.Render(c, http.StatusOK, tmplForm, gin.H{
		"title": "Create Genre",
	})
}

// Create handles POST /catalog/genre/create
func (h *GenreHandler) Create(c *gin.Context) {
	var form model.GenreForm
	if err := c.ShouldBind(&form); err != nil {
		response.RenderError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid form submission", err)
		return
	}

	result, err := h.service.CreateGenre(c.Request.Context(), &form)
	if err != nil {
		h.fail(c, err)
		return
	}

	if result.HasErrors() {
		response.Render(c, http.StatusOK, tmplForm, gin.H{
			"title":  "Create Genre",
			"genre":  result.Genre,
			"errors": result.Errors,
		})
		return
	}

	response.Redirect(c, result.Genre.URL())
}

// DeleteForm handles GET /catalog/genre/:id/delete
func (h *GenreHandler) DeleteForm(c *gin.Context) {
	detail, err := h.service.GetGenreDetail(c.Request.Context(), pathID(c))
	if err != nil {
		if model.IsNotFound(err) {
			response.Redirect(c, ListURL)
			return
		}
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplDelete, gin.H{
		"title":       "Delete Genre",
		"genre":       detail.Genre,
		"genre_books": detail.Books,
	})
}

// Delete handles POST /catalog/genre/:id/delete
func (h *GenreHandler) Delete(c *gin.Context) {
	id := utils.ParseStringToUUID(c.PostForm("genreid"))
	if id == uuid.Nil {
		id = pathID(c)
	}

	result, err := h.service.DeleteGenre(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if !result.Deleted {
		response.Render(c, http.StatusOK, tmplDelete, gin.H{
			"title":       "Delete Genre",
			"genre":       result.Genre,
			"genre_books": result.Books,
		})
		return
	}

	response.Redirect(c, ListURL)
}

// UpdateForm handles GET /catalog/genre/:id/update
func (h *GenreHandler) UpdateForm(c *gin.Context) {
	response.NotImplemented(c, "Genre update GET")
}

// Update handles POST /catalog/genre/:id/update
func (h *GenreHandler) Update(c *gin.Context) {
	response.NotImplemented(c, "Genre update POST")
}

func (h *GenreHandler) fail(c *gin.Context, err error) {
	status, message, code := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Str("code", code).Msg("genre request failed")
	}
	_ = c.Error(err)
	response.RenderError(c, status, code, message, err)
}

func pathID(c *gin.Context) uuid.UUID {
	return utils.ParseStringToUUID(c.Param("id"))
}
