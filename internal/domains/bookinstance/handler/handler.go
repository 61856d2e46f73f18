package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/domains/bookinstance/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

const (
	ListURL = "/catalog/bookinstances"

	tmplList   = "bookinstance_list"
	tmplDetail = "bookinstance_detail"
	tmplForm   = "bookinstance_form"
	tmplDelete = "bookinstance_delete"

	titleCreate = "Create BookInstance"
	titleUpdate = "Update Book Instance"
)

// BookInstanceHandler renders the book instance pages
type BookInstanceHandler struct {
	service service.ServiceInterface
}

func NewBookInstanceHandler(s service.ServiceInterface) *BookInstanceHandler {
	return &BookInstanceHandler{
		service: s,
	}
}

// List handles GET /catalog/bookinstances
func (h *BookInstanceHandler) List(c *gin.Context) {
	instances, err := h.service.ListBookInstances(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplList, gin.H{
		"title":             "Book Instance List",
		"bookinstance_list": instances,
	})
}

// Detail handles GET /catalog/bookinstance/:id
func (h *BookInstanceHandler) Detail(c *gin.Context) {
	instance, err := h.service.GetBookInstance(c.Request.Context(), pathID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplDetail, gin.H{
		"title":        "Copy: " + instance.BookTitle,
		"bookinstance": instance,
	})
}

// CreateForm handles GET /catalog/bookinstance/create
func (h *BookInstanceHandler) CreateForm(c *gin.Context) {
	options, err := h.service.GetBookOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplForm, gin.H{
		"title":          titleCreate,
		"book_list":      options,
		"selected_book":  "",
		"status_options": model.Statuses,
	})
}

// Create handles POST /catalog/bookinstance/create
func (h *BookInstanceHandler) Create(c *gin.Context) {
	var form model.BookInstanceForm
	if err := c.ShouldBind(&form); err != nil {
		response.RenderError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid form submission", err)
		return
	}

	result, err := h.service.CreateBookInstance(c.Request.Context(), &form)
	if err != nil {
		h.fail(c, err)
		return
	}

	if result.HasErrors() {
		h.renderForm(c, titleCreate, result)
		return
	}

	response.Redirect(c, result.BookInstance.URL())
}

// DeleteForm handles GET /catalog/bookinstance/:id/delete
func (h *BookInstanceHandler) DeleteForm(c *gin.Context) {
	instance, err := h.service.GetBookInstance(c.Request.Context(), pathID(c))
	if err != nil {
		if model.IsNotFound(err) {
			response.Redirect(c, ListURL)
			return
		}
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplDelete, gin.H{
		"title":         "Delete Book instance",
		"book_instance": instance,
	})
}

// Delete handles POST /catalog/bookinstance/:id/delete
func (h *BookInstanceHandler) Delete(c *gin.Context) {
	id := utils.ParseStringToUUID(c.PostForm("bookinstanceid"))
	if id == uuid.Nil {
		id = pathID(c)
	}

	if err := h.service.DeleteBookInstance(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Redirect(c, ListURL)
}

// UpdateForm handles GET /catalog/bookinstance/:id/update
func (h *BookInstanceHandler) UpdateForm(c *gin.Context) {
	data, err := h.service.GetBookInstanceForUpdate(c.Request.Context(), pathID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Render(c, http.StatusOK, tmplForm, gin.H{
		"title":          titleUpdate,
		"bookinstance":   data.BookInstance,
		"book_list":      data.BookOptions,
		"selected_book":  data.BookInstance.BookID.String(),
		"status_options": model.Statuses,
	})
}

// Update handles POST /catalog/bookinstance/:id/update
func (h *BookInstanceHandler) Update(c *gin.Context) {
	var form model.BookInstanceForm
	if err := c.ShouldBind(&form); err != nil {
		response.RenderError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid form submission", err)
		return
	}

	result, err := h.service.UpdateBookInstance(c.Request.Context(), pathID(c), &form)
	if err != nil {
		h.fail(c, err)
		return
	}

	if result.HasErrors() {
		h.renderForm(c, titleUpdate, result)
		return
	}

	response.Redirect(c, result.BookInstance.URL())
}

// renderForm re-renders a rejected submission with the user's input preserved
func (h *BookInstanceHandler) renderForm(c *gin.Context, title string, result *model.FormResult) {
	selected := ""
	if result.BookInstance.BookID != uuid.Nil {
		selected = result.BookInstance.BookID.String()
	}

	response.Render(c, http.StatusOK, tmplForm, gin.H{
		"title":          title,
		"bookinstance":   result.BookInstance,
		"book_list":      result.BookOptions,
		"selected_book":  selected,
		"status_options": model.Statuses,
		"errors":         result.Errors,
	})
}

func (h *BookInstanceHandler) fail(c *gin.Context, err error) {
	status, message, code := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Str("code", code).Msg("book instance request failed")
	}
	_ = c.Error(err)
	response.RenderError(c, status, code, message, err)
}

// pathID returns uuid.Nil for malformed ids, which the service treats as not found
func pathID(c *gin.Context) uuid.UUID {
	return utils.ParseStringToUUID(c.Param("id"))
}
