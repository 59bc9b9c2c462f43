package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/rest/middleware"
	"github.com/inkpress/inkpress/internal/rest/request"
	"github.com/inkpress/inkpress/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// BlogHandler represent the httphandler for the public blog surface
type BlogHandler struct {
	Service    domain.BlogUsecase
	Categories domain.CategoryRepository
}

func NewBlogHandler(svc domain.BlogUsecase, categories domain.CategoryRepository) *BlogHandler {
	return &BlogHandler{
		Service:    svc,
		Categories: categories,
	}
}

// viewerID returns the authenticated user ID, 0 for anonymous viewers.
func viewerID(c *gin.Context) int64 {
	v, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// authedUserID returns the user ID set by the auth middleware, failing
// the request when it is absent.
func authedUserID(c *gin.Context) (int64, bool) {
	id := viewerID(c)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return id, true
}

// FetchAll will fetch every blog, newest first
func (h *BlogHandler) FetchAll(c *gin.Context) {
	views, err := h.Service.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// GetBySlug will get a single blog view by its slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	view, err := h.Service.GetBySlug(c.Request.Context(), slug, viewerID(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewFromDomain(&view))
}

// Search matches the query against titles, contents and category names
func (h *BlogHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}

	views, err := h.Service.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// Latest returns the newest published highlights
func (h *BlogHandler) Latest(c *gin.Context) {
	views, err := h.Service.Latest(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// Trending returns the most liked published highlights
func (h *BlogHandler) Trending(c *gin.Context) {
	views, err := h.Service.Trending(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// Related returns published blogs sharing a category with the given one
func (h *BlogHandler) Related(c *gin.Context) {
	views, err := h.Service.Related(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// ByAuthor returns all blogs of the author given by the id query param
func (h *BlogHandler) ByAuthor(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || authorID <= 0 {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}

	views, err := h.Service.ByAuthor(c.Request.Context(), authorID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// FetchCategories returns every category
func (h *BlogHandler) FetchCategories(c *gin.Context) {
	categories, err := h.Categories.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	res := make([]response.Category, 0, len(categories))
	for _, cat := range categories {
		res = append(res, response.NewCategoryFromDomain(cat))
	}
	c.JSON(http.StatusOK, res)
}

// ByCategory returns blogs tagged with the named category
func (h *BlogHandler) ByCategory(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}

	views, err := h.Service.ByCategory(c.Request.Context(), name)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewsFromDomain(views))
}

// Store will create a blog for the authenticated user
func (h *BlogHandler) Store(c *gin.Context) {
	var req request.Blog
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	blog := req.ToDomain()
	blog.Author.ID = userID

	if err := h.Service.Store(c.Request.Context(), &blog, req.Categories); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewBlogFromDomain(&blog))
}

// Update applies the patch to the blog behind the slug, author only
func (h *BlogHandler) Update(c *gin.Context) {
	var req request.BlogUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	blog, err := h.Service.Update(c.Request.Context(), c.Param("slug"), userID, req.ToPatch())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogFromDomain(&blog))
}

// Delete removes the blog and everything attached to it
func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), c.Param("slug"), userID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Like flips the like state of (viewer, blog)
func (h *BlogHandler) Like(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	res, err := h.Service.ToggleLike(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewLikeFromDomain(res))
}

// LikeStatus reports the viewer's current like state for the blog
func (h *BlogHandler) LikeStatus(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	res, err := h.Service.LikeStatus(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewLikeFromDomain(res))
}

// getStatusCode will get the http code matching the domain error
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch err {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
