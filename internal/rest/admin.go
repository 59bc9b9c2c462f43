package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/rest/request"
	"github.com/inkpress/inkpress/internal/rest/response"
)

const (
	DefaultPageLimit = 10
	PageLimitMax     = 100
)

type adminHandler struct {
	Service domain.AdminUsecase
}

func NewAdminHandler(svc domain.AdminUsecase) *adminHandler {
	return &adminHandler{
		Service: svc,
	}
}

// pageQuery reads the shared page/limit/search triple, falling back to
// the defaults on absent or unusable values.
func pageQuery(c *gin.Context) domain.PageQuery {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", ""), 10, 64)
	if err != nil || limit < 1 || limit > PageLimitMax {
		limit = DefaultPageLimit
	}
	return domain.PageQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

func (h *adminHandler) ListUsers(c *gin.Context) {
	users, meta, err := h.Service.ListUsers(c.Request.Context(), pageQuery(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPaged(response.NewUserStatsListFromDomain(users), meta))
}

func (h *adminHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.Service.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewUserStatsFromDomain(&user))
}

func (h *adminHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req request.AdminUserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Service.UpdateUser(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewUserFromDomain(&user))
}

func (h *adminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteUser(c.Request.Context(), id, actorID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *adminHandler) ListBlogs(c *gin.Context) {
	q := domain.AdminBlogQuery{
		PageQuery: pageQuery(c),
		Status:    c.Query("status"),
	}
	if categoryID, err := strconv.ParseInt(c.Query("category"), 10, 64); err == nil && categoryID > 0 {
		q.CategoryID = categoryID
	}

	blogs, meta, err := h.Service.ListBlogs(c.Request.Context(), q)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPaged(response.NewBlogStatsListFromDomain(blogs), meta))
}

func (h *adminHandler) GetBlog(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	view, err := h.Service.GetBlog(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogViewFromDomain(&view))
}

func (h *adminHandler) ToggleBlogPublish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	blog, err := h.Service.ToggleBlogPublish(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewBlogFromDomain(&blog))
}

func (h *adminHandler) DeleteBlog(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteBlog(c.Request.Context(), id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *adminHandler) ListCategories(c *gin.Context) {
	categories, meta, err := h.Service.ListCategories(c.Request.Context(), pageQuery(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPaged(response.NewCategoryStatsListFromDomain(categories), meta))
}

func (h *adminHandler) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	category, err := h.Service.GetCategory(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCategoryStatsFromDomain(&category))
}

func (h *adminHandler) CreateCategory(c *gin.Context) {
	var req request.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewCategoryFromDomain(category))
}

func (h *adminHandler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req request.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCategoryFromDomain(category))
}

func (h *adminHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteCategory(c.Request.Context(), id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *adminHandler) ListComments(c *gin.Context) {
	comments, meta, err := h.Service.ListComments(c.Request.Context(), pageQuery(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPaged(response.NewCommentDetailListFromDomain(comments), meta))
}

func (h *adminHandler) GetComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	comment, err := h.Service.GetComment(c.Request.Context(), id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentDetailFromDomain(&comment))
}

func (h *adminHandler) DeleteComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteComment(c.Request.Context(), id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *adminHandler) Analytics(c *gin.Context) {
	analytics, err := h.Service.Analytics(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewAnalyticsFromDomain(&analytics))
}
