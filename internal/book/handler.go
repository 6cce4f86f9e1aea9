package book

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"littlelibrary/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list) // GET /books?q=&title=&read=
	rg.GET("/:id", h.getByID)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.remove)
}

type bookRequest struct {
	Title       string     `json:"title" binding:"required"`
	TitleSlug   string     `json:"titleSlug" binding:"required"`
	Author      string     `json:"author"`
	ImagePath   string     `json:"imagePath"`
	IsDigital   bool       `json:"isDigital"`
	IsRead      bool       `json:"isRead"`
	PublishDate *time.Time `json:"publishDate"`
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		items []models.Book
		err   error
	)
	switch {
	case c.Query("title") != "":
		items, err = h.Repo.GetAllByTitle(ctx, c.Query("title"))
	case c.Query("read") == "true":
		items, err = h.Repo.GetRead(ctx)
	case c.Query("read") == "false":
		items, err = h.Repo.GetUnread(ctx)
	default:
		items, err = h.Repo.SearchByTitle(ctx, c.Query("q"))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) getByID(c *gin.Context) {
	b, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := models.NewBook(req.Title, req.TitleSlug, req.Author, req.ImagePath,
		req.IsDigital, req.IsRead, req.PublishDate, "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Repo.Create(c.Request.Context(), b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) update(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	b, err := models.NewBook(req.Title, req.TitleSlug, req.Author, req.ImagePath,
		req.IsDigital, req.IsRead, req.PublishDate, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.Repo.Update(c.Request.Context(), id, b)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
