package catalog

import (
	"net/http"
	"strconv"

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
	rg.GET("", h.list)            // GET /catalog
	rg.GET("/recent", h.recent)   // GET /catalog/recent?type=&count=
	rg.GET("/:id", h.getByID)     // GET /catalog/:id
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) recent(c *gin.Context) {
	count := DefaultRecentCount
	if s := c.Query("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = n
	}

	var (
		items []models.BaseObject
		err   error
	)
	if s := c.Query("type"); s != "" {
		collectionType, perr := models.ParseCollection(s)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		items, err = h.Repo.GetMostRecentByType(c.Request.Context(), collectionType, count)
	} else {
		items, err = h.Repo.GetMostRecent(c.Request.Context(), count)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recent failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) getByID(c *gin.Context) {
	obj, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if obj == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, obj)
}
