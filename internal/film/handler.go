package film

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
	rg.GET("", h.list) // GET /films?q=&title=&director=&watched=&format=
	rg.GET("/:id", h.getByID)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.remove)
}

type filmRequest struct {
	Title       string     `json:"title" binding:"required"`
	TitleSlug   string     `json:"titleSlug" binding:"required"`
	Director    string     `json:"director"`
	ImagePath   string     `json:"imagePath"`
	Format      string     `json:"format" binding:"required"`
	IsWatched   bool       `json:"isWatched"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		items []models.Film
		err   error
	)
	switch {
	case c.Query("title") != "":
		items, err = h.Repo.GetAllByTitle(ctx, c.Query("title"))
	case c.Query("director") != "":
		items, err = h.Repo.SearchByDirector(ctx, c.Query("director"))
	case c.Query("watched") == "true":
		items, err = h.Repo.GetWatched(ctx)
	case c.Query("watched") == "false":
		items, err = h.Repo.GetUnwatched(ctx)
	case c.Query("format") != "":
		format, perr := models.ParseVideoFormat(c.Query("format"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		items, err = h.Repo.GetByFormat(ctx, format)
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
	f, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) create(c *gin.Context) {
	f, ok := h.buildFilm(c, "")
	if !ok {
		return
	}

	created, err := h.Repo.Create(c.Request.Context(), f)
	if err != nil {
		// Films carry no volume, so the only duplicate key left is _id.
		if errors.Is(err, models.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "a film with this id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	f, ok := h.buildFilm(c, id)
	if !ok {
		return
	}

	changed, err := h.Repo.Update(c.Request.Context(), id, f)
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

// buildFilm binds and validates the request body. On failure it writes
// the error response itself and reports false.
func (h *Handler) buildFilm(c *gin.Context, id string) (*models.Film, bool) {
	var req filmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	format, err := models.ParseVideoFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	f, err := models.NewFilm(req.Title, req.TitleSlug, req.Director, req.ImagePath,
		format, req.IsWatched, req.ReleaseDate, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return f, true
}
