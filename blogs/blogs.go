package blogs

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gradbridge/models"
	"gradbridge/mq"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/microcosm-cc/bluemonday"
)

// Article bodies are stored pre-sanitized so every render path is safe,
// including ones added later. UGCPolicy keeps basic formatting tags and
// strips scripts and event handlers.
var sanitizer = bluemonday.UGCPolicy()

type blogRequest struct {
	Title        *string    `json:"title"`
	Slug         *string    `json:"slug"`
	Category     *string    `json:"category"`
	Tags         []string   `json:"tags"`
	Content      *string    `json:"content"`
	Image        *string    `json:"image"`
	Author       *string    `json:"author"`
	PublishedAt  *time.Time `json:"published_at"`
	ReadTime     *int       `json:"read_time"`
	RelatedExams []string   `json:"related_exams"`
	IsActive     *bool      `json:"is_active"`
}

func (req *blogRequest) apply(b *models.Blog) {
	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	if req.Content != nil {
		b.Content = sanitizer.Sanitize(*req.Content)
	}
	if req.Image != nil {
		b.Image = *req.Image
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.PublishedAt != nil {
		b.PublishedAt = req.PublishedAt
	}
	if req.ReadTime != nil {
		b.ReadTime = *req.ReadTime
	}
	if req.RelatedExams != nil {
		b.RelatedExams = req.RelatedExams
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
}

func validateBlog(b *models.Blog) []string {
	var violations []string
	if strings.TrimSpace(b.Title) == "" {
		violations = append(violations, "title is required")
	}
	if strings.TrimSpace(b.Content) == "" {
		violations = append(violations, "content is required")
	}
	if b.Image != "" && !utils.IsValidURL(b.Image) && !strings.HasPrefix(b.Image, "/static/") {
		violations = append(violations, "image must be a valid URL or an uploaded file path")
	}
	return violations
}

// AdminListBlogs lists every article, inactive ones included.
func AdminListBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	page, err := store.DB.ListBlogs(r.Context(), store.BlogFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		SortBy:   r.URL.Query().Get("sort"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		log.Printf("admin list blogs failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Blogs fetched", page)
}

// AdminGetBlog returns an article by slug regardless of is_active.
func AdminGetBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	blog, err := store.DB.GetBlogBySlug(r.Context(), ps.ByName("slug"), false)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		log.Printf("admin get blog failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch blog")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Blog fetched", blog)
}

// CreateBlog inserts a new article. Content is sanitized before it is
// stored.
func CreateBlog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now()
	blog := models.Blog{
		ID:        utils.GenerateID(16),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(&blog)

	if violations := validateBlog(&blog); len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	blog.Slug = utils.Slugify(blog.Title)
	if req.Slug != nil && *req.Slug != "" {
		blog.Slug = utils.Slugify(*req.Slug)
	}
	exists, err := store.DB.BlogSlugExists(r.Context(), blog.Slug, "")
	if err != nil {
		log.Printf("create blog: slug check failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create blog")
		return
	}
	if exists {
		utils.SendError(w, http.StatusConflict, "A blog with this slug already exists")
		return
	}

	if err := store.DB.CreateBlog(r.Context(), blog); err != nil {
		log.Printf("create blog failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create blog")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "blogs", Method: "created", EntityID: blog.ID})
	utils.SendSuccess(w, http.StatusCreated, "Blog created", blog)
}

// EditBlog applies a partial update.
func EditBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	blog, err := store.DB.GetBlogByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		log.Printf("edit blog: lookup failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update blog")
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.apply(&blog)

	if violations := validateBlog(&blog); len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	if req.Slug != nil && utils.Slugify(*req.Slug) != blog.Slug {
		newSlug := utils.Slugify(*req.Slug)
		exists, err := store.DB.BlogSlugExists(r.Context(), newSlug, id)
		if err != nil {
			log.Printf("edit blog: slug check failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to update blog")
			return
		}
		if exists {
			utils.SendError(w, http.StatusConflict, "A blog with this slug already exists")
			return
		}
		blog.Slug = newSlug
	}

	blog.UpdatedAt = time.Now()
	if err := store.DB.UpdateBlog(r.Context(), id, blog); err != nil {
		log.Printf("edit blog failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update blog")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "blogs", Method: "updated", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "Blog updated", blog)
}

// DeleteBlog is an unconditional hard delete by id.
func DeleteBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	err := store.DB.DeleteBlog(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		log.Printf("delete blog failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete blog")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "blogs", Method: "deleted", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "Blog deleted", nil)
}
