package blogs

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"gradbridge/rdx"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
)

// GetBlogs lists active blog articles, newest first.
// Query params: search, category, tag, sort, page/offset, limit.
func GetBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	q := r.URL.Query()
	filter := store.BlogFilter{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Tag:        q.Get("tag"),
		SortBy:     q.Get("sort"),
		ActiveOnly: true,
		Offset:     offset,
		Limit:      limit,
	}

	key := rdx.CacheKey("blogs", fmt.Sprintf("list:s=%s:c=%s:t=%s:sort=%s:o=%d:l=%d",
		filter.Search, filter.Category, filter.Tag, filter.SortBy, filter.Offset, filter.Limit))
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	page, err := store.DB.ListBlogs(r.Context(), filter)
	if err != nil {
		log.Printf("list blogs failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Blogs fetched", Data: page})
}

// GetBlog returns one active article by slug and bumps its view
// counter. The detail response is deliberately not cached so the
// counter keeps moving.
func GetBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	blog, err := store.DB.GetBlogBySlug(r.Context(), slug, true)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		log.Printf("get blog %q failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch blog")
		return
	}

	if err := store.DB.IncrementBlogViews(r.Context(), blog.ID); err != nil {
		log.Printf("get blog %q: view increment failed: %v", slug, err)
	} else {
		blog.Views++
	}

	utils.SendSuccess(w, http.StatusOK, "Blog fetched", blog)
}
