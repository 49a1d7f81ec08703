// Package store is the data access layer: it translates filter/sort/
// pagination requests into document-store queries and returns typed
// results. Handlers talk to the package-level DB; main wires the Mongo
// implementation and tests swap in the in-memory one.
package store

import (
	"context"
	"errors"

	"gradbridge/models"
)

// ErrNotFound marks a missing document. It is a normal outcome, not a
// failure; handlers translate it to a 404 envelope.
var ErrNotFound = errors.New("document not found")

// DB is the active store. Set once at startup.
var DB Store

// Page is one page of a list query plus the unpaginated total.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Filters. All conditions AND together; zero values mean "no
// constraint". ActiveOnly is set by public surfaces, never by admin.

type CountryFilter struct {
	Search     string
	ActiveOnly bool
	SortBy     string
	Offset     int
	Limit      int
}

type CollegeFilter struct {
	Search     string
	CountryID  string
	Exam       string
	ActiveOnly bool
	SortBy     string
	Offset     int
	Limit      int
}

type ExamFilter struct {
	Search     string
	ExamType   string
	CountryID  string
	ActiveOnly bool
	SortBy     string
	Offset     int
	Limit      int
}

type BlogFilter struct {
	Search     string
	Category   string
	Tag        string
	ActiveOnly bool
	SortBy     string
	Offset     int
	Limit      int
}

type Store interface {
	// Countries
	GetCountryBySlug(ctx context.Context, slug string, activeOnly bool) (models.Country, error)
	GetCountryByID(ctx context.Context, id string) (models.Country, error)
	ListCountries(ctx context.Context, f CountryFilter) (Page[models.Country], error)
	CreateCountry(ctx context.Context, c models.Country) error
	UpdateCountry(ctx context.Context, id string, c models.Country) error
	DeleteCountry(ctx context.Context, id string) error
	CountrySlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	ActiveCountrySlugs(ctx context.Context) ([]string, error)

	// Colleges
	GetCollegeBySlug(ctx context.Context, slug string, activeOnly bool) (models.College, error)
	GetCollegeByID(ctx context.Context, id string) (models.College, error)
	ListColleges(ctx context.Context, f CollegeFilter) (Page[models.College], error)
	CreateCollege(ctx context.Context, c models.College) error
	UpdateCollege(ctx context.Context, id string, c models.College) error
	DeleteCollege(ctx context.Context, id string) error
	CollegeSlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	RelatedColleges(ctx context.Context, countryID, excludeID string, limit int) ([]models.College, error)

	// Exams
	GetExamBySlug(ctx context.Context, slug string, activeOnly bool) (models.Exam, error)
	GetExamByID(ctx context.Context, id string) (models.Exam, error)
	ListExams(ctx context.Context, f ExamFilter) (Page[models.Exam], error)
	CreateExam(ctx context.Context, e models.Exam) error
	UpdateExam(ctx context.Context, id string, e models.Exam) error
	DeleteExam(ctx context.Context, id string) error
	ExamSlugExists(ctx context.Context, slug, excludeID string) (bool, error)

	// Blogs
	GetBlogBySlug(ctx context.Context, slug string, activeOnly bool) (models.Blog, error)
	GetBlogByID(ctx context.Context, id string) (models.Blog, error)
	ListBlogs(ctx context.Context, f BlogFilter) (Page[models.Blog], error)
	CreateBlog(ctx context.Context, b models.Blog) error
	UpdateBlog(ctx context.Context, id string, b models.Blog) error
	DeleteBlog(ctx context.Context, id string) error
	BlogSlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	IncrementBlogViews(ctx context.Context, id string) error

	// Enquiries
	CreateEnquiry(ctx context.Context, e models.Enquiry) error

	// Admin users
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) error
	CountUsers(ctx context.Context) (int64, error)

	// Counts returns per-collection totals of active documents for the
	// public stats endpoint.
	Counts(ctx context.Context) (map[string]int64, error)
}

// ResolveCountry follows a college/exam country reference. A dangling
// reference resolves to nil rather than an error; only store failures
// propagate.
func ResolveCountry(ctx context.Context, id string) (*models.Country, error) {
	if id == "" {
		return nil, nil
	}
	c, err := DB.GetCountryByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
