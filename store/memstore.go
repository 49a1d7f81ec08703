package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gradbridge/models"
)

// MemStore is an in-memory Store with the same filter semantics as the
// Mongo implementation. Tests (and local development without a
// database) run against it.
type MemStore struct {
	mu        sync.RWMutex
	countries map[string]models.Country
	colleges  map[string]models.College
	exams     map[string]models.Exam
	blogs     map[string]models.Blog
	enquiries map[string]models.Enquiry
	users     map[string]models.User
}

func NewMemStore() *MemStore {
	return &MemStore{
		countries: make(map[string]models.Country),
		colleges:  make(map[string]models.College),
		exams:     make(map[string]models.Exam),
		blogs:     make(map[string]models.Blog),
		enquiries: make(map[string]models.Enquiry),
		users:     make(map[string]models.User),
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// --- Countries ---

func (s *MemStore) GetCountryBySlug(_ context.Context, slug string, activeOnly bool) (models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.countries {
		if c.Slug == slug && (!activeOnly || c.IsActive) {
			return c, nil
		}
	}
	return models.Country{}, ErrNotFound
}

func (s *MemStore) GetCountryByID(_ context.Context, id string) (models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.countries[id]; ok {
		return c, nil
	}
	return models.Country{}, ErrNotFound
}

func (s *MemStore) ListCountries(_ context.Context, f CountryFilter) (Page[models.Country], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Country{}
	for _, c := range s.countries {
		if f.ActiveOnly && !c.IsActive {
			continue
		}
		if f.Search != "" && !containsFold(c.Name, f.Search) && !containsFold(c.Description, f.Search) {
			continue
		}
		matched = append(matched, c)
	}

	sort.Slice(matched, func(i, j int) bool {
		if f.SortBy == "newest" {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Name < matched[j].Name
	})

	return Page[models.Country]{Items: paginate(matched, f.Offset, f.Limit), Total: int64(len(matched))}, nil
}

func (s *MemStore) CreateCountry(_ context.Context, c models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[c.ID] = c
	return nil
}

func (s *MemStore) UpdateCountry(_ context.Context, id string, c models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[id]; !ok {
		return ErrNotFound
	}
	s.countries[id] = c
	return nil
}

func (s *MemStore) DeleteCountry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[id]; !ok {
		return ErrNotFound
	}
	delete(s.countries, id)
	return nil
}

func (s *MemStore) CountrySlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.countries {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) ActiveCountrySlugs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slugs := []string{}
	for _, c := range s.countries {
		if c.IsActive {
			slugs = append(slugs, c.Slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// --- Colleges ---

func (s *MemStore) GetCollegeBySlug(_ context.Context, slug string, activeOnly bool) (models.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.colleges {
		if c.Slug == slug && (!activeOnly || c.IsActive) {
			return c, nil
		}
	}
	return models.College{}, ErrNotFound
}

func (s *MemStore) GetCollegeByID(_ context.Context, id string) (models.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.colleges[id]; ok {
		return c, nil
	}
	return models.College{}, ErrNotFound
}

func matchCollege(c models.College, f CollegeFilter) bool {
	if f.ActiveOnly && !c.IsActive {
		return false
	}
	if f.CountryID != "" && c.CountryRef != f.CountryID {
		return false
	}
	if f.Exam != "" {
		found := false
		for _, e := range c.Exams {
			if containsFold(e, f.Exam) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		// same field set the Mongo query $ors over
		overview := ""
		if c.Overview != nil {
			overview = c.Overview.Description
		}
		if !containsFold(c.Name, f.Search) && !containsFold(overview, f.Search) && !containsFold(c.AboutContent, f.Search) {
			return false
		}
	}
	return true
}

func sortColleges(items []models.College, sortBy string) {
	sort.Slice(items, func(i, j int) bool {
		switch sortBy {
		case "name":
			return items[i].Name < items[j].Name
		case "fees_low":
			return items[i].Fees < items[j].Fees
		case "fees_high":
			return items[i].Fees > items[j].Fees
		case "oldest":
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		default:
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
	})
}

func (s *MemStore) ListColleges(_ context.Context, f CollegeFilter) (Page[models.College], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.College{}
	for _, c := range s.colleges {
		if matchCollege(c, f) {
			matched = append(matched, c)
		}
	}
	sortColleges(matched, f.SortBy)

	return Page[models.College]{Items: paginate(matched, f.Offset, f.Limit), Total: int64(len(matched))}, nil
}

func (s *MemStore) CreateCollege(_ context.Context, c models.College) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colleges[c.ID] = c
	return nil
}

func (s *MemStore) UpdateCollege(_ context.Context, id string, c models.College) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.colleges[id]; !ok {
		return ErrNotFound
	}
	s.colleges[id] = c
	return nil
}

func (s *MemStore) DeleteCollege(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.colleges[id]; !ok {
		return ErrNotFound
	}
	delete(s.colleges, id)
	return nil
}

func (s *MemStore) CollegeSlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.colleges {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) RelatedColleges(_ context.Context, countryID, excludeID string, limit int) ([]models.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	related := []models.College{}
	for _, c := range s.colleges {
		if c.IsActive && c.CountryRef == countryID && c.ID != excludeID {
			related = append(related, c)
		}
	}
	sortColleges(related, "")
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// --- Exams ---

func (s *MemStore) GetExamBySlug(_ context.Context, slug string, activeOnly bool) (models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exams {
		if e.Slug == slug && (!activeOnly || e.IsActive) {
			return e, nil
		}
	}
	return models.Exam{}, ErrNotFound
}

func (s *MemStore) GetExamByID(_ context.Context, id string) (models.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.exams[id]; ok {
		return e, nil
	}
	return models.Exam{}, ErrNotFound
}

func (s *MemStore) ListExams(_ context.Context, f ExamFilter) (Page[models.Exam], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Exam{}
	for _, e := range s.exams {
		if f.ActiveOnly && !e.IsActive {
			continue
		}
		if f.ExamType != "" && e.ExamType != f.ExamType {
			continue
		}
		if f.CountryID != "" {
			found := false
			for _, ref := range e.CountryRefs {
				if ref == f.CountryID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.Search != "" && !containsFold(e.Name, f.Search) &&
			!containsFold(e.ShortName, f.Search) && !containsFold(e.Description, f.Search) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		if f.SortBy == "name" {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].DisplayOrder < matched[j].DisplayOrder
	})

	return Page[models.Exam]{Items: paginate(matched, f.Offset, f.Limit), Total: int64(len(matched))}, nil
}

func (s *MemStore) CreateExam(_ context.Context, e models.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exams[e.ID] = e
	return nil
}

func (s *MemStore) UpdateExam(_ context.Context, id string, e models.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exams[id]; !ok {
		return ErrNotFound
	}
	s.exams[id] = e
	return nil
}

func (s *MemStore) DeleteExam(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exams[id]; !ok {
		return ErrNotFound
	}
	delete(s.exams, id)
	return nil
}

func (s *MemStore) ExamSlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exams {
		if e.Slug == slug && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// --- Blogs ---

func (s *MemStore) GetBlogBySlug(_ context.Context, slug string, activeOnly bool) (models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.blogs {
		if b.Slug == slug && (!activeOnly || b.IsActive) {
			return b, nil
		}
	}
	return models.Blog{}, ErrNotFound
}

func (s *MemStore) GetBlogByID(_ context.Context, id string) (models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.blogs[id]; ok {
		return b, nil
	}
	return models.Blog{}, ErrNotFound
}

func (s *MemStore) ListBlogs(_ context.Context, f BlogFilter) (Page[models.Blog], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Blog{}
	for _, b := range s.blogs {
		if f.ActiveOnly && !b.IsActive {
			continue
		}
		if f.Category != "" && !containsFold(b.Category, f.Category) {
			continue
		}
		if f.Tag != "" {
			found := false
			for _, t := range b.Tags {
				if containsFold(t, f.Tag) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.Search != "" && !containsFold(b.Title, f.Search) && !containsFold(b.Content, f.Search) {
			continue
		}
		matched = append(matched, b)
	}

	sort.Slice(matched, func(i, j int) bool {
		switch f.SortBy {
		case "popular":
			return matched[i].Views > matched[j].Views
		case "oldest":
			return matched[i].Published().Before(matched[j].Published())
		default:
			return matched[i].Published().After(matched[j].Published())
		}
	})

	return Page[models.Blog]{Items: paginate(matched, f.Offset, f.Limit), Total: int64(len(matched))}, nil
}

func (s *MemStore) CreateBlog(_ context.Context, b models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs[b.ID] = b
	return nil
}

func (s *MemStore) UpdateBlog(_ context.Context, id string, b models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogs[id]; !ok {
		return ErrNotFound
	}
	s.blogs[id] = b
	return nil
}

func (s *MemStore) DeleteBlog(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogs[id]; !ok {
		return ErrNotFound
	}
	delete(s.blogs, id)
	return nil
}

func (s *MemStore) BlogSlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.blogs {
		if b.Slug == slug && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) IncrementBlogViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return ErrNotFound
	}
	b.Views++
	s.blogs[id] = b
	return nil
}

// --- Enquiries ---

func (s *MemStore) CreateEnquiry(_ context.Context, e models.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enquiries[e.ID] = e
	return nil
}

// --- Admin users ---

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemStore) CreateUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *MemStore) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// --- Stats ---

func (s *MemStore) Counts(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int64{"countries": 0, "colleges": 0, "exams": 0, "blogs": 0}
	for _, c := range s.countries {
		if c.IsActive {
			counts["countries"]++
		}
	}
	for _, c := range s.colleges {
		if c.IsActive {
			counts["colleges"]++
		}
	}
	for _, e := range s.exams {
		if e.IsActive {
			counts["exams"]++
		}
	}
	for _, b := range s.blogs {
		if b.IsActive {
			counts["blogs"]++
		}
	}
	return counts, nil
}
