package store

import (
	"context"
	"errors"
	"regexp"

	"gradbridge/db"
	"gradbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store over the shared db collections.
type MongoStore struct{}

func NewMongoStore() *MongoStore { return &MongoStore{} }

func ciRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func findOne[T any](ctx context.Context, col *mongo.Collection, query bson.M) (T, error) {
	var out T
	err := col.FindOne(ctx, query).Decode(&out)
	return out, mapErr(err)
}

func findPage[T any](ctx context.Context, col *mongo.Collection, query bson.M, sort bson.D, offset, limit int) (Page[T], error) {
	page := Page[T]{Items: []T{}}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return page, err
	}
	page.Total = total

	opts := options.Find().SetSort(sort).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return page, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &page.Items); err != nil {
		return page, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func replaceOne(ctx context.Context, col *mongo.Collection, id string, doc interface{}) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, col *mongo.Collection, id string) error {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func slugExists(ctx context.Context, col *mongo.Collection, slug, excludeID string) (bool, error) {
	query := bson.M{"slug": slug}
	if excludeID != "" {
		query["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := col.CountDocuments(ctx, query)
	return n > 0, err
}

func slugQuery(slug string, activeOnly bool) bson.M {
	query := bson.M{"slug": slug}
	if activeOnly {
		query["is_active"] = true
	}
	return query
}

// --- Query builders. Split out so the filter translation is testable
// without a live server. ---

func countryQuery(f CountryFilter) bson.M {
	query := bson.M{}
	if f.ActiveOnly {
		query["is_active"] = true
	}
	if f.Search != "" {
		query["$or"] = []bson.M{
			{"name": ciRegex(f.Search)},
			{"description": ciRegex(f.Search)},
		}
	}
	return query
}

func countrySort(sortBy string) bson.D {
	switch sortBy {
	case "newest":
		return bson.D{{Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "name", Value: 1}}
	}
}

func collegeQuery(f CollegeFilter) bson.M {
	query := bson.M{}
	if f.ActiveOnly {
		query["is_active"] = true
	}
	if f.CountryID != "" {
		query["country_ref"] = f.CountryID
	}
	if f.Exam != "" {
		query["exams"] = ciRegex(f.Exam)
	}
	if f.Search != "" {
		query["$or"] = []bson.M{
			{"name": ciRegex(f.Search)},
			{"overview.description": ciRegex(f.Search)},
			{"about_content": ciRegex(f.Search)},
		}
	}
	return query
}

func collegeSort(sortBy string) bson.D {
	switch sortBy {
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	case "fees_low":
		return bson.D{{Key: "fees", Value: 1}}
	case "fees_high":
		return bson.D{{Key: "fees", Value: -1}}
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func examQuery(f ExamFilter) bson.M {
	query := bson.M{}
	if f.ActiveOnly {
		query["is_active"] = true
	}
	if f.ExamType != "" {
		query["exam_type"] = f.ExamType
	}
	if f.CountryID != "" {
		query["country_refs"] = f.CountryID
	}
	if f.Search != "" {
		query["$or"] = []bson.M{
			{"name": ciRegex(f.Search)},
			{"short_name": ciRegex(f.Search)},
			{"description": ciRegex(f.Search)},
		}
	}
	return query
}

func examSort(sortBy string) bson.D {
	switch sortBy {
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	default:
		return bson.D{{Key: "display_order", Value: 1}}
	}
}

func blogQuery(f BlogFilter) bson.M {
	query := bson.M{}
	if f.ActiveOnly {
		query["is_active"] = true
	}
	if f.Category != "" {
		query["category"] = ciRegex(f.Category)
	}
	if f.Tag != "" {
		query["tags"] = ciRegex(f.Tag)
	}
	if f.Search != "" {
		query["$or"] = []bson.M{
			{"title": ciRegex(f.Search)},
			{"content": ciRegex(f.Search)},
		}
	}
	return query
}

func blogSort(sortBy string) bson.D {
	switch sortBy {
	case "popular":
		return bson.D{{Key: "views", Value: -1}}
	case "oldest":
		return bson.D{{Key: "published_at", Value: 1}, {Key: "created_at", Value: 1}}
	default:
		return bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}
	}
}

// --- Countries ---

func (s *MongoStore) GetCountryBySlug(ctx context.Context, slug string, activeOnly bool) (models.Country, error) {
	return findOne[models.Country](ctx, db.CountriesCollection, slugQuery(slug, activeOnly))
}

func (s *MongoStore) GetCountryByID(ctx context.Context, id string) (models.Country, error) {
	return findOne[models.Country](ctx, db.CountriesCollection, bson.M{"_id": id})
}

func (s *MongoStore) ListCountries(ctx context.Context, f CountryFilter) (Page[models.Country], error) {
	return findPage[models.Country](ctx, db.CountriesCollection, countryQuery(f), countrySort(f.SortBy), f.Offset, f.Limit)
}

func (s *MongoStore) CreateCountry(ctx context.Context, c models.Country) error {
	_, err := db.CountriesCollection.InsertOne(ctx, c)
	return err
}

func (s *MongoStore) UpdateCountry(ctx context.Context, id string, c models.Country) error {
	return replaceOne(ctx, db.CountriesCollection, id, c)
}

func (s *MongoStore) DeleteCountry(ctx context.Context, id string) error {
	return deleteOne(ctx, db.CountriesCollection, id)
}

func (s *MongoStore) CountrySlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, db.CountriesCollection, slug, excludeID)
}

func (s *MongoStore) ActiveCountrySlugs(ctx context.Context) ([]string, error) {
	cursor, err := db.CountriesCollection.Find(ctx, bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "slug", Value: 1}}).SetProjection(bson.M{"slug": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(docs))
	for _, d := range docs {
		slugs = append(slugs, d.Slug)
	}
	return slugs, nil
}

// --- Colleges ---

func (s *MongoStore) GetCollegeBySlug(ctx context.Context, slug string, activeOnly bool) (models.College, error) {
	return findOne[models.College](ctx, db.CollegesCollection, slugQuery(slug, activeOnly))
}

func (s *MongoStore) GetCollegeByID(ctx context.Context, id string) (models.College, error) {
	return findOne[models.College](ctx, db.CollegesCollection, bson.M{"_id": id})
}

func (s *MongoStore) ListColleges(ctx context.Context, f CollegeFilter) (Page[models.College], error) {
	return findPage[models.College](ctx, db.CollegesCollection, collegeQuery(f), collegeSort(f.SortBy), f.Offset, f.Limit)
}

func (s *MongoStore) CreateCollege(ctx context.Context, c models.College) error {
	_, err := db.CollegesCollection.InsertOne(ctx, c)
	return err
}

func (s *MongoStore) UpdateCollege(ctx context.Context, id string, c models.College) error {
	return replaceOne(ctx, db.CollegesCollection, id, c)
}

func (s *MongoStore) DeleteCollege(ctx context.Context, id string) error {
	return deleteOne(ctx, db.CollegesCollection, id)
}

func (s *MongoStore) CollegeSlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, db.CollegesCollection, slug, excludeID)
}

func (s *MongoStore) RelatedColleges(ctx context.Context, countryID, excludeID string, limit int) ([]models.College, error) {
	query := bson.M{
		"country_ref": countryID,
		"_id":         bson.M{"$ne": excludeID},
		"is_active":   true,
	}
	page, err := findPage[models.College](ctx, db.CollegesCollection, query, collegeSort(""), 0, limit)
	return page.Items, err
}

// --- Exams ---

func (s *MongoStore) GetExamBySlug(ctx context.Context, slug string, activeOnly bool) (models.Exam, error) {
	return findOne[models.Exam](ctx, db.ExamsCollection, slugQuery(slug, activeOnly))
}

func (s *MongoStore) GetExamByID(ctx context.Context, id string) (models.Exam, error) {
	return findOne[models.Exam](ctx, db.ExamsCollection, bson.M{"_id": id})
}

func (s *MongoStore) ListExams(ctx context.Context, f ExamFilter) (Page[models.Exam], error) {
	return findPage[models.Exam](ctx, db.ExamsCollection, examQuery(f), examSort(f.SortBy), f.Offset, f.Limit)
}

func (s *MongoStore) CreateExam(ctx context.Context, e models.Exam) error {
	_, err := db.ExamsCollection.InsertOne(ctx, e)
	return err
}

func (s *MongoStore) UpdateExam(ctx context.Context, id string, e models.Exam) error {
	return replaceOne(ctx, db.ExamsCollection, id, e)
}

func (s *MongoStore) DeleteExam(ctx context.Context, id string) error {
	return deleteOne(ctx, db.ExamsCollection, id)
}

func (s *MongoStore) ExamSlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, db.ExamsCollection, slug, excludeID)
}

// --- Blogs ---

func (s *MongoStore) GetBlogBySlug(ctx context.Context, slug string, activeOnly bool) (models.Blog, error) {
	return findOne[models.Blog](ctx, db.BlogsCollection, slugQuery(slug, activeOnly))
}

func (s *MongoStore) GetBlogByID(ctx context.Context, id string) (models.Blog, error) {
	return findOne[models.Blog](ctx, db.BlogsCollection, bson.M{"_id": id})
}

func (s *MongoStore) ListBlogs(ctx context.Context, f BlogFilter) (Page[models.Blog], error) {
	return findPage[models.Blog](ctx, db.BlogsCollection, blogQuery(f), blogSort(f.SortBy), f.Offset, f.Limit)
}

func (s *MongoStore) CreateBlog(ctx context.Context, b models.Blog) error {
	_, err := db.BlogsCollection.InsertOne(ctx, b)
	return err
}

func (s *MongoStore) UpdateBlog(ctx context.Context, id string, b models.Blog) error {
	return replaceOne(ctx, db.BlogsCollection, id, b)
}

func (s *MongoStore) DeleteBlog(ctx context.Context, id string) error {
	return deleteOne(ctx, db.BlogsCollection, id)
}

func (s *MongoStore) BlogSlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, db.BlogsCollection, slug, excludeID)
}

func (s *MongoStore) IncrementBlogViews(ctx context.Context, id string) error {
	_, err := db.BlogsCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// --- Enquiries ---

func (s *MongoStore) CreateEnquiry(ctx context.Context, e models.Enquiry) error {
	_, err := db.EnquiriesCollection.InsertOne(ctx, e)
	return err
}

// --- Admin users ---

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return findOne[models.User](ctx, db.UsersCollection, bson.M{"username": username})
}

func (s *MongoStore) CreateUser(ctx context.Context, u models.User) error {
	_, err := db.UsersCollection.InsertOne(ctx, u)
	return err
}

func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	return db.UsersCollection.CountDocuments(ctx, bson.M{})
}

// --- Stats ---

func (s *MongoStore) Counts(ctx context.Context) (map[string]int64, error) {
	collections := map[string]*mongo.Collection{
		"countries": db.CountriesCollection,
		"colleges":  db.CollegesCollection,
		"exams":     db.ExamsCollection,
		"blogs":     db.BlogsCollection,
	}
	counts := make(map[string]int64, len(collections))
	for name, col := range collections {
		n, err := col.CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}
