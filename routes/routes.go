package routes

import (
	"net/http"

	"gradbridge/auth"
	"gradbridge/blogs"
	"gradbridge/colleges"
	"gradbridge/countries"
	"gradbridge/enquiry"
	"gradbridge/exams"
	"gradbridge/home"
	"gradbridge/media"
	"gradbridge/middleware"
	"gradbridge/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddCountryRoutes(router *httprouter.Router) {
	router.GET("/api/countries", countries.GetCountries)
	router.GET("/api/countries/:slug", countries.GetCountry)

	router.GET("/api/admin/countries", middleware.RequireAdmin(countries.AdminListCountries))
	router.GET("/api/admin/countries/:slug", middleware.RequireAdmin(countries.AdminGetCountry))
	router.POST("/api/admin/countries", middleware.RequireAdmin(countries.CreateCountry))
	router.PUT("/api/admin/countries/:id", middleware.RequireAdmin(countries.EditCountry))
	router.DELETE("/api/admin/countries/:id", middleware.RequireAdmin(countries.DeleteCountry))
}

func AddCollegeRoutes(router *httprouter.Router) {
	router.GET("/api/colleges", colleges.GetColleges)
	router.GET("/api/colleges/:slug", colleges.GetCollege)
	router.GET("/api/colleges/:slug/related", colleges.GetRelatedColleges)
	router.GET("/api/colleges/:slug/brochure", colleges.Brochure)

	router.GET("/api/admin/colleges", middleware.RequireAdmin(colleges.AdminListColleges))
	router.GET("/api/admin/colleges/:slug", middleware.RequireAdmin(colleges.AdminGetCollege))
	router.POST("/api/admin/colleges", middleware.RequireAdmin(colleges.CreateCollege))
	router.PUT("/api/admin/colleges/:id", middleware.RequireAdmin(colleges.EditCollege))
	router.DELETE("/api/admin/colleges/:id", middleware.RequireAdmin(colleges.DeleteCollege))
}

func AddExamRoutes(router *httprouter.Router) {
	router.GET("/api/exams", exams.GetExams)
	router.GET("/api/exams/:slug", exams.GetExam)

	router.GET("/api/admin/exams", middleware.RequireAdmin(exams.AdminListExams))
	router.GET("/api/admin/exams/:slug", middleware.RequireAdmin(exams.AdminGetExam))
	router.POST("/api/admin/exams", middleware.RequireAdmin(exams.CreateExam))
	router.PUT("/api/admin/exams/:id", middleware.RequireAdmin(exams.EditExam))
	router.DELETE("/api/admin/exams/:id", middleware.RequireAdmin(exams.DeleteExam))
}

func AddBlogRoutes(router *httprouter.Router) {
	router.GET("/api/blogs", blogs.GetBlogs)
	router.GET("/api/blogs/:slug", blogs.GetBlog)

	router.GET("/api/admin/blogs", middleware.RequireAdmin(blogs.AdminListBlogs))
	router.GET("/api/admin/blogs/:slug", middleware.RequireAdmin(blogs.AdminGetBlog))
	router.POST("/api/admin/blogs", middleware.RequireAdmin(blogs.CreateBlog))
	router.PUT("/api/admin/blogs/:id", middleware.RequireAdmin(blogs.EditBlog))
	router.DELETE("/api/admin/blogs/:id", middleware.RequireAdmin(blogs.DeleteBlog))
}

func AddEnquiryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/enquiry", rl.Limit(enquiry.Submit))
}

func AddMediaRoutes(router *httprouter.Router) {
	router.POST("/api/admin/media", middleware.RequireAdmin(media.UploadImage))
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/stats", home.GetStats)
}
