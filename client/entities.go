package client

import "gradbridge/models"

// Typed constructors for the four catalog families. Components hold the
// returned Query/Pager for their lifetime and call Fetch/LoadMore.

func Countries(c *Client, params Params) *Query[ListData[models.Country]] {
	return NewQuery[ListData[models.Country]](c, "countries", "/api/countries", params)
}

func CountryDetail(c *Client, slug string) *Query[models.Country] {
	return NewQuery[models.Country](c, "countries", "/api/countries/"+slug, nil)
}

func Colleges(c *Client, params Params) *Query[ListData[models.College]] {
	return NewQuery[ListData[models.College]](c, "colleges", "/api/colleges", params)
}

func CollegeDetail(c *Client, slug string) *Query[models.College] {
	return NewQuery[models.College](c, "colleges", "/api/colleges/"+slug, nil)
}

func CollegePager(c *Client, params Params, limit int) *Pager[models.College] {
	return NewPager(c, "colleges", "/api/colleges", params, limit,
		func(college models.College) string { return college.ID })
}

func Exams(c *Client, params Params) *Query[ListData[models.Exam]] {
	return NewQuery[ListData[models.Exam]](c, "exams", "/api/exams", params)
}

func ExamDetail(c *Client, slug string) *Query[models.Exam] {
	return NewQuery[models.Exam](c, "exams", "/api/exams/"+slug, nil)
}

func Blogs(c *Client, params Params) *Query[ListData[models.Blog]] {
	return NewQuery[ListData[models.Blog]](c, "blogs", "/api/blogs", params)
}

func BlogDetail(c *Client, slug string) *Query[models.Blog] {
	return NewQuery[models.Blog](c, "blogs", "/api/blogs/"+slug, nil)
}

func BlogPager(c *Client, params Params, limit int) *Pager[models.Blog] {
	return NewPager(c, "blogs", "/api/blogs", params, limit,
		func(blog models.Blog) string { return blog.ID })
}
