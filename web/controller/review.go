package controller

import (
	"errors"
	"net/http"

	"github.com/blindhunter/blindhunter/database/model"
	"github.com/blindhunter/blindhunter/web/service"
	"github.com/blindhunter/blindhunter/web/session"

	"github.com/gin-gonic/gin"
)

var errNoSessionUser = errors.New("no username in session")

// ReviewController manages reviews. The submitter is always the session's
// username; a review_name form field is ignored.
type ReviewController struct {
	BaseController

	reviewService  service.ReviewService
	companyService service.CompanyService
}

func NewReviewController(g *gin.RouterGroup) *ReviewController {
	a := &ReviewController{}
	a.initRouter(g)
	return a
}

func (a *ReviewController) initRouter(g *gin.RouterGroup) {
	g.GET("/reviews", a.reviews)

	g.GET("/add_review", a.addReviewPage)
	g.POST("/add_review", a.addReview)
	g.GET("/edit_review/:id", a.editReviewPage)
	g.POST("/edit_review/:id", a.editReview)
	g.GET("/delete_review/:id", a.delReview)
	g.POST("/delete_review/:id", a.delReview)
}

func (a *ReviewController) reviews(c *gin.Context) {
	reviews, err := a.reviewService.GetReviews()
	if err != nil {
		fail(c, "get reviews failed:", err)
		return
	}
	html(c, "reviews.html", "pages.reviews.title", gin.H{"reviews": reviews})
}

func (a *ReviewController) addReviewPage(c *gin.Context) {
	companies, err := a.companyService.GetCompanies()
	if err != nil {
		fail(c, "get companies failed:", err)
		return
	}
	html(c, "add_review.html", "pages.addReview.title", gin.H{"companies": companies})
}

// bindReview reads the review form and the submitter; it aborts the request
// when either is missing.
func bindReview(c *gin.Context) (string, *model.Review, bool) {
	submitter := session.GetUsername(c)
	if submitter == "" {
		fail(c, "review submitted without session:", errNoSessionUser)
		return "", nil, false
	}
	review := &model.Review{}
	if err := c.ShouldBind(review); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return "", nil, false
	}
	return submitter, review, true
}

func (a *ReviewController) addReview(c *gin.Context) {
	submitter, review, ok := bindReview(c)
	if !ok {
		return
	}
	if err := a.reviewService.AddReview(submitter, review); err != nil {
		fail(c, "add review failed:", err)
		return
	}
	redirect(c, "/reviews")
}

func (a *ReviewController) editReviewPage(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	review, err := a.reviewService.GetReview(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		fail(c, "get review failed:", err)
		return
	}
	companies, err := a.companyService.GetCompanies()
	if err != nil {
		fail(c, "get companies failed:", err)
		return
	}
	html(c, "edit_review.html", "pages.editReview.title", gin.H{
		"review":    review,
		"companies": companies,
	})
}

func (a *ReviewController) editReview(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	if _, err := a.reviewService.GetReview(id); errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	submitter, data, ok := bindReview(c)
	if !ok {
		return
	}
	_, err := a.reviewService.UpdateReview(id, submitter, data)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		fail(c, "update review failed:", err)
		return
	}
	redirect(c, "/reviews")
}

func (a *ReviewController) delReview(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	err := a.reviewService.DelReview(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		fail(c, "delete review failed:", err)
		return
	}
	redirect(c, "/reviews")
}
