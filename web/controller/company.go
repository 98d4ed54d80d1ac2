package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blindhunter/blindhunter/database/model"
	"github.com/blindhunter/blindhunter/web/entity"
	"github.com/blindhunter/blindhunter/web/service"

	"github.com/gin-gonic/gin"
)

// CompanyController manages the company directory. Only the listing
// requires a session.
type CompanyController struct {
	BaseController

	companyService service.CompanyService
}

func NewCompanyController(g *gin.RouterGroup) *CompanyController {
	a := &CompanyController{}
	a.initRouter(g)
	return a
}

func (a *CompanyController) initRouter(g *gin.RouterGroup) {
	g.GET("/companies", a.checkLogin, a.companies)

	g.GET("/add_company", a.addCompanyPage)
	g.POST("/add_company", a.addCompany)
	g.GET("/edit_company/:id", a.editCompanyPage)
	g.POST("/edit_company/:id", a.editCompany)
	g.GET("/delete_company/:id", a.delCompany)
	g.POST("/delete_company/:id", a.delCompany)
}

func (a *CompanyController) companies(c *gin.Context) {
	companies, err := a.companyService.GetCompanies()
	if err != nil {
		fail(c, "get companies failed:", err)
		return
	}
	html(c, "companies.html", "pages.companies.title", gin.H{"companies": companies})
}

func (a *CompanyController) addCompanyPage(c *gin.Context) {
	html(c, "add_company.html", "pages.addCompany.title", nil)
}

func (a *CompanyController) addCompany(c *gin.Context) {
	company := &model.Company{}
	if err := c.ShouldBind(company); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	err := a.companyService.AddCompany(company)
	if errors.Is(err, service.ErrDuplicateCompany) {
		flash(c, entity.FlashDanger, I18nWeb(c, "flash.companyDuplicate"))
		redirect(c, "/add_company")
		return
	} else if err != nil {
		fail(c, "add company failed:", err)
		return
	}

	flash(c, entity.FlashSuccess, I18nWeb(c, "flash.companyAdded"))
	redirect(c, "/companies")
}

func (a *CompanyController) editCompanyPage(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	company, err := a.companyService.GetCompany(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		fail(c, "get company failed:", err)
		return
	}
	html(c, "edit_company.html", "pages.editCompany.title", gin.H{"company": company})
}

func (a *CompanyController) editCompany(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	data := &model.Company{}
	if err := c.ShouldBind(data); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	_, err := a.companyService.UpdateCompany(id, data)
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c)
	case errors.Is(err, service.ErrDuplicateCompany):
		flash(c, entity.FlashDanger, I18nWeb(c, "flash.companyDuplicate"))
		redirect(c, fmt.Sprintf("/edit_company/%d", id))
	case err != nil:
		fail(c, "update company failed:", err)
	default:
		flash(c, entity.FlashSuccess, I18nWeb(c, "flash.companyUpdated"))
		redirect(c, "/companies")
	}
}

func (a *CompanyController) delCompany(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	err := a.companyService.DelCompany(id)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		fail(c, "delete company failed:", err)
		return
	}
	redirect(c, "/companies")
}
