package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/database/model"
	"github.com/blindhunter/blindhunter/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func setup(t *testing.T) *testClient {
	t.Helper()
	t.Setenv("BH_DEBUG", "")
	t.Setenv("BH_SESSION_SECRET", "")

	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	service.FlushSettingCache()
	t.Cleanup(func() { _ = database.CloseDB() })

	engine, err := NewServer().initRouter()
	require.NoError(t, err)
	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	return newClient(t, ts.URL)
}

func newClient(t *testing.T, base string) *testClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{
		t:    t,
		base: base,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(req *http.Request) (int, string, string) {
	c.t.Helper()
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (c *testClient) get(path string) (int, string, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *testClient) post(path string, form url.Values) (int, string, string) {
	c.t.Helper()
	resp, err := c.client.PostForm(c.base+path, form)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (c *testClient) registerAndLogin(username, password string) {
	c.t.Helper()
	status, location, _ := c.post("/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(c.t, http.StatusFound, status)
	require.Equal(c.t, "/login", location)

	status, location, _ = c.post("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(c.t, http.StatusFound, status)
	require.Equal(c.t, "/companies", location)
}

func companyForm(name, email, phone string) url.Values {
	return url.Values{
		"company_name": {name},
		"location":     {"Berlin"},
		"area":         {"Software"},
		"email":        {email},
		"phone":        {phone},
	}
}

func count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.GetDB().Model(m).Count(&n).Error)
	return n
}

func TestHome(t *testing.T) {
	c := setup(t)

	status, _, body := c.get("/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Blind Hunter")
	assert.Contains(t, body, `href="/login"`)
}

func TestHomeInRussian(t *testing.T) {
	c := setup(t)

	req, err := http.NewRequest(http.MethodGet, c.base+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	status, _, body := c.do(req)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Компании")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	c := setup(t)

	status, location, _ := c.post("/register", url.Values{"username": {"alice"}, "password": {"pw"}})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/login", location)

	_, _, body := c.get("/login")
	assert.Contains(t, body, "Registration successful! Please log in.")

	status, location, _ = c.post("/register", url.Values{"username": {"alice"}, "password": {"other"}})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/register", location)

	_, _, body = c.get("/register")
	assert.Contains(t, body, "alert-danger")
	assert.Contains(t, body, "Username already exists. Please choose again.")

	assert.EqualValues(t, 1, count(t, &model.User{}))
}

func TestLoginSuccess(t *testing.T) {
	c := setup(t)
	c.registerAndLogin("alice", "pw")

	status, _, body := c.get("/companies")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, "Signed in as alice")

	// the flash is shown once
	_, _, body = c.get("/companies")
	assert.NotContains(t, body, "Login successful!")
}

func TestLoginWrongPassword(t *testing.T) {
	c := setup(t)

	_, _, _ = c.post("/register", url.Values{"username": {"alice"}, "password": {"pw"}})

	status, _, body := c.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `action="/login"`)

	status, location, _ := c.get("/companies")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", location)
}

func TestCompaniesRequiresSession(t *testing.T) {
	c := setup(t)

	status, location, _ := c.get("/companies")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", location)

	_, _, body := c.get("/")
	assert.Contains(t, body, "alert-warning")
	assert.Contains(t, body, "Please log in to view this page")
}

func TestLogoutClearsSession(t *testing.T) {
	c := setup(t)
	c.registerAndLogin("alice", "pw")

	status, location, _ := c.get("/logout")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", location)

	status, location, _ = c.get("/companies")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", location)

	// logging out without a session is harmless
	status, _, _ = c.get("/logout")
	assert.Equal(t, http.StatusFound, status)
}

func TestAddCompanyAndList(t *testing.T) {
	c := setup(t)
	c.registerAndLogin("alice", "pw")

	for _, f := range []url.Values{
		companyForm("Zeta", "z@zeta.io", "300"),
		companyForm("Acme", "a@acme.io", "100"),
	} {
		status, location, _ := c.post("/add_company", f)
		require.Equal(t, http.StatusFound, status)
		require.Equal(t, "/companies", location)
	}

	status, _, body := c.get("/companies")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Company added successfully!")
	assert.Less(t, strings.Index(body, "Acme"), strings.Index(body, "Zeta"))
}

func TestAddCompanyDuplicateEmail(t *testing.T) {
	c := setup(t)

	status, location, _ := c.post("/add_company", companyForm("Acme", "a@acme.io", "100"))
	require.Equal(t, http.StatusFound, status)
	require.Equal(t, "/companies", location)

	status, location, _ = c.post("/add_company", companyForm("Acme Clone", "a@acme.io", "200"))
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/add_company", location)
	assert.EqualValues(t, 1, count(t, &model.Company{}))

	_, _, body := c.get("/add_company")
	assert.Contains(t, body, "alert-danger")
	assert.Contains(t, body, "Companies cannot have matching email/phone no.")
}

func TestEditCompany(t *testing.T) {
	c := setup(t)
	c.post("/add_company", companyForm("Acme", "a@acme.io", "100"))
	c.post("/add_company", companyForm("Zeta", "z@zeta.io", "300"))

	var acme model.Company
	require.NoError(t, database.GetDB().Where("company_name = ?", "Acme").First(&acme).Error)
	path := "/edit_company/" + strconv.Itoa(acme.Id)

	status, _, body := c.get(path)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="a@acme.io"`)

	status, location, _ := c.post(path, companyForm("Acme Corp", "hello@acme.io", "101"))
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/companies", location)

	require.NoError(t, database.GetDB().First(&acme, acme.Id).Error)
	assert.Equal(t, "Acme Corp", acme.CompanyName)
	assert.Equal(t, "hello@acme.io", acme.Email)

	status, location, _ = c.post(path, companyForm("Acme Corp", "z@zeta.io", "101"))
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, path, location)
	_, _, body = c.get(path)
	assert.Contains(t, body, "Companies cannot have matching email/phone no.")

	status, _, _ = c.post("/edit_company/9999", companyForm("Ghost", "g@ghost.io", "0"))
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = c.get("/edit_company/9999")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteCompany(t *testing.T) {
	c := setup(t)
	c.post("/add_company", companyForm("Acme", "a@acme.io", "100"))

	var acme model.Company
	require.NoError(t, database.GetDB().First(&acme).Error)

	status, location, _ := c.post("/delete_company/"+strconv.Itoa(acme.Id), nil)
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/companies", location)
	assert.Zero(t, count(t, &model.Company{}))
}

func TestDeleteMissingCompanyIsNotFound(t *testing.T) {
	c := setup(t)

	status, _, body := c.get("/delete_company/4242")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "The page you were looking for does not exist.")

	status, _, _ = c.get("/delete_company/abc")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	c := setup(t)

	status, _, body := c.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "404")
}

func TestAddReviewStampsSessionUser(t *testing.T) {
	c := setup(t)
	c.registerAndLogin("alice", "pw")
	c.post("/add_company", companyForm("Acme", "a@acme.io", "100"))

	var acme model.Company
	require.NoError(t, database.GetDB().First(&acme).Error)

	status, _, body := c.get("/add_review")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Acme")

	status, location, _ := c.post("/add_review", url.Values{
		"review_name": {"mallory"},
		"company_id":  {strconv.Itoa(acme.Id)},
		"date":        {"2024-05-01"},
		"description": {"Fair interview process."},
	})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/reviews", location)

	var review model.Review
	require.NoError(t, database.GetDB().First(&review).Error)
	assert.Equal(t, "alice", review.ReviewName)
	assert.Equal(t, acme.Id, review.CompanyId)

	_, _, body = c.get("/reviews")
	assert.Contains(t, body, "Fair interview process.")
	assert.Contains(t, body, "alice")
}

func TestAddReviewWithoutSessionFails(t *testing.T) {
	c := setup(t)
	c.post("/add_company", companyForm("Acme", "a@acme.io", "100"))

	status, _, _ := c.post("/add_review", url.Values{
		"company_id": {"1"},
		"date":       {"2024-05-01"},
	})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Zero(t, count(t, &model.Review{}))
}

func TestEditAndDeleteReview(t *testing.T) {
	c := setup(t)
	c.registerAndLogin("alice", "pw")
	c.post("/add_company", companyForm("Acme", "a@acme.io", "100"))

	var acme model.Company
	require.NoError(t, database.GetDB().First(&acme).Error)
	c.post("/add_review", url.Values{
		"company_id":  {strconv.Itoa(acme.Id)},
		"date":        {"2024-05-01"},
		"description": {"first"},
	})
	var review model.Review
	require.NoError(t, database.GetDB().First(&review).Error)
	path := "/edit_review/" + strconv.Itoa(review.Id)

	// a second user edits the review and becomes its submitter
	bob := newClient(t, c.base)
	bob.registerAndLogin("bob", "pw")

	status, _, body := bob.get(path)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "first")

	status, location, _ := bob.post(path, url.Values{
		"company_id":  {strconv.Itoa(acme.Id)},
		"date":        {"2024-06-01"},
		"description": {"second"},
	})
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/reviews", location)

	require.NoError(t, database.GetDB().First(&review, review.Id).Error)
	assert.Equal(t, "bob", review.ReviewName)
	assert.Equal(t, "2024-06-01", review.Date)
	assert.Equal(t, "second", review.Description)

	status, _, _ = bob.get("/edit_review/777")
	assert.Equal(t, http.StatusNotFound, status)

	status, location, _ = bob.get("/delete_review/" + strconv.Itoa(review.Id))
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/reviews", location)
	assert.Zero(t, count(t, &model.Review{}))

	status, _, _ = bob.post("/delete_review/"+strconv.Itoa(review.Id), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStaticAssets(t *testing.T) {
	c := setup(t)

	status, _, body := c.get("/assets/css/style.css")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, ".alert-danger")
}
