package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/unicatalog/internal/app/auth"
	"github.com/yigit/unicatalog/internal/config"
	"github.com/yigit/unicatalog/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type api struct {
	t      *testing.T
	router *gin.Engine
	token  string
	deps   *Dependencies
}

func newAPI(t *testing.T) *api {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.Issuer = "unicatalog"
	cfg.Auth.TokenTTL = "1h"
	cfg.Catalog.PageSize = 20
	cfg.Catalog.CascadeConcurrency = 4
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	deps := BuildDependencies(cfg, testutil.NewDB(t), zerolog.Nop())
	token, err := deps.JWTService.GenerateToken("tester", "*")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &api{t: t, router: SetupRouter(cfg, deps, zerolog.Nop()), token: token, deps: deps}
}

// do sends body as JSON with the admin token unless token is overridden.
func (a *api) do(method, path string, body interface{}, token ...string) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	credential := a.token
	if len(token) > 0 {
		credential = token[0]
	}
	if credential != "" {
		req.Header.Set("csrf-token", credential)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) mustStatus(w *httptest.ResponseRecorder, want int) {
	a.t.Helper()
	if w.Code != want {
		a.t.Fatalf("status = %d, want %d; body %s", w.Code, want, w.Body.String())
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// seedCurriculum creates course 42, catalog 2014 and modality 42-AA.
func (a *api) seedCurriculum() {
	a.t.Helper()
	a.mustStatus(a.do(http.MethodPost, "/courses", gin.H{"code": "42", "name": "Computer Science", "level": "undergraduate"}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodPost, "/catalogs", gin.H{"year": 2014}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodPost, "/catalogs/2014/modalities", gin.H{
		"code": "AA", "name": "Computer Systems", "creditLimit": 200, "course": "42",
	}), http.StatusCreated)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/", "/health"} {
		w := a.do(http.MethodGet, path, nil, "")
		a.mustStatus(w, http.StatusOK)
		var body map[string]string
		decode(t, w, &body)
		if body["status"] != "ok" {
			t.Errorf("%s: body = %v", path, body)
		}
	}
}

func TestCreateWithEmptyBodyListsMissingFields(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/courses", nil)
	a.mustStatus(w, http.StatusBadRequest)

	var fields map[string]string
	decode(t, w, &fields)
	want := map[string]string{"code": "required", "name": "required", "level": "required"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
}

func TestWrongTypeIsInvalid(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/catalogs", gin.H{"year": "twenty"})
	a.mustStatus(w, http.StatusBadRequest)

	var fields map[string]string
	decode(t, w, &fields)
	if fields["year"] != "invalid" {
		t.Errorf("fields = %v", fields)
	}
}

func TestMutationsRequireCapability(t *testing.T) {
	a := newAPI(t)
	body := gin.H{"code": "42", "name": "Computer Science", "level": "undergraduate"}

	catalogOnly, err := a.deps.JWTService.GenerateToken("tester", auth.ChangeCatalog)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"malformed token", "not-a-jwt"},
		{"missing capability", catalogOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, "/courses", body, tt.token)
			if w.Code != http.StatusForbidden || w.Body.Len() != 0 {
				t.Errorf("status = %d, body %q", w.Code, w.Body.String())
			}
		})
	}

	// Reads stay public
	a.mustStatus(a.do(http.MethodGet, "/courses", nil, ""), http.StatusOK)
}

func TestBearerAuthorizationHeader(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/catalogs", strings.NewReader(`{"year":2014}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	a.mustStatus(w, http.StatusCreated)
}

func TestDuplicateCodeConflicts(t *testing.T) {
	a := newAPI(t)
	body := gin.H{"code": "42", "name": "Computer Science", "level": "undergraduate"}

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = a.do(http.MethodPost, "/courses", body).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	if created != 1 || conflicts != len(codes)-1 {
		t.Errorf("statuses = %v", codes)
	}
}

func TestListPagination(t *testing.T) {
	a := newAPI(t)
	for _, year := range []int{2016, 2014, 2015} {
		a.mustStatus(a.do(http.MethodPost, "/catalogs", gin.H{"year": year}), http.StatusCreated)
	}

	var first []map[string]interface{}
	decode(t, a.do(http.MethodGet, "/catalogs", nil), &first)
	if len(first) != 3 || first[0]["year"] != float64(2014) {
		t.Errorf("first page = %v", first)
	}

	for _, page := range []string{"1", "500000000000000000", "9223372036854775807", "99999999999999999999"} {
		w := a.do(http.MethodGet, "/catalogs?page="+page, nil)
		a.mustStatus(w, http.StatusOK)
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Errorf("page %s = %s", page, w.Body.String())
		}
	}
}

func TestUnknownPathSegmentsAreNotFound(t *testing.T) {
	a := newAPI(t)
	a.seedCurriculum()

	for _, path := range []string{
		"/courses/99",
		"/catalogs/abc",
		"/catalogs/2015/modalities",
		"/catalogs/2014/modalities/42",
		"/catalogs/2014/modalities/42-zz",
		"/catalogs/2014/modalities/42-aa/blocks/b9",
		"/disciplines/mc999/offerings",
	} {
		if w := a.do(http.MethodGet, path, nil, ""); w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}

	// Unknown ancestors win over missing credentials
	if w := a.do(http.MethodDelete, "/courses/99", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("DELETE unknown course without token = %d", w.Code)
	}
}

func TestModalityShowsItsCourse(t *testing.T) {
	a := newAPI(t)
	a.seedCurriculum()

	w := a.do(http.MethodGet, "/catalogs/2014/modalities/42-AA", nil, "")
	a.mustStatus(w, http.StatusOK)

	var body struct {
		Code   string `json:"code"`
		Course struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"course"`
	}
	decode(t, w, &body)
	if body.Code != "aa" || body.Course.Code != "42" || body.Course.Name != "Computer Science" {
		t.Errorf("modality = %+v", body)
	}
}

func TestCourseRenameKeepsModalitiesReachable(t *testing.T) {
	a := newAPI(t)
	a.seedCurriculum()

	a.mustStatus(a.do(http.MethodPut, "/courses/42", gin.H{"code": "43", "name": "Computer Science", "level": "undergraduate"}), http.StatusOK)

	a.mustStatus(a.do(http.MethodGet, "/catalogs/2014/modalities/43-aa", nil), http.StatusOK)
	a.mustStatus(a.do(http.MethodGet, "/catalogs/2014/modalities/42-aa", nil), http.StatusNotFound)
}

func TestCatalogDeletionCascades(t *testing.T) {
	a := newAPI(t)
	a.seedCurriculum()
	a.mustStatus(a.do(http.MethodPost, "/catalogs/2014/modalities/42-aa/blocks", gin.H{"code": "B1", "type": "required"}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodPost, "/catalogs/2014/modalities/42-aa/blocks/b1/requirements", gin.H{"mask": "MC---"}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodGet, "/catalogs/2014/modalities/42-aa/blocks/b1/requirements/MC---", nil), http.StatusOK)

	w := a.do(http.MethodDelete, "/catalogs/2014", nil)
	a.mustStatus(w, http.StatusNoContent)

	a.mustStatus(a.do(http.MethodGet, "/catalogs/2014", nil), http.StatusNotFound)
	a.mustStatus(a.do(http.MethodPost, "/catalogs", gin.H{"year": 2014}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodGet, "/catalogs/2014/modalities/42-aa", nil), http.StatusNotFound)

	// The course itself is not part of the catalog
	a.mustStatus(a.do(http.MethodGet, "/courses/42", nil), http.StatusOK)
}

func TestOfferingByCompoundKey(t *testing.T) {
	a := newAPI(t)
	a.seedCurriculum()
	a.mustStatus(a.do(http.MethodPost, "/disciplines", gin.H{"code": "MC102", "name": "Programming", "credits": 6}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodPost, "/disciplines/mc102/offerings", gin.H{
		"code": "A", "year": 2014, "period": "1", "vacancy": 60,
		"schedules":    []gin.H{{"weekday": 2, "hour": 10, "room": "CB01"}},
		"reservations": []gin.H{{"course": "42", "catalogYear": 2014}},
	}), http.StatusCreated)

	w := a.do(http.MethodGet, "/disciplines/MC102/offerings/2014-1-A", nil, "")
	a.mustStatus(w, http.StatusOK)

	var body struct {
		Code         string `json:"code"`
		Year         int    `json:"year"`
		Vacancy      int    `json:"vacancy"`
		Schedules    []gin.H
		Reservations []struct {
			Course struct {
				Code string `json:"code"`
			} `json:"course"`
		} `json:"reservations"`
	}
	decode(t, w, &body)
	if body.Code != "a" || body.Year != 2014 || body.Vacancy != 60 || len(body.Schedules) != 1 {
		t.Errorf("offering = %+v", body)
	}
	if len(body.Reservations) != 1 || body.Reservations[0].Course.Code != "42" {
		t.Errorf("reservations = %+v", body.Reservations)
	}

	a.mustStatus(a.do(http.MethodGet, "/disciplines/mc102/offerings/2014-x", nil), http.StatusNotFound)
	a.mustStatus(a.do(http.MethodGet, "/disciplines/mc102/offerings?year=2015", nil), http.StatusOK)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodGet, "/health", nil, "")

	w := a.do(http.MethodGet, "/metrics", nil, "")
	a.mustStatus(w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `catalog_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Errorf("request counter missing from:\n%s", w.Body.String())
	}
}

// seedNested adds to seedCurriculum: modality 42-BB, blocks B1 and B2,
// requirements MC--- and MA--- in B1, discipline MC102 with offerings
// 2014-1-A and 2014-1-B, and a B1 requirement naming MC102.
func (a *api) seedNested() {
	a.t.Helper()
	a.seedCurriculum()

	const modality = "/catalogs/2014/modalities"
	a.mustStatus(a.do(http.MethodPost, modality, gin.H{
		"code": "BB", "name": "Software Engineering", "creditLimit": 190, "course": "42",
	}), http.StatusCreated)
	for _, code := range []string{"B1", "B2"} {
		a.mustStatus(a.do(http.MethodPost, modality+"/42-aa/blocks", gin.H{"code": code, "type": "required"}), http.StatusCreated)
	}
	a.mustStatus(a.do(http.MethodPost, "/disciplines", gin.H{"code": "MC102", "name": "Programming", "credits": 6}), http.StatusCreated)
	for _, body := range []gin.H{{"mask": "MC---"}, {"mask": "MA---"}, {"discipline": "MC102"}} {
		a.mustStatus(a.do(http.MethodPost, modality+"/42-aa/blocks/b1/requirements", body), http.StatusCreated)
	}
	for _, code := range []string{"A", "B"} {
		a.mustStatus(a.do(http.MethodPost, "/disciplines/mc102/offerings", gin.H{
			"code": code, "year": 2014, "period": "1", "vacancy": 60,
		}), http.StatusCreated)
	}
}

// withoutTimestamps drops the bookkeeping fields so two views of the same
// record compare equal.
func withoutTimestamps(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	decode(t, w, &body)
	delete(body, "createdAt")
	delete(body, "updatedAt")
	return body
}

func TestRepeatedReplaceIsIdempotent(t *testing.T) {
	a := newAPI(t)
	a.seedNested()

	tests := []struct {
		name string
		path string
		body gin.H
	}{
		{"course", "/courses/42", gin.H{"code": "42", "name": "Computer Science", "level": "graduate"}},
		{"modality", "/catalogs/2014/modalities/42-aa", gin.H{"code": "AA", "name": "Systems", "creditLimit": 210, "course": "42"}},
		{"block", "/catalogs/2014/modalities/42-aa/blocks/b2", gin.H{"code": "B2", "type": "elective", "credits": 12}},
		{"requirement", "/catalogs/2014/modalities/42-aa/blocks/b1/requirements/MC---", gin.H{"mask": "MC---", "suggestedSemester": "3"}},
		{"discipline", "/disciplines/mc102", gin.H{"code": "MC102", "name": "Programming I", "credits": 4}},
		{"offering", "/disciplines/mc102/offerings/2014-1-a", gin.H{
			"code": "A", "year": 2014, "period": "1", "vacancy": 45,
			"schedules": []gin.H{{"weekday": 3, "hour": 14, "room": "CB02"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var first map[string]interface{}
			for i := 0; i < 3; i++ {
				a.mustStatus(a.do(http.MethodPut, tt.path, tt.body), http.StatusOK)

				w := a.do(http.MethodGet, tt.path, nil, "")
				a.mustStatus(w, http.StatusOK)
				got := withoutTimestamps(t, w)
				if i == 0 {
					first = got
					continue
				}
				if !reflect.DeepEqual(got, first) {
					t.Errorf("replace %d: got %v, want %v", i+1, got, first)
				}
			}
		})
	}
}

func TestReplaceErrors(t *testing.T) {
	a := newAPI(t)
	a.seedNested()

	const (
		modalities   = "/catalogs/2014/modalities"
		blocks       = modalities + "/42-aa/blocks"
		requirements = blocks + "/b1/requirements"
		offerings    = "/disciplines/mc102/offerings"
	)
	validModality := gin.H{"code": "AA", "name": "Systems", "creditLimit": 200, "course": "42"}
	validOffering := gin.H{"code": "A", "year": 2014, "period": "1", "vacancy": 10}

	tests := []struct {
		name string
		path string
		body gin.H
		want int
	}{
		{"modality missing fields", modalities + "/42-aa", gin.H{}, http.StatusBadRequest},
		{"modality onto existing key", modalities + "/42-aa", gin.H{"code": "BB", "name": "Systems", "creditLimit": 200, "course": "42"}, http.StatusConflict},
		{"modality unknown", modalities + "/42-zz", validModality, http.StatusNotFound},
		{"block missing fields", blocks + "/b1", gin.H{}, http.StatusBadRequest},
		{"block onto existing key", blocks + "/b1", gin.H{"code": "B2", "type": "required"}, http.StatusConflict},
		{"block unknown", blocks + "/b9", gin.H{"code": "B9", "type": "required"}, http.StatusNotFound},
		{"requirement missing fields", requirements + "/MC---", gin.H{}, http.StatusBadRequest},
		{"requirement onto existing key", requirements + "/MC---", gin.H{"mask": "MA---"}, http.StatusConflict},
		{"requirement unknown", requirements + "/XX---", gin.H{"mask": "XX---"}, http.StatusNotFound},
		{"offering missing fields", offerings + "/2014-1-a", gin.H{}, http.StatusBadRequest},
		{"offering onto existing key", offerings + "/2014-1-a", gin.H{"code": "B", "year": 2014, "period": "1", "vacancy": 10}, http.StatusConflict},
		{"offering unknown", offerings + "/2014-1-z", validOffering, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPut, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusBadRequest {
				var fields map[string]string
				decode(t, w, &fields)
				if fields["code"] != "required" {
					t.Errorf("fields = %v, want code: required", fields)
				}
			}
		})
	}

	// Failed replaces leave the records as they were
	a.mustStatus(a.do(http.MethodGet, modalities+"/42-aa", nil), http.StatusOK)
	a.mustStatus(a.do(http.MethodGet, blocks+"/b1", nil), http.StatusOK)
	a.mustStatus(a.do(http.MethodGet, requirements+"/MC---", nil), http.StatusOK)
	a.mustStatus(a.do(http.MethodGet, offerings+"/2014-1-a", nil), http.StatusOK)
}

func TestDisciplineDeletionCascades(t *testing.T) {
	a := newAPI(t)
	a.seedNested()

	const requirements = "/catalogs/2014/modalities/42-aa/blocks/b1/requirements"
	a.mustStatus(a.do(http.MethodGet, requirements+"/mc102", nil), http.StatusOK)

	a.mustStatus(a.do(http.MethodDelete, "/disciplines/mc102", nil), http.StatusNoContent)

	for _, path := range []string{
		"/disciplines/mc102",
		"/disciplines/mc102/offerings",
		"/disciplines/mc102/offerings/2014-1-a",
		requirements + "/mc102",
	} {
		if w := a.do(http.MethodGet, path, nil); w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, w.Code)
		}
	}

	// Mask requirements and the block itself are untouched
	var left []map[string]interface{}
	decode(t, a.do(http.MethodGet, requirements, nil), &left)
	if len(left) != 2 {
		t.Errorf("remaining requirements = %v", left)
	}
}

func TestKeyPartsRejectDelimiter(t *testing.T) {
	a := newAPI(t)
	a.seedNested()

	tests := []struct {
		name   string
		method string
		path   string
		body   gin.H
		field  string
	}{
		{"course create", http.MethodPost, "/courses", gin.H{"code": "Computer Science", "name": "CS", "level": "undergraduate"}, "code"},
		{"course rename", http.MethodPut, "/courses/42", gin.H{"code": "42-1", "name": "CS", "level": "undergraduate"}, "code"},
		{"offering create", http.MethodPost, "/disciplines/mc102/offerings", gin.H{"code": "C", "year": 2014, "period": "summer-1", "vacancy": 10}, "period"},
		{"offering replace", http.MethodPut, "/disciplines/mc102/offerings/2014-1-a", gin.H{"code": "A", "year": 2014, "period": "summer-1", "vacancy": 10}, "period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.method, tt.path, tt.body)
			a.mustStatus(w, http.StatusBadRequest)
			var fields map[string]string
			decode(t, w, &fields)
			if !reflect.DeepEqual(fields, map[string]string{tt.field: "invalid"}) {
				t.Errorf("fields = %v", fields)
			}
		})
	}

	// Offering codes are the last key part and may keep their dashes
	a.mustStatus(a.do(http.MethodPost, "/disciplines/mc102/offerings", gin.H{
		"code": "A 1", "year": 2014, "period": "summer", "vacancy": 10,
	}), http.StatusCreated)
	a.mustStatus(a.do(http.MethodGet, "/disciplines/mc102/offerings/2014-summer-a-1", nil), http.StatusOK)
}
