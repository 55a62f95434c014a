package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chll-hr/leave-backend/internal/domain/employee"
	"github.com/chll-hr/leave-backend/internal/pkg/jwt"
	"github.com/chll-hr/leave-backend/internal/pkg/sse"
	"github.com/chll-hr/leave-backend/internal/repository/memory"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	companyService "github.com/chll-hr/leave-backend/internal/service/company"
	employeeService "github.com/chll-hr/leave-backend/internal/service/employee"
	leaveService "github.com/chll-hr/leave-backend/internal/service/leave"
	notificationService "github.com/chll-hr/leave-backend/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	t      *testing.T
	store  *memory.Store
	jwt    *jwt.JWTService
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	authz := accessService.NewAuthorizer(store, store)
	jwtSvc, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	notifier := notificationService.NewNotificationService(nil, sse.NewHub(), notificationService.Config{WorkerCount: 1})
	t.Cleanup(notifier.Stop)

	companies := companyService.NewCompanyService(store, store, store, store, store, store, authz, "Europe/Prague")
	employees := employeeService.NewEmployeeService(store, store, store, store, store, authz)
	leaves := leaveService.NewLeaveService(store, leaveService.Repositories{
		Companies:   store,
		Departments: store,
		Employees:   store,
		Memberships: store,
		LeaveTypes:  store,
		Requests:    store,
	}, authz, notifier, "chll.test")

	router := NewRouter(RouterConfig{Env: "test", Version: "test", ImportPerMinute: 2}, jwtSvc, Handlers{
		Company:      NewCompanyHandler(companies, employees),
		Employee:     NewEmployeeHandler(employees),
		Leave:        NewLeaveHandler(leaves),
		Notification: NewNotificationHandler(notifier, jwtSvc),
	})

	return &testServer{t: t, store: store, jwt: jwtSvc, router: router}
}

func (s *testServer) employee(email string) (employee.Employee, string) {
	s.t.Helper()
	e, err := s.store.CreateEmployee(context.Background(), employee.Employee{Email: email, FirstName: "Test", LastName: email})
	require.NoError(s.t, err)
	return e, s.token(e.ID)
}

func (s *testServer) token(employeeID string) string {
	s.t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(employeeID, "")
	require.NoError(s.t, err)
	return token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func field(t *testing.T, raw json.RawMessage, name string) any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[name]
}

func TestLeaveFlow(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.employee("owner@acme.test")

	rec, env := s.do(http.MethodPost, "/api/v1/companies", ownerToken, map[string]any{
		"company_name":     "Acme",
		"default_days_off": 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	companyID := field(t, env.Data, "id").(string)
	assert.Equal(t, "Europe/Prague", field(t, env.Data, "timezone"))
	base := "/api/v1/companies/" + companyID

	rec, env = s.do(http.MethodPost, base+"/employees", ownerToken, map[string]any{
		"first_name": "Jana",
		"last_name":  "Novak",
		"email":      "jana@acme.test",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workerID := field(t, env.Data, "employee_id").(string)
	workerToken := s.token(workerID)

	leaves := base + "/employees/" + workerID + "/leaves"
	rec, env = s.do(http.MethodPost, leaves, workerToken, map[string]any{"from": "2017-05-02", "to": "2017-05-05"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	requestID := field(t, env.Data, "id").(string)
	assert.Equal(t, "pending", field(t, env.Data, "status"))

	rec, _ = s.do(http.MethodPost, leaves, workerToken, map[string]any{"from": "2017-05-04", "to": "2017-05-06"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(http.MethodPost, leaves, workerToken, map[string]any{"from": "2017-05-10", "to": "2017-05-08"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/leaves/"+requestID+"/approve", workerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/v1/leaves/"+requestID+"/approve", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "approved", field(t, env.Data, "status"))

	rec, _ = s.do(http.MethodPost, "/api/v1/leaves/"+requestID+"/reject", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(http.MethodGet, base+"/employees/"+workerID+"/balance?from=2017-01-01&to=2018-01-01", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "17", field(t, env.Data, "remaining"))
	assert.Equal(t, "3", field(t, env.Data, "consumed"))

	rec, env = s.do(http.MethodGet, base+"/leaves?from=2017-05-01&to=2017-06-01", workerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	groups := field(t, env.Data, "employees").([]any)
	require.Len(t, groups, 1)

	rec, _ = s.do(http.MethodGet, base+"/leaves", workerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodGet, base+"/employees/"+workerID+"/calendar.ics", workerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "UID:"+requestID+"@chll.test\r\n")
	assert.Contains(t, rec.Body.String(), "STATUS:CONFIRMED\r\n")
}

func TestAuthAndIsolation(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.employee("owner@acme.test")
	_, outsiderToken := s.employee("outsider@other.test")

	rec, env := s.do(http.MethodPost, "/api/v1/companies", ownerToken, map[string]any{"company_name": "Acme", "default_days_off": 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/v1/companies/" + field(t, env.Data, "id").(string)

	rec, _ = s.do(http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = s.do(http.MethodGet, base, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = s.do(http.MethodPost, base+"/departments", ownerToken, map[string]any{"department_name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/companies", ownerToken, map[string]any{"company_name": "X", "unknown": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/companies/not-an-id/leave-types", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = s.do(http.MethodPost, base+"/departments", ownerToken, map[string]any{"department_name": "Sales", "boss_id": "nobody"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/notifications/sse-token", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, field(t, env.Data, "token"))

	rec, _ = s.do(http.MethodGet, "/api/v1/notifications/stream?token="+ownerToken, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func upload(t *testing.T, csv string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "employees.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestImport(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.employee("owner@acme.test")

	rec, env := s.do(http.MethodPost, "/api/v1/companies", ownerToken, map[string]any{"company_name": "Acme", "default_days_off": 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/v1/companies/" + field(t, env.Data, "id").(string)

	rec, _ = s.do(http.MethodGet, "/api/v1/employees/import/example", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reaming holiday")

	send := func(csv string) *httptest.ResponseRecorder {
		body, contentType := upload(t, csv)
		req := httptest.NewRequest(http.MethodPost, base+"/employees/import", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+ownerToken)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	rec = send("first name,last name,email\nJana,Novak,jana@acme.test\nPetr,Svoboda,jana@acme.test\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Data employee.ImportReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Data.Created, 1)
	require.Len(t, out.Data.Failed, 1)
	assert.Equal(t, 2, out.Data.Failed[0].Row)

	rec = send("name\nJana\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send("first name,last name,email\n")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
