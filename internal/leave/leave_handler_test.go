package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kingxjullien14/nkp-ems/internal/leave"
	leaveerrors "github.com/kingxjullien14/nkp-ems/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	submitFn        func(ctx context.Context, empCode string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	decideFn        func(ctx context.Context, adminCode, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getPendingFn    func(ctx context.Context) ([]leave.LeaveResponse, error)
	getByEmployeeFn func(ctx context.Context, empCode string) ([]leave.LeaveResponse, error)
}

func (f *fakeService) Submit(ctx context.Context, empCode string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, empCode, req)
}
func (f *fakeService) Decide(ctx context.Context, adminCode, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, adminCode, id, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeService) GetPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getPendingFn(ctx)
}
func (f *fakeService) GetByEmployee(ctx context.Context, empCode string) ([]leave.LeaveResponse, error) {
	return f.getByEmployeeFn(ctx, empCode)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHandler_SubmitUsesCallerCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		submitFn: func(ctx context.Context, empCode string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, "EMP-000001", empCode)
			return leave.LeaveResponse{ID: uuid.NewString(), EmpCode: empCode, Status: leave.StatusPending}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("code", "EMP-000001")
	body := `{"subject":"Family trip","start_date":"2024-03-04","end_date":"2024-03-06","leave_type":"paid"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), leave.StatusPending)
}

func TestHandler_Submit_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("code", "EMP-000001")
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"subject":""}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Decide_ConflictMapsTo409(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		decideFn: func(ctx context.Context, adminCode, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrAlreadyDecided
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("code", "ADM-01")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/decision", strings.NewReader(`{"decision":"approved"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Decide(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestHandler_GetAll_PendingFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	pendingCalled := false
	svc := &fakeService{
		getPendingFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			pendingCalled = true
			return nil, nil
		},
		getAllFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			t.Fatal("full listing must not run with status=pending")
			return nil, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves?status=pending", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, pendingCalled)
}
