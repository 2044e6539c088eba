package attendance_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kingxjullien14/nkp-ems/internal/attendance"
	"github.com/kingxjullien14/nkp-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	mu      sync.Mutex
	punches int
}

func (f *fakeService) RecordPunch(ctx context.Context, empCode string, req attendance.RecordPunchRequest) (attendance.PunchResponse, error) {
	f.mu.Lock()
	f.punches++
	n := f.punches
	f.mu.Unlock()
	return attendance.PunchResponse{
		ID:         fmt.Sprintf("punch-%d", n),
		EmpCode:    empCode,
		ActionName: req.ActionName,
	}, nil
}
func (f *fakeService) GetAll(ctx context.Context) ([]attendance.PunchResponse, error) {
	return nil, nil
}
func (f *fakeService) GetByEmployee(ctx context.Context, empCode string) ([]attendance.PunchResponse, error) {
	return nil, nil
}

// memRedis answers GET/SET/SETNX/DEL from a map through the go-redis
// hook chain, so the idempotency flow runs without a server.
type memRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemRedisClient() (*redis.Client, *memRedis) {
	m := &memRedis{data: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(m)
	return client, m
}

func (m *memRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (m *memRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			m.apply(cmd)
		}
		return nil
	}
}

func (m *memRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.apply(cmd)
		return cmd.Err()
	}
}

func (m *memRedis) apply(cmd redis.Cmder) {
	m.mu.Lock()
	defer m.mu.Unlock()

	args := cmd.Args()
	name, _ := args[0].(string)
	switch strings.ToLower(name) {
	case "get":
		key, _ := args[1].(string)
		sc := cmd.(*redis.StringCmd)
		if v, ok := m.data[key]; ok {
			sc.SetVal(v)
		} else {
			sc.SetErr(redis.Nil)
		}
	case "set":
		key, _ := args[1].(string)
		val := argString(args[2])
		nx := false
		for _, a := range args[3:] {
			if s, ok := a.(string); ok && strings.EqualFold(s, "nx") {
				nx = true
			}
		}
		if nx {
			bc := cmd.(*redis.BoolCmd)
			if _, exists := m.data[key]; exists {
				bc.SetVal(false)
				return
			}
			m.data[key] = val
			bc.SetVal(true)
			return
		}
		m.data[key] = val
		cmd.(*redis.StatusCmd).SetVal("OK")
	case "del":
		var n int64
		for _, a := range args[1:] {
			key, _ := a.(string)
			if _, ok := m.data[key]; ok {
				delete(m.data, key)
				n++
			}
		}
		cmd.(*redis.IntCmd).SetVal(n)
	}
}

func argString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

type apiEnvelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

func punchRouter(h *attendance.Handler, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/attendances/punch",
		func(c *gin.Context) { c.Set("code", "EMP-000001") },
		middleware.Idempotency(rdb),
		h.Punch,
	)
	return r
}

func doPunch(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances/punch", strings.NewReader(`{"action_name":"punchin"}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Punch_RetrySameKeyReplaysWithoutSecondRow(t *testing.T) {
	rdb, _ := newMemRedisClient()
	svc := &fakeService{}
	r := punchRouter(attendance.NewHandlerWithRedis(svc, rdb), rdb)

	first := doPunch(r, "key-1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 1, svc.punches)

	second := doPunch(r, "key-1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, svc.punches)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(second.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), "punch-1")
}

func TestHandler_Punch_ReleasesLockOnCompletion(t *testing.T) {
	rdb, store := newMemRedisClient()
	svc := &fakeService{}
	r := punchRouter(attendance.NewHandlerWithRedis(svc, rdb), rdb)

	w := doPunch(r, "key-2")
	assert.Equal(t, http.StatusCreated, w.Code)

	store.mu.Lock()
	defer store.mu.Unlock()
	for key := range store.data {
		assert.False(t, strings.HasSuffix(key, ":lock"), "lock %s still held", key)
	}
}

func TestHandler_Punch_DistinctKeysInsertSeparately(t *testing.T) {
	rdb, _ := newMemRedisClient()
	svc := &fakeService{}
	r := punchRouter(attendance.NewHandlerWithRedis(svc, rdb), rdb)

	assert.Equal(t, http.StatusCreated, doPunch(r, "key-a").Code)
	assert.Equal(t, http.StatusCreated, doPunch(r, "key-b").Code)
	assert.Equal(t, 2, svc.punches)
}
