package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/server/http/dto"
	"github.com/kairos-ev/ordertrack/internal/server/http/middleware"
	testhelpers "github.com/kairos-ev/ordertrack/internal/test"
	"github.com/kairos-ev/ordertrack/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRouteRequest(t, method, path, path, handler, setup, body, headers)
}

func performRouteRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asCustomer(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
		c.Set(middleware.UserRoleContextKey, model.RoleCustomer)
	}
}

func asAdmin(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
		c.Set(middleware.UserRoleContextKey, model.RoleAdmin)
	}
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestCurrentActor(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if actor := CurrentActor(c); actor.Role != model.RoleCustomer {
		t.Fatalf("expected customer by default, got %q", actor.Role)
	}

	c.Set(middleware.UserIDContextKey, int64(7))
	c.Set(middleware.UserRoleContextKey, model.RoleAdmin)
	actor := CurrentActor(c)
	if actor.UserID != 7 || !actor.Admin() {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Login: "li.wei", Password: "secret", FullName: "Li Wei"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatal("expected auth header to be set")
	}

	var decoded dto.SessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Login != "li.wei" || decoded.Role != string(model.RoleCustomer) {
		t.Fatalf("unexpected session: %+v", decoded)
	}
}

func TestAuthHandlerRegisterSetsCookie(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Login: login, Password: password})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword, _ string) (*model.User, string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return &model.User{ID: 1, Login: login, Role: model.RoleCustomer}, "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if authHeader := resp.Header().Get("Authorization"); authHeader != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	foundCookie := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "ordertrack_token" {
			if cookie.Value != "session-token" {
				t.Fatalf("unexpected token stored in cookie: %q", cookie.Value)
			}
			foundCookie = true
			break
		}
	}
	if !foundCookie {
		t.Fatal("expected auth cookie named ordertrack_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
			return nil, "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
			return nil, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Login: "li.wei", Password: "secret"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerSession(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{UserByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, Login: "li.wei", FullName: "Li Wei", Role: model.RoleCustomer}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/session", handler.Session, asCustomer(3), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.SessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.UserID != 3 || decoded.FullName != "Li Wei" {
		t.Fatalf("unexpected session: %+v", decoded)
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{UserByIDFn: func(context.Context, int64) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodGet, "/session", handler.Session, asCustomer(3), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{CreateFn: func(ctx context.Context, input usecase.NewOrderInput, actor model.Actor) (*model.Order, error) {
		if input.OwnerID != 5 {
			t.Fatalf("expected owner taken from actor, got %d", input.OwnerID)
		}
		if input.TotalAmount != 68000 || input.DepositPaid != 34000 {
			t.Fatalf("unexpected amounts: %+v", input)
		}
		return &model.Order{ID: "order-1", OrderNumber: "KA-2026-00100", OwnerID: input.OwnerID, Vehicle: input.Vehicle, Status: model.StagePlaced, Version: 1}, nil
	}}
	body, _ := json.Marshal(dto.CreateOrderRequest{
		VehicleID:   "veh-9",
		VehicleName: "BYD Tang L",
		TotalAmount: 68000,
		DepositPaid: 34000,
	})
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Create, asCustomer(5), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.OrderNumber != "KA-2026-00100" || decoded.Status != string(model.StagePlaced) {
		t.Fatalf("unexpected order: %+v", decoded)
	}
}

func TestOrderHandlerCreateAdminSetsOwner(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{CreateFn: func(ctx context.Context, input usecase.NewOrderInput, actor model.Actor) (*model.Order, error) {
		if input.OwnerID != 9 {
			t.Fatalf("expected explicit owner 9, got %d", input.OwnerID)
		}
		return &model.Order{ID: "order-1", OwnerID: input.OwnerID, Status: model.StagePlaced, Version: 1}, nil
	}}
	body, _ := json.Marshal(dto.CreateOrderRequest{OwnerID: 9, VehicleID: "veh-1", VehicleName: "Zeekr 7X", TotalAmount: 40000, DepositPaid: 0})
	resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(facade).Create, asAdmin(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "missing vehicle", body: []byte(`{"total_amount":100}`), status: http.StatusBadRequest},
		{name: "deposit above total", body: []byte(`{"vehicle_id":"v","vehicle_name":"n","total_amount":68000,"deposit_paid":70000}`), facade: testhelpers.OrderFacadeStub{CreateFn: func(context.Context, usecase.NewOrderInput, model.Actor) (*model.Order, error) {
			return nil, domainErrors.ErrInvalidAmount
		}}, status: http.StatusUnprocessableEntity},
		{name: "internal", body: []byte(`{"vehicle_id":"v","vehicle_name":"n","total_amount":100}`), facade: testhelpers.OrderFacadeStub{CreateFn: func(context.Context, usecase.NewOrderInput, model.Actor) (*model.Order, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(tt.facade).Create, asCustomer(5), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	orders := []model.Order{{ID: "order-1", Status: model.StagePlaced}, {ID: "order-2", Status: model.StageShipping}}
	facade := testhelpers.OrderFacadeStub{ByOwnerFn: func(context.Context, int64) ([]model.Order, error) {
		return orders, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, asCustomer(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != len(orders) {
		t.Fatalf("expected %d orders, got %d", len(orders), len(decoded))
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ByOwnerFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, asCustomer(5), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{}
	resp := performRouteRequest(t, http.MethodGet, "/orders/:id", "/orders/order-1", NewOrderHandler(facade).Get, asCustomer(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderDetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != "order-1" || len(decoded.Progress) == 0 {
		t.Fatalf("unexpected detail: %+v", decoded)
	}
}

func TestOrderHandlerProgress(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ProgressFn: func(context.Context, string, model.Actor) ([]model.StageProgress, error) {
		return []model.StageProgress{
			{Stage: model.StagePlaced, State: model.ProgressCompleted},
			{Stage: model.StageProcessing, State: model.ProgressCurrent},
			{Stage: model.StageShipping, State: model.ProgressPending},
		}, nil
	}}
	resp := performRouteRequest(t, http.MethodGet, "/orders/:id/progress", "/orders/order-1/progress", NewOrderHandler(facade).Progress, asCustomer(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.StageProgressResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 3 || decoded[1].State != string(model.ProgressCurrent) {
		t.Fatalf("unexpected projection: %+v", decoded)
	}
	if decoded[0].Label == "" {
		t.Fatal("expected stage labels to be set")
	}
}

func TestOrderHandlerGetFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "foreign order", err: domainErrors.ErrForbidden, status: http.StatusForbidden},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{OrderFn: func(context.Context, string, model.Actor) (*model.Order, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodGet, "/orders/order-1", NewOrderHandler(facade).Get, asCustomer(5), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAdminOrderHandlerList(t *testing.T) {
	facade := testhelpers.AdminOrderFacadeStub{SearchFn: func(ctx context.Context, status, query string) ([]model.Order, error) {
		if status != "shipping" || query != "BYD Tang" {
			t.Fatalf("unexpected filters: %q %q", status, query)
		}
		return []model.Order{{ID: "order-1", Vehicle: model.VehicleRef{Name: "BYD Tang L"}, Status: model.StageShipping}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/admin/orders", NewAdminOrderHandler(facade).List, asAdmin(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAdminOrderHandlerListFilters(t *testing.T) {
	router := gin.New()
	facade := testhelpers.AdminOrderFacadeStub{SearchFn: func(ctx context.Context, status, query string) ([]model.Order, error) {
		if status != "shipping" || query != "Tang" {
			t.Fatalf("unexpected filters: %q %q", status, query)
		}
		return nil, nil
	}}
	router.GET("/admin/orders", NewAdminOrderHandler(facade).List)
	req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=shipping&q=Tang", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestAdminOrderHandlerTransition(t *testing.T) {
	facade := testhelpers.AdminOrderFacadeStub{TransitionFn: func(ctx context.Context, orderID, target, note string, actor model.Actor, opts usecase.TransitionOptions) (*model.Order, error) {
		if orderID != "order-1" || target != "customs" || note != "entered customs" {
			t.Fatalf("unexpected transition args: %q %q %q", orderID, target, note)
		}
		if !opts.Override || opts.ExpectedVersion != 3 {
			t.Fatalf("unexpected options: %+v", opts)
		}
		order := &model.Order{ID: orderID, Status: model.StageCustoms, Version: 4}
		order.StatusHistory = []model.StatusUpdate{{Stage: model.StageCustoms, Note: note}}
		return order, nil
	}}
	body, _ := json.Marshal(dto.TransitionRequest{Status: "customs", Note: "entered customs", Override: true, Version: 3})
	resp := performRouteRequest(t, http.MethodPatch, "/admin/orders/:id/status", "/admin/orders/order-1/status", NewAdminOrderHandler(facade).Transition, asAdmin(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderDetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Status != "customs" || decoded.Version != 4 {
		t.Fatalf("unexpected order: %+v", decoded)
	}
	if len(decoded.Progress) == 0 {
		t.Fatal("expected progress projection in response")
	}
}

func TestAdminOrderHandlerTransitionFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "unknown stage", err: domainErrors.ErrInvalidStage, body: []byte(`{"status":"warp"}`), status: http.StatusUnprocessableEntity},
		{name: "regression", err: domainErrors.ErrStageRegression, body: []byte(`{"status":"placed"}`), status: http.StatusUnprocessableEntity},
		{name: "stale version", err: domainErrors.ErrStaleWrite, body: []byte(`{"status":"customs","version":1}`), status: http.StatusConflict},
		{name: "missing order", err: domainErrors.ErrNotFound, body: []byte(`{"status":"customs"}`), status: http.StatusNotFound},
		{name: "internal", err: errors.New("boom"), body: []byte(`{"status":"customs"}`), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.AdminOrderFacadeStub{TransitionFn: func(context.Context, string, string, string, model.Actor, usecase.TransitionOptions) (*model.Order, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPatch, "/admin/orders/order-1/status", NewAdminOrderHandler(facade).Transition, asAdmin(1), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAdminOrderHandlerBulkTransition(t *testing.T) {
	facade := testhelpers.AdminOrderFacadeStub{TransitionManyFn: func(ctx context.Context, orderIDs []string, target, note string, actor model.Actor, opts usecase.TransitionOptions) []model.TransitionOutcome {
		return []model.TransitionOutcome{
			{OrderID: "order-1", Order: &model.Order{ID: "order-1", Status: model.StageShipping}},
			{OrderID: "order-2", Err: domainErrors.ErrStageRegression},
		}
	}}
	body, _ := json.Marshal(dto.BulkTransitionRequest{OrderIDs: []string{"order-1", "order-2"}, Status: "shipping"})
	resp := performRequest(t, http.MethodPost, "/admin/orders/status", NewAdminOrderHandler(facade).BulkTransition, asAdmin(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.BulkTransitionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Updated) != 1 || decoded.Updated[0].ID != "order-1" {
		t.Fatalf("unexpected updated list: %+v", decoded.Updated)
	}
	if len(decoded.Failed) != 1 || decoded.Failed["order-2"] == "" {
		t.Fatalf("unexpected failed map: %+v", decoded.Failed)
	}
}

func TestAdminOrderHandlerDelete(t *testing.T) {
	resp := performRequest(t, http.MethodDelete, "/admin/orders/order-1", NewAdminOrderHandler(testhelpers.AdminOrderFacadeStub{}).Delete, asAdmin(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	facade := testhelpers.AdminOrderFacadeStub{DeleteFn: func(context.Context, string, model.Actor) error {
		return domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodDelete, "/admin/orders/order-1", NewAdminOrderHandler(facade).Delete, asAdmin(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAdminOrderHandlerBulkDelete(t *testing.T) {
	facade := testhelpers.AdminOrderFacadeStub{DeleteManyFn: func(ctx context.Context, orderIDs []string, actor model.Actor) (int64, error) {
		return 2, nil
	}}
	body, _ := json.Marshal(dto.BulkDeleteRequest{OrderIDs: []string{"order-1", "order-2", "missing"}})
	resp := performRequest(t, http.MethodPost, "/admin/orders/delete", NewAdminOrderHandler(facade).BulkDelete, asAdmin(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.BulkDeleteResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", decoded.Deleted)
	}
}

func TestAdminOrderHandlerStats(t *testing.T) {
	facade := testhelpers.AdminOrderFacadeStub{StatsFn: func(context.Context) (map[model.Stage]int64, error) {
		return map[model.Stage]int64{model.StagePlaced: 4, model.StageReady: 1}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/admin/orders/stats", NewAdminOrderHandler(facade).Stats, asAdmin(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.StatsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Total != 5 || decoded.Stages["placed"] != 4 {
		t.Fatalf("unexpected stats: %+v", decoded)
	}
}

func TestAttachmentHandlerDocuments(t *testing.T) {
	facade := testhelpers.AttachmentFacadeStub{DocumentsFn: func(context.Context, string, model.Actor) ([]model.Document, error) {
		return []model.Document{{ID: "doc-1", Name: "contract.pdf"}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders/order-1/documents", NewAttachmentHandler(facade).ListDocuments, asCustomer(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	body, _ := json.Marshal(dto.AddDocumentRequest{Name: "contract.pdf", URL: "https://files/contract.pdf"})
	resp = performRequest(t, http.MethodPost, "/orders/order-1/documents", NewAttachmentHandler(testhelpers.AttachmentFacadeStub{}).AddDocument, asCustomer(5), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestAttachmentHandlerReceipts(t *testing.T) {
	body, _ := json.Marshal(dto.AddReceiptRequest{FileName: "wire.png", URL: "https://files/wire.png", Amount: 34000})
	resp := performRequest(t, http.MethodPost, "/orders/order-1/receipts", NewAttachmentHandler(testhelpers.AttachmentFacadeStub{}).AddReceipt, asCustomer(5), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	facade := testhelpers.AttachmentFacadeStub{AddReceiptFn: func(context.Context, string, string, string, float64, model.Actor) (*model.BankReceipt, error) {
		return nil, domainErrors.ErrInvalidAmount
	}}
	body, _ = json.Marshal(dto.AddReceiptRequest{FileName: "wire.png", URL: "https://files/wire.png", Amount: -5})
	resp = performRequest(t, http.MethodPost, "/orders/order-1/receipts", NewAttachmentHandler(facade).AddReceipt, asCustomer(5), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestAttachmentHandlerVerifyReceipt(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/admin/orders/order-1/receipts/rcpt-1/verify", NewAttachmentHandler(testhelpers.AttachmentFacadeStub{}).VerifyReceipt, asAdmin(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ReceiptResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !decoded.Verified {
		t.Fatalf("expected verified receipt, got %+v", decoded)
	}

	facade := testhelpers.AttachmentFacadeStub{VerifyReceiptFn: func(context.Context, string, string, model.Actor) (*model.BankReceipt, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodPost, "/admin/orders/order-1/receipts/missing/verify", NewAttachmentHandler(facade).VerifyReceipt, asAdmin(1), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAttachmentHandlerMessages(t *testing.T) {
	facade := testhelpers.AttachmentFacadeStub{MessagesFn: func(context.Context, string, model.Actor) ([]model.Message, error) {
		return []model.Message{{ID: "msg-1", Content: "when does it ship?"}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders/order-1/messages", NewAttachmentHandler(facade).ListMessages, asCustomer(5), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	body, _ := json.Marshal(dto.PostMessageRequest{Content: "when does it ship?"})
	resp = performRequest(t, http.MethodPost, "/orders/order-1/messages", NewAttachmentHandler(testhelpers.AttachmentFacadeStub{}).PostMessage, asCustomer(5), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	empty := testhelpers.AttachmentFacadeStub{PostMessageFn: func(context.Context, string, string, model.Actor) (*model.Message, error) {
		return nil, domainErrors.ErrEmptyMessage
	}}
	body, _ = json.Marshal(dto.PostMessageRequest{Content: "   "})
	resp = performRequest(t, http.MethodPost, "/orders/order-1/messages", NewAttachmentHandler(empty).PostMessage, asCustomer(5), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}
