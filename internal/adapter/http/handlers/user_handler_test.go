package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"estimador/internal/adapter/http/handlers/mocks"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestUserHandler_CreateUser(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		setup func(m *mocks.MockIUserUseCase)
		want  int
	}{
		{name: "missing password", body: `{"username":"ana"}`, want: http.StatusBadRequest},
		{
			name: "duplicate username", body: `{"username":"ana","password":"pw"}`, want: http.StatusConflict,
			setup: func(m *mocks.MockIUserUseCase) {
				m.EXPECT().CreateUser(gomock.Any(), "ana", "pw").Return(entities.User{}, usecase.ErrUsernameTaken)
			},
		},
		{
			name: "created", body: `{"username":"ana","password":"pw"}`, want: http.StatusCreated,
			setup: func(m *mocks.MockIUserUseCase) {
				m.EXPECT().CreateUser(gomock.Any(), "ana", "pw").Return(entities.User{ID: "u-1", Username: "ana", PasswordHash: "hash", Role: entities.RoleUser}, nil)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIUserUseCase(ctrl)
			if tc.setup != nil {
				tc.setup(uc)
			}
			r := newTestRouter(adminViewer)
			r.POST("/v1/users", NewUserHandler(uc).CreateUser)

			req := httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if bytes.Contains(w.Body.Bytes(), []byte("hash")) {
				t.Fatalf("password hash leaked: %s", w.Body.String())
			}
		})
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIUserUseCase(ctrl)
	r := newTestRouter(adminViewer)
	r.GET("/v1/users", NewUserHandler(uc).ListUsers)

	uc.EXPECT().ListUsers(gomock.Any()).Return([]entities.User{{ID: "u-1", Username: "ana", Role: entities.RoleUser}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/users", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["username"] != "ana" {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}
}

func TestUserHandler_DeleteUser(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "deleted", want: http.StatusNoContent},
		{name: "unknown user", err: usecase.ErrUserNotFound, want: http.StatusNotFound},
		{name: "admin account", err: usecase.ErrAdminNotDeletable, want: http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIUserUseCase(ctrl)
			r := newTestRouter(adminViewer)
			r.DELETE("/v1/users/:id", NewUserHandler(uc).DeleteUser)

			uc.EXPECT().DeleteUser(gomock.Any(), "u-1").Return(tc.err)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/users/u-1", nil))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
