package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estimador/internal/adapter/http/handlers/mocks"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	login := func(r *gin.Engine, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("malformed body reads as bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sessions := mocks.NewMockISessionUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/auth/login", NewAuthHandler(sessions).Login)

		w := login(r, "{")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sessions := mocks.NewMockISessionUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/auth/login", NewAuthHandler(sessions).Login)

		sessions.EXPECT().Login(gomock.Any(), "ana", "bad").Return(usecase.Session{}, usecase.ErrInvalidCredentials)

		w := login(r, `{"username":"ana","password":"bad"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INVALID_CREDENTIALS" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("admin lands on user management", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		sessions := mocks.NewMockISessionUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/auth/login", NewAuthHandler(sessions).Login)

		sessions.EXPECT().Login(gomock.Any(), "admin", "pw").Return(usecase.Session{
			Token:         "tok",
			ExpiresAt:     time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
			Identity:      adminViewer,
			LandingScreen: entities.ScreenUserManagement,
		}, nil)

		w := login(r, `{"username":"admin","password":"pw"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["token"] != "tok" || body["token_type"] != "Bearer" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
		if body["landing_screen"] != string(entities.ScreenUserManagement) {
			t.Fatalf("unexpected landing screen: %s", w.Body.String())
		}
	})
}

func TestAuthHandler_Session(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	sessions := mocks.NewMockISessionUseCase(ctrl)
	r := newTestRouter(userViewer)
	r.GET("/v1/session", NewAuthHandler(sessions).Session)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/session", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		User          map[string]string `json:"user"`
		LandingScreen string            `json:"landing_screen"`
		Screens       []string          `json:"screens"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.User["username"] != "ana" || body.LandingScreen != string(entities.ScreenEstimateCreation) {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}
	for _, s := range body.Screens {
		if s == string(entities.ScreenUserManagement) {
			t.Fatalf("user management offered to a regular user: %v", body.Screens)
		}
	}
}
