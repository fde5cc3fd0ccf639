package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
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

func sampleEstimate() entities.Estimate {
	return entities.Estimate{
		ID:   "est-1",
		Name: "Kitchen",
		Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Items: []entities.EstimateItem{{
			TemplateID: "tpl-1", TemplateCode: "C-1", TemplateDescription: "Cable",
			Quantity: 2, Price: 10, ProfitMargin: 20, Cost: 20, Profit: 4, Total: 24,
		}},
		TotalCost:   20,
		TotalProfit: 4,
		TotalAmount: 24,
		CreatedBy:   "ana",
	}
}

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	post := func(r *gin.Engine, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		r := newTestRouter(userViewer)
		r.POST("/v1/estimates", NewEstimateHandler(uc).CreateEstimate)

		if w := post(r, "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("no templates selected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		r := newTestRouter(userViewer)
		r.POST("/v1/estimates", NewEstimateHandler(uc).CreateEstimate)

		w := post(r, `{"name":"Kitchen","date":"2024-05-01","template_ids":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Code != "VALIDATION_ERROR" || body.Fields["template_ids"] == "" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("usecase returns mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		r := newTestRouter(userViewer)
		r.POST("/v1/estimates", NewEstimateHandler(uc).CreateEstimate)

		uc.EXPECT().CreateEstimate(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, usecase.ErrTemplateNotFound)

		w := post(r, `{"name":"Kitchen","date":"2024-05-01","template_ids":["gone"]}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		r := newTestRouter(userViewer)
		r.POST("/v1/estimates", NewEstimateHandler(uc).CreateEstimate)

		uc.EXPECT().CreateEstimate(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, usecase.ErrInvalidEstimateDate)

		w := post(r, `{"name":"Kitchen","date":"01/05/2024","template_ids":["tpl-1"]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success stamps creator and redacts for users", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		r := newTestRouter(userViewer)
		r.POST("/v1/estimates", NewEstimateHandler(uc).CreateEstimate)

		uc.EXPECT().CreateEstimate(gomock.Any(), usecase.CreateEstimateCommand{
			Name:        "Kitchen",
			Date:        "2024-05-01",
			TemplateIDs: []string{"tpl-1", "tpl-1"},
			CreatedBy:   "ana",
		}).Return(sampleEstimate(), nil)

		w := post(r, `{"name":"Kitchen","date":"2024-05-01","template_ids":["tpl-1","tpl-1"]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "est-1" || body["total_amount"] != 24.0 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
		if _, ok := body["total_profit"]; ok {
			t.Fatalf("profit must not reach a regular user: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_GetEstimate(t *testing.T) {
	cases := []struct {
		name   string
		viewer entities.Identity
		err    error
		want   int
	}{
		{name: "found", viewer: adminViewer, want: http.StatusOK},
		{name: "someone else's estimate", viewer: userViewer, err: usecase.ErrEstimateNotFound, want: http.StatusNotFound},
		{name: "store failure", viewer: userViewer, err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIEstimateUseCase(ctrl)
			r := newTestRouter(tc.viewer)
			r.GET("/v1/estimates/:id", NewEstimateHandler(uc).GetEstimate)

			est := sampleEstimate()
			if tc.err != nil {
				est = entities.Estimate{}
			}
			uc.EXPECT().GetEstimate(gomock.Any(), tc.viewer, "est-1").Return(est, tc.err)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1", nil))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestEstimateHandler_ListMyEstimates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	r := newTestRouter(userViewer)
	r.GET("/v1/estimates/mine", NewEstimateHandler(uc).ListMyEstimates)

	uc.EXPECT().ListMyEstimates(gomock.Any(), userViewer).Return([]entities.Estimate{sampleEstimate()}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates/mine", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["created_by"] != "ana" {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}
}

func TestEstimateHandler_NoIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	r := gin.New()
	r.GET("/v1/estimates/mine", NewEstimateHandler(uc).ListMyEstimates)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/estimates/mine", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
