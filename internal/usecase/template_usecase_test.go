package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"estimador/internal/domain/entities"
	mock_interfaces "estimador/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func f64(v float64) *float64 { return &v }

func validTemplateInput() TemplateInput {
	return TemplateInput{Code: "C-1", Description: "Cable", Quantity: f64(2), Price: f64(10), ProfitMargin: f64(10)}
}

func TestTemplateUseCase_UpsertTemplate_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TemplateInput)
		want   error
	}{
		{name: "blank code", mutate: func(in *TemplateInput) { in.Code = " " }, want: ErrTemplateFieldsRequired},
		{name: "blank description", mutate: func(in *TemplateInput) { in.Description = "" }, want: ErrTemplateFieldsRequired},
		{name: "missing quantity", mutate: func(in *TemplateInput) { in.Quantity = nil }, want: ErrTemplateFieldsRequired},
		{name: "missing price", mutate: func(in *TemplateInput) { in.Price = nil }, want: ErrTemplateFieldsRequired},
		{name: "missing margin", mutate: func(in *TemplateInput) { in.ProfitMargin = nil }, want: ErrTemplateFieldsRequired},
		{name: "nan price", mutate: func(in *TemplateInput) { in.Price = f64(math.NaN()) }, want: ErrInvalidTemplateNumber},
		{name: "infinite quantity", mutate: func(in *TemplateInput) { in.Quantity = f64(math.Inf(1)) }, want: ErrInvalidTemplateNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_interfaces.NewMockITemplateRepository(ctrl)
			uc := NewTemplateUseCase(repo, nil)

			in := validTemplateInput()
			tc.mutate(&in)
			_, err := uc.UpsertTemplate(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTemplateUseCase_UpsertTemplate(t *testing.T) {
	t.Run("creates when id is empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tpl entities.Template) (entities.Template, error) { return tpl, nil },
		)

		tpl, err := uc.UpsertTemplate(context.Background(), validTemplateInput())
		require.NoError(t, err)
		assert.NotEmpty(t, tpl.ID)
		assert.Equal(t, "C-1", tpl.Code)
		assert.Equal(t, 10.0, tpl.ProfitMargin)
		assert.Equal(t, tpl.CreatedAt, tpl.UpdatedAt)
	})

	t.Run("zero values are accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tpl entities.Template) (entities.Template, error) { return tpl, nil },
		)

		in := validTemplateInput()
		in.ProfitMargin = f64(0)
		tpl, err := uc.UpsertTemplate(context.Background(), in)
		require.NoError(t, err)
		assert.Zero(t, tpl.ProfitMargin)
	})

	t.Run("replace keeps creation time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)

		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		repo.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.Template{ID: "tpl-1", CreatedAt: created}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tpl entities.Template) (entities.Template, error) { return tpl, nil },
		)

		in := validTemplateInput()
		in.ID = "tpl-1"
		in.Price = f64(12)
		tpl, err := uc.UpsertTemplate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "tpl-1", tpl.ID)
		assert.Equal(t, 12.0, tpl.Price)
		assert.True(t, tpl.CreatedAt.Equal(created))
		assert.True(t, tpl.UpdatedAt.After(created))
	})

	t.Run("replace unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "tpl-x").Return(entities.Template{}, nil)

		in := validTemplateInput()
		in.ID = "tpl-x"
		_, err := uc.UpsertTemplate(context.Background(), in)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)

		dbErr := errors.New("db")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Template{}, dbErr)

		_, err := uc.UpsertTemplate(context.Background(), validTemplateInput())
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestTemplateUseCase_DeleteTemplate(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewTemplateUseCase(nil, nil)
		assert.ErrorIs(t, uc.DeleteTemplate(context.Background(), ""), ErrInvalidTemplateID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)
		repo.EXPECT().Delete(gomock.Any(), "tpl-1").Return(entities.Template{}, nil)
		assert.ErrorIs(t, uc.DeleteTemplate(context.Background(), "tpl-1"), ErrTemplateNotFound)
	})

	t.Run("deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockITemplateRepository(ctrl)
		uc := NewTemplateUseCase(repo, nil)
		repo.EXPECT().Delete(gomock.Any(), "tpl-1").Return(entities.Template{ID: "tpl-1"}, nil)
		assert.NoError(t, uc.DeleteTemplate(context.Background(), "tpl-1"))
	})
}

func TestTemplateUseCase_GetAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockITemplateRepository(ctrl)
	uc := NewTemplateUseCase(repo, nil)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Template{}, nil)
	repo.EXPECT().GetByID(gomock.Any(), "tpl-1").Return(entities.Template{ID: "tpl-1"}, nil)
	repo.EXPECT().List(gomock.Any()).Return([]entities.Template{{ID: "tpl-1"}, {ID: "tpl-2"}}, nil)

	_, err := uc.GetTemplate(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = uc.GetTemplate(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidTemplateID)

	tpl, err := uc.GetTemplate(context.Background(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "tpl-1", tpl.ID)

	list, err := uc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
