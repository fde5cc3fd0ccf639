package repository

import (
	"time"

	"estimador/internal/domain/entities"

	"gorm.io/gorm"
)

type userModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"size:16;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

func (userModel) TableName() string { return "users" }

type templateModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Code         string `gorm:"not null"`
	Description  string `gorm:"not null"`
	Quantity     float64
	Price        float64
	ProfitMargin float64
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (templateModel) TableName() string { return "templates" }

type estimateModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	Date        string `gorm:"size:10;index"`
	TotalCost   float64
	TotalProfit float64
	TotalAmount float64
	CreatedAt   time.Time           `gorm:"autoCreateTime:false"`
	CreatedBy   string              `gorm:"index"`
	Items       []estimateItemModel `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

func (estimateModel) TableName() string { return "estimates" }

type estimateItemModel struct {
	ID                  uint   `gorm:"primaryKey"`
	EstimateID          string `gorm:"size:36;index"`
	Position            int
	TemplateID          string
	TemplateCode        string
	TemplateDescription string
	Quantity            float64
	Price               float64
	ProfitMargin        float64
	Cost                float64
	Profit              float64
	Total               float64
}

func (estimateItemModel) TableName() string { return "estimate_items" }

// AutoMigrateGorm creates or updates the sqlite schema.
func AutoMigrateGorm(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &templateModel{}, &estimateModel{}, &estimateItemModel{})
}

func toUserModel(u entities.User) userModel {
	return userModel{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash, Role: string(u.Role), CreatedAt: u.CreatedAt.UTC()}
}

func (m userModel) toEntity() entities.User {
	return entities.User{ID: m.ID, Username: m.Username, PasswordHash: m.PasswordHash, Role: entities.Role(m.Role), CreatedAt: m.CreatedAt.UTC()}
}

func toTemplateModel(t entities.Template) templateModel {
	return templateModel{
		ID:           t.ID,
		Code:         t.Code,
		Description:  t.Description,
		Quantity:     t.Quantity,
		Price:        t.Price,
		ProfitMargin: t.ProfitMargin,
		CreatedAt:    t.CreatedAt.UTC(),
		UpdatedAt:    t.UpdatedAt.UTC(),
	}
}

func (m templateModel) toEntity() entities.Template {
	return entities.Template{
		ID:           m.ID,
		Code:         m.Code,
		Description:  m.Description,
		Quantity:     m.Quantity,
		Price:        m.Price,
		ProfitMargin: m.ProfitMargin,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func toEstimateModel(e entities.Estimate) estimateModel {
	items := make([]estimateItemModel, 0, len(e.Items))
	for i, it := range e.Items {
		items = append(items, estimateItemModel{
			EstimateID:          e.ID,
			Position:            i,
			TemplateID:          it.TemplateID,
			TemplateCode:        it.TemplateCode,
			TemplateDescription: it.TemplateDescription,
			Quantity:            it.Quantity,
			Price:               it.Price,
			ProfitMargin:        it.ProfitMargin,
			Cost:                it.Cost,
			Profit:              it.Profit,
			Total:               it.Total,
		})
	}
	return estimateModel{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date.UTC().Format(entities.DateLayout),
		TotalCost:   e.TotalCost,
		TotalProfit: e.TotalProfit,
		TotalAmount: e.TotalAmount,
		CreatedAt:   e.CreatedAt.UTC(),
		CreatedBy:   e.CreatedBy,
		Items:       items,
	}
}

func (m estimateModel) toEntity() entities.Estimate {
	date, _ := entities.ParseDate(m.Date)
	items := make([]entities.EstimateItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, entities.EstimateItem{
			TemplateID:          it.TemplateID,
			TemplateCode:        it.TemplateCode,
			TemplateDescription: it.TemplateDescription,
			Quantity:            it.Quantity,
			Price:               it.Price,
			ProfitMargin:        it.ProfitMargin,
			Cost:                it.Cost,
			Profit:              it.Profit,
			Total:               it.Total,
		})
	}
	return entities.Estimate{
		ID:          m.ID,
		Name:        m.Name,
		Date:        date,
		Items:       items,
		TotalCost:   m.TotalCost,
		TotalProfit: m.TotalProfit,
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt.UTC(),
		CreatedBy:   m.CreatedBy,
	}
}
