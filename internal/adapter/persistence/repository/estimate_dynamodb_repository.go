package repository

import (
	"context"
	"sort"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
)

const estimatesCreatorIndex = "created_by-index"

type estimateRecord struct {
	ID          string               `dynamodbav:"id"`
	Name        string               `dynamodbav:"name"`
	Date        string               `dynamodbav:"date"`
	Items       []estimateItemRecord `dynamodbav:"items"`
	TotalCost   string               `dynamodbav:"total_cost"`
	TotalProfit string               `dynamodbav:"total_profit"`
	TotalAmount string               `dynamodbav:"total_amount"`
	CreatedAt   string               `dynamodbav:"created_at"`
	CreatedBy   string               `dynamodbav:"created_by"`
}

type estimateItemRecord struct {
	TemplateID          string `dynamodbav:"template_id"`
	TemplateCode        string `dynamodbav:"template_code"`
	TemplateDescription string `dynamodbav:"template_description"`
	Quantity            string `dynamodbav:"quantity"`
	Price               string `dynamodbav:"price"`
	ProfitMargin        string `dynamodbav:"profit_margin"`
	Cost                string `dynamodbav:"cost"`
	Profit              string `dynamodbav:"profit"`
	Total               string `dynamodbav:"total"`
}

// EstimateDynamoRepository persists the estimate ledger in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI created_by-index: PK created_by (string)
//
// Items are stored inline as a list attribute. Numbers are kept as decimal
// strings so the stored values round-trip exactly.

type EstimateDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb DynamoDBAPI, tableName string) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toEstimateRecord(e)); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	var rec estimateRecord
	found, err := getByID(ctx, r.ddb, r.tableName, id, &rec)
	if err != nil || !found {
		return entities.Estimate{}, err
	}
	return fromEstimateRecord(rec), nil
}

func (r *EstimateDynamoRepository) List(ctx context.Context) ([]entities.Estimate, error) {
	var recs []estimateRecord
	if err := scanAll(ctx, r.ddb, r.tableName, &recs); err != nil {
		return nil, err
	}
	return fromEstimateRecords(recs), nil
}

func (r *EstimateDynamoRepository) ListByCreator(ctx context.Context, username string) ([]entities.Estimate, error) {
	var recs []estimateRecord
	if err := queryIndex(ctx, r.ddb, r.tableName, estimatesCreatorIndex, "created_by", username, &recs); err != nil {
		return nil, err
	}
	return fromEstimateRecords(recs), nil
}

func toEstimateRecord(e entities.Estimate) estimateRecord {
	items := make([]estimateItemRecord, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, estimateItemRecord{
			TemplateID:          it.TemplateID,
			TemplateCode:        it.TemplateCode,
			TemplateDescription: it.TemplateDescription,
			Quantity:            floatToString(it.Quantity),
			Price:               floatToString(it.Price),
			ProfitMargin:        floatToString(it.ProfitMargin),
			Cost:                floatToString(it.Cost),
			Profit:              floatToString(it.Profit),
			Total:               floatToString(it.Total),
		})
	}
	return estimateRecord{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date.UTC().Format(entities.DateLayout),
		Items:       items,
		TotalCost:   floatToString(e.TotalCost),
		TotalProfit: floatToString(e.TotalProfit),
		TotalAmount: floatToString(e.TotalAmount),
		CreatedAt:   formatTime(e.CreatedAt),
		CreatedBy:   e.CreatedBy,
	}
}

func fromEstimateRecord(rec estimateRecord) entities.Estimate {
	date, _ := entities.ParseDate(rec.Date)
	items := make([]entities.EstimateItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, entities.EstimateItem{
			TemplateID:          it.TemplateID,
			TemplateCode:        it.TemplateCode,
			TemplateDescription: it.TemplateDescription,
			Quantity:            parseFloat(it.Quantity),
			Price:               parseFloat(it.Price),
			ProfitMargin:        parseFloat(it.ProfitMargin),
			Cost:                parseFloat(it.Cost),
			Profit:              parseFloat(it.Profit),
			Total:               parseFloat(it.Total),
		})
	}
	return entities.Estimate{
		ID:          rec.ID,
		Name:        rec.Name,
		Date:        date,
		Items:       items,
		TotalCost:   parseFloat(rec.TotalCost),
		TotalProfit: parseFloat(rec.TotalProfit),
		TotalAmount: parseFloat(rec.TotalAmount),
		CreatedAt:   parseTime(rec.CreatedAt),
		CreatedBy:   rec.CreatedBy,
	}
}

// fromEstimateRecords converts and sorts by creation time; scans and queries
// return records in no particular order.
func fromEstimateRecords(recs []estimateRecord) []entities.Estimate {
	out := make([]entities.Estimate, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromEstimateRecord(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
