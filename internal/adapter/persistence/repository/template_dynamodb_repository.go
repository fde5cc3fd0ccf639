package repository

import (
	"context"
	"sort"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type templateRecord struct {
	ID           string `dynamodbav:"id"`
	Code         string `dynamodbav:"code"`
	Description  string `dynamodbav:"description"`
	Quantity     string `dynamodbav:"quantity"`
	Price        string `dynamodbav:"price"`
	ProfitMargin string `dynamodbav:"profit_margin"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// TemplateDynamoRepository persists the template catalog in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type TemplateDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ITemplateRepository = (*TemplateDynamoRepository)(nil)

func NewTemplateDynamoRepository(ddb DynamoDBAPI, tableName string) *TemplateDynamoRepository {
	return &TemplateDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *TemplateDynamoRepository) Create(ctx context.Context, t entities.Template) (entities.Template, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toTemplateRecord(t)); err != nil {
		return entities.Template{}, err
	}
	return t, nil
}

// Update overwrites the whole record, conditioned on it existing.
func (r *TemplateDynamoRepository) Update(ctx context.Context, t entities.Template) (entities.Template, error) {
	av, err := attributevalue.MarshalMap(toTemplateRecord(t))
	if err != nil {
		return entities.Template{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Template{}, nil
		}
		return entities.Template{}, err
	}
	return t, nil
}

func (r *TemplateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Template, error) {
	var rec templateRecord
	found, err := getByID(ctx, r.ddb, r.tableName, id, &rec)
	if err != nil || !found {
		return entities.Template{}, err
	}
	return fromTemplateRecord(rec), nil
}

func (r *TemplateDynamoRepository) List(ctx context.Context) ([]entities.Template, error) {
	var recs []templateRecord
	if err := scanAll(ctx, r.ddb, r.tableName, &recs); err != nil {
		return nil, err
	}
	out := make([]entities.Template, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromTemplateRecord(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TemplateDynamoRepository) Delete(ctx context.Context, id string) (entities.Template, error) {
	var rec templateRecord
	found, err := deleteByID(ctx, r.ddb, r.tableName, id, &rec)
	if err != nil || !found {
		return entities.Template{}, err
	}
	return fromTemplateRecord(rec), nil
}

func toTemplateRecord(t entities.Template) templateRecord {
	return templateRecord{
		ID:           t.ID,
		Code:         t.Code,
		Description:  t.Description,
		Quantity:     floatToString(t.Quantity),
		Price:        floatToString(t.Price),
		ProfitMargin: floatToString(t.ProfitMargin),
		CreatedAt:    formatTime(t.CreatedAt),
		UpdatedAt:    formatTime(t.UpdatedAt),
	}
}

func fromTemplateRecord(rec templateRecord) entities.Template {
	return entities.Template{
		ID:           rec.ID,
		Code:         rec.Code,
		Description:  rec.Description,
		Quantity:     parseFloat(rec.Quantity),
		Price:        parseFloat(rec.Price),
		ProfitMargin: parseFloat(rec.ProfitMargin),
		CreatedAt:    parseTime(rec.CreatedAt),
		UpdatedAt:    parseTime(rec.UpdatedAt),
	}
}
