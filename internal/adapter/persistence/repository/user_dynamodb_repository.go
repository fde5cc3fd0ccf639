package repository

import (
	"context"
	"sort"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
)

const usersUsernameIndex = "username-index"

type userRecord struct {
	ID           string `dynamodbav:"id"`
	Username     string `dynamodbav:"username"`
	PasswordHash string `dynamodbav:"password_hash"`
	Role         string `dynamodbav:"role"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// UserDynamoRepository persists accounts in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI username-index: PK username (string)
type UserDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoDBAPI, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toUserRecord(u)); err != nil {
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var rec userRecord
	found, err := getByID(ctx, r.ddb, r.tableName, id, &rec)
	if err != nil || !found {
		return entities.User{}, err
	}
	return fromUserRecord(rec), nil
}

// GetByUsername goes through the GSI, which is eventually consistent.
func (r *UserDynamoRepository) GetByUsername(ctx context.Context, username string) (entities.User, error) {
	var recs []userRecord
	if err := queryIndex(ctx, r.ddb, r.tableName, usersUsernameIndex, "username", username, &recs); err != nil {
		return entities.User{}, err
	}
	if len(recs) == 0 {
		return entities.User{}, nil
	}
	return fromUserRecord(recs[0]), nil
}

func (r *UserDynamoRepository) List(ctx context.Context) ([]entities.User, error) {
	var recs []userRecord
	if err := scanAll(ctx, r.ddb, r.tableName, &recs); err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, fromUserRecord(rec))
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserDynamoRepository) Delete(ctx context.Context, id string) (entities.User, error) {
	var rec userRecord
	found, err := deleteByID(ctx, r.ddb, r.tableName, id, &rec)
	if err != nil || !found {
		return entities.User{}, err
	}
	return fromUserRecord(rec), nil
}

func toUserRecord(u entities.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    formatTime(u.CreatedAt),
	}
}

func fromUserRecord(rec userRecord) entities.User {
	return entities.User{
		ID:           rec.ID,
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		Role:         entities.Role(rec.Role),
		CreatedAt:    parseTime(rec.CreatedAt),
	}
}
