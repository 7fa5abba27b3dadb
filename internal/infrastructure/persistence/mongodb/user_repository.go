package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/metrics"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
)

const userCollection = "users"

// UserRepository는 MongoDB 기반 사용자 저장소입니다
type UserRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	metrics    *metrics.Metrics
}

// NewUserRepository는 새로운 MongoDB 사용자 저장소를 생성합니다
func NewUserRepository(client *mongo.Client, database *mongo.Database) repository.UserRepository {
	return &UserRepository{
		client:     client,
		collection: database.Collection(userCollection),
		metrics:    metrics.GetMetrics(),
	}
}

// Create는 사용자를 저장하고 생성된 ID를 반환합니다
func (r *UserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	start := time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		r.metrics.RecordDBOperation("insert", userCollection, "error", time.Since(start))
		if mongo.IsDuplicateKeyError(err) {
			return "", entity.ErrEmailAlreadyExists
		}
		logger.Error(ctx, "failed to insert user",
			logger.Email(user.Email),
			zap.Error(err),
		)
		return "", err
	}

	r.metrics.RecordDBOperation("insert", userCollection, "success", time.Since(start))

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}

	return oid.Hex(), nil
}

// FindByID는 ID로 사용자 원본 문서를 조회합니다
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error) {
	start := time.Now()

	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			r.metrics.RecordDBOperation("find", userCollection, "not_found", time.Since(start))
			return nil, entity.ErrUserNotFound
		}
		r.metrics.RecordDBOperation("find", userCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to find user",
			logger.UserID(id.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	r.metrics.RecordDBOperation("find", userCollection, "success", time.Since(start))
	return entity.Record(doc), nil
}

// FindByEmail은 인증용으로 사용자를 타입된 형태로 조회합니다
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, primitive.ObjectID, error) {
	start := time.Now()

	var doc struct {
		ID          primitive.ObjectID `bson:"_id"`
		entity.User `bson:",inline"`
	}

	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			r.metrics.RecordDBOperation("find", userCollection, "not_found", time.Since(start))
			return nil, primitive.NilObjectID, entity.ErrUserNotFound
		}
		r.metrics.RecordDBOperation("find", userCollection, "error", time.Since(start))
		return nil, primitive.NilObjectID, err
	}

	r.metrics.RecordDBOperation("find", userCollection, "success", time.Since(start))
	return &doc.User, doc.ID, nil
}

// List는 directive에 따라 사용자 목록과 전체 개수를 반환합니다
func (r *UserRepository) List(ctx context.Context, directive pagination.Directive) ([]entity.Record, int64, error) {
	start := time.Now()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.metrics.RecordDBOperation("count", userCollection, "error", time.Since(start))
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(directive.Skip).
		SetLimit(directive.Limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.metrics.RecordDBOperation("find", userCollection, "error", time.Since(start))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		r.metrics.RecordDBOperation("find", userCollection, "error", time.Since(start))
		return nil, 0, err
	}

	records := make([]entity.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, entity.Record(doc))
	}

	r.metrics.RecordDBOperation("find", userCollection, "success", time.Since(start))
	logger.LogDBOperation(ctx, "list", userCollection, time.Since(start).Milliseconds(), nil,
		logger.Count(len(records)),
		logger.Total(total),
	)

	return records, total, nil
}

// Update는 사용자 문서의 일부 필드를 갱신합니다
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error {
	start := time.Now()

	update["updatedAt"] = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(update)})
	if err != nil {
		r.metrics.RecordDBOperation("update", userCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to update user",
			logger.UserID(id.Hex()),
			zap.Error(err),
		)
		return err
	}

	if result.MatchedCount == 0 {
		r.metrics.RecordDBOperation("update", userCollection, "not_found", time.Since(start))
		return entity.ErrUserNotFound
	}

	r.metrics.RecordDBOperation("update", userCollection, "success", time.Since(start))
	return nil
}

// Delete는 사용자를 삭제합니다
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.metrics.RecordDBOperation("delete", userCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to delete user",
			logger.UserID(id.Hex()),
			zap.Error(err),
		)
		return err
	}

	if result.DeletedCount == 0 {
		r.metrics.RecordDBOperation("delete", userCollection, "not_found", time.Since(start))
		return entity.ErrUserNotFound
	}

	r.metrics.RecordDBOperation("delete", userCollection, "success", time.Since(start))
	return nil
}

// Close는 MongoDB 연결을 종료합니다
func (r *UserRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// EnsureIndexes는 사용자 컬렉션의 인덱스를 생성합니다
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
