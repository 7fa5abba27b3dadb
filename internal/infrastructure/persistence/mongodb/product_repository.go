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

const productCollection = "products"

// ProductRepository는 MongoDB 기반 상품 저장소입니다
type ProductRepository struct {
	collection *mongo.Collection
	metrics    *metrics.Metrics
}

// NewProductRepository는 새로운 MongoDB 상품 저장소를 생성합니다
func NewProductRepository(database *mongo.Database) repository.ProductRepository {
	return &ProductRepository{
		collection: database.Collection(productCollection),
		metrics:    metrics.GetMetrics(),
	}
}

// Create는 상품을 저장하고 생성된 ID를 반환합니다
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	start := time.Now()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		r.metrics.RecordDBOperation("insert", productCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to insert product",
			zap.String("name", product.Name),
			zap.Error(err),
		)
		return "", err
	}

	r.metrics.RecordDBOperation("insert", productCollection, "success", time.Since(start))

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", mongo.ErrNilDocument
	}

	return oid.Hex(), nil
}

// FindByID는 ID로 상품 원본 문서를 조회합니다 (soft delete 제외)
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error) {
	start := time.Now()

	filter := bson.M{
		"_id":        id,
		"deleted_at": nil,
	}

	var doc bson.M
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			r.metrics.RecordDBOperation("find", productCollection, "not_found", time.Since(start))
			return nil, entity.ErrProductNotFound
		}
		r.metrics.RecordDBOperation("find", productCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to find product",
			logger.ProductID(id.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	r.metrics.RecordDBOperation("find", productCollection, "success", time.Since(start))
	return entity.Record(doc), nil
}

// List는 filter와 directive에 따라 상품 목록과 전체 개수를 반환합니다
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter, directive pagination.Directive) ([]entity.Record, int64, error) {
	start := time.Now()

	query := bson.M{"deleted_at": nil}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.ShopID != "" {
		query["shop_id"] = filter.ShopID
	}
	if filter.OnlySellable {
		query["is_approved"] = string(entity.ApprovalApproved)
		query["allow_to_sell"] = true
		query["quantity"] = bson.M{"$gt": 0}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.metrics.RecordDBOperation("count", productCollection, "error", time.Since(start))
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(directive.Skip).
		SetLimit(directive.Limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.metrics.RecordDBOperation("find", productCollection, "error", time.Since(start))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		r.metrics.RecordDBOperation("find", productCollection, "error", time.Since(start))
		return nil, 0, err
	}

	records := make([]entity.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, entity.Record(doc))
	}

	r.metrics.RecordDBOperation("find", productCollection, "success", time.Since(start))
	logger.LogDBOperation(ctx, "list", productCollection, time.Since(start).Milliseconds(), nil,
		logger.Count(len(records)),
		logger.Total(total),
	)

	return records, total, nil
}

// Update는 상품 문서의 일부 필드를 갱신합니다
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error {
	start := time.Now()

	update["updatedAt"] = time.Now().UTC()

	filter := bson.M{
		"_id":        id,
		"deleted_at": nil,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M(update)})
	if err != nil {
		r.metrics.RecordDBOperation("update", productCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to update product",
			logger.ProductID(id.Hex()),
			zap.Error(err),
		)
		return err
	}

	if result.MatchedCount == 0 {
		r.metrics.RecordDBOperation("update", productCollection, "not_found", time.Since(start))
		return entity.ErrProductNotFound
	}

	r.metrics.RecordDBOperation("update", productCollection, "success", time.Since(start))
	return nil
}

// SoftDelete는 상품에 삭제 시각을 기록합니다
func (r *ProductRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()

	filter := bson.M{
		"_id":        id,
		"deleted_at": nil,
	}

	update := bson.M{
		"$set": bson.M{
			"deleted_at": time.Now().UTC(),
			"updatedAt":  time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.metrics.RecordDBOperation("delete", productCollection, "error", time.Since(start))
		logger.Error(ctx, "failed to soft delete product",
			logger.ProductID(id.Hex()),
			zap.Error(err),
		)
		return err
	}

	if result.MatchedCount == 0 {
		r.metrics.RecordDBOperation("delete", productCollection, "not_found", time.Since(start))
		return entity.ErrProductNotFound
	}

	r.metrics.RecordDBOperation("delete", productCollection, "success", time.Since(start))
	return nil
}
