package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YouSangSon/ecommerce-service/internal/application/dto"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/serialization"
)

// MockProductRepository는 테스트용 상품 저장소입니다
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Record), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter, directive pagination.Directive) ([]entity.Record, int64, error) {
	args := m.Called(ctx, filter, directive)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Record), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCacheRepository는 테스트용 캐시 저장소입니다
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSearchRepository는 테스트용 검색 저장소입니다
type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) IndexProduct(ctx context.Context, id string, doc entity.Record) error {
	args := m.Called(ctx, id, doc)
	return args.Error(0)
}

func (m *MockSearchRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSearchRepository) SearchProducts(ctx context.Context, query string, directive pagination.Directive) ([]entity.Record, int64, error) {
	args := m.Called(ctx, query, directive)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Record), args.Get(1).(int64), args.Error(2)
}

// MockEventPublisher는 테스트용 이벤트 발행자입니다
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, topic, key string, event interface{}) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newProductUsecase(repo *MockProductRepository, cache *MockCacheRepository, search *MockSearchRepository, publisher *MockEventPublisher) *ProductUsecase {
	var cacheRepo repository.CacheRepository
	if cache != nil {
		cacheRepo = cache
	}
	var searchRepo repository.SearchRepository
	if search != nil {
		searchRepo = search
	}
	var pub repository.EventPublisher
	if publisher != nil {
		pub = publisher
	}

	return NewProductUsecase(
		repo,
		cacheRepo,
		searchRepo,
		pub,
		serialization.NewNormalizer(),
		pagination.New(100),
		ProductTopics{Created: "product.created", Updated: "product.updated", Deleted: "product.deleted"},
		time.Minute,
	)
}

func TestProductUsecase_GetByID_CacheMissThenPopulate(t *testing.T) {
	repo := new(MockProductRepository)
	cache := new(MockCacheRepository)
	uc := newProductUsecase(repo, cache, nil, nil)

	oid := primitive.NewObjectID()
	cacheKey := "product:" + oid.Hex()

	cache.On("Get", mock.Anything, cacheKey, mock.Anything).Return(repository.ErrCacheMiss)
	repo.On("FindByID", mock.Anything, oid).Return(entity.Record{
		"_id":  oid,
		"name": "keyboard",
	}, nil)
	cache.On("Set", mock.Anything, cacheKey, mock.Anything, time.Minute).Return(nil)

	record, err := uc.GetByID(context.Background(), oid.Hex())

	assert.NoError(t, err)
	assert.Equal(t, oid.Hex(), record["id"])
	assert.Equal(t, "keyboard", record["name"])
	assert.NotContains(t, record, "_id")
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestProductUsecase_GetByID_CacheHitSkipsRepository(t *testing.T) {
	repo := new(MockProductRepository)
	cache := new(MockCacheRepository)
	uc := newProductUsecase(repo, cache, nil, nil)

	oid := primitive.NewObjectID()
	cacheKey := "product:" + oid.Hex()

	cache.On("Get", mock.Anything, cacheKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(*entity.Record)
		*dest = entity.Record{"id": oid.Hex(), "name": "cached"}
	}).Return(nil)

	record, err := uc.GetByID(context.Background(), oid.Hex())

	assert.NoError(t, err)
	assert.Equal(t, "cached", record["name"])
	repo.AssertNotCalled(t, "FindByID")
}

func TestProductUsecase_GetByID_InvalidIdentifier(t *testing.T) {
	repo := new(MockProductRepository)
	uc := newProductUsecase(repo, nil, nil, nil)

	_, err := uc.GetByID(context.Background(), "ABC")

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidIdentifier, apperrors.GetCode(err))
}

func TestProductUsecase_Create_PublishesAndIndexes(t *testing.T) {
	repo := new(MockProductRepository)
	search := new(MockSearchRepository)
	publisher := new(MockEventPublisher)
	uc := newProductUsecase(repo, nil, search, publisher)

	oid := primitive.NewObjectID()
	repo.On("Create", mock.Anything, mock.Anything).Return(oid.Hex(), nil)
	repo.On("FindByID", mock.Anything, oid).Return(entity.Record{
		"_id":  oid,
		"name": "monitor",
	}, nil)
	search.On("IndexProduct", mock.Anything, oid.Hex(), mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, "product.created", oid.Hex(), mock.MatchedBy(func(event interface{}) bool {
		e, ok := event.(repository.ProductEvent)
		return ok && e.ProductID == oid.Hex() && e.EventID != "" && e.EventType == "product.created"
	})).Return(nil)

	record, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:            "monitor",
		BeforeSalePrice: 100,
		SalePrice:       80,
		Quantity:        3,
	})

	assert.NoError(t, err)
	assert.Equal(t, oid.Hex(), record["id"])
	search.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductUsecase_Create_InvalidInput(t *testing.T) {
	repo := new(MockProductRepository)
	uc := newProductUsecase(repo, nil, nil, nil)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  "})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
	repo.AssertNotCalled(t, "Create")
}

func TestProductUsecase_List(t *testing.T) {
	repo := new(MockProductRepository)
	uc := newProductUsecase(repo, nil, nil, nil)

	oid := primitive.NewObjectID()
	filter := repository.ProductFilter{CategoryID: "cat-1"}
	repo.On("List", mock.Anything, filter, pagination.Directive{Skip: 0, Limit: 20}).Return(
		[]entity.Record{{"_id": oid, "name": "a"}},
		int64(45),
		nil,
	)

	result, err := uc.List(context.Background(), dto.ProductListQuery{Page: 1, Size: 20, CategoryID: "cat-1"})

	assert.NoError(t, err)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, int64(3), result.TotalPages)
	assert.Equal(t, oid.Hex(), result.Items[0]["id"])
}

func TestProductUsecase_Search(t *testing.T) {
	repo := new(MockProductRepository)
	search := new(MockSearchRepository)
	uc := newProductUsecase(repo, nil, search, nil)

	oid := primitive.NewObjectID()
	search.On("SearchProducts", mock.Anything, "keyboard", pagination.Directive{Skip: 0, Limit: 10}).Return(
		[]entity.Record{{"_id": oid.Hex(), "name": "keyboard"}},
		int64(1),
		nil,
	)

	result, err := uc.Search(context.Background(), dto.SearchQuery{Query: "keyboard", Page: 1, Size: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, oid.Hex(), result.Items[0]["id"])
}

func TestProductUsecase_Search_Disabled(t *testing.T) {
	repo := new(MockProductRepository)
	uc := newProductUsecase(repo, nil, nil, nil)

	_, err := uc.Search(context.Background(), dto.SearchQuery{Query: "keyboard", Page: 1, Size: 10})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeServiceUnavailable, apperrors.GetCode(err))
}

func TestProductUsecase_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	cache := new(MockCacheRepository)
	search := new(MockSearchRepository)
	publisher := new(MockEventPublisher)
	uc := newProductUsecase(repo, cache, search, publisher)

	oid := primitive.NewObjectID()
	repo.On("SoftDelete", mock.Anything, oid).Return(nil)
	cache.On("Delete", mock.Anything, "product:"+oid.Hex()).Return(nil)
	search.On("DeleteProduct", mock.Anything, oid.Hex()).Return(nil)
	publisher.On("Publish", mock.Anything, "product.deleted", oid.Hex(), mock.Anything).Return(nil)

	err := uc.Delete(context.Background(), oid.Hex())

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	search.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductUsecase_Delete_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	uc := newProductUsecase(repo, nil, nil, nil)

	oid := primitive.NewObjectID()
	repo.On("SoftDelete", mock.Anything, oid).Return(entity.ErrProductNotFound)

	err := uc.Delete(context.Background(), oid.Hex())

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}
