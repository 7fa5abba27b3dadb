package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/YouSangSon/ecommerce-service/internal/application/dto"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/circuitbreaker"
	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/logger"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/retry"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/serialization"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/tracing"
)

const productCachePrefix = "product:"

// ProductTopics는 상품 이벤트 토픽 모음입니다
type ProductTopics struct {
	Created string
	Updated string
	Deleted string
}

// ProductUsecase는 상품 관련 유스케이스입니다
type ProductUsecase struct {
	productRepo repository.ProductRepository
	cache       repository.CacheRepository
	search      repository.SearchRepository
	publisher   repository.EventPublisher
	normalizer  *serialization.Normalizer
	paginator   *pagination.Paginator
	searchCB    *circuitbreaker.CircuitBreaker
	topics      ProductTopics
	cacheTTL    time.Duration
	retryCfg    retry.Config
}

// NewProductUsecase는 새로운 상품 유스케이스를 생성합니다
func NewProductUsecase(
	productRepo repository.ProductRepository,
	cache repository.CacheRepository,
	search repository.SearchRepository,
	publisher repository.EventPublisher,
	normalizer *serialization.Normalizer,
	paginator *pagination.Paginator,
	topics ProductTopics,
	cacheTTL time.Duration,
) *ProductUsecase {
	searchCB := circuitbreaker.NewCircuitBreaker("product-search", circuitbreaker.Config{
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				logger.Component(name),
				logger.CircuitState(to.String()),
			)
		},
	})

	return &ProductUsecase{
		productRepo: productRepo,
		cache:       cache,
		search:      search,
		publisher:   publisher,
		normalizer:  normalizer,
		paginator:   paginator,
		searchCB:    searchCB,
		topics:      topics,
		cacheTTL:    cacheTTL,
		retryCfg:    retry.DefaultConfig(),
	}
}

// Create는 상품을 등록하고 직렬화된 문서를 반환합니다
func (u *ProductUsecase) Create(ctx context.Context, req dto.CreateProductRequest) (entity.Record, error) {
	ctx, span := tracing.StartSpan(ctx, "ProductUsecase.Create")
	defer span.End()

	product, err := entity.NewProduct(req.Name, req.Description, req.BeforeSalePrice, req.Quantity)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, err.Error())
	}
	product.SalePrice = req.SalePrice
	product.Images = req.Images
	product.ShopID = req.ShopID
	product.CategoryID = req.CategoryID

	id, err := retry.DoWithValue(ctx, u.retryCfg, func(ctx context.Context) (string, error) {
		return u.productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to create product")
	}

	record, err := u.fetchAndNormalize(ctx, id)
	if err != nil {
		return nil, err
	}

	u.indexProduct(ctx, id, record)
	u.publishEvent(ctx, u.topics.Created, id, record)

	logger.Info(ctx, "product created",
		logger.ProductID(id),
		zap.String("name", product.Name),
	)

	return record, nil
}

// GetByID는 상품을 조회합니다 (캐시 read-through)
func (u *ProductUsecase) GetByID(ctx context.Context, id string) (entity.Record, error) {
	ctx, span := tracing.StartSpan(ctx, "ProductUsecase.GetByID")
	defer span.End()

	if _, err := serialization.ParseObjectID(id); err != nil {
		return nil, err
	}

	cacheKey := productCachePrefix + id

	if u.cache != nil {
		var cached entity.Record
		err := u.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			// 캐시 장애는 DB 조회로 우회
			logger.Warn(ctx, "cache lookup failed",
				logger.CacheKey(cacheKey),
				zap.Error(err),
			)
		}
	}

	record, err := u.fetchAndNormalize(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, cacheKey, record, u.cacheTTL); err != nil {
			logger.Warn(ctx, "failed to populate cache",
				logger.CacheKey(cacheKey),
				zap.Error(err),
			)
		}
	}

	return record, nil
}

// List는 페이지 단위로 상품 목록을 반환합니다
func (u *ProductUsecase) List(ctx context.Context, query dto.ProductListQuery) (*pagination.Result[entity.Record], error) {
	ctx, span := tracing.StartSpan(ctx, "ProductUsecase.List")
	defer span.End()

	req := pagination.Request{Page: query.Page, Size: query.Size}
	directive, err := u.paginator.Directive(req)
	if err != nil {
		return nil, err
	}

	filter := repository.ProductFilter{
		CategoryID:   query.CategoryID,
		ShopID:       query.ShopID,
		OnlySellable: query.Sellable,
	}

	docs, total, err := u.productRepo.List(ctx, filter, directive)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to list products")
	}

	records, err := u.normalizeAll(docs)
	if err != nil {
		return nil, err
	}

	result := pagination.Wrap(records, total, req)
	return &result, nil
}

// Search는 검색 엔진에서 상품을 질의합니다
func (u *ProductUsecase) Search(ctx context.Context, query dto.SearchQuery) (*pagination.Result[entity.Record], error) {
	ctx, span := tracing.StartSpan(ctx, "ProductUsecase.Search")
	defer span.End()

	if u.search == nil {
		return nil, apperrors.New(apperrors.ErrCodeServiceUnavailable, "search is not enabled")
	}

	req := pagination.Request{Page: query.Page, Size: query.Size}
	directive, err := u.paginator.Directive(req)
	if err != nil {
		return nil, err
	}

	type searchResult struct {
		docs  []entity.Record
		total int64
	}

	// 검색 엔진 장애가 전체 API로 번지지 않도록 circuit breaker로 감쌈
	value, err := u.searchCB.Execute(ctx, func() (interface{}, error) {
		docs, total, err := u.search.SearchProducts(ctx, query.Query, directive)
		if err != nil {
			return nil, err
		}
		return searchResult{docs: docs, total: total}, nil
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeCircuitOpen, "search temporarily unavailable")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSearchOperation, "search failed")
	}

	res := value.(searchResult)

	records, err := u.normalizeAll(res.docs)
	if err != nil {
		return nil, err
	}

	result := pagination.Wrap(records, res.total, req)
	return &result, nil
}

// Update는 상품 정보를 수정하고 수정된 문서를 반환합니다
func (u *ProductUsecase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (entity.Record, error) {
	ctx, span := tracing.StartSpan(ctx, "ProductUsecase.Update")
	defer span.End()

	oid, err := serialization.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := entity.Record{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.BeforeSalePrice != nil {
		update["before_sale_price"] = *req.BeforeSalePrice
	}
	if req.SalePrice != nil {
		if *req.SalePrice <= 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "sale_price must be positive")
		}
		update["sale_price"] = *req.SalePrice
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "quantity must not be negative")
		}
		update["quantity"] = *req.Quantity
	}
	if req.Images != nil {
		update["images"] = *req.Images
	}
	if req.CategoryID != nil {
		update["category_id"] = *req.CategoryID
	}
	if req.IsApproved != nil {
		update["is_approved"] = *req.IsApproved
	}
	if req.AllowToSell != nil {
		update["allow_to_sell"] = *req.AllowToSell
	}

	if len(update) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "no fields to update")
	}

	if err := u.productRepo.Update(ctx, oid, update); err != nil {
		if errors.Is(err, entity.ErrProductNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "product not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to update product")
	}

	u.invalidateCache(ctx, id)

	record, err := u.fetchAndNormalize(ctx, id)
	if err != nil {
		return nil, err
	}

	u.indexProduct(ctx, id, record)
	u.publishEvent(ctx, u.topics.Updated, id, record)

	logger.Info(ctx, "product updated",
		logger.ProductID(id),
		logger.Count(len(update)),
	)

	return record, nil
}

// Delete는 상품을 soft delete 처리합니다
func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "ProductUsecase.Delete")
	defer span.End()

	oid, err := serialization.ParseObjectID(id)
	if err != nil {
		return err
	}

	if err := u.productRepo.SoftDelete(ctx, oid); err != nil {
		if errors.Is(err, entity.ErrProductNotFound) {
			return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "product not found")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to delete product")
	}

	u.invalidateCache(ctx, id)

	if u.search != nil {
		if err := u.search.DeleteProduct(ctx, id); err != nil {
			logger.Warn(ctx, "failed to remove product from search index",
				logger.ProductID(id),
				zap.Error(err),
			)
		}
	}

	u.publishEvent(ctx, u.topics.Deleted, id, nil)

	logger.Info(ctx, "product deleted",
		logger.ProductID(id),
	)

	return nil
}

// fetchAndNormalize는 상품을 조회하여 직렬화합니다
func (u *ProductUsecase) fetchAndNormalize(ctx context.Context, id string) (entity.Record, error) {
	oid, err := serialization.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := retry.DoWithValue(ctx, u.retryCfg, func(ctx context.Context) (entity.Record, error) {
		return u.productRepo.FindByID(ctx, oid)
	})
	if err != nil {
		if errors.Is(err, entity.ErrProductNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "product not found")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseQuery, "failed to find product")
	}

	normalized, err := u.normalizer.Normalize(doc)
	if err != nil {
		return nil, err
	}

	record, ok := normalized.(map[string]interface{})
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeSerialization, "unexpected document shape")
	}

	return record, nil
}

// normalizeAll은 문서 목록 전체를 직렬화합니다
func (u *ProductUsecase) normalizeAll(docs []entity.Record) ([]entity.Record, error) {
	records := make([]entity.Record, 0, len(docs))
	for _, doc := range docs {
		normalized, err := u.normalizer.Normalize(doc)
		if err != nil {
			return nil, err
		}
		record, ok := normalized.(map[string]interface{})
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeSerialization, "unexpected document shape")
		}
		records = append(records, record)
	}
	return records, nil
}

// invalidateCache는 상품 캐시를 무효화합니다
func (u *ProductUsecase) invalidateCache(ctx context.Context, id string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, productCachePrefix+id); err != nil {
		logger.Warn(ctx, "failed to invalidate product cache",
			logger.ProductID(id),
			zap.Error(err),
		)
	}
}

// indexProduct는 상품을 검색 인덱스에 반영합니다
func (u *ProductUsecase) indexProduct(ctx context.Context, id string, record entity.Record) {
	if u.search == nil {
		return
	}
	if err := u.search.IndexProduct(ctx, id, record); err != nil {
		logger.Warn(ctx, "failed to index product",
			logger.ProductID(id),
			zap.Error(err),
		)
	}
}

// publishEvent는 상품 이벤트를 발행합니다 (실패해도 본 작업은 유지)
func (u *ProductUsecase) publishEvent(ctx context.Context, topic, id string, record entity.Record) {
	if u.publisher == nil || topic == "" {
		return
	}

	var data map[string]interface{}
	if record != nil {
		data = map[string]interface{}(record)
	}
	event := repository.NewProductEvent(topic, id, data)

	if err := u.publisher.Publish(ctx, topic, id, event); err != nil {
		logger.Warn(ctx, fmt.Sprintf("failed to publish event to %s", topic),
			logger.ProductID(id),
			zap.Error(err),
		)
	}
}
