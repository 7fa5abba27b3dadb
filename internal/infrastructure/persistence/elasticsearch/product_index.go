package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/metrics"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
)

// ProductSearchRepository는 Elasticsearch 기반 상품 검색 저장소입니다
type ProductSearchRepository struct {
	client  *elasticsearch.Client
	index   string
	metrics *metrics.Metrics
}

// NewProductSearchRepository는 상품 검색 저장소를 생성합니다
func NewProductSearchRepository(client *elasticsearch.Client, index string) repository.SearchRepository {
	return &ProductSearchRepository{
		client:  client,
		index:   index,
		metrics: metrics.GetMetrics(),
	}
}

// EnsureIndex는 상품 인덱스가 없으면 생성합니다
func (r *ProductSearchRepository) EnsureIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.index})
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil // 인덱스가 이미 존재
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": {"type": "text"},
				"description": {"type": "text"},
				"category_id": {"type": "keyword"},
				"shop_id": {"type": "keyword"},
				"sale_price": {"type": "double"},
				"is_approved": {"type": "keyword"},
				"allow_to_sell": {"type": "boolean"},
				"createdAt": {"type": "date"}
			}
		}
	}`

	res, err = r.client.Indices.Create(
		r.index,
		r.client.Indices.Create.WithContext(ctx),
		r.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to create index: %s", res.String())
	}

	return nil
}

// IndexProduct는 상품 문서를 검색 인덱스에 저장합니다
func (r *ProductSearchRepository) IndexProduct(ctx context.Context, id string, doc entity.Record) error {
	start := time.Now()

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal product document: %w", err)
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(docJSON),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(id),
	)
	if err != nil {
		r.metrics.RecordSearchRequest(r.index, "error", time.Since(start))
		return fmt.Errorf("failed to index product: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		r.metrics.RecordSearchRequest(r.index, "error", time.Since(start))
		return fmt.Errorf("failed to index product: %s", res.String())
	}

	r.metrics.RecordSearchRequest(r.index, "success", time.Since(start))
	return nil
}

// DeleteProduct는 상품 문서를 검색 인덱스에서 제거합니다
func (r *ProductSearchRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.client.Delete(
		r.index,
		id,
		r.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete product from index: %w", err)
	}
	defer res.Body.Close()

	// 인덱스에 없는 문서 삭제는 무시
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete product from index: %s", res.String())
	}

	return nil
}

// SearchProducts는 질의어로 상품을 검색하고 결과와 전체 일치 수를 반환합니다
func (r *ProductSearchRepository) SearchProducts(ctx context.Context, query string, directive pagination.Directive) ([]entity.Record, int64, error) {
	start := time.Now()

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "description"},
			},
		},
		"from": directive.Skip,
		"size": directive.Limit,
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(bytes.NewReader(bodyJSON)),
		r.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		r.metrics.RecordSearchRequest(r.index, "error", time.Since(start))
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		r.metrics.RecordSearchRequest(r.index, "error", time.Since(start))
		return nil, 0, fmt.Errorf("failed to search products: %s", res.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string        `json:"_id"`
				Source entity.Record `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %w", err)
	}

	records := make([]entity.Record, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		record := hit.Source
		if record == nil {
			record = entity.Record{}
		}
		record["_id"] = hit.ID
		records = append(records, record)
	}

	r.metrics.RecordSearchRequest(r.index, "success", time.Since(start))
	return records, result.Hits.Total.Value, nil
}
