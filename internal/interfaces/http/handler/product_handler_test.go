package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YouSangSon/ecommerce-service/internal/application/usecase"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/domain/repository"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/serialization"
)

// stubProductRepo는 핸들러 테스트용 고정 응답 저장소입니다
type stubProductRepo struct {
	records []entity.Record
	total   int64
}

func (s *stubProductRepo) Create(ctx context.Context, product *entity.Product) (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error) {
	if len(s.records) == 0 {
		return nil, entity.ErrProductNotFound
	}
	return s.records[0], nil
}

func (s *stubProductRepo) List(ctx context.Context, filter repository.ProductFilter, directive pagination.Directive) ([]entity.Record, int64, error) {
	return s.records, s.total, nil
}

func (s *stubProductRepo) Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error {
	return nil
}

func (s *stubProductRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func newTestRouter(repo repository.ProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := usecase.NewProductUsecase(
		repo, nil, nil, nil,
		serialization.NewNormalizer(),
		pagination.New(100),
		usecase.ProductTopics{},
		time.Minute,
	)
	h := NewProductHandler(uc)

	router := gin.New()
	router.GET("/api/v1/products", h.List)
	router.GET("/api/v1/products/:id", h.GetByID)
	return router
}

func TestProductHandler_List(t *testing.T) {
	oid := primitive.NewObjectID()
	router := newTestRouter(&stubProductRepo{
		records: []entity.Record{{"_id": oid, "name": "keyboard"}},
		total:   1,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=1&size=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []map[string]interface{} `json:"items"`
		Total int64                    `json:"total"`
		Page  int                      `json:"page"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Len(t, body.Items, 1)
	assert.Equal(t, oid.Hex(), body.Items[0]["id"])
	assert.NotContains(t, body.Items[0], "_id")
}

func TestProductHandler_List_InvalidPage(t *testing.T) {
	router := newTestRouter(&stubProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=0&size=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_PAGE", body.Error.Code)
}

func TestProductHandler_GetByID_InvalidIdentifier(t *testing.T) {
	router := newTestRouter(&stubProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-hex", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_IDENTIFIER", body.Error.Code)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	router := newTestRouter(&stubProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
