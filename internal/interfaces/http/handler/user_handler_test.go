package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YouSangSon/ecommerce-service/internal/application/usecase"
	"github.com/YouSangSon/ecommerce-service/internal/domain/entity"
	"github.com/YouSangSon/ecommerce-service/internal/interfaces/http/middleware"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/pagination"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/serialization"
	"github.com/YouSangSon/ecommerce-service/internal/pkg/token"
)

// stubUserRepo는 핸들러 테스트용 고정 응답 저장소입니다
type stubUserRepo struct{}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (entity.Record, error) {
	return entity.Record{"_id": id, "userName": "someone", "member_type": "WHITE", "is_active": true}, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, primitive.ObjectID, error) {
	return nil, primitive.NilObjectID, entity.ErrUserNotFound
}

func (s *stubUserRepo) List(ctx context.Context, directive pagination.Directive) ([]entity.Record, int64, error) {
	return []entity.Record{}, 0, nil
}

func (s *stubUserRepo) Update(ctx context.Context, id primitive.ObjectID, update entity.Record) error {
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *stubUserRepo) Close(ctx context.Context) error {
	return nil
}

func newUserTestRouter(tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := usecase.NewUserUsecase(&stubUserRepo{}, serialization.NewNormalizer(), pagination.New(100))
	h := NewUserHandler(uc)

	router := gin.New()
	authed := router.Group("/api/v1", middleware.Auth(tokens))
	authed.GET("/users/:id", h.GetByID)
	authed.PUT("/users/:id", h.Update)
	return router
}

func doAuthedRequest(t *testing.T, router *gin.Engine, tokens *token.Manager, method, path, userID, role, body string) *httptest.ResponseRecorder {
	t.Helper()

	accessToken, err := tokens.Generate(userID, role)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Update_CannotModifyAnotherUser(t *testing.T) {
	tokens := token.NewManager("test-secret", "ecommerce-service", time.Hour)
	router := newUserTestRouter(tokens)

	attacker := primitive.NewObjectID().Hex()
	victim := primitive.NewObjectID().Hex()

	w := doAuthedRequest(t, router, tokens, http.MethodPut, "/api/v1/users/"+victim,
		attacker, string(entity.RoleUser),
		`{"is_active":false,"member_type":"DIAMOND"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestUserHandler_Update_UserCannotChangeMemberTypeOrActive(t *testing.T) {
	tokens := token.NewManager("test-secret", "ecommerce-service", time.Hour)
	router := newUserTestRouter(tokens)

	selfID := primitive.NewObjectID().Hex()

	for _, payload := range []string{
		`{"member_type":"DIAMOND"}`,
		`{"is_active":false}`,
	} {
		w := doAuthedRequest(t, router, tokens, http.MethodPut, "/api/v1/users/"+selfID,
			selfID, string(entity.RoleUser), payload)
		assert.Equal(t, http.StatusForbidden, w.Code, "payload %s must be admin-only", payload)
	}
}

func TestUserHandler_Update_SelfProfileFields(t *testing.T) {
	tokens := token.NewManager("test-secret", "ecommerce-service", time.Hour)
	router := newUserTestRouter(tokens)

	selfID := primitive.NewObjectID().Hex()

	w := doAuthedRequest(t, router, tokens, http.MethodPut, "/api/v1/users/"+selfID,
		selfID, string(entity.RoleUser), `{"userName":"renamed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_Update_AdminCanModifyAnyUser(t *testing.T) {
	tokens := token.NewManager("test-secret", "ecommerce-service", time.Hour)
	router := newUserTestRouter(tokens)

	adminID := primitive.NewObjectID().Hex()
	target := primitive.NewObjectID().Hex()

	w := doAuthedRequest(t, router, tokens, http.MethodPut, "/api/v1/users/"+target,
		adminID, string(entity.RoleAdmin), `{"is_active":false,"member_type":"GOLD"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_GetByID_SelfOrAdminOnly(t *testing.T) {
	tokens := token.NewManager("test-secret", "ecommerce-service", time.Hour)
	router := newUserTestRouter(tokens)

	selfID := primitive.NewObjectID().Hex()
	other := primitive.NewObjectID().Hex()

	w := doAuthedRequest(t, router, tokens, http.MethodGet, "/api/v1/users/"+other,
		selfID, string(entity.RoleUser), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doAuthedRequest(t, router, tokens, http.MethodGet, "/api/v1/users/"+selfID,
		selfID, string(entity.RoleUser), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAuthedRequest(t, router, tokens, http.MethodGet, "/api/v1/users/"+other,
		primitive.NewObjectID().Hex(), string(entity.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, w.Code)
}
