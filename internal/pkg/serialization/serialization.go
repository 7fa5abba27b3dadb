package serialization

import (
	"time"

	apperrors "github.com/YouSangSon/ecommerce-service/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ObjectIDHexLength는 canonical hex 문자열의 길이입니다
	ObjectIDHexLength = 24

	// DefaultMaxDepth는 기본 최대 순회 깊이입니다
	DefaultMaxDepth = 32

	// internalIDKey는 저장소 내부의 primary key 필드명입니다
	internalIDKey = "_id"

	// publicIDKey는 API 응답에 노출되는 식별자 필드명입니다
	publicIDKey = "id"
)

// Normalizer는 MongoDB 문서를 API 경계를 넘을 수 있는 형태로 변환합니다.
// ObjectId는 canonical hex 문자열로, 내부 primary key(_id)는 공개 필드명(id)으로
// 변환되며 원본 구조는 절대 변경되지 않습니다.
type Normalizer struct {
	maxDepth int
}

// NewNormalizer는 기본 깊이 제한을 가진 Normalizer를 생성합니다
func NewNormalizer() *Normalizer {
	return NewNormalizerWithDepth(DefaultMaxDepth)
}

// NewNormalizerWithDepth는 지정된 깊이 제한을 가진 Normalizer를 생성합니다
func NewNormalizerWithDepth(maxDepth int) *Normalizer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Normalizer{maxDepth: maxDepth}
}

// Normalize는 값을 재귀적으로 순회하며 저장소 식별자를 canonical 문자열 형태로
// 변환합니다. 입력은 변경하지 않고 항상 새로운 구조를 반환합니다.
// 깊이 제한을 초과하면(순환 참조 포함) SERIALIZATION_ERROR를 반환합니다.
func (n *Normalizer) Normalize(value interface{}) (interface{}, error) {
	return n.normalize(value, 0)
}

func (n *Normalizer) normalize(value interface{}, depth int) (interface{}, error) {
	if depth > n.maxDepth {
		return nil, apperrors.Newf(apperrors.ErrCodeSerialization,
			"record structure exceeds maximum depth %d", n.maxDepth)
	}

	switch v := value.(type) {
	case nil:
		return nil, nil

	case primitive.ObjectID:
		return v.Hex(), nil

	case *primitive.ObjectID:
		if v == nil {
			return nil, nil
		}
		return v.Hex(), nil

	case primitive.DateTime:
		return v.Time().UTC(), nil

	case bson.M:
		return n.normalizeMap(v, depth)

	case map[string]interface{}:
		return n.normalizeMap(v, depth)

	case bson.D:
		// 순서 보존 문서도 mapping으로 취급합니다
		m := make(map[string]interface{}, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return n.normalizeMap(m, depth)

	case bson.A:
		return n.normalizeSlice(v, depth)

	case []interface{}:
		return n.normalizeSlice(v, depth)

	case []bson.M:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			converted, err := n.normalizeMap(item, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil

	case []map[string]interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			converted, err := n.normalizeMap(item, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil

	case time.Time:
		return v, nil

	default:
		// 스칼라 값은 그대로 통과합니다
		return value, nil
	}
}

func (n *Normalizer) normalizeMap(m map[string]interface{}, depth int) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(m))
	for key, val := range m {
		converted, err := n.normalize(val, depth+1)
		if err != nil {
			return nil, err
		}

		// 내부 primary key는 공개 필드명으로만 노출합니다
		if key == internalIDKey {
			out[publicIDKey] = converted
			continue
		}
		out[key] = converted
	}
	return out, nil
}

func (n *Normalizer) normalizeSlice(s []interface{}, depth int) ([]interface{}, error) {
	out := make([]interface{}, 0, len(s))
	for _, item := range s {
		converted, err := n.normalize(item, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// ParseObjectID는 클라이언트가 전달한 식별자 문자열을 검증하고 ObjectID로
// 변환합니다. canonical 형태(소문자 hex 24자)가 아니면 INVALID_IDENTIFIER를
// 반환하며, 저장소 레벨 에러가 클라이언트에 노출되는 일은 없습니다.
func ParseObjectID(s string) (primitive.ObjectID, error) {
	if len(s) != ObjectIDHexLength {
		return primitive.NilObjectID, apperrors.Newf(apperrors.ErrCodeInvalidIdentifier,
			"identifier must be %d characters, got %d", ObjectIDHexLength, len(s))
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return primitive.NilObjectID, apperrors.Newf(apperrors.ErrCodeInvalidIdentifier,
				"identifier must be lowercase hexadecimal")
		}
	}

	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(err, apperrors.ErrCodeInvalidIdentifier,
			"invalid identifier")
	}

	return oid, nil
}
