package logger

import (
	"time"

	"go.uber.org/zap"
)

// 일관된 로그 필드를 위한 헬퍼 함수들

// RequestID는 요청 ID 필드를 반환합니다
func RequestID(id string) zap.Field {
	return zap.String("request_id", id)
}

// TraceID는 trace ID 필드를 반환합니다
func TraceID(id string) zap.Field {
	return zap.String("trace_id", id)
}

// UserID는 사용자 ID 필드를 반환합니다
func UserID(id string) zap.Field {
	return zap.String("user_id", id)
}

// ProductID는 상품 ID 필드를 반환합니다
func ProductID(id string) zap.Field {
	return zap.String("product_id", id)
}

// Email은 이메일 필드를 반환합니다
func Email(email string) zap.Field {
	return zap.String("email", email)
}

// Collection은 컬렉션명 필드를 반환합니다
func Collection(name string) zap.Field {
	return zap.String("collection", name)
}

// Operation은 작업명 필드를 반환합니다
func Operation(op string) zap.Field {
	return zap.String("operation", op)
}

// Duration은 작업 시간 필드를 반환합니다
func Duration(d time.Duration) zap.Field {
	return zap.Duration("duration", d)
}

// DurationMs는 작업 시간을 밀리초로 반환합니다
func DurationMs(d time.Duration) zap.Field {
	return zap.Float64("duration_ms", float64(d.Milliseconds()))
}

// HTTPMethod는 HTTP 메서드 필드를 반환합니다
func HTTPMethod(method string) zap.Field {
	return zap.String("http_method", method)
}

// HTTPPath는 HTTP 경로 필드를 반환합니다
func HTTPPath(path string) zap.Field {
	return zap.String("http_path", path)
}

// HTTPStatus는 HTTP 상태 코드 필드를 반환합니다
func HTTPStatus(status int) zap.Field {
	return zap.Int("http_status", status)
}

// RemoteAddr는 원격 주소 필드를 반환합니다
func RemoteAddr(addr string) zap.Field {
	return zap.String("remote_addr", addr)
}

// ErrorCode는 에러 코드 필드를 반환합니다
func ErrorCode(code string) zap.Field {
	return zap.String("error_code", code)
}

// Component는 컴포넌트명 필드를 반환합니다
func Component(name string) zap.Field {
	return zap.String("component", name)
}

// Page는 페이지 번호 필드를 반환합니다
func Page(page int) zap.Field {
	return zap.Int("page", page)
}

// PageSize는 페이지 크기 필드를 반환합니다
func PageSize(size int) zap.Field {
	return zap.Int("page_size", size)
}

// Total은 전체 개수 필드를 반환합니다
func Total(n int64) zap.Field {
	return zap.Int64("total", n)
}

// Count는 카운트 필드를 반환합니다
func Count(n int) zap.Field {
	return zap.Int("count", n)
}

// CacheKey는 캐시 키 필드를 반환합니다
func CacheKey(key string) zap.Field {
	return zap.String("cache_key", key)
}

// CacheHit는 캐시 히트 여부 필드를 반환합니다
func CacheHit(hit bool) zap.Field {
	return zap.Bool("cache_hit", hit)
}

// Topic은 이벤트 토픽 필드를 반환합니다
func Topic(topic string) zap.Field {
	return zap.String("topic", topic)
}

// Query는 검색 질의 필드를 반환합니다
func Query(q string) zap.Field {
	return zap.String("query", q)
}

// Index는 검색 인덱스명 필드를 반환합니다
func Index(name string) zap.Field {
	return zap.String("index", name)
}

// Retry는 재시도 횟수 필드를 반환합니다
func Retry(attempt int) zap.Field {
	return zap.Int("retry_attempt", attempt)
}

// CircuitState는 circuit breaker 상태 필드를 반환합니다
func CircuitState(state string) zap.Field {
	return zap.String("circuit_state", state)
}

// Any는 임의의 값 필드를 반환합니다
func Any(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}
