package entity

// Record는 저장소가 반환하는 스키마 없는 원본 문서입니다.
// 저장소 내부 식별자(_id)가 그대로 붙어 있으며, API 경계를 넘기 전에
// 반드시 serialization.Normalizer를 통과해야 합니다.
type Record = map[string]interface{}
