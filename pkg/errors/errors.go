package errors

import (
	"errors"
	"sort"
	"strings"
)

// ErrExternalService 外部协作服务调用失败（AI 提取、天气等），提示用户稍后重试
var ErrExternalService = errors.New("外部服务暂时不可用，请稍后重试")

// FieldErrors 字段级校验错误集合：字段名 → 原因
// 校验失败时不产生任何持久化副作用，由调用方直接展示给用户
type FieldErrors map[string]string

// ValidationError 字段级校验错误
// 区别于业务 sentinel 错误：携带逐字段原因，Handler 层以 details 形式返回
type ValidationError struct {
	Fields FieldErrors
}

// Error 实现 error 接口，字段按名称排序保证输出稳定
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "参数校验失败"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "参数校验失败: " + strings.Join(parts, "; ")
}

// NewValidation 由字段错误集合构造 ValidationError
func NewValidation(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidation 判断 err 是否为 ValidationError 并取出
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
