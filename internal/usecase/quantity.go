package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultQuantity подставляется, когда количество не удалось разобрать.
const DefaultQuantity = 1

// QuantityResult — разобранное количество. Defaulted=true, если использовано DefaultQuantity.
type QuantityResult struct {
	Value     int
	Defaulted bool
}

// ParseQuantity приводит количество из запроса агента к целому числу >= 1.
// Принимает целые числа, числа с плавающей точкой без дробной части и строки с целым числом.
// Все остальное, включая отсутствие значения и числа меньше 1, дает DefaultQuantity.
func ParseQuantity(raw any) QuantityResult {
	switch v := raw.(type) {
	case int:
		return fromInt64(int64(v))
	case int32:
		return fromInt64(int64(v))
	case int64:
		return fromInt64(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return fromInt64(n)
		}
		if f, err := v.Float64(); err == nil {
			return fromFloat(f)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return fromInt64(n)
		}
	}

	return defaulted()
}

func fromInt64(n int64) QuantityResult {
	if n < 1 || n > math.MaxInt32 {
		return defaulted()
	}
	return QuantityResult{Value: int(n)}
}

func fromFloat(f float64) QuantityResult {
	if math.IsNaN(f) || f < 1 || f > math.MaxInt32 || f != math.Trunc(f) {
		return defaulted()
	}
	return fromInt64(int64(f))
}

func defaulted() QuantityResult {
	return QuantityResult{Value: DefaultQuantity, Defaulted: true}
}
