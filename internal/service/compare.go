package service

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"time"
)

// rowsEqual compares two result sets row by row in order. Row order is
// significant.
func rowsEqual(a, b [][]any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if !valuesEqual(a[i][j], b[i][j]) {
				return false
			}
		}
	}
	return true
}

// valuesEqual compares two driver values. Numbers are compared by value
// across int64, float64 and decimal (json.Number), so 1, 1.0 and a NUMERIC 1
// are equal; text is never equal to a number.
func valuesEqual(a, b any) bool {
	if ab, ok := a.([]byte); ok {
		a = string(ab)
	}
	if bb, ok := b.([]byte); ok {
		b = string(bb)
	}

	at, aIsTime := a.(time.Time)
	bt, bIsTime := b.(time.Time)
	if aIsTime || bIsTime {
		return aIsTime && bIsTime && at.Equal(bt)
	}

	ar, aIsNum := toRat(a)
	br, bIsNum := toRat(b)
	if aIsNum && bIsNum {
		return ar.Cmp(br) == 0
	}

	return reflect.DeepEqual(a, b)
}

func toRat(v any) (*big.Rat, bool) {
	switch v := v.(type) {
	case int64:
		return new(big.Rat).SetInt64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(v), true
	case json.Number:
		return new(big.Rat).SetString(v.String())
	}
	return nil, false
}
