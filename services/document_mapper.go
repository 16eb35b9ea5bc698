package services

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/anjiri1684/college_review/models"
)

// ReviewFromDocument maps a remote review body onto the cache shape. Missing or
// mistyped fields fall back to "" for text, 0 for the rating and nowMillis for
// the timestamp.
func ReviewFromDocument(id string, data map[string]interface{}, nowMillis int64) models.Review {
	rating, ok := numberField(data, "rating")
	if !ok || rating < 0 || rating > 5 {
		rating = 0
	}

	timestamp := nowMillis
	if ts, ok := numberField(data, "timestamp"); ok {
		timestamp = int64(ts)
	}

	return models.Review{
		ID:          id,
		UserID:      stringField(data, "userId"),
		UserEmail:   stringField(data, "userEmail"),
		UserName:    stringField(data, "userName"),
		CollegeName: stringField(data, "collegeName"),
		Category:    stringField(data, "category"),
		Description: stringField(data, "description"),
		Rating:      rating,
		Timestamp:   timestamp,
	}
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func numberField(data map[string]interface{}, key string) (float64, bool) {
	var f float64
	switch v := data[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
