package weaviate

import (
	"encoding/json"
	"fmt"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/forkful/foodsearch/internal/domain"
)

// itemsFromResponse unpacks a GraphQL Get response into ranked food items,
// preserving the backend's order. An empty object list is a valid zero-match
// result and comes back as an empty, non-nil slice.
func itemsFromResponse(resp *models.GraphQLResponse, class string) (domain.SearchResult, error) {
	get, ok := resp.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed response: missing Get block")
	}

	raw, ok := get[class].([]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed response: missing class %q", class)
	}

	items := make(domain.SearchResult, 0, len(raw))
	for i, entry := range raw {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("malformed response: object %d has unexpected shape", i)
		}
		items = append(items, itemFromObject(obj))
	}
	return items, nil
}

func itemFromObject(obj map[string]interface{}) domain.FoodItem {
	item := domain.FoodItem{
		Name:        asString(obj["name"]),
		Description: asString(obj["description"]),
		Price:       asFloat(obj["price"]),
		Calories:    int(asFloat(obj["calories"])),
		Image:       asString(obj["image"]),
	}

	if add, ok := obj["_additional"].(map[string]interface{}); ok {
		item.Distance = asFloat(add["distance"])
		item.Certainty = asFloat(add["certainty"])
	}
	return item
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case int:
		return float64(n)
	}
	return 0
}
