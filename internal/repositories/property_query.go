package repositories

import (
	"regexp"

	"estatehub/internal/filter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// filterToBSON translates a compiled filter into a MongoDB query document.
func filterToBSON(spec *filter.Spec) bson.M {
	query := bson.M{}
	if spec == nil {
		return query
	}
	for _, field := range spec.Fields() {
		c, _ := spec.Constraint(field)
		switch c.Op {
		case filter.OpEq:
			query[field] = c.Value
		case filter.OpContains:
			text, _ := c.Value.(string)
			// Search text is matched literally.
			query[field] = primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		case filter.OpGte:
			query[field] = bson.M{"$gte": c.Value}
		case filter.OpRange:
			bounds := bson.M{}
			if c.Min != nil {
				bounds["$gte"] = *c.Min
			}
			if c.Max != nil {
				bounds["$lte"] = *c.Max
			}
			query[field] = bounds
		}
	}
	return query
}
