package domain

// Condition values a Stuff item may carry.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

// StuffConditions enumerates the allowed condition values.
var StuffConditions = []string{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}

// Stuff is an owned inventory item. Owner is the owning account's username
// (an email), a non-owning reference resolved through the account directory.
type Stuff struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name" validate:"required"`
	Quantity  int    `json:"quantity" bson:"quantity" validate:"gte=0"`
	Condition string `json:"condition" bson:"condition" validate:"required,oneof=excellent good fair poor"`
	Owner     string `json:"owner" bson:"owner" validate:"required"`
}

// StuffFromDoc builds a Stuff from a define-shaped document.
func StuffFromDoc(d Doc) Stuff {
	return Stuff{
		ID:        d.ID(),
		Name:      d.Str("name"),
		Quantity:  d.Int("quantity"),
		Condition: d.Str("condition"),
		Owner:     d.Str("owner"),
	}
}

// Doc returns the define-shaped document for the item.
func (s Stuff) Doc() Doc {
	return Doc{
		"name":      s.Name,
		"quantity":  s.Quantity,
		"condition": s.Condition,
		"owner":     s.Owner,
	}
}
