package model

// PricingTier is a rentable duration and its price. Minutes is the unique
// key; it is serialized as "value" to match the frontend's tier shape.
type PricingTier struct {
	Minutes int     `json:"value" yaml:"minutes"`
	Label   string  `json:"label" yaml:"label"`
	Price   float64 `json:"price" yaml:"price"`
}
