// Package domain contains plan reference data and plan-feature membership.
package domain

import "time"

// Plan is a named bundle of entitled feature keys. Plans are immutable
// platform reference data; churches point at them through subscriptions.
type Plan struct {
	Code      string    `json:"code" gorm:"type:text;primaryKey;column:code"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`

	featureKeys map[string]struct{} `gorm:"-"`
}

func (Plan) TableName() string { return "plans" }

// PlanFeature links a plan to one included feature key.
type PlanFeature struct {
	PlanCode   string `gorm:"type:text;primaryKey;column:plan_code"`
	FeatureKey string `gorm:"type:text;primaryKey;column:feature_key"`
}

func (PlanFeature) TableName() string { return "plan_features" }

// WithFeatureKeys returns a copy of the plan carrying its membership set.
func (p Plan) WithFeatureKeys(keys []string) Plan {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	p.featureKeys = set
	return p
}

// IncludesFeature reports plan membership for a feature key.
func (p *Plan) IncludesFeature(key string) bool {
	if p == nil || p.featureKeys == nil {
		return false
	}
	_, ok := p.featureKeys[key]
	return ok
}

// FeatureKeys lists the plan's included keys in unspecified order.
func (p *Plan) FeatureKeys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.featureKeys))
	for k := range p.featureKeys {
		keys = append(keys, k)
	}
	return keys
}
