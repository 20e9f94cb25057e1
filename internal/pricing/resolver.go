package pricing

import (
	"sort"
	"time"
)

// Query identifies whose price is being resolved.
type Query struct {
	ProductID  int64
	CategoryID int64
	CompanyID  int64
	Channel    Channel
	Quantity   int
}

// Resolve runs the precedence chain for one query against an
// already-computed base net price:
//
//  1. an active exception in its validity window wins outright;
//  2. otherwise the single best matching rule adjusts the base by its
//     percent change (lowest priority value first, ties by earliest
//     creation); rules never stack;
//  3. otherwise an active customer profile's general discount applies;
//  4. otherwise the base price stands.
func Resolve(base float64, at time.Time, q Query, exceptions []Exception, rules []Rule, profile *CustomerProfile) Resolution {
	for _, e := range exceptions {
		if e.Matches(q, at) {
			return Resolution{NetPrice: e.FixedNetPrice, Source: SourceException}
		}
	}

	if rule := bestRule(q, at, rules); rule != nil {
		id := rule.ID
		return Resolution{
			NetPrice: base * (1 + rule.PercentChange/100),
			Source:   SourceRule,
			RuleID:   &id,
		}
	}

	if profile != nil && profile.IsActive && profile.GeneralDiscountPercent != 0 {
		return Resolution{
			NetPrice: base * (1 - profile.GeneralDiscountPercent/100),
			Source:   SourceProfile,
		}
	}

	return Resolution{NetPrice: base, Source: SourceBase}
}

// Matches reports whether the exception covers the exact
// (product, company, channel) tuple at the given time.
func (e Exception) Matches(q Query, at time.Time) bool {
	if !e.IsActive {
		return false
	}
	if e.ProductID != q.ProductID || e.CompanyID != q.CompanyID || e.Channel != q.Channel {
		return false
	}
	return inWindow(at, e.ValidFrom, e.ValidTo)
}

// Matches reports whether the rule applies to the query at the given time.
func (r Rule) Matches(q Query, at time.Time) bool {
	if !r.IsActive || r.Channel != q.Channel {
		return false
	}
	switch r.Scope {
	case ScopeGlobal:
	case ScopeCategory:
		if r.TargetID == nil || *r.TargetID != q.CategoryID {
			return false
		}
	case ScopeProduct:
		if r.TargetID == nil || *r.TargetID != q.ProductID {
			return false
		}
	default:
		return false
	}
	if r.CompanyID != nil && *r.CompanyID != q.CompanyID {
		return false
	}
	if r.MinQuantity != nil && q.Quantity < *r.MinQuantity {
		return false
	}
	return inWindow(at, r.ValidFrom, r.ValidTo)
}

// bestRule picks the single matching rule with the lowest priority
// value, ties broken by earliest creation.
func bestRule(q Query, at time.Time, rules []Rule) *Rule {
	matching := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Matches(q, at) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	sort.SliceStable(matching, func(i, j int) bool {
		if matching[i].Priority != matching[j].Priority {
			return matching[i].Priority < matching[j].Priority
		}
		return matching[i].CreatedAt.Before(matching[j].CreatedAt)
	})
	return &matching[0]
}

func inWindow(at time.Time, from, to *time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && at.After(*to) {
		return false
	}
	return true
}
