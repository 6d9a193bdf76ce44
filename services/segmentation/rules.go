package segmentation

import "zid-retention-server/models"

// VIP is an orthogonal loyalty flag, never a segment of its own.
const (
	vipMinOrders = 5
	vipMinSpent  = 500
)

type segmentRule struct {
	matches func(totalOrders int, daysSinceLastOrder int) bool
	segment string
}

// Evaluated top to bottom, first match wins. The thresholds make the rules
// mutually exclusive; anything that falls through is treated as NEW.
var segmentRules = []segmentRule{
	{
		matches: func(orders, days int) bool { return orders == 1 && days <= 7 },
		segment: models.SegmentNew,
	},
	{
		matches: func(orders, days int) bool { return orders >= 2 && days <= 30 },
		segment: models.SegmentActive,
	},
	{
		matches: func(orders, days int) bool { return days > 30 && days <= 60 },
		segment: models.SegmentAtRisk,
	},
	{
		matches: func(orders, days int) bool { return days > 60 },
		segment: models.SegmentChurned,
	},
}

// ClassifySegment assigns the lifecycle segment for a customer's order count
// and recency.
func ClassifySegment(totalOrders int, daysSinceLastOrder int) string {
	for _, rule := range segmentRules {
		if rule.matches(totalOrders, daysSinceLastOrder) {
			return rule.segment
		}
	}
	return models.SegmentNew
}

// IsVIP reports whether a customer qualifies as VIP, independent of segment.
func IsVIP(totalOrders int, totalSpent float64) bool {
	return totalOrders >= vipMinOrders || totalSpent >= vipMinSpent
}
