package messaging

// DefaultReminderTemplate is frozen into every reminder at creation time, so
// later template edits never change messages already scheduled.
const DefaultReminderTemplate = `مرحبًا {{name}} 👋
حسب آخر طلب لمنتج {{product_name}} نتوقع أنك على وشك الانتهاء 🐝
تقدر تعيد الطلب الآن من الرابط: {{link}}
استخدم الكود HONEY5 واحصل على 5% خصم ✨`

// segmentTemplates are the fixed campaign messages per customer segment.
// VIP is a template tag here even though it is not a lifecycle segment.
var segmentTemplates = map[string]string{
	"NEW":     `اهلا {{customer_name}}، نتمنى ان طلبك الاول حاز على رضاك. مشتاقين لك وبمناسبة عودتك التوصيل علينا!`,
	"AT_RISK": `عزيزي {{customer_name}}، نشكرك على ثقتك المتكررة في {{store_name}}، تقديرا لولائك الشديد نقدم اليك كود خصم ١٠٪؜ صالح للاستخدام في طلبك القادم THANKS10`,
	"VIP":     `عزيزي {{customer_name}}، انت عميلنا الذهبي! وبمناسبة تجاوزك لـ ٥ طلبات نود ان نشكرك بتقديم كود خصم ١٥٪؜ مدى الحياة : GOLDEN15`,
	"CHURNED": `عزيزي {{customer_name}}، نفتقدك في {{store_name}}! نود أن نرحب بعودتك ونقدم لك كود خصم خاص: WELCOMEBACK`,
}

// SegmentTemplate returns the message template for a segment tag, falling
// back to the default reminder template for unknown tags.
func SegmentTemplate(segment string) string {
	if template, ok := segmentTemplates[segment]; ok {
		return template
	}
	return DefaultReminderTemplate
}

// SegmentTemplates returns a copy of the per-segment template set.
func SegmentTemplates() map[string]string {
	templates := make(map[string]string, len(segmentTemplates))
	for tag, template := range segmentTemplates {
		templates[tag] = template
	}
	return templates
}
