package messaging

import (
	"strings"
	"testing"
)

func TestRenderTemplateReplacesAllOccurrences(t *testing.T) {
	got := RenderTemplate("Hi {{name}}, {{name}}!", map[string]string{"name": "A"})
	if got != "Hi A, A!" {
		t.Errorf("expected every occurrence replaced, got %q", got)
	}
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	got := RenderTemplate("Hi {{name}}, order {{order_id}}", map[string]string{"name": "A"})
	if got != "Hi A, order {{order_id}}" {
		t.Errorf("expected unknown placeholder untouched, got %q", got)
	}
}

func TestRenderTemplateEmptyValue(t *testing.T) {
	got := RenderTemplate("Hi {{name}}!", map[string]string{"name": ""})
	if got != "Hi !" {
		t.Errorf("expected empty value to erase the placeholder, got %q", got)
	}
}

func TestSegmentTemplateFallback(t *testing.T) {
	if SegmentTemplate("NEW") == DefaultReminderTemplate {
		t.Error("expected NEW to have its own template")
	}
	if SegmentTemplate("NO_SUCH_SEGMENT") != DefaultReminderTemplate {
		t.Error("expected unknown tags to fall back to the default template")
	}
}

func TestSegmentTemplatesCovered(t *testing.T) {
	for _, tag := range []string{"NEW", "AT_RISK", "VIP", "CHURNED"} {
		template := SegmentTemplate(tag)
		if !strings.Contains(template, "{{customer_name}}") {
			t.Errorf("expected %s template to address the customer", tag)
		}
	}
}
