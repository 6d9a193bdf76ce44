package messaging

import "strings"

// RenderTemplate replaces every {{key}} occurrence in the template with the
// value from fields. Keys not present in fields stay as literal placeholders.
func RenderTemplate(template string, fields map[string]string) string {
	message := template
	for key, value := range fields {
		message = strings.ReplaceAll(message, "{{"+key+"}}", value)
	}
	return message
}
