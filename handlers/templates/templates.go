package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zid-retention-server/services/messaging"
)

// List returns the active message templates: the default reorder reminder and
// the per-segment campaign messages.
func List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"default_template":  messaging.DefaultReminderTemplate,
		"segment_templates": messaging.SegmentTemplates(),
	})
}

func RegisterTemplateRoutes(r *gin.Engine) {
	r.GET("/api/templates", List)
}
