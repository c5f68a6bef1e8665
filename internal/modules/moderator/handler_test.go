package moderator

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutesExposesTaskAudit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(NewService(nil, nil, nil))
	h.RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/moderation/comments",
		"GET /api/v1/moderation/tasks",
		"GET /api/v1/moderation/tasks/:taskId",
		"POST /api/v1/moderation/tasks/:taskId/cancel",
		"DELETE /api/v1/moderation/tasks/:taskId",
		"DELETE /api/v1/moderation/tasks",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestBoolQuery(t *testing.T) {
	cases := []struct {
		query string
		want  *bool
	}{
		{"", nil},
		{"abusive=true", boolPtr(true)},
		{"abusive=0", boolPtr(false)},
		{"abusive=banana", nil},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", fmt.Sprintf("/?%s", tc.query), nil)
		got := boolQuery(c, "abusive")
		if tc.want == nil {
			assert.Nil(t, got, "query %q", tc.query)
		} else {
			assert.NotNil(t, got, "query %q", tc.query)
			assert.Equal(t, *tc.want, *got, "query %q", tc.query)
		}
	}
}

func boolPtr(b bool) *bool { return &b }
