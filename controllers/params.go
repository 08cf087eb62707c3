package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// boolQuery parses an optional boolean query parameter. Returns nil when the
// parameter is absent or unparseable, so filters treat it as "not set".
func boolQuery(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// intQuery parses an optional integer query parameter, defaulting to zero
func intQuery(c *gin.Context, name string) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

// uintParam parses a numeric path parameter. The second return reports
// whether parsing succeeded; callers respond 400 on failure.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
