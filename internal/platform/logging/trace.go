package logging

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// traceContext is the parsed form of a traceparent header.
type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceContext{}, false
	}
	return traceContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

func traceResource(projectID, traceID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, traceID)
}

// requestFields builds the Cloud Logging correlation fields for one request.
// Trace fields are only emitted when a project ID is configured.
func requestFields(header, projectID, requestID string) []zap.Field {
	var fields []zap.Field
	if projectID != "" {
		if tc, ok := parseTraceparent(header); ok {
			fields = append(fields,
				zap.String("logging.googleapis.com/trace", traceResource(projectID, tc.traceID)),
				zap.String("logging.googleapis.com/spanId", tc.spanID),
				zap.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
			)
		}
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	return fields
}

// correlationID prefers the Cloud Trace resource and falls back to the request ID.
func correlationID(header, projectID, requestID string) string {
	if projectID != "" {
		if tc, ok := parseTraceparent(header); ok {
			return traceResource(projectID, tc.traceID)
		}
	}
	return requestID
}
