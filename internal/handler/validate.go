package handler

import (
	"regexp"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// listParam reads a list-valued query parameter. Repeated parameters take
// precedence; a single comma-separated value is split. Blank elements are
// dropped.
func listParam(req events.APIGatewayProxyRequest, name string) []string {
	if values, ok := req.MultiValueQueryStringParameters[name]; ok {
		var out []string
		for _, v := range values {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	var out []string
	for _, v := range strings.Split(req.QueryStringParameters[name], ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// validCinemas reports whether at least one cinema was requested and every
// one is on the allow-list.
func (h *Handler) validCinemas(cinemas []string) bool {
	if len(cinemas) == 0 {
		return false
	}
	for _, cinema := range cinemas {
		if !h.cfg.IsKnownCinema(cinema) {
			return false
		}
	}
	return true
}

// validDates reports whether at least one date was requested and every one is
// an ISO YYYY-MM-DD string.
func validDates(dates []string) bool {
	if len(dates) == 0 {
		return false
	}
	for _, date := range dates {
		if !isoDatePattern.MatchString(date) {
			return false
		}
	}
	return true
}

func validRouteType(routeType string, routeTypes []string) bool {
	for _, known := range routeTypes {
		if routeType == known {
			return true
		}
	}
	return false
}
