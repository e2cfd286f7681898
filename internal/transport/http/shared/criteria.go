package shared

import (
	"net/http"
	"strings"

	"hrconnect/internal/domain/filter"
)

// reservedParams never name a filter dimension.
var reservedParams = map[string]bool{
	"q":        true,
	"page":     true,
	"pageSize": true,
	"from":     true,
	"to":       true,
	"expr":     true,
	"format":   true,
}

// ParseCriteria builds filter criteria from the query string. Every
// non-reserved parameter is a dimension; repeated values are ORed and the
// value "all" disables the dimension.
func ParseCriteria(r *http.Request, v *Validator, extraReserved ...string) filter.Criteria {
	q := r.URL.Query()
	c := filter.Criteria{
		Search:     strings.TrimSpace(q.Get("q")),
		Categories: map[string][]string{},
		Expr:       strings.TrimSpace(q.Get("expr")),
	}

	skip := func(key string) bool {
		if reservedParams[key] {
			return true
		}
		for _, extra := range extraReserved {
			if key == extra {
				return true
			}
		}
		return false
	}

	for key, values := range q {
		if skip(key) {
			continue
		}
		for _, value := range values {
			value = strings.TrimSpace(value)
			if value == "" || strings.EqualFold(value, "all") {
				continue
			}
			c.Categories[key] = append(c.Categories[key], value)
		}
	}

	if from, ok := v.OptionalDate("from", q.Get("from")); ok {
		c.From = &from
	}
	if to, ok := v.OptionalDate("to", q.Get("to")); ok {
		c.To = &to
	}
	if c.From != nil && c.To != nil {
		v.DateOrder("from", *c.From, "to", *c.To)
	}
	if c.Expr != "" {
		if err := filter.ValidateExpr(c.Expr); err != nil {
			v.Add("expr", err.Error())
		}
	}
	return c
}
