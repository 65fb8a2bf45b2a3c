package trackerapi

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jobtracker/tracker-web/internal/core/domain"
)

// Response bodies are read loosely: a field of the wrong type is treated the
// way the browser client treated it (falsy means absent, anything else is
// coerced to a string), and a body that is not an object has no fields.

// field returns key of a JSON object, or nil when v is not an object.
func field(v any, key string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

// truthy reports whether v would pass an `if (v)` test.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}

// jsString renders v the way String(v) would.
func jsString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return jsNumber(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = jsString(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprint(x)
	}
}

func jsNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits; JS does not.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// optString is the `v || fallback` idiom with an empty fallback.
func optString(v any) string {
	if !truthy(v) {
		return ""
	}
	return jsString(v)
}

// jobList reads `v || []`. A truthy value that is not an array cannot be
// listed and is reported as ErrUnexpectedPayload.
func jobList(v any) ([]domain.Job, error) {
	if !truthy(v) {
		return []domain.Job{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: jobs is %T, not an array", domain.ErrUnexpectedPayload, v)
	}
	jobs := make([]domain.Job, 0, len(items))
	for i, item := range items {
		j, err := jobFrom(item)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// jobFrom needs a usable id for the row buttons; the text fields are coerced.
func jobFrom(v any) (domain.Job, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.Job{}, fmt.Errorf("%w: job is %T, not an object", domain.ErrUnexpectedPayload, v)
	}
	id, err := jobID(m["id"])
	if err != nil {
		return domain.Job{}, err
	}
	return domain.Job{
		ID:      id,
		Company: textField(m["company"]),
		Role:    textField(m["role"]),
		Status:  domain.JobStatus(textField(m["status"])),
	}, nil
}

func jobID(v any) (int64, error) {
	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = x
	default:
		return 0, fmt.Errorf("%w: job id is %T", domain.ErrUnexpectedPayload, v)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: job id %q", domain.ErrUnexpectedPayload, s)
	}
	return id, nil
}

func textField(v any) string {
	if v == nil {
		return ""
	}
	return jsString(v)
}
