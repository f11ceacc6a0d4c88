package financing

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// excludedFromSignature lists the fields the provider defines as outside
// the signed scope. They are stripped before canonicalization.
var excludedFromSignature = map[string]struct{}{
	FieldAPIKey:             {},
	FieldSignature:          {},
	FieldProductDescription: {},
	FieldPreferredMethod:    {},
	FieldAdditionalData:     {},
}

// decodedFields are emitted percent-decoded regardless of how they
// arrived. The provider verifies against the decoded form.
var decodedFields = map[string]struct{}{
	FieldSuccessURL: {},
	FieldFailureURL: {},
}

// Canonicalize produces the provider's canonical signing string from a
// flat field map: excluded fields removed, remaining keys sorted
// case-insensitively, each emitted as KEY=value& with the key
// upper-cased. The trailing separator after the final pair is part of
// the required format.
func Canonicalize(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, excluded := excludedFromSignature[strings.ToLower(k)]; excluded {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	var b strings.Builder
	for _, k := range keys {
		value := stringify(fields[k])
		if _, decode := decodedFields[strings.ToLower(k)]; decode {
			if decoded, err := url.QueryUnescape(value); err == nil {
				value = decoded
			}
		}
		b.WriteString(strings.ToUpper(k))
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('&')
	}
	return b.String()
}

// stringify renders a field value for signing. Booleans use the
// provider's capitalized literals; nil renders as the empty string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
