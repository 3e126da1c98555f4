package http

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
)

// maxMemory bounds the in-memory part of multipart parsing.
const maxMemory = 10 << 20

// ExtractSubmission turns an HTTP request into the presentation-format value
// Bind expects. JSON bodies decode into a structured value; urlencoded and
// multipart bodies support bracket syntax (address[city]=x) for nesting.
// Requests without a body fall back to query parameters.
func ExtractSubmission(r *http.Request) (domain.Value, error) {
	v, err := extract(r)
	if err != nil {
		return domain.Null(), err
	}
	return sanitizeSubmission(v)
}

func extract(r *http.Request) (domain.Value, error) {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			ct = mt
		}
	}

	switch ct {
	case "application/json":
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return domain.Null(), errors.Wrap(err, "invalid JSON body")
		}
		return jsonValue(raw), nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return domain.Null(), errors.Wrap(err, "invalid form body")
		}
		return valuesToSubmission(r.PostForm), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return domain.Null(), errors.Wrap(err, "invalid multipart body")
		}
		return valuesToSubmission(url.Values(r.MultipartForm.Value)), nil

	default:
		return valuesToSubmission(r.URL.Query()), nil
	}
}

// jsonValue coerces decoded JSON into the variant, stringifying numbers so
// they arrive in presentation format like every other submission channel.
func jsonValue(raw any) domain.Value {
	switch x := raw.(type) {
	case nil:
		return domain.Null()
	case string:
		return domain.Scalar(x)
	case json.Number:
		return domain.Scalar(x.String())
	case bool:
		if x {
			return domain.Scalar("1")
		}
		return domain.Scalar("")
	case map[string]any:
		s := domain.NewStructured()
		for _, k := range sortedKeys(x) {
			s.Set(k, jsonValue(x[k]))
		}
		return domain.Wrap(s)
	case []any:
		s := domain.NewStructured()
		for i, item := range x {
			s.Set(strconv.Itoa(i), jsonValue(item))
		}
		return domain.Wrap(s)
	default:
		return domain.ValueOf(raw)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// valuesToSubmission folds flat url.Values into a nested structured value
// using bracket syntax: "address[city]" becomes {address: {city: ...}}.
// Repeated keys keep the last value, matching net/http form semantics for
// single-valued fields.
func valuesToSubmission(values url.Values) domain.Value {
	root := domain.NewStructured()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		setPath(root, parseBracketPath(key), vals[len(vals)-1])
	}
	return domain.Wrap(root)
}

// parseBracketPath splits "a[b][c]" into ["a","b","c"]. Malformed brackets
// degrade to the literal key.
func parseBracketPath(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}
	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			return []string{key}
		}
		path = append(path, rest[1:close])
		rest = rest[close+1:]
	}
	return path
}

func setPath(s *domain.Structured, path []string, value string) {
	for len(path) > 1 {
		next, ok := s.Get(path[0])
		if !ok || next.Kind() != domain.KindStructured {
			nested := domain.NewStructured()
			s.Set(path[0], domain.Wrap(nested))
			s = nested
		} else {
			s = next.Structured()
		}
		path = path[1:]
	}
	s.Set(path[0], domain.Scalar(value))
}
