package http

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/espalier/pkg/domain"
)

var (
	// DefaultMaxValueSize is 4KB per submitted value (conservative default)
	DefaultMaxValueSize = 4096
	// EnvMaxValueSize is the environment variable to override the default
	EnvMaxValueSize = "ESPALIER_MAX_VALUE_SIZE"
)

var (
	ErrValueTooLarge = errors.New("submitted value exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("submitted value contains invalid UTF-8 sequences")
)

// sanitizeSubmission walks a submission and cleans every scalar in place of
// the original: size limits, UTF-8 validation and control-character
// stripping. Oversized or invalid values reject the whole request rather
// than truncate, to keep binding deterministic.
func sanitizeSubmission(v domain.Value) (domain.Value, error) {
	switch v.Kind() {
	case domain.KindScalar:
		clean, err := sanitizeScalar(v.Scalar())
		if err != nil {
			return domain.Null(), err
		}
		return domain.Scalar(clean), nil
	case domain.KindStructured:
		out := domain.NewStructured()
		var walkErr error
		v.Structured().Range(func(key string, item domain.Value) bool {
			clean, err := sanitizeSubmission(item)
			if err != nil {
				walkErr = errors.Wrapf(err, "field %q", key)
				return false
			}
			out.Set(key, clean)
			return true
		})
		if walkErr != nil {
			return domain.Null(), walkErr
		}
		return domain.Wrap(out), nil
	default:
		return v, nil
	}
}

// sanitizeScalar enforces size limits, validates UTF-8, and strips dangerous
// control characters. Newline, tab and carriage return survive; ANSI
// escapes, NULL, BEL and friends do not. This prevents log poisoning and
// terminal corruption downstream.
func sanitizeScalar(input string) (string, error) {
	limit := getMaxValueSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrValueTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxValueSize() int {
	if val := os.Getenv(EnvMaxValueSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxValueSize
}
