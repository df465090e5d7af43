// Package content implements the posting and voting evaluators of §4.4:
// comment, comment_options, delete_comment and vote.
package content

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/velanet/corechain/errs"
)

// MaxPermlinkLength bounds a comment's url-safe identifier.
const MaxPermlinkLength = 256

// validPermlink enforces the `[a-z0-9-]` charset spec §4.4 requires.
func validPermlink(permlink string) bool {
	if permlink == "" || len(permlink) > MaxPermlinkLength {
		return false
	}
	for _, r := range permlink {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

func validateUTF8Fields(fields ...string) error {
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return errs.ErrInvalidUTF8
		}
	}
	return nil
}

func validateJSONMetadata(metadata string) error {
	if metadata == "" {
		return nil
	}
	if !json.Valid([]byte(metadata)) {
		return errs.ErrInvalidJSON
	}
	return nil
}
