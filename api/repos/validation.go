package repos

import (
	"regexp"
	"unicode/utf8"

	"github.com/Nikolay-Chillev/ghrepo/errs"
)

// MaxRepoNameLength is the longest repository name GitHub accepts.
const MaxRepoNameLength = 100

var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateRepoName checks a repository name against GitHub's naming rules.
// The checks run in a fixed order: later checks assume the earlier ones
// passed (the boundary check indexes into the string, so emptiness must be
// ruled out first).
func ValidateRepoName(name string) error {
	if name == "" {
		return errs.Validationf("Repository name cannot be empty.")
	}

	// Characters, not bytes: a multibyte name within the limit must fall
	// through to the character-set check.
	if nameLength := utf8.RuneCountInString(name); nameLength > MaxRepoNameLength {
		return errs.Validationf(
			"Repository name cannot exceed %d characters. Got %d characters.",
			MaxRepoNameLength, nameLength,
		)
	}

	if !repoNamePattern.MatchString(name) {
		return errs.Validationf("Repository name can only contain alphanumeric characters, '-', '_', and '.'")
	}

	if name[0] == '-' || name[len(name)-1] == '.' {
		return errs.Validationf("Repository name cannot start with '-' or end with '.'")
	}

	return nil
}
