package common

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regex patterns for SQL parsing
var (
	commentRegex    = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex     = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
	validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// ParseSQLStatements splits a script on semicolons that are not inside string
// or identifier literals and strips line comments.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	estimatedStmts := strings.Count(sql, ";") + 1
	statements := make([]string, 0, estimatedStmts)

	var currentStatement strings.Builder
	currentStatement.Grow(len(sql) / estimatedStmts)

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			stmt := strings.TrimSpace(currentStatement.String())
			if stmt != "" && !strings.HasPrefix(stmt, "/*") {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		} else {
			currentStatement.WriteRune(char)
		}
	}

	if currentStatement.Len() > 0 {
		stmt := strings.TrimSpace(currentStatement.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// ValidateIdentifier rejects table and column names that would need quoting,
// so they can be interpolated into DDL safely.
func ValidateIdentifier(name string) error {
	if !validIdentifier.MatchString(name) {
		return errors.Errorf("invalid identifier: %q", name)
	}
	return nil
}
