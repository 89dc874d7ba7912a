package postgres

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

const uniqueViolation = "23505"

var constraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// mapError turns a commit-time unique violation into a *domain.ConflictError.
// Other errors are returned unchanged.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	return domain.NewConflict(resourceName(pgErr.TableName), columnFromConstraint(pgErr.ConstraintName))
}

// columnFromConstraint reads the column out of "<table>_<column>_key".
func columnFromConstraint(name string) string {
	m := constraintColumn.FindStringSubmatch(name)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// resourceName singularises and humanises a table name: "services" -> "Service".
func resourceName(table string) string {
	if table == "" {
		return ""
	}
	table = strings.TrimSuffix(table, "s")
	return cases.Title(language.English).String(strings.ReplaceAll(table, "_", " "))
}

// likePattern wraps search in % wildcards, matching it literally.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}
