package repositories

import (
	"strings"

	"gorm.io/gorm"

	"ruedo-cms/authz"
	"ruedo-cms/models"
)

// visibleTo narrows a query with the predicate returned by the authz engine.
// publishedColumn or ownerColumn may be empty for types that lack them.
func visibleTo(pred authz.QueryPredicate, publishedColumn, ownerColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pred.PublishedOnly {
			if publishedColumn == "" {
				return db.Where("1 = 0")
			}
			db = db.Where(publishedColumn+" = ?", true)
		}
		if pred.OwnerID != nil {
			if ownerColumn == "" {
				return db.Where("1 = 0")
			}
			db = db.Where(ownerColumn+" = ?", *pred.OwnerID)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// search matches term case-insensitively against any of columns. Wildcards in
// term match literally.
func search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

func boolFilter(column string, value *bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	}
}

func paginate(page models.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Size <= 0 {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// orderBy maps a public ordering key to a SQL clause, falling back to the
// default for unknown keys.
func orderBy(ordering string, allowed map[string]string, fallback string) string {
	if clause, ok := allowed[ordering]; ok {
		return clause
	}
	return allowed[fallback]
}

var publicationOrdering = map[string]string{
	"fecha_publicacion":  "published_on ASC, id ASC",
	"-fecha_publicacion": "published_on DESC, id DESC",
	"creada_en":          "created_at ASC, id ASC",
	"-creada_en":         "created_at DESC, id DESC",
}

const defaultPublicationOrdering = "-fecha_publicacion"

// findPage counts the rows matching query and loads one page of them. Preloads
// only apply to the page load.
func findPage[T any](query *gorm.DB, order string, page models.Page, dest *[]T, preloads ...string) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	find := query.Session(&gorm.Session{}).Order(order).Scopes(paginate(page))
	for _, p := range preloads {
		find = find.Preload(p)
	}
	if err := find.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
