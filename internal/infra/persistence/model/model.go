// Package model holds the GORM persistence models.
package model

// All lists every model managed by schema migration, in dependency order.
func All() []any {
	return []any{
		&UserModel{},
		&TaskModel{},
	}
}
