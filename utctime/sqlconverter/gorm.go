package sqlconverter

import (
	"strings"

	"gorm.io/gorm/clause"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

// TranslateGorm renders op as a gorm clause expression, e.g. for Where or Select.
//
// A string timestamp names a column ("issued_at" or "sessions.issued_at"), a
// clause.Expression is used as it is, other values become bound variables.
func (m *Model) TranslateGorm(op Operation, timestamp any, amount any) (clause.Expr, error) {
	template, err := m.template(op)
	if err != nil {
		return clause.Expr{}, err
	}

	return clause.Expr{
		SQL:  template,
		Vars: []any{m.gormTimestamp(timestamp), amount},
	}, nil
}

func (m *Model) gormTimestamp(timestamp any) any {
	switch value := timestamp.(type) {
	case string:
		return columnOf(value)
	case utctime.Timestamp:
		if m.dialect == dialectPostgres {
			return clause.Expr{SQL: "CAST(? AS " + castTimestamptz + ")", Vars: []any{value}}
		}

		return value
	default:
		return value
	}
}

func columnOf(name string) clause.Column {
	if table, column, qualified := strings.Cut(name, "."); qualified {
		return clause.Column{Table: table, Name: column}
	}

	return clause.Column{Name: name}
}
