package sqlconverter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

const (
	dialectPostgres     = "postgres"
	dialectMySQL        = "mysql"
	castDoublePrecision = "DOUBLE PRECISION"
	castInteger         = "INTEGER"
	castTimestamptz     = "TIMESTAMPTZ"
)

var microsecondsPerUnit = map[utctime.Unit]int64{
	utctime.UnitSecond: 1_000_000,
	utctime.UnitMinute: 60_000_000,
	utctime.UnitHour:   3_600_000_000,
	utctime.UnitDay:    86_400_000_000,
}

// intervalTemplates render "timestamp plus amount units" per dialect.
// The first placeholder is the timestamp, the second the amount.
var intervalTemplates = map[string]func(unit utctime.Unit) string{
	dialectPostgres: func(unit utctime.Unit) string {
		castType := castDoublePrecision
		if unit.IsCalendar() {
			castType = castInteger
		}

		return fmt.Sprintf("(? + (INTERVAL '1 %s' * CAST(? AS %s)))", unit, castType)
	},
	dialectMySQL: func(unit utctime.Unit) string {
		if unit.IsCalendar() {
			return fmt.Sprintf("(? + INTERVAL ? %s)", strings.ToUpper(unit.String()))
		}

		// MySQL rounds fractional DAY or HOUR amounts, microseconds keep them exact.
		return fmt.Sprintf("(? + INTERVAL ROUND(? * %d) MICROSECOND)", microsecondsPerUnit[unit])
	},
}

// Model is the caller-owned registry of SQL translations for timestamp arithmetic.
// Build it once at startup, after that it is safe for concurrent use.
type Model struct {
	mu           sync.RWMutex
	dialect      string
	logger       Logger
	translations map[Operation]string
}

// NewModel creates an empty Model for the postgres dialect unless WithDialect says otherwise.
func NewModel(options ...ModelOption) (*Model, error) {
	m := &Model{
		dialect:      dialectPostgres,
		translations: make(map[Operation]string),
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// UseUTCTimestamp registers the translation of every Operation. Calling it again changes nothing.
func (m *Model) UseUTCTimestamp() *Model {
	m.mu.Lock()
	defer m.mu.Unlock()

	render := intervalTemplates[m.dialect]

	for _, op := range Operations() {
		if _, registered := m.translations[op]; registered {
			continue
		}

		m.translations[op] = render(operationUnits[op])

		if m.logger != nil {
			m.logger.Debug(
				logMsgTranslationRegistered,
				logAttrOperation, string(op),
				logAttrDialect, m.dialect,
				logAttrTemplate, m.translations[op])
		}
	}

	return m
}

// Dialect returns the SQL dialect the Model renders for.
func (m *Model) Dialect() string {
	return m.dialect
}

// IsRegistered reports whether op has a translation.
func (m *Model) IsRegistered(op Operation) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.translations[op]

	return ok
}

// Translate renders op as a goqu expression that adds amount units to timestamp.
//
// Expressions such as goqu.C("issued_at") are used as they are. Other values become goqu values,
// and a utctime.Timestamp is cast to timestamptz on postgres. goqu inlines values as SQL literals
// unless the dataset is prepared: the Executor prepares every dataset it runs, callers rendering
// SQL themselves must wrap the dataset with Prepare to get placeholders.
func (m *Model) Translate(op Operation, timestamp any, amount any) (exp.LiteralExpression, error) {
	template, err := m.template(op)
	if err != nil {
		return nil, err
	}

	return goqu.L(template, m.goquTimestamp(timestamp), goquOperand(amount)), nil
}

func (m *Model) template(op Operation) (string, error) {
	if _, err := op.Unit(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	template, ok := m.translations[op]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTranslationNotRegistered, op)
	}

	return template, nil
}

func (m *Model) goquTimestamp(timestamp any) exp.Expression {
	if ts, ok := timestamp.(utctime.Timestamp); ok && m.dialect == dialectPostgres {
		return goqu.Cast(goqu.V(ts), castTimestamptz)
	}

	return goquOperand(timestamp)
}

func goquOperand(value any) exp.Expression {
	if expression, ok := value.(exp.Expression); ok {
		return expression
	}

	return goqu.V(value)
}
