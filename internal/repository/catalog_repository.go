package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// FilterOp задаёт, как параметр запроса превращается в условие WHERE.
type FilterOp int

const (
	// OpEqualFold - сравнение строк без учёта регистра.
	OpEqualFold FilterOp = iota
	OpMin
	OpMax
	// OpSearch - подстрока в name или description.
	OpSearch
	// OpPositive - при значении true столбец должен быть больше нуля.
	OpPositive
)

// Filter связывает параметр запроса со столбцом таблицы.
type Filter struct {
	Param  string
	Column string
	Op     FilterOp
}

// Table описывает таблицу каталога: изменяемые столбцы и допустимые фильтры.
type Table struct {
	Name    string
	Columns []string
	Filters []Filter
}

// likeEscaper экранирует спецсимволы LIKE, чтобы поиск шёл по подстроке буквально.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Where строит условие выборки по параметрам запроса. Неизвестные и пустые параметры
// игнорируются, значение "any" тоже не сужает выборку.
func (t Table) Where(params map[string]string) (string, []interface{}, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	for _, f := range t.Filters {
		value := strings.TrimSpace(params[f.Param])
		if value == "" || strings.EqualFold(value, "any") {
			continue
		}
		switch f.Op {
		case OpEqualFold:
			where += fmt.Sprintf(" AND LOWER(%s)=LOWER(?)", f.Column)
			args = append(args, value)
		case OpMin, OpMax:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %s должен быть числом", ErrInvalidFilter, f.Param)
			}
			cmp := ">="
			if f.Op == OpMax {
				cmp = "<="
			}
			where += fmt.Sprintf(" AND %s %s ?", f.Column, cmp)
			args = append(args, n)
		case OpSearch:
			kw := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
			where += ` AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`
			args = append(args, kw, kw)
		case OpPositive:
			on, err := strconv.ParseBool(value)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %s должен быть true или false", ErrInvalidFilter, f.Param)
			}
			if on {
				where += fmt.Sprintf(" AND %s > 0", f.Column)
			}
		}
	}
	return where, args, nil
}

// CatalogRepository - CRUD над одной таблицей каталога. T должен описывать все столбцы таблицы тегами db.
type CatalogRepository[T any] interface {
	List(ctx context.Context, params map[string]string) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id int, item *T) (*T, error)
	Delete(ctx context.Context, id int) error
}

type CatalogRepositoryImpl[T any] struct {
	db    *DB
	table Table
}

func NewCatalogRepository[T any](db *DB, table Table) *CatalogRepositoryImpl[T] {
	return &CatalogRepositoryImpl[T]{db: db, table: table}
}

// List возвращает строки, подходящие под фильтры, в порядке id.
func (r *CatalogRepositoryImpl[T]) List(ctx context.Context, params map[string]string) ([]T, error) {
	where, args, err := r.table.Where(params)
	if err != nil {
		return nil, err
	}
	ctx, done := trace(ctx, r.table.Name+".List")
	query := sqlx.Rebind(sqlx.DOLLAR, "SELECT * FROM "+r.table.Name+where+" ORDER BY id")
	items := []T{}
	err = r.db.SelectContext(ctx, &items, query, args...)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске в %s: %w", r.table.Name, err)
	}
	return items, nil
}

func (r *CatalogRepositoryImpl[T]) GetByID(ctx context.Context, id int) (*T, error) {
	ctx, done := trace(ctx, r.table.Name+".GetByID")
	var item T
	err := translate(r.db.GetContext(ctx, &item, "SELECT * FROM "+r.table.Name+" WHERE id=$1", id))
	done(err)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create вставляет строку и возвращает её вместе с присвоенным id.
func (r *CatalogRepositoryImpl[T]) Create(ctx context.Context, item *T) (*T, error) {
	named := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s) RETURNING *",
		r.table.Name, strings.Join(r.table.Columns, ", "), strings.Join(r.table.Columns, ", :"))
	query, args, err := sqlx.Named(named, item)
	if err != nil {
		return nil, fmt.Errorf("ошибка подготовки запроса к %s: %w", r.table.Name, err)
	}

	ctx, done := trace(ctx, r.table.Name+".Create")
	var created T
	err = translate(r.db.GetContext(ctx, &created, sqlx.Rebind(sqlx.DOLLAR, query), args...))
	done(err)
	if err != nil {
		if err == ErrDuplicate {
			return nil, err
		}
		return nil, fmt.Errorf("не удалось добавить запись в %s: %w", r.table.Name, err)
	}
	return &created, nil
}

// Update перезаписывает все изменяемые столбцы строки id.
func (r *CatalogRepositoryImpl[T]) Update(ctx context.Context, id int, item *T) (*T, error) {
	sets := make([]string, len(r.table.Columns))
	for i, col := range r.table.Columns {
		sets[i] = col + "=:" + col
	}
	query, args, err := sqlx.Named("UPDATE "+r.table.Name+" SET "+strings.Join(sets, ", "), item)
	if err != nil {
		return nil, fmt.Errorf("ошибка подготовки запроса к %s: %w", r.table.Name, err)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query+" WHERE id=? RETURNING *")
	args = append(args, id)

	ctx, done := trace(ctx, r.table.Name+".Update")
	var updated T
	err = translate(r.db.GetContext(ctx, &updated, query, args...))
	done(err)
	switch {
	case err == nil:
		return &updated, nil
	case err == ErrNotFound || err == ErrDuplicate:
		return nil, err
	default:
		return nil, fmt.Errorf("не удалось обновить запись в %s: %w", r.table.Name, err)
	}
}

func (r *CatalogRepositoryImpl[T]) Delete(ctx context.Context, id int) (err error) {
	ctx, done := trace(ctx, r.table.Name+".Delete")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, "DELETE FROM "+r.table.Name+" WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить запись из %s: %w", r.table.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
