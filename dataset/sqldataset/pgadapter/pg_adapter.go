/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/hedgecut/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// MaxSampleInsertionsPerStatement is the maximum number
// of samples that are allowed to be added with a single
// insert command with the AddSamples method of the adapter.
// Trying to add more will result in making more insertion commands
const MaxSampleInsertionsPerStatement = 10

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgresql: %v", err)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(name string) (string, error) {
	if name == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as column name`, name)
	}
	if name == "" || strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' is empty or contains invalid character '"'`, name)
	}
	return name, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range featureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" DOUBLE PRECISION NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" INTEGER NOT NULL, `, labelColumn))
	createStmtBuf.WriteString(`"id" SERIAL PRIMARY KEY)`)
	createStmt, err := a.db.PrepareContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("preparing samples creation statement: %v", err)
	}
	defer createStmt.Close()
	_, err = createStmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, samples []sqldataset.RawSample, featureColumns []string, labelColumn string) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %v", err)
	}
	var fullStmt *sql.Stmt
	defer func() {
		if fullStmt != nil {
			fullStmt.Close()
		}
	}()
	for start := 0; start < len(samples); start += MaxSampleInsertionsPerStatement {
		chunk := samples[start:min(start+MaxSampleInsertionsPerStatement, len(samples))]
		args := make([]interface{}, 0, len(chunk)*(len(featureColumns)+1))
		for _, s := range chunk {
			for _, c := range featureColumns {
				if v, ok := s.Values[c]; ok {
					args = append(args, v)
				} else {
					args = append(args, nil)
				}
			}
			args = append(args, s.Label)
		}
		stmt := insertStmt(featureColumns, labelColumn, len(chunk))
		if len(chunk) == MaxSampleInsertionsPerStatement {
			if fullStmt == nil {
				fullStmt, err = tx.PrepareContext(ctx, stmt)
				if err != nil {
					tx.Rollback()
					return 0, fmt.Errorf("preparing insert command for %d samples: %v", MaxSampleInsertionsPerStatement, err)
				}
			}
			_, err = fullStmt.ExecContext(ctx, args...)
		} else {
			_, err = tx.ExecContext(ctx, stmt, args...)
		}
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting samples %d to %d: %v", start, start+len(chunk)-1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing samples: %v", err)
	}
	return len(samples), nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, sqldataset.RawSample) (bool, error)) error {
	query := fmt.Sprintf(`SELECT %s FROM samples ORDER BY "id"`, quote(append(append([]string{}, featureColumns...), labelColumn)))
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying samples: %v", err)
	}
	defer rows.Close()
	values := make([]sql.NullFloat64, len(featureColumns))
	dest := make([]interface{}, 0, len(featureColumns)+1)
	for i := range values {
		dest = append(dest, &values[i])
	}
	var label int
	dest = append(dest, &label)
	for i := 0; rows.Next(); i++ {
		if err = rows.Scan(dest...); err != nil {
			return fmt.Errorf("scanning sample %d: %v", i, err)
		}
		s := sqldataset.RawSample{Values: make(map[string]float64), Label: label}
		for j, c := range featureColumns {
			if values[j].Valid {
				s.Values[c] = values[j].Float64
			}
		}
		ok, err := lambda(i, s)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func insertStmt(featureColumns []string, labelColumn string, n int) string {
	var buf bytes.Buffer
	numColumns := len(featureColumns) + 1
	buf.WriteString(fmt.Sprintf("INSERT INTO samples (%s) VALUES ", quote(append(append([]string{}, featureColumns...), labelColumn))))
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j := 0; j < numColumns; j++ {
			if j > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(fmt.Sprintf("$%d", i*numColumns+j+1))
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func quote(columns []string) string {
	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		quoted = append(quoted, fmt.Sprintf(`"%s"`, c))
	}
	return strings.Join(quoted, ", ")
}
