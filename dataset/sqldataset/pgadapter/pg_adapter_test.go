package pgadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertStmt(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO samples ("x", "label") VALUES ($1, $2), ($3, $4), ($5, $6)`,
		insertStmt([]string{"x"}, "label", 3))
}

func TestColumnName(t *testing.T) {
	a := &adapter{}
	c, err := a.ColumnName("fare")
	assert.NoError(t, err)
	assert.Equal(t, "fare", c)
	_, err = a.ColumnName("id")
	assert.Error(t, err)
	_, err = a.ColumnName(`"; DROP TABLE samples; --`)
	assert.Error(t, err)
}
