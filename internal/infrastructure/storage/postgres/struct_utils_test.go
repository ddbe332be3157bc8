package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"repairdesk/internal/core/entity"
	"repairdesk/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Code   string  `db:"code" json:"code"`
	Name   string  `db:"name" json:"name"`
	Hidden string  `db:"-" json:"hidden"`
	Notes  *string `db:"notes" json:"notes,omitempty"`
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{"id", "deletion_mark", "version", "code", "name", "notes"}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "hidden")
}

func TestStructToMap_EmbeddedStructs(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:   "TEST",
		Name:   "Test Name",
		Hidden: "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.NotContains(t, m, "hidden")

	// Nil pointers still surface as typed nils for SQL NULL.
	assert.Contains(t, m, "notes")
}
