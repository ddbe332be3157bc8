package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"repairdesk/internal/core/id"
)

// Existence probes must skip soft-deleted rows so that marked catalog
// entries cannot be referenced from new documents.
func TestExistsQuery_ExcludesSoftDeleted(t *testing.T) {
	repo := NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "code", "name"}, func() any { return nil })
	entityID := id.New()

	sql, args, err := repo.existsQuery(squirrel.Eq{"id": entityID}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT 1 FROM test_table WHERE id = $1 AND deletion_mark = $2 LIMIT 1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 || args[0] != entityID || args[1] != false {
		t.Errorf("Args mismatch\nwant: [%v false]\ngot:  %v", entityID, args)
	}

	sql, _, err = repo.existsQuery(squirrel.Eq{"code": "CU-00001"}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL = "SELECT 1 FROM test_table WHERE code = $1 AND deletion_mark = $2 LIMIT 1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
}
