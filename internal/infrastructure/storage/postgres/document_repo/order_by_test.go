package document_repo

import (
	"testing"
)

func newTestRepo() *BaseDocumentRepo[any] {
	cols := []string{"id", "number", "date", "customer_id", "total_amount"}
	return NewBaseDocumentRepo[any](nil, "doc_test", cols, func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		in   string
		want string
	}{
		{"", "date DESC"},
		{"-date", "date DESC"},
		{"date", "date ASC"},
		{"+number", "number ASC"},
		{"-total_amount", "total_amount DESC"},
		{"created_at", "created_at ASC"},
	}

	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		if err != nil {
			t.Errorf("parseOrderBy(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOrderBy_RejectsUnknownInput(t *testing.T) {
	repo := newTestRepo()

	inputs := []string{
		"-",
		"secret_column",
		"date; DROP TABLE doc_test",
		"(SELECT pg_sleep(10)), date",
	}

	for _, in := range inputs {
		if _, err := repo.parseOrderBy(in); err == nil {
			t.Errorf("parseOrderBy(%q) accepted non-whitelisted input", in)
		}
	}
}
