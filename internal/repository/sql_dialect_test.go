package repository

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "name LIKE ? OR description LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"name"})
	if !strings.Contains(condition, "name ILIKE ?") {
		t.Fatalf("postgres condition should use ILIKE, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

func TestTranslateError(t *testing.T) {
	if translateError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	if !IsDuplicate(translateError(gorm.ErrDuplicatedKey)) {
		t.Fatalf("gorm duplicated key should map to ErrDuplicate")
	}
	if !IsDuplicate(translateError(errors.New("UNIQUE constraint failed: categories.slug"))) {
		t.Fatalf("sqlite unique message should map to ErrDuplicate")
	}
	if !IsReferenced(translateError(gorm.ErrForeignKeyViolated)) {
		t.Fatalf("gorm foreign key error should map to ErrReferenced")
	}
	plain := errors.New("connection reset")
	if got := translateError(plain); got != plain {
		t.Fatalf("unrelated errors should pass through, got %v", got)
	}
}
