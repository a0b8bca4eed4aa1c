package index

import (
	"reflect"
	"testing"

	"github.com/baditaflorin/go_entity_resolution/internal/adapters/normalizer"
	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
)

func TestBuild(t *testing.T) {
	names := []domain.RawName{
		{Name: "МГУ имени М.В. Ломоносова", Source: "site_a"},
		{Name: "Российский новый университет", Source: "site_a"},
		{Name: "МГУ имени М.В. Ломоносова", Source: "site_b"},
	}

	idx := Build(names, normalizer.NewSourceNormalizer(rules.Default()))

	if idx.Len() != 3 {
		t.Fatalf("expected 3 occurrences, got %d", idx.Len())
	}

	t.Run("Shared key maps to both occurrences", func(t *testing.T) {
		positions := idx.Lookup("мгу имени м в ломоносова")
		if !reflect.DeepEqual(positions, []int{0, 2}) {
			t.Errorf("expected [0 2], got %v", positions)
		}
	})

	t.Run("Unknown key yields nil", func(t *testing.T) {
		if positions := idx.Lookup("нет такого ключа"); positions != nil {
			t.Errorf("expected nil, got %v", positions)
		}
	})

	t.Run("Unique keys keep first-seen order", func(t *testing.T) {
		want := []string{"мгу имени м в ломоносова", "российский новый университет"}
		if got := idx.UniqueKeys(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Occurrence accessors", func(t *testing.T) {
		if got := idx.Name(2); got.Source != "site_b" {
			t.Errorf("expected source site_b, got %q", got.Source)
		}
		if got := idx.Key(1); got != "российский новый университет" {
			t.Errorf("unexpected key %q", got)
		}
	})
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(nil, normalizer.NewSourceNormalizer(rules.Default()))

	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %d occurrences", idx.Len())
	}
	if keys := idx.UniqueKeys(); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}
