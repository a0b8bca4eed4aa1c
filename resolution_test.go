// resolution_test.go
package entityresolution

import (
	"context"
	"testing"
)

func TestResolveWithDefaults(t *testing.T) {
	registry := []CanonicalRecord{
		{
			ID:               1,
			OrganizationName: "Федеральное государственное бюджетное образовательное учреждение высшего образования «Московский государственный университет имени М.В. Ломоносова»",
		},
		{
			ID:               2,
			OrganizationName: "Тихоокеанский технологический колледж",
		},
	}
	sources := []SourceList{
		{Source: "site_a", Names: []string{
			"МГУ имени М.В. Ломоносова",
			"Академия балета",
		}},
	}

	res, err := ResolveWithDefaults(context.Background(), registry, sources)
	if err != nil {
		t.Fatalf("ResolveWithDefaults: %v", err)
	}

	// Totality: one outcome per registry record, matched or not.
	if len(res.Enriched) != len(registry) {
		t.Fatalf("expected %d enriched records, got %d", len(registry), len(res.Enriched))
	}

	if res.Enriched[0].Match.MatchType != "exact" {
		t.Errorf("expected exact match for the first record, got %q", res.Enriched[0].Match.MatchType)
	}
	if res.Enriched[1].Match.MatchType != "none" {
		t.Errorf("expected no match for the second record, got %q", res.Enriched[1].Match.MatchType)
	}
	if res.Report.MatchedTotal != 1 {
		t.Errorf("unexpected report %+v", res.Report)
	}
}

func TestFacadeHelpers(t *testing.T) {
	r, err := New(WithoutFuzzy())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("NormalizeKey", func(t *testing.T) {
		got := r.NormalizeKey("ФГБОУ ВО «Московский авиационный институт»")
		if got != "московский авиационный институт" {
			t.Errorf("unexpected key %q", got)
		}
	})

	t.Run("Classify", func(t *testing.T) {
		cls := r.Classify("Филиал университета в Казани")
		if !cls.IsBranch {
			t.Error("expected a branch")
		}
	})

	t.Run("Aliases", func(t *testing.T) {
		aliases := r.Aliases("ФГБОУ ВО «Московский государственный университет имени М.В. Ломоносова»")
		if len(aliases) == 0 {
			t.Error("expected aliases")
		}
	})

	t.Run("Dedup", func(t *testing.T) {
		groups := r.Dedup([]CanonicalRecord{
			{ID: 1, OrganizationName: "Российский университет дружбы народов", INN: "7728073720"},
			{ID: 2, OrganizationName: "Российский университет дружбы народов", INN: "7728073720"},
		})
		if len(groups) != 1 {
			t.Errorf("expected 1 group, got %d", len(groups))
		}
	})
}

func TestWithoutFuzzyDisablesFuzzyMatching(t *testing.T) {
	r, err := New(WithoutFuzzy())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	registry := []CanonicalRecord{
		{ID: 1, OrganizationName: "Российский государственный гуманитарный университет"},
	}
	sources := []SourceList{
		// Reordered tokens: only fuzzy matching could link this.
		{Source: "site_a", Names: []string{"Российский гуманитарный государственный университет"}},
	}

	res, err := r.Resolve(context.Background(), registry, sources)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Enriched[0].Match.MatchType != "none" {
		t.Errorf("expected no match with fuzzy disabled, got %q", res.Enriched[0].Match.MatchType)
	}
}
