package dedup

import (
	"testing"

	"github.com/baditaflorin/go_entity_resolution/internal/adapters/normalizer"
	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Close() error                                   { return nil }

func newTestDeduplicator() *Deduplicator {
	return New(normalizer.NewRegistryNormalizer(rules.Default()), nopLogger{})
}

func TestDedup(t *testing.T) {
	d := newTestDeduplicator()

	records := []domain.CanonicalRecord{
		{
			ID:               1,
			OrganizationName: "ФГБОУ ВО «Московский авиационный институт»",
			DateIssue:        "01.02.2015",
			INN:              "7712038455",
			OGRN:             "1027700021663",
		},
		{
			ID:               2,
			OrganizationName: "Федеральное государственное бюджетное образовательное учреждение высшего образования «Московский авиационный институт»",
			DateIssue:        "15.06.2021",
			INN:              "7712038455",
			OGRN:             "1027700021663",
		},
		{
			ID:               3,
			OrganizationName: "Российский университет дружбы народов",
			DateIssue:        "20.03.2019",
			INN:              "7728073720",
			OGRN:             "1027739189323",
		},
	}

	groups := d.Dedup(records)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// Group order follows first appearance.
	first := groups[0]
	if first.SourcesCount != 2 || len(first.Members) != 2 {
		t.Errorf("expected 2 members in the first group, got %d", len(first.Members))
	}
	// Representative is the record with the latest issue date.
	if first.Representative.ID != 2 {
		t.Errorf("expected representative ID 2, got %v", first.Representative.ID)
	}

	// Losslessness: every input record appears in exactly one group.
	total := 0
	for _, g := range groups {
		total += len(g.Members)
	}
	if total != len(records) {
		t.Errorf("expected %d members across groups, got %d", len(records), total)
	}
}

func TestDedupSeparatesByIdentifiers(t *testing.T) {
	d := newTestDeduplicator()

	// Same name, different INN: distinct entities.
	records := []domain.CanonicalRecord{
		{ID: 1, OrganizationName: "Гуманитарный институт", INN: "1111111111"},
		{ID: 2, OrganizationName: "Гуманитарный институт", INN: "2222222222"},
	}

	groups := d.Dedup(records)
	if len(groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(groups))
	}
}

func TestDedupRepresentativeDates(t *testing.T) {
	d := newTestDeduplicator()

	tests := []struct {
		name       string
		dates      []string
		expectedID interface{}
	}{
		{
			name:       "Latest date wins",
			dates:      []string{"10.01.2020", "09.01.2021", "31.12.2020"},
			expectedID: 1,
		},
		{
			name:       "Missing date loses to any valid date",
			dates:      []string{"", "05.05.2005"},
			expectedID: 1,
		},
		{
			name:       "Unparseable date treated as missing",
			dates:      []string{"2021-06-15", "01.01.2001"},
			expectedID: 1,
		},
		{
			name:       "All missing keeps the first record",
			dates:      []string{"", "", ""},
			expectedID: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var records []domain.CanonicalRecord
			for i, date := range tc.dates {
				records = append(records, domain.CanonicalRecord{
					ID:               i,
					OrganizationName: "Московский политехнический университет",
					DateIssue:        date,
					INN:              "7719455553",
				})
			}

			groups := d.Dedup(records)
			if len(groups) != 1 {
				t.Fatalf("expected 1 group, got %d", len(groups))
			}
			if groups[0].Representative.ID != tc.expectedID {
				t.Errorf("expected representative %v, got %v", tc.expectedID, groups[0].Representative.ID)
			}
		})
	}
}

func TestGroupKey(t *testing.T) {
	d := newTestDeduplicator()

	rec := domain.CanonicalRecord{
		OrganizationName: "ФГБОУ ВО «Московский авиационный институт»",
		INN:              "7712038455",
		OGRN:             "1027700021663",
	}

	got := d.GroupKey(rec)
	want := "московский авиационный институт||inn=7712038455||ogrn=1027700021663"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
