// Package dedup groups canonical registry records that denote the same
// institution, such as re-registration events, into one representative record
// plus a lossless audit trail.
package dedup

import (
	"fmt"
	"regexp"

	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

var dateRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// Deduplicator groups records by normalized name plus whatever secondary
// identifiers are present. Records missing all secondary identifiers are
// grouped by name alone; that can over-merge distinct entities sharing a
// name, a deliberate recall-over-precision tradeoff for this stage.
type Deduplicator struct {
	norm   ports.Normalizer
	logger ports.Logger
}

// New creates a deduplicator using the given key normalizer.
func New(norm ports.Normalizer, logger ports.Logger) *Deduplicator {
	return &Deduplicator{norm: norm, logger: logger}
}

// Dedup partitions the records into groups. The union of all group members
// equals the input exactly: no record is created, duplicated, or dropped.
// Group order follows the first appearance of each group key.
func (d *Deduplicator) Dedup(records []domain.CanonicalRecord) []domain.DedupGroup {
	byKey := make(map[string]int, len(records))
	var groups []domain.DedupGroup

	for _, rec := range records {
		key := d.GroupKey(rec)
		gi, seen := byKey[key]
		if !seen {
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, domain.DedupGroup{Key: key})
		}
		groups[gi].Members = append(groups[gi].Members, rec)
	}

	for i := range groups {
		groups[i].Representative = pickRepresentative(groups[i].Members)
		groups[i].SourcesCount = len(groups[i].Members)
	}

	d.logger.Info("Deduplicated registry records",
		"records", len(records),
		"groups", len(groups),
	)
	return groups
}

// GroupKey derives the dedup key of one record: normalized name combined
// with the tax/registration identifiers, empty when absent.
func (d *Deduplicator) GroupKey(rec domain.CanonicalRecord) string {
	return fmt.Sprintf("%s||inn=%s||ogrn=%s",
		d.norm.Normalize(rec.OrganizationName), rec.INN, rec.OGRN)
}

// pickRepresentative returns the member with the latest issue date. Members
// with missing or unparseable dates count as the minimum date and are only
// chosen when no member has a valid one. Ties keep the first-seen member.
func pickRepresentative(members []domain.CanonicalRecord) domain.CanonicalRecord {
	best := members[0]
	bestY, bestM, bestD := parseDate(best.DateIssue)
	for _, m := range members[1:] {
		y, mo, day := parseDate(m.DateIssue)
		if laterThan(y, mo, day, bestY, bestM, bestD) {
			best = m
			bestY, bestM, bestD = y, mo, day
		}
	}
	return best
}

// parseDate parses a strict DD.MM.YYYY date; anything else is (0,0,0).
func parseDate(s string) (year, month, day int) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0
	}
	return atoi(m[3]), atoi(m[2]), atoi(m[1])
}

func laterThan(y1, m1, d1, y2, m2, d2 int) bool {
	if y1 != y2 {
		return y1 > y2
	}
	if m1 != m2 {
		return m1 > m2
	}
	return d1 > d2
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
