package domain

// MatchKind describes how a canonical record was linked to a source name.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
	MatchNone  MatchKind = "none"
)

// MatchedVia describes which key produced the hit.
type MatchedVia string

const (
	ViaOfficialName  MatchedVia = "official_name"
	ViaOfficialAlias MatchedVia = "official_alias"
	ViaNone          MatchedVia = ""
)

// RawName is a single scraped name occurrence tagged with the list it came from.
type RawName struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// SourceList is one scraped name list with its source tag.
type SourceList struct {
	Source string   `json:"source"`
	Names  []string `json:"names"`
}

// CanonicalRecord is an entry from the authoritative registry. Records are
// read-only inputs; the pipeline annotates copies and never mutates them.
type CanonicalRecord struct {
	ID               interface{} `json:"id,omitempty"`
	OrganizationName string      `json:"organization_name"`
	RegisterNumber   string      `json:"register_number,omitempty"`
	DateIssue        string      `json:"date_issue,omitempty"`
	DateEnd          string      `json:"date_end,omitempty"`
	INN              string      `json:"inn,omitempty"`
	OGRN             string      `json:"ogrn,omitempty"`
}

// Alias is an alternate surface form derived from one canonical name,
// paired with its normalized comparison key.
type Alias struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// MatchOutcome is attached to each canonical record after resolution.
type MatchOutcome struct {
	OfficialKey          string     `json:"official_key"`
	OfficialAliases      []string   `json:"official_aliases"`
	FoundInAggregators   bool       `json:"found_in_aggregators"`
	MatchType            MatchKind  `json:"match_type"`
	MatchScore           float64    `json:"match_score"`
	MatchedName          string     `json:"matched_name"`
	AggregatorSources    []string   `json:"aggregator_sources"`
	Review               bool       `json:"review"`
	IsBranch             bool       `json:"is_branch"`
	MatchedVia           MatchedVia `json:"matched_via"`
	MatchedOfficialAlias string     `json:"matched_official_alias"`
}

// EnrichedRecord is a canonical record plus its match outcome.
type EnrichedRecord struct {
	CanonicalRecord
	Match MatchOutcome `json:"match"`
}

// UnmatchedName is a source occurrence never claimed by any accepted match.
type UnmatchedName struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Key    string `json:"key"`
}

// RejectedMatch is a fuzzy near-miss that scored above the acceptance
// threshold but failed the significant-token guard. Kept for manual tuning.
type RejectedMatch struct {
	OfficialKey     string   `json:"official_key"`
	QueryKey        string   `json:"query_key"`
	CandidateKey    string   `json:"candidate_key"`
	Score           float64  `json:"score"`
	QueryTokens     []string `json:"query_significant_tokens"`
	CandidateTokens []string `json:"candidate_significant_tokens"`
	SharedTokens    []string `json:"shared_tokens"`
}

// Classification flags a name as a structural subdivision or a branch of a
// legal entity. A subunit is always also a branch.
type Classification struct {
	IsSubunit bool `json:"is_subunit"`
	IsBranch  bool `json:"is_branch"`
}

// DedupGroup is a set of canonical records denoting the same institution.
// Members retain every original record; the representative is the one with
// the latest issue date.
type DedupGroup struct {
	Key            string            `json:"group_key"`
	Representative CanonicalRecord   `json:"representative"`
	SourcesCount   int               `json:"sources_count"`
	Members        []CanonicalRecord `json:"sources"`
}

// Report holds the summary counters of one resolution run.
type Report struct {
	OfficialTotal         int            `json:"official_total"`
	AggregatorsUnionTotal int            `json:"aggregators_union_total"`
	MatchedExact          int            `json:"matched_exact"`
	MatchedFuzzy          int            `json:"matched_fuzzy"`
	MatchedTotal          int            `json:"matched_total"`
	UnmatchedOfficial     int            `json:"unmatched_official"`
	UnmatchedAggregators  int            `json:"unmatched_aggregators"`
	ReviewCount           int            `json:"review_count"`
	BranchCount           int            `json:"branch_count"`
	SkippedRecords        int            `json:"skipped_records"`
	Sources               map[string]int `json:"sources"`
}

// Resolution is the full output of one run over a registry and its sources.
type Resolution struct {
	Enriched  []EnrichedRecord `json:"official_enriched"`
	Union     []RawName        `json:"aggregators_union"`
	Unmatched []UnmatchedName  `json:"unmatched_aggregators"`
	Rejected  []RejectedMatch  `json:"fuzzy_rejected"`
	Report    Report           `json:"report"`
}
