package classify

import (
	"testing"

	"github.com/baditaflorin/go_entity_resolution/internal/adapters/normalizer"
	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
)

func TestClassify(t *testing.T) {
	c := New(rules.Default(), normalizer.NewTextNormalizer())

	tests := []struct {
		name      string
		input     string
		isSubunit bool
		isBranch  bool
	}{
		{
			name:      "Faculty of a university",
			input:     "Факультет экономики Московского государственного университета",
			isSubunit: true,
			isBranch:  true,
		},
		{
			name:      "Freestanding Moscow institute",
			input:     "Московский физико-технический институт",
			isSubunit: false,
			isBranch:  false,
		},
		{
			name:      "Institute belonging to a parent abbreviation",
			input:     "Юридический институт РУДН",
			isSubunit: true,
			isBranch:  true,
		},
		{
			name:      "Institute with a genitive parent",
			input:     "Институт статистики университета",
			isSubunit: true,
			isBranch:  true,
		},
		{
			name:      "Branch office",
			input:     "Филиал МГУ в г. Севастополе",
			isSubunit: false,
			isBranch:  true,
		},
		{
			name:      "Representative office, inflected",
			input:     "Представительство университета в Казани",
			isSubunit: false,
			isBranch:  true,
		},
		{
			name:      "Independent institute exception",
			input:     "Институт международных экономических связей",
			isSubunit: false,
			isBranch:  false,
		},
		{
			name:      "Plain university",
			input:     "Российский государственный гуманитарный университет",
			isSubunit: false,
			isBranch:  false,
		},
		{
			name:      "Empty name",
			input:     "",
			isSubunit: false,
			isBranch:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.input)
			if got.IsSubunit != tc.isSubunit || got.IsBranch != tc.isBranch {
				t.Errorf("expected subunit=%v branch=%v, got subunit=%v branch=%v",
					tc.isSubunit, tc.isBranch, got.IsSubunit, got.IsBranch)
			}
		})
	}
}

func TestSubunitImpliesBranch(t *testing.T) {
	c := New(rules.Default(), normalizer.NewTextNormalizer())

	inputs := []string{
		"Факультет экономики Московского государственного университета",
		"Школа дизайна ВШЭ",
		"Институт образования ВШЭ",
	}

	for _, in := range inputs {
		got := c.Classify(in)
		if got.IsSubunit && !got.IsBranch {
			t.Errorf("%q classified as subunit but not branch", in)
		}
	}
}
