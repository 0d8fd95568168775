package ranking

// Weights holds every table and constant the scorer uses.
type Weights struct {
	// StopWords are question words never treated as key terms.
	StopWords map[string]bool

	// MinTermLength is the exclusive lower bound on key term length.
	MinTermLength int

	// LongTermLength is the exclusive lower bound for a "long" key term.
	LongTermLength int

	// LongTermWeight and ShortTermWeight multiply key term occurrences.
	LongTermWeight  int
	ShortTermWeight int

	// CitationWeight multiplies "§ N" citation matches.
	CitationWeight int

	// SectionBonus is added once when "section N" appears.
	SectionBonus int

	// SubsectionBonus is added once when a parenthesised token appears.
	SubsectionBonus int

	// DomainTerms weight occurrences of terms present in both the
	// question and the chunk.
	DomainTerms map[string]int

	// PairBonus is added when every PairTerms entry appears in both the
	// question and the chunk.
	PairTerms []string
	PairBonus int

	// AmountBonus is added once when a dollar amount or decimal appears.
	AmountBonus int

	// ProceduralTerms each add ProceduralBonus when present in the chunk.
	ProceduralTerms []string
	ProceduralBonus int
}

// DefaultWeights returns the scoring tables tuned for legal documents.
//
// PairTerms targets questions about compensation when several trustees
// serve on one estate, the dataset the weights were tuned on.
//
// ProceduralBonus is paid once per procedural term found in a chunk, not
// once per occurrence. A chunk repeating "shall" five times earns the
// bonus once.
func DefaultWeights() Weights {
	return Weights{
		StopWords:       defaultStopWords(),
		MinTermLength:   2,
		LongTermLength:  4,
		LongTermWeight:  3,
		ShortTermWeight: 2,
		CitationWeight:  10,
		SectionBonus:    5,
		SubsectionBonus: 2,
		DomainTerms: map[string]int{
			"payment":      8,
			"trustee":      10,
			"compensation": 8,
			"fee":          6,
			"multiple":     5,
			"assigned":     7,
			"receives":     8,
			"entitled":     7,
			"distribution": 6,
			"allocation":   6,
			"divided":      5,
			"shared":       5,
			"court":        4,
			"order":        4,
			"approval":     5,
			"bankruptcy":   8,
			"estate":       6,
			"debtor":       6,
			"creditor":     5,
			"proceeding":   4,
		},
		PairTerms:       []string{"multiple", "trustee"},
		PairBonus:       15,
		AmountBonus:     3,
		ProceduralTerms: []string{"shall", "must", "required", "entitled", "pursuant", "accordance"},
		ProceduralBonus: 2,
	}
}

func defaultStopWords() map[string]bool {
	words := []string{
		"what", "when", "where", "which", "that", "this", "they", "with",
		"from", "have", "been", "will", "the", "and", "for", "are", "but",
		"not", "you", "all", "can", "had", "her", "was", "one", "our",
		"out", "day", "get", "has", "him", "his", "how", "its", "may",
		"new", "now", "old", "see", "two", "way", "who", "boy", "did",
		"she", "use",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
