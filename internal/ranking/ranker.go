// Package ranking orders document chunks by lexical relevance to a question.
//
// Scoring is a weighted sum of keyword, citation and legal-vocabulary
// signals. It is deterministic and needs no model or index.
package ranking

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	wordPattern       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	citationPattern   = regexp.MustCompile(`§\s*\d+(?:\([a-z]\))?`)
	sectionPattern    = regexp.MustCompile(`section\s+\d+`)
	subsectionPattern = regexp.MustCompile(`\([\p{L}\p{N}_]+\)`)
	dollarPattern     = regexp.MustCompile(`\$[\d,]+`)
	decimalPattern    = regexp.MustCompile(`\b\d+\.\d+\b`)
)

// RankedChunk is a chunk with its score and original position.
type RankedChunk struct {
	Score int
	Index int
	Chunk string
}

// Ranker scores chunks against questions.
type Ranker struct {
	w Weights
}

// New creates a Ranker with the given weights.
func New(w Weights) *Ranker {
	return &Ranker{w: w}
}

// NewDefault creates a Ranker with DefaultWeights.
func NewDefault() *Ranker {
	return New(DefaultWeights())
}

// Rank returns every chunk ordered by descending score.
// Ties keep document order.
func (r *Ranker) Rank(question string, chunks []string) []string {
	scored := r.RankScored(question, chunks)
	out := make([]string, len(scored))
	for i, rc := range scored {
		out[i] = rc.Chunk
	}
	return out
}

// RankScored is Rank with scores and original indices attached.
func (r *Ranker) RankScored(question string, chunks []string) []RankedChunk {
	q := r.prepare(question)
	scored := make([]RankedChunk, len(chunks))
	for i, c := range chunks {
		scored[i] = RankedChunk{Score: r.score(q, c), Index: i, Chunk: c}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Score returns the relevance of one chunk to a question.
func (r *Ranker) Score(question, chunk string) int {
	return r.score(r.prepare(question), chunk)
}

// KeyTerms returns the question's key terms in order, duplicates kept.
func (r *Ranker) KeyTerms(question string) []string {
	return r.prepare(question).terms
}

type preparedQuestion struct {
	lower string
	terms []string
}

func (r *Ranker) prepare(question string) preparedQuestion {
	lower := strings.ToLower(question)
	var terms []string
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if utf8.RuneCountInString(word) > r.w.MinTermLength && !r.w.StopWords[word] {
			terms = append(terms, word)
		}
	}
	return preparedQuestion{lower: lower, terms: terms}
}

func (r *Ranker) score(q preparedQuestion, chunk string) int {
	lower := strings.ToLower(chunk)
	score := 0

	for _, term := range q.terms {
		n := strings.Count(lower, term)
		if n == 0 {
			continue
		}
		if utf8.RuneCountInString(term) > r.w.LongTermLength {
			score += n * r.w.LongTermWeight
		} else {
			score += n * r.w.ShortTermWeight
		}
	}

	score += len(citationPattern.FindAllStringIndex(chunk, -1)) * r.w.CitationWeight

	if sectionPattern.MatchString(lower) {
		score += r.w.SectionBonus
	}
	if subsectionPattern.MatchString(chunk) {
		score += r.w.SubsectionBonus
	}

	for term, weight := range r.w.DomainTerms {
		if strings.Contains(q.lower, term) {
			score += strings.Count(lower, term) * weight
		}
	}

	if len(r.w.PairTerms) > 0 && containsAll(q.lower, r.w.PairTerms) && containsAll(lower, r.w.PairTerms) {
		score += r.w.PairBonus
	}

	if dollarPattern.MatchString(chunk) || decimalPattern.MatchString(chunk) {
		score += r.w.AmountBonus
	}

	for _, term := range r.w.ProceduralTerms {
		if strings.Contains(lower, term) {
			score += r.w.ProceduralBonus
		}
	}

	return score
}

func containsAll(s string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}
