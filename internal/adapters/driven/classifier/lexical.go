package classifier

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

// Ensure Lexical implements the interface.
var _ driven.DocumentClassifier = (*Lexical)(nil)

// minSampleLength is the shortest text either classifier will judge.
const minSampleLength = 100

// Indicator tables. Each indicator counts once however often it appears.
var (
	strongIndicators = []string{
		"whereas", "wherefore", "heretofore", "hereinafter", "party of the first part",
		"party of the second part", "in witness whereof", "terms and conditions",
		"force and effect", "null and void", "ipso facto", "prima facie",
		"res ipsa loquitur", "quid pro quo", "habeas corpus", "amicus curiae",
		"statutory", "jurisdiction", "litigation", "plaintiff", "defendant",
		"appellant", "appellee", "breach of contract", "damages", "injunction",
		"cease and desist", "intellectual property", "copyright", "trademark",
		"patent", "confidentiality agreement", "non-disclosure", "indemnification",
		"liability", "negligence", "tort", "covenant", "warranty", "representation",
		"arbitration", "mediation", "settlement", "judgment", "decree",
		"subpoena", "deposition", "affidavit", "exhibit", "evidence",
	}

	mediumIndicators = []string{
		"contract", "agreement", "legal", "law", "clause", "section", "provision",
		"article", "amendment", "regulation", "statute", "code", "act",
		"compliance", "violation", "breach", "obligation", "right", "duty",
		"consent", "authorization", "license", "permit", "certificate",
		"court", "judge", "jury", "trial", "hearing", "proceeding",
		"motion", "brief", "pleading", "complaint", "answer", "counter-claim",
		"discovery", "interrogatory", "admission", "penalty", "fine",
		"sanction", "punishment", "sentence", "probation", "parole",
	}

	weakIndicators = []string{
		"shall", "may", "must", "required", "prohibited", "permitted",
		"entitled", "responsible", "accountable", "binding", "enforceable",
		"effective", "terminate", "expire", "renew", "modify", "amend",
		"notify", "inform", "disclose", "confidential", "proprietary",
		"ownership", "title", "interest", "benefit", "consideration",
		"payment", "compensation", "fee", "cost", "expense",
	}

	structureIndicators = []string{
		"article i", "article 1", "section 1", "section i", "clause",
		"subsection", "paragraph", "subparagraph", "exhibit a", "exhibit 1",
		"schedule a", "schedule 1", "appendix a", "appendix 1",
		"witnesseth", "recitals", "definitions", "interpretation",
	}

	documentTypes = []string{
		"lease agreement", "rental agreement", "employment contract",
		"service agreement", "purchase agreement", "sales contract",
		"partnership agreement", "shareholders agreement", "merger agreement",
		"acquisition agreement", "licensing agreement", "franchise agreement",
		"joint venture agreement", "non-compete agreement", "severance agreement",
		"settlement agreement", "plea agreement", "divorce decree",
		"custody agreement", "will and testament", "trust agreement",
		"power of attorney", "mortgage", "deed", "title", "lien",
		"security agreement", "promissory note", "loan agreement",
		"credit agreement", "insurance policy", "warranty",
		"terms of service", "privacy policy", "user agreement",
		"software license", "copyright license", "trademark license",
		"patent license", "assignment agreement", "transfer agreement",
	}
)

// Indicator weights and thresholds.
const (
	strongWeight    = 10
	mediumWeight    = 5
	weakWeight      = 2
	structureWeight = 8
	docTypeWeight   = 15

	legalThreshold     = 8.0
	confidenceDivisor  = 20.0
	maxNormalisedScore = 100.0
	maxIndicators      = 5
)

// Lexical classifies text by counting legal vocabulary. It needs no
// network access and backs the completion-based classifier.
type Lexical struct{}

// NewLexical creates a lexical classifier.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Classify judges the same sample the completion classifier would see.
func (l *Lexical) Classify(_ context.Context, chunks []string) domain.Classification {
	return l.ClassifyText(sample(chunks))
}

// ClassifyText scores text per 100 words against the indicator tables.
func (l *Lexical) ClassifyText(text string) domain.Classification {
	if len(strings.TrimSpace(text)) < minSampleLength {
		return domain.Classification{
			DocumentType: "Unknown",
			Explanation:  "Not enough text to classify",
		}
	}

	lower := strings.ToLower(text)
	strong := present(lower, strongIndicators)
	medium := present(lower, mediumIndicators)
	weak := present(lower, weakIndicators)
	structure := present(lower, structureIndicators)
	types := present(lower, documentTypes)

	score := float64(len(strong)*strongWeight +
		len(medium)*mediumWeight +
		len(weak)*weakWeight +
		len(structure)*structureWeight +
		len(types)*docTypeWeight)

	words := float64(len(strings.Fields(text)))
	normalised := math.Min(score/math.Max(words/100, 1), maxNormalisedScore)
	isLegal := normalised >= legalThreshold

	var indicators []string
	indicators = append(indicators, head(strong, 3)...)
	indicators = append(indicators, head(medium, 3)...)
	indicators = append(indicators, head(types, 2)...)

	return domain.Classification{
		IsLegal:      isLegal,
		Confidence:   math.Min(normalised/confidenceDivisor, 1),
		DocumentType: lexicalDocumentType(isLegal, types),
		Explanation:  fmt.Sprintf("Lexical analysis scored %.1f legal indicators per 100 words", normalised),
		Indicators:   head(indicators, maxIndicators),
	}
}

func lexicalDocumentType(isLegal bool, types []string) string {
	switch {
	case len(types) > 0:
		return titleCase(types[0])
	case isLegal:
		return "Legal Document"
	default:
		return "Non-legal"
	}
}

// present returns the indicators found in text, in table order.
func present(text string, indicators []string) []string {
	var found []string
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			found = append(found, ind)
		}
	}
	return found
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
