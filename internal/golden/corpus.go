package golden

// Corpus is a named record directory. The harness reads the grid-derived
// "automated" corpus and the hand-curated "expected" corpus through the same
// Store loader.
type Corpus struct {
	Name  string
	Store *Store
}

// Corpus names.
const (
	CorpusAutomated = "automated"
	CorpusExpected  = "expected"
)

// NewCorpus returns a corpus named name over dir, loading into scratch.
func NewCorpus(name, dir, scratch string) Corpus {
	return Corpus{Name: name, Store: NewStore(dir, scratch)}
}
