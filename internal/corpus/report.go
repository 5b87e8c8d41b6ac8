package corpus

// Report is the structured build summary handed to the surrounding CLI. The
// core produces data only; formatting and printing belong to the caller.
type Report struct {
	Articles int
	Phantoms int

	Buckets []BucketOccupancy

	ParseErrors   []ParseFailure
	Conflicts     []TitleConflict
	SelfCitations []SelfCitation
	BadCitations  []BadCitation
}

// BucketOccupancy reports member count against the configured capacity.
// Capacity zero means uncapped.
type BucketOccupancy struct {
	Name     string
	Members  int
	Capacity int
}

// ParseFailure records a source file excluded from the corpus.
type ParseFailure struct {
	Path   string
	Reason string
}

// TitleConflict records a source file that claimed an already-written
// canonical title. The first file in stable order wins; the rest are
// excluded rather than silently merged, and must be surfaced prominently
// because a rejected file is content a player submitted in good faith.
type TitleConflict struct {
	Title      string
	WinnerPath string
	LoserPath  string
	Player     string
}

// SelfCitation flags an article citing its own title. Informational only:
// the game moderator arbitrates whether the exception was permitted.
type SelfCitation struct {
	Title  string
	Player string
	Label  string
}

// BadCitation records a citation whose target title normalizes to nothing
// and therefore cannot name an entry.
type BadCitation struct {
	Path      string
	RawTarget string
}
