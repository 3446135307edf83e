package dossier

// InputDocument is one uploaded PDF of a batch. The extracted text is
// cached after the first extraction; the document is immutable after that.
type InputDocument struct {
	Filename string
	Data     []byte

	text      string
	extracted bool
}

// SetText records the extracted text exactly once. Later calls are ignored
// so repeated extraction stays idempotent.
func (d *InputDocument) SetText(text string) {
	if d.extracted {
		return
	}
	d.text = text
	d.extracted = true
}

// Text returns the cached extracted text and whether extraction already ran.
func (d *InputDocument) Text() (string, bool) {
	return d.text, d.extracted
}

// ClassifiedDocument is an InputDocument with its single assigned category,
// its arrival index and its within-category sort rank.
type ClassifiedDocument struct {
	Doc      *InputDocument
	Category Category
	Index    int
	Rank     int
}

// Group holds every classified document of one category in final merge
// order.
type Group struct {
	Category Category
	Docs     []*ClassifiedDocument
}

// Filenames returns the original filenames of the group members, in order.
func (g Group) Filenames() []string {
	names := make([]string, 0, len(g.Docs))
	for _, d := range g.Docs {
		names = append(names, d.Doc.Filename)
	}
	return names
}
