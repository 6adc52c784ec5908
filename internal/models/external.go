package models

// FeedKind identifies which CSV feed an external item came from. Each
// kind carries its own active-label selection set.
type FeedKind string

const (
	FeedEvents      FeedKind = "events"
	FeedHolidays    FeedKind = "holidays"
	FeedObservances FeedKind = "observances"
)

// Fallback display strings for records with missing fields. Records
// missing Subject or Category still match filters; only the display
// text is substituted.
const (
	UntitledSubject    = "Untitled Event"
	UncategorizedLabel = "Uncategorized"
	GeneralSubcategory = "General"
)

// ExternalItem is a read-only imported record (event, holiday, or
// observance). The full set is replaced wholesale on every feed load;
// nothing in the core ever mutates one.
type ExternalItem struct {
	Subject     string `json:"subject"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	StartDate   string `json:"start_date"` // as supplied by the feed, any parseable format
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// DisplaySubject returns the record's subject or the untitled fallback.
func (e ExternalItem) DisplaySubject() string {
	if e.Subject == "" {
		return UntitledSubject
	}
	return e.Subject
}

// DisplayCategory returns the record's category or the uncategorized
// fallback.
func (e ExternalItem) DisplayCategory() string {
	if e.Category == "" {
		return UncategorizedLabel
	}
	return e.Category
}

// SubcategoryOrGeneral returns the observance subcategory key used for
// selection, substituting "General" when the column is empty.
func (e ExternalItem) SubcategoryOrGeneral() string {
	if e.Subcategory == "" {
		return GeneralSubcategory
	}
	return e.Subcategory
}
