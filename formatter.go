package cencenelec

// PubDateLayout is the layout used when describing publication dates.
const PubDateLayout = "2006-01-02 15:04:05"

// FormatDocumentForLog describes a found document in a single line.
// It is shared by everything that reports documents for diagnostics.
func FormatDocumentForLog(doc *Document) string {
	return "Find document | name: " + doc.Title +
		" | link to web: " + doc.WebLink +
		" | publication date: " + doc.PubDate.Format(PubDateLayout)
}
