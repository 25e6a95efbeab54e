package readinglist

import "strings"

// Article is one resolved lookup: the canonical title, not the raw query.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Record is a topic heading plus its articles in lookup order.
type Record struct {
	Topic    string
	Articles []Article
}

// Markdown renders r in the reading-file format:
//
//	## <topic> \n
//	* [<title>](<url>) \n   (one per article)
//	\n\n
func (r Record) Markdown() string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(r.Topic)
	b.WriteString(" \n")
	for _, a := range r.Articles {
		b.WriteString("* [")
		b.WriteString(a.Title)
		b.WriteString("](")
		b.WriteString(a.URL)
		b.WriteString(") \n")
	}
	b.WriteString("\n\n")
	return b.String()
}
