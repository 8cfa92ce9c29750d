// Package faq is the static list of frequently asked questions.
package faq

type Entry struct {
	ID       string
	Question string
}

var entries = []Entry{
	{ID: "1", Question: "Which operating system does the iPhone run, and what is the latest version?"},
	{ID: "2", Question: "How is the Apple warranty handled, and where can I get warranty service?"},
	{ID: "3", Question: "Can I buy an iPhone in instalments?"},
}

func Entries() []Entry {
	return append([]Entry(nil), entries...)
}
