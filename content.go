package tgmarkup

// ContentTrace tracks the source and metadata of content.
type ContentTrace struct {
	SourceType string
	Extra      map[string]interface{}
}

// Text represents a text message segment ready to be sent.
//
// Text and Entities are the entity-based form; Markup is the same message
// reconstructed for the parse mode named by ParseMode.
type Text struct {
	Text      string
	Entities  []MessageEntity
	Markup    string
	ParseMode string
	ContentTrace
}
