package notion

// Property names of the study log database.
const (
	PropertyTaskName = "Task/Quest Name"
	PropertyStatus   = "Status"
	PropertyMistakes = "Mistakes & Corrections"
	PropertyRewards  = "Boss Battles & Rewards"
	PropertyDate     = "Date"
)

// Text is the text object of a rich text item
type Text struct {
	Content string `json:"content"`
}

// RichText is one element of a title or rich_text array
type RichText struct {
	Text      Text   `json:"text"`
	PlainText string `json:"plain_text,omitempty"`
}

// SelectOption is the value of a select property
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is the value of a date property
type DateValue struct {
	Start string `json:"start"`
}

// Property is a page property value. Only the field matching the property
// type is set.
type Property struct {
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
}

// Parent identifies the database a page is created in
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// CreatePageRequest is the body of POST /pages
type CreatePageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

// Page is a database row as returned by the query endpoint
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// QueryResponse is the body of POST /databases/{id}/query
type QueryResponse struct {
	Object     string `json:"object"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}
