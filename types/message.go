package types

import "strings"

// Input is one inbound user turn. Point is set when the host surface delivered a
// native location share instead of, or next to, text.
type Input struct {
	Text  string `json:"text,omitempty"`
	Point *Point `json:"point,omitempty"`
}

func (in Input) Trimmed() string {
	return strings.TrimSpace(in.Text)
}

type CardLayout string

const (
	LayoutCarousel CardLayout = "carousel"
	LayoutList     CardLayout = "list"
)

type Button struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type CardItem struct {
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// Card is a presentational hint. Hosts render it however their surface allows and
// send the chosen button value back as plain text.
type Card struct {
	Layout          CardLayout `json:"layout,omitempty"`
	Title           string     `json:"title,omitempty"`
	Subtitle        string     `json:"subtitle,omitempty"`
	Items           []CardItem `json:"items,omitempty"`
	Buttons         []Button   `json:"buttons,omitempty"`
	RequestLocation bool       `json:"request_location,omitempty"`
}

type Message struct {
	Text string `json:"text,omitempty"`
	Card *Card  `json:"card,omitempty"`
}

func TextMessage(text string) Message {
	return Message{Text: text}
}

func CardMessage(card *Card) Message {
	return Message{Card: card}
}
