package dialogue

import (
	"bytes"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/tbxark/locationagent/types"
)

// RenderText flattens messages for text-only surfaces. Card items become a markdown
// table and buttons a trailing options line.
func RenderText(messages []types.Message) (string, error) {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg.Text != "" {
			parts = append(parts, msg.Text)
		}
		if msg.Card == nil {
			continue
		}
		text, err := renderCard(msg.Card)
		if err != nil {
			return "", err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func renderCard(card *types.Card) (string, error) {
	var sb strings.Builder
	for _, line := range []string{card.Title, card.Subtitle} {
		if line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	if len(card.Items) > 0 {
		var buf bytes.Buffer
		table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
		table.Header("Location", "Details")
		for _, item := range card.Items {
			if err := table.Append([]string{item.Title, item.Subtitle}); err != nil {
				return "", err
			}
		}
		if err := table.Render(); err != nil {
			return "", err
		}
		sb.WriteString(buf.String())
	}
	if len(card.Buttons) > 0 {
		values := make([]string, 0, len(card.Buttons))
		for _, b := range card.Buttons {
			values = append(values, "["+b.Title+"]")
		}
		sb.WriteString(strings.Join(values, " "))
		sb.WriteString("\n")
	}
	if card.RequestLocation {
		sb.WriteString("(share location)\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
