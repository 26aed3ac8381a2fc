package googleapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autopost/internal/document"
)

type docsResponse struct {
	Title string    `json:"title"`
	Body  *docsBody `json:"body"`
	Tabs  []docsTab `json:"tabs"`
}

type docsTab struct {
	TabProperties struct {
		Title string `json:"title"`
	} `json:"tabProperties"`
	DocumentTab struct {
		Body *docsBody `json:"body"`
	} `json:"documentTab"`
	ChildTabs []docsTab `json:"childTabs"`
}

type docsBody struct {
	Content []struct {
		Paragraph *struct {
			Elements []struct {
				TextRun *struct {
					Content string `json:"content"`
				} `json:"textRun"`
			} `json:"elements"`
		} `json:"paragraph"`
	} `json:"content"`
}

// FetchDocument downloads a Google Doc with all of its tabs. Documents
// without explicit tabs come back as a single unnamed tab holding the body.
func (c *Client) FetchDocument(ctx context.Context, documentID string) (*document.Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, errors.New("document id required")
	}
	endpoint := fmt.Sprintf("%s/v1/documents/%s?includeTabsContent=true", c.docsBaseURL, documentID)

	var payload docsResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", documentID, err)
	}

	doc := &document.Document{Title: payload.Title}
	appendTabs(doc, payload.Tabs)
	if len(doc.Tabs) == 0 && payload.Body != nil {
		doc.Tabs = append(doc.Tabs, document.Tab{Paragraphs: decodeBody(payload.Body)})
	}
	return doc, nil
}

func appendTabs(doc *document.Document, tabs []docsTab) {
	for _, tab := range tabs {
		doc.Tabs = append(doc.Tabs, document.Tab{
			Title:      tab.TabProperties.Title,
			Paragraphs: decodeBody(tab.DocumentTab.Body),
		})
		appendTabs(doc, tab.ChildTabs)
	}
}

func decodeBody(body *docsBody) []document.Paragraph {
	if body == nil {
		return nil
	}
	var paragraphs []document.Paragraph
	for _, element := range body.Content {
		if element.Paragraph == nil {
			continue
		}
		paragraph := document.Paragraph{}
		for _, part := range element.Paragraph.Elements {
			if part.TextRun == nil {
				continue
			}
			paragraph.Runs = append(paragraph.Runs, part.TextRun.Content)
		}
		paragraphs = append(paragraphs, paragraph)
	}
	return paragraphs
}
