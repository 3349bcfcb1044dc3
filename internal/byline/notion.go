package byline

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// NotionClipper handles clipping extracted articles to a Notion database.
type NotionClipper struct {
	client *notionapi.Client
	dbID   notionapi.DatabaseID
}

// NewNotionClipper creates a new Notion clipper.
// databaseID may be empty when the caller creates the database afterwards
// via CreateDatabase.
func NewNotionClipper(token string, databaseID string) (*NotionClipper, error) {
	return NewNotionClipperWithClient(token, databaseID, nil)
}

// NewNotionClipperWithClient creates a Notion clipper with an injected
// HTTP client (used by tests).
func NewNotionClipperWithClient(token string, databaseID string, httpClient *http.Client) (*NotionClipper, error) {
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN is required")
	}

	var opts []notionapi.ClientOption
	if httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(httpClient))
	}

	nc := &NotionClipper{
		client: notionapi.NewClient(notionapi.Token(token), opts...),
	}
	if databaseID != "" {
		nc.dbID = notionapi.DatabaseID(databaseID)
	}

	return nc, nil
}

// CreateDatabase creates a new Notion database for article clipping.
func (nc *NotionClipper) CreateDatabase(ctx context.Context, pageID string) error {
	if pageID == "" {
		return fmt.Errorf("NOTION_PAGE_ID is required to create a new database")
	}

	dbRequest := &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(pageID),
		},
		Title: []notionapi.RichText{
			{
				Text: &notionapi.Text{
					Content: "Byline Article Clippings",
				},
			},
		},
		Properties: notionapi.PropertyConfigs{
			"Title": notionapi.TitlePropertyConfig{
				Type: notionapi.PropertyConfigTypeTitle,
			},
			"URL": notionapi.URLPropertyConfig{
				Type: notionapi.PropertyConfigTypeURL,
			},
			"Author": notionapi.RichTextPropertyConfig{
				Type: notionapi.PropertyConfigTypeRichText,
			},
			"Published": notionapi.DatePropertyConfig{
				Type: notionapi.PropertyConfigTypeDate,
			},
			"Summary": notionapi.RichTextPropertyConfig{
				Type: notionapi.PropertyConfigTypeRichText,
			},
		},
	}

	db, err := nc.client.Database.Create(ctx, dbRequest)
	if err != nil {
		return fmt.Errorf("failed to create Notion database: %w", err)
	}

	nc.dbID = notionapi.DatabaseID(db.ID)
	return nil
}

// ClipEntry clips a single article entry to Notion.
func (nc *NotionClipper) ClipEntry(ctx context.Context, author string, e Entry) error {
	if nc.dbID == "" {
		return fmt.Errorf("database ID not set")
	}

	published := notionapi.Date(e.Pubdate)
	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: e.Title,
					},
				},
			},
		},
		"URL": notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  e.URL,
		},
		"Author": notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: author,
					},
				},
			},
		},
		"Published": notionapi.DateProperty{
			Type: notionapi.PropertyTypeDate,
			Date: &notionapi.DateObject{
				Start: &published,
			},
		},
	}

	if e.Summary != "" {
		properties["Summary"] = notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: truncateText(e.Summary, 2000), // Notion limit
					},
				},
			},
		}
	}

	pageRequest := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: nc.dbID,
		},
		Properties: properties,
	}

	_, err := nc.client.Page.Create(ctx, pageRequest)
	if err != nil {
		return fmt.Errorf("failed to clip entry: %w", err)
	}

	return nil
}

// ClipFeed clips every entry of a parsed author feed to Notion.
// Individual failures are collected; the first one is returned after
// attempting all entries.
func (nc *NotionClipper) ClipFeed(ctx context.Context, data *FeedData) error {
	var firstErr error
	for _, e := range data.Entries {
		if err := nc.ClipEntry(ctx, data.Author, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// truncateText truncates text to maxLen characters (rune-aware).
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
