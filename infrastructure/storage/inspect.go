package storage

import (
	"strings"
	"time"

	"github.com/mama165/sdk-go/database"
)

// InspectMapper renders chat and message records for the badger inspector.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	switch {
	case strings.HasPrefix(key, chatPrefix):
		c, err := unmarshalChat(val)
		if err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "CHAT"
		row.EntityID = c.ID
		row.Timestamp = c.StartedAt.Format(time.RFC3339)
		row.Detail = c.ClientName + " <" + c.ClientEmail + "> " + string(c.Status)
	case strings.HasPrefix(key, messagePrefix):
		m, err := unmarshalMessage(val)
		if err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "MESSAGE"
		row.EntityID = m.ChatID
		row.Timestamp = m.CreatedAt.Format(time.RFC3339)
		row.Detail = m.Sender + ": " + m.Text
	}
	return row
}
