package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"
	"webchat/domain/chat"
	"webchat/infrastructure/storage"
	"webchat/internal"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Prints the open chats of a store, the server may keep running.
func main() {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	noColour := flag.Bool("no-colour", false, "Disable coloured output")
	flag.Parse()

	location, err := chat.LoadLocation(config.Timezone)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	options := config.StorageOptions()
	options.ReadOnly = true
	repository, err := storage.Open(ctx, logs.GetLoggerFromString("WARN"), options)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer repository.Close()

	summaries, err := openSummaries(ctx, repository)
	if err != nil {
		log.Fatal(err)
	}
	render(os.Stdout, summaries, location, !*noColour)
}

func openSummaries(ctx context.Context, repository storage.IChatRepository) ([]chat.Summary, error) {
	chats, err := repository.ListChatsByStatus(ctx, chat.StatusOpen)
	if err != nil {
		return nil, fmt.Errorf("list open chats: %w", err)
	}
	summaries := make([]chat.Summary, 0, len(chats))
	for _, c := range chats {
		messages, err := repository.GetMessages(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("messages of %s: %w", c.ID, err)
		}
		summary := chat.Summary{Chat: c}
		if last, ok := chat.LastMessage(messages); ok {
			summary.LastMessage = &last
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func render(w io.Writer, summaries []chat.Summary, location *time.Location, colours bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Protocol", "Client", "Email", "Started", "Status", "Last message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, s := range summaries {
		status := string(s.Chat.Status)
		if colours {
			status = color.Green.Render(status)
		}
		last := "-"
		if s.LastMessage != nil {
			last = fmt.Sprintf("[%s] %s: %s", chat.FormatTime(s.LastMessage.CreatedAt, location), s.LastMessage.Sender, s.LastMessage.Text)
		}
		table.Append([]string{
			s.Chat.ID,
			s.Chat.ClientName,
			s.Chat.ClientEmail,
			chat.FormatDateTime(s.Chat.StartedAt, location),
			status,
			last,
		})
	}
	table.Render()
}
