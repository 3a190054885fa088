package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"profiler-viz/chart"
	"profiler-viz/domain"
	"profiler-viz/repositories"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const contentWidth = 40

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	profile := flag.String("profile", "", "Profile to lay out (empty lists profiles)")
	flag.Parse()

	// Read-only so a running dashboard can keep the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repository := repositories.NewMessageRepository(db, slog.Default(), nil)

	if *profile == "" {
		profiles, err := repository.Profiles()
		if err != nil {
			log.Fatal(err)
		}
		header("PROFILES")
		for _, p := range profiles {
			fmt.Println(p)
		}
		return
	}

	recorded, err := repository.GetMessages(*profile)
	if err != nil {
		log.Fatal(err)
	}
	messages := lo.Map(recorded, func(r domain.RecordedMessage, _ int) domain.Message {
		return r.Message
	})
	layout := chart.NewLayout(messages, chart.DefaultWidth, chart.DefaultHeight)

	header(fmt.Sprintf("%s // %d messages // %d sources", *profile, len(layout.Bars), len(layout.Sources)))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Index", "Source", "X", "Y", "Width", "Height", "Fill", "Message ID", "Content"})
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

	for _, bar := range layout.Bars {
		table.Append([]string{
			strconv.Itoa(bar.Index + 1),
			bar.Source,
			fmt.Sprintf("%.1f", bar.X),
			fmt.Sprintf("%.1f", bar.Y),
			fmt.Sprintf("%.1f", bar.Width),
			fmt.Sprintf("%.1f", bar.Height),
			bar.Fill,
			bar.Message.ID.String()[:8],
			truncate(bar.Message.Content, contentWidth),
		})
	}
	table.Render()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	return lo.Substring(s, 0, uint(n))
}

func header(title string) {
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" " + title + " "))
}
