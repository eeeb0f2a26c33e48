package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"duochat/domain"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// timeNow is a seam so session-expiry checks stay deterministic in tests.
var timeNow = time.Now

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "commands: /users  /open <n>  /reply <n> <text>  /delete <n> [all]  /quit")
	fmt.Fprintln(w, "anything else is sent to the open conversation")
}

func renderDirectory(w io.Writer, users []domain.Participant) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Email"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, u := range users {
		table.Append([]string{strconv.Itoa(i + 1), u.DisplayName, u.Email})
	}
	table.Render()
}

// renderConversation prints the active conversation the way the store sees
// it: tombstones keep their slot, hidden-for-viewer messages disappear.
func renderConversation(w io.Writer, me domain.ParticipantID, conv domain.Conversation) {
	fmt.Fprintln(w, "----")
	for i, msg := range conv.Messages {
		prefix := fmt.Sprintf("%3d ", i+1)

		switch msg.Deletion {
		case domain.ViewHiddenForViewer:
			continue
		case domain.ViewTombstoned:
			fmt.Fprintln(w, prefix+color.Gray.Sprint("Message deleted"))
			continue
		}

		if msg.ReplyTo != nil {
			fmt.Fprintln(w, "    "+color.Gray.Sprintf("> %s: %s", msg.ReplyTo.Sender, msg.ReplyTo.Text))
		}

		stamp := msg.CreatedAt.Local().Format(time.Kitchen)
		if msg.Sender == me {
			fmt.Fprintln(w, prefix+color.Blue.Sprintf("me: %s", msg.Text)+
				color.Gray.Sprintf("  %s %s", stamp, ticks(msg.Status)))
		} else {
			fmt.Fprintln(w, prefix+color.Green.Sprintf("%s: %s", msg.Sender, msg.Text)+
				color.Gray.Sprintf("  %s", stamp))
		}
	}
}

func ticks(s domain.Status) string {
	switch s {
	case domain.StatusSeen:
		return "✓✓ seen"
	case domain.StatusDelivered:
		return "✓✓"
	default:
		return "✓"
	}
}
