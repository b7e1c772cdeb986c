package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/transport/sse"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream messages sent by the bot",
		Long: `Connect to an SSE endpoint and stream the bot's messages in real time.

Press Ctrl+C to disconnect.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "room",
		Short: "Stream the messages posted in the room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Room == "" {
				return errNoRoom
			}
			return streamEvents(cmd, RoomPath(cfg.Room, "events"))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dm",
		Short: "Stream the private messages sent to a player",
		Long: `Stream the private messages sent to the player given with --as.

Dealt hands and "!hand" replies only reach a player while this stream is open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Player == "" {
				return errNoPlayer
			}
			return streamEvents(cmd, PlayerPath(cfg.Player, "events"))
		},
	})

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

func streamEvents(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	w := cmd.OutOrStdout()
	err = readEvents(resp.Body, func(evt SSEEvent) {
		printEvent(w, evt, cfg.Output == "json")
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if cfg.Output != "json" {
		fmt.Fprint(w, pterm.Info.Sprintln("Disconnected"))
	}
	return nil
}

// readEvents parses an SSE stream and calls fn for every complete event
func readEvents(r io.Reader, fn func(SSEEvent)) error {
	scanner := bufio.NewScanner(r)
	var current string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			current = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if current != "" {
				fn(SSEEvent{Event: current, Data: strings.Join(dataLines, "\n")})
			}
			current = ""
			dataLines = nil
		}
	}
	return scanner.Err()
}

func printEvent(w io.Writer, evt SSEEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(evt)
		fmt.Fprintln(w, string(data))
		return
	}

	var msg sse.EventJSON
	if err := json.Unmarshal([]byte(evt.Data), &msg); err != nil || msg.Text == "" {
		fmt.Fprint(w, pterm.Info.Sprintfln("%s: %s", evt.Event, evt.Data))
		return
	}

	timestamp := msg.Timestamp.Local().Format("15:04:05")
	fmt.Fprintf(w, "%s %s\n%s\n\n", pterm.Gray("["+timestamp+"]"), pterm.LightCyan(evt.Event), msg.Text)
}
