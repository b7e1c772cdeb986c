package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	if o.format == "json" {
		return o.printJSON(data)
	}
	return o.printText(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		_ = o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprint(o.w, pterm.Info.Sprintln(msg))
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case response.MessageResult:
		o.printMessageResult(v)
	case response.GameStatus:
		return o.printGameStatus(v)
	case response.History:
		return o.printHistory(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		return o.printJSON(data)
	}
	return nil
}

func (o *Output) printMessageResult(r response.MessageResult) {
	if r.Handled {
		fmt.Fprint(o.w, pterm.Success.Sprintln("Command accepted"))
		return
	}
	fmt.Fprint(o.w, pterm.Warning.Sprintln("Not a game command"))
}

func (o *Output) printGameStatus(g response.GameStatus) error {
	fmt.Fprint(o.w, pterm.DefaultSection.Sprintf("Bhabhi in %s", g.Room))
	fmt.Fprintf(o.w, "Phase: %s\n", g.Phase)
	if g.LeadSuit != nil {
		fmt.Fprintf(o.w, "Lead: %s\n", *g.LeadSuit)
	}
	fmt.Fprintf(o.w, "Tricks: %d\n", g.Tricks)

	data := pterm.TableData{{"Seat", "Player", "Cards", ""}}
	for i, s := range g.Seats {
		var marks []string
		if g.Dealer != nil && g.Dealer.ID == s.Player.ID {
			marks = append(marks, "dealer")
		}
		if g.Turn != nil && g.Turn.ID == s.Player.ID {
			marks = append(marks, pterm.LightGreen("turn"))
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			playerLabel(s.Player),
			strconv.Itoa(s.CardCount),
			strings.Join(marks, ", "),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(o.w, table)

	if len(g.Table) > 0 {
		plays := make([]string, len(g.Table))
		for i, t := range g.Table {
			plays[i] = t.Player.DisplayName + ":" + t.Card
		}
		fmt.Fprintf(o.w, "Table: %s\n", strings.Join(plays, "  "))
	}
	return nil
}

func (o *Output) printHistory(h response.History) error {
	if len(h.Rounds) == 0 {
		fmt.Fprint(o.w, pterm.Info.Sprintfln("No finished rounds in %s", h.Room))
		return nil
	}

	data := pterm.TableData{{"Ended", "Result", "Players", "Tricks", "ID"}}
	for _, r := range h.Rounds {
		result := r.Reason
		if r.Reason == "completed" {
			result = "all hands empty"
			if r.Holder != nil {
				result = fmt.Sprintf("%s left with %d", playerLabel(*r.Holder), r.CardsLeft)
			}
		}
		data = append(data, []string{
			r.EndedAt.Format("2006-01-02 15:04"),
			result,
			strconv.Itoa(len(r.Players)),
			strconv.Itoa(r.Tricks),
			r.ID,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(o.w, table)
	return nil
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Active rooms: %d\n", h.Rooms)
}

func playerLabel(p response.Player) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}
