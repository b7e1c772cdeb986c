package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/request"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/response"
)

var (
	errNoRoom   = errors.New("room is required (--room or BHABHI_ROOM)")
	errNoPlayer = errors.New("player is required (--as or BHABHI_PLAYER)")
)

func newSayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text...>",
		Short: "Post a chat message into the room",
		Long: `Post a chat message into the room as the player given with --as.

Examples:
  bhabhi say '!bhabhi new'
  bhabhi say --as 111@s.whatsapp.net '!join'
  bhabhi say --as 111@s.whatsapp.net '!play 10H'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Room == "" {
				return errNoRoom
			}
			if cfg.Player == "" {
				return errNoPlayer
			}

			req := request.MessageRequest{
				Sender:      cfg.Room,
				Participant: cfg.Player,
				PushName:    cfg.Name,
				Text:        strings.Join(args, " "),
			}
			var result response.MessageResult
			if err := client.Post(RoomPath(cfg.Room, "messages"), req, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the room's game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Room == "" {
				return errNoRoom
			}

			var result response.GameStatus
			if err := client.Get(RoomPath(cfg.Room, "game"), &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the room's finished rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Room == "" {
				return errNoRoom
			}

			var result response.History
			path := fmt.Sprintf("%s?limit=%d", RoomPath(cfg.Room, "history"), limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rounds to show (1-100)")

	return cmd
}
