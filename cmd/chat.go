package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"cinemate/internal/app"
	"cinemate/internal/chat"
	"cinemate/internal/recommend"
)

var (
	chatMessage   string
	chatRecommend bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk about movies with the assistant",
	Long: `Chat answers movie questions using catalog lookups for any titles you mention.
Without --message it starts an interactive session; type "exit" to leave.`,
	Example: `  cinemate chat
  cinemate chat --message "Is Heat worth watching?"
  cinemate chat --recommend --message "cozy mysteries for a rainy night"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		transcript := chat.NewTranscript()
		slog.Debug("Chat session started", "session", transcript.ID())

		if chatMessage != "" {
			ask(cmd, svc, transcript, chatMessage)
			return maybeSave(cmd, svc, "chat", chatMessage, transcript.Turns())
		}

		if err := chatLoop(cmd, svc, transcript); err != nil {
			return err
		}
		if transcript.Len() == 0 {
			return nil
		}
		return maybeSave(cmd, svc, "chat", transcript.Turns()[0].Content, transcript.Turns())
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Ask a single question and exit")
	chatCmd.Flags().BoolVar(&chatRecommend, "recommend", false, "Also list recommendations for each message")
	chatCmd.Flags().BoolVar(&saveResult, "save", false, "Save the transcript to the configured output location")
	rootCmd.AddCommand(chatCmd)
}

func chatLoop(cmd *cobra.Command, svc *app.Service, transcript *chat.Transcript) error {
	fmt.Println(titleStyle.Render("🎬 Movie chat"))

	for {
		var message string
		err := huh.NewInput().
			Title("You").
			Placeholder("Ask about a movie, or type exit").
			Value(&message).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		message = strings.TrimSpace(message)
		switch strings.ToLower(message) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		ask(cmd, svc, transcript, message)
		if cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
	}
}

func ask(cmd *cobra.Command, svc *app.Service, transcript *chat.Transcript, message string) {
	transcript.Append(chat.RoleUser, message)

	type answer struct {
		reply string
		recs  []recommend.Recommendation
	}
	res := withSpinner("Thinking...", func() answer {
		if chatRecommend {
			reply, recs := svc.Recommender().Assist(cmd.Context(), message)
			return answer{reply, recs}
		}
		return answer{reply: svc.Recommender().Chat(cmd.Context(), message)}
	})

	transcript.Append(chat.RoleAI, res.reply)

	p := newPrinter(os.Stdout)
	p.line(replyStyle, res.reply)
	if chatRecommend {
		p.recommendations(res.recs)
	}
	fmt.Println()
}
