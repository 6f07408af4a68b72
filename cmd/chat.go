package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/helmcode/agridetect/pkg/flow"
	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/spf13/cobra"
)

var (
	chatSession  string
	chatMessages []string
)

func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the AgriDetect assistant",
		Long: `Ask the AgriDetect assistant about crop diseases, treatments and prevention.

Without --message an interactive session starts. Type a question and press
Enter; /1, /2, ... send one of the suggested questions and /quit exits.

Examples:
  # Interactive session
  agridetect chat

  # One-shot questions
  agridetect chat -m "How do I treat mildew?" -m "Is neem oil organic?"

  # Continue an existing session
  agridetect chat --session 3f1c9a2e-5b7d-4c1e-9a0f-2d8e6b4c7a11`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatSession, "session", "", "Chat session ID (a new one is generated when empty)")
	cmd.Flags().StringArrayVarP(&chatMessages, "message", "m", []string{}, "Message to send; repeat for several")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	session := chatSession
	if session == "" {
		session = uuid.NewString()
	}

	chat := flow.NewChatFlow(s.client, s.catalog, session, flow.WithReplyDelay(s.cfg.ReplyDelay))
	ctx := contextOrBackground(cmd.Context())
	out := cmd.OutOrStdout()

	if len(chatMessages) > 0 {
		for _, m := range chatMessages {
			chat.Send(ctx, m)
		}
		return formatter.DisplayTranscript(out, chat.Transcript, s.catalog, outputFormat)
	}

	printHeader(out, "🤖 AgriDetect Assistant",
		fmt.Sprintf("🔑 Session: %s", chat.SessionID()),
		"⌨️  /1../n sends a suggestion, /quit exits",
	)

	if err := chatLoop(ctx, cmd.InOrStdin(), out, chat, s.catalog); err != nil {
		return err
	}

	if !human() {
		return formatter.DisplayTranscript(out, chat.Transcript, s.catalog, outputFormat)
	}
	return nil
}

// chatLoop reads one message per line until EOF or /quit, printing new
// transcript entries as they arrive in human mode.
func chatLoop(ctx context.Context, in io.Reader, out io.Writer, chat *flow.ChatFlow, cat *i18n.Catalog) error {
	scanner := bufio.NewScanner(in)
	printed := 0

	for {
		if human() {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/"):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "/"))
			if err != nil || !chat.SendSuggestion(ctx, n-1) {
				printError(fmt.Sprintf("unknown command or suggestion: %s", line))
				continue
			}
		default:
			sp := newSpinner("...")
			if human() {
				sp.Start()
			}
			chat.Send(ctx, line)
			sp.Stop()
		}

		if human() {
			entries := chat.Transcript.Entries()
			for _, e := range entries[printed:] {
				formatter.DisplayChatEntry(out, e)
			}
			printed = len(entries)
			formatter.DisplaySuggestions(out, chat.Transcript.Suggestions(), cat)
		}
	}

	return scanner.Err()
}
