package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nexusai/nexus/internal/cli"
	"github.com/nexusai/nexus/internal/configuration"
	"github.com/nexusai/nexus/internal/conversation"
	"github.com/nexusai/nexus/internal/llm"
	"github.com/nexusai/nexus/internal/session"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config, registry *session.Registry) *cobra.Command {
	var opts struct {
		SessionID string
		Continue  bool
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client := llm.NewHTTPClient(config.APIHost, config.APIKey, time.Duration(config.RequestTimeout)*time.Second)
			var managerOpts []conversation.Option
			if config.ImageCaption != "" {
				managerOpts = append(managerOpts, conversation.WithImageCaption(config.ImageCaption))
			}
			manager := conversation.NewManager(client, registry, managerOpts...)

			// Resolve the session to resume, if any. A fresh session is
			// otherwise created on the first send.
			switch {
			case opts.SessionID != "":
				if err := manager.ActivateSession(opts.SessionID); err != nil {
					return err
				}
			case opts.Continue:
				recent := registry.MostRecent()
				if recent == nil {
					return errors.New("no session to continue")
				}
				if err := manager.ActivateSession(recent.ID); err != nil {
					return err
				}
			}

			title := "new conversation"
			if current := registry.Current(); current != nil {
				title = current.Title
			}
			cli.Title("nexus | %s", title)

			printHistory(manager.Store().Messages())

			for {
				text, err := cli.PromptUser()
				if err != nil {
					// Interrupt or EOF ends the conversation.
					return nil
				}
				text = strings.TrimSpace(text)
				if text == "" {
					continue
				}
				if strings.HasPrefix(text, "/") {
					if quit := runCommand(text, manager, registry); quit {
						return nil
					}
					continue
				}

				// Quick feedback
				cli.UserCommand("Generating...")
				streamed := false
				err = manager.Send(ctx, text, func(fragment string) {
					if !streamed {
						cli.AIOutput("\n")
						streamed = true
					}
					cli.AIOutput(fragment)
				})
				fmt.Println()
				if err != nil {
					cli.ErrorOutput("Error: %v\n", err)
					continue
				}
				if !streamed {
					printLastImage(manager.Store().Messages())
				}
			}
		},
	}
	cmd.Flags().StringVarP(&opts.SessionID, "session", "s", "", "resume the session with this id")
	cmd.Flags().BoolVarP(&opts.Continue, "continue", "c", false, "resume the most recently updated session")
	return cmd
}

// runCommand handles slash commands. It returns true when the REPL should
// exit.
func runCommand(text string, manager *conversation.Manager, registry *session.Registry) bool {
	switch text {
	case "/new":
		created := manager.StartSession()
		cli.Info("Started session %s\n", created.ID)
	case "/clear":
		if cli.QueryUser("Clear the current conversation?") {
			manager.ClearConversation()
			cli.Info("Conversation cleared\n")
		}
	case "/sessions":
		sessions := registry.Sessions()
		if len(sessions) == 0 {
			cli.Info("No sessions\n")
			return false
		}
		for _, s := range sessions {
			marker := " "
			if current := registry.Current(); current != nil && current.ID == s.ID {
				marker = "*"
			}
			cli.Info("%s %s  %s  (%d messages)\n", marker, s.ID, s.Title, len(s.Messages))
		}
	case "/quit":
		return true
	default:
		cli.ErrorOutput("Unknown command %s\n", text)
	}
	return false
}

// printHistory replays the resumed conversation.
func printHistory(messages []*llm.Message) {
	for _, message := range messages {
		switch message.Role {
		case llm.RoleUser:
			cli.UserInput("> %s\n", message.Content)
		case llm.RoleAssistant:
			if message.Kind == llm.KindImage {
				cli.ImageInfo("%s\n[image] %s\n", message.Content, message.ImageRef)
				continue
			}
			cli.AIOutput(message.Content + "\n")
		}
	}
}

// printLastImage displays the result of an image turn, whose message is
// appended atomically rather than streamed.
func printLastImage(messages []*llm.Message) {
	if len(messages) == 0 {
		return
	}
	last := messages[len(messages)-1]
	if last.Role != llm.RoleAssistant || last.Kind != llm.KindImage {
		return
	}
	cli.ImageInfo("%s\n[image] %s\n", last.Content, last.ImageRef)
}
