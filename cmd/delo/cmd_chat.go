package main

import (
	"context"
	"fmt"

	"deloconnect/cmd/delo/ui"
	"deloconnect/internal/chat"
	"deloconnect/internal/types"

	"github.com/spf13/cobra"
)

var (
	chatFollow   bool
	chatEmployee string
	chatChain    string
)

var chatCmd = &cobra.Command{
	Use:   "chat [identifier]",
	Short: "Show a chat thread, optionally following live",
	Long: `Shows the message history for a chat.

The identifier may be a raw chat id (chat_...), a session id, or - with
--employee and --chain - a chain whose first session's chat is used.
With --follow the command keeps the thread live over the WebSocket feed
until interrupted; while the feed is reconnecting the prompt shows a
stale indicator.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

var chatSendCmd = &cobra.Command{
	Use:   "send [identifier] [text]",
	Short: "Send a message into a chat",
	Args:  cobra.ExactArgs(2),
	RunE:  sendChat,
}

func resolveChat(ctx context.Context, r *chat.Resolver, args []string) (string, error) {
	if chatEmployee != "" || chatChain != "" {
		if chatEmployee == "" || chatChain == "" {
			return "", fmt.Errorf("--employee and --chain go together")
		}
		return r.ResolveChain(ctx, chatEmployee, chatChain)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("an identifier or --employee/--chain is required")
	}
	return r.ResolveChatID(ctx, args[0])
}

func runChat(cmd *cobra.Command, args []string) error {
	client, cfg, err := loadClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	chatID, err := resolveChat(ctx, chat.NewResolver(client), args)
	if err != nil {
		return err
	}

	vm := chat.NewViewModel(client, chatID)

	styles := ui.DefaultStyles()
	printMsg := func(m types.Message) {
		fmt.Printf("%s %s: %s\n",
			styles.Muted.Render(m.Timestamp),
			styles.Bold.Render(string(m.Sender)),
			m.Text)
	}

	if !chatFollow {
		if err := vm.LoadHistory(ctx); err != nil {
			return err
		}
		for _, m := range vm.Messages() {
			printMsg(m)
		}
		return nil
	}

	// Live tail: open the feed first so nothing that arrives during the
	// history fetch is lost; the view-model buffers and merges it.
	feedCtx, stopFeed := context.WithCancel(ctx)
	defer stopFeed()
	feed := chat.NewFeed(chat.FeedURL(cfg.WSBaseURL, chatID), client.Token())
	go feed.Run(feedCtx)

	if err := vm.LoadHistory(ctx); err != nil {
		return err
	}
	shown := 0
	for _, m := range vm.Messages() {
		printMsg(m)
		shown++
	}

	events, states := feed.Events(), feed.States()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-states:
			if !ok {
				return nil
			}
			if s != chat.FeedConnected {
				fmt.Println(styles.Warning.Render("-- feed " + s.String() + ", thread may be stale --"))
			}
		case m, ok := <-events:
			if !ok {
				return nil
			}
			vm.ApplyLive(m)
			for _, msg := range vm.Messages()[shown:] {
				printMsg(msg)
				shown++
			}
		}
	}
}

func sendChat(cmd *cobra.Command, args []string) error {
	client, _, err := loadClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	chatID, err := resolveChat(ctx, chat.NewResolver(client), args[:1])
	if err != nil {
		return err
	}
	if err := client.SendChatMessage(ctx, chatID, types.SenderHR, args[1]); err != nil {
		return err
	}
	fmt.Println("Sent.")
	return nil
}

func init() {
	chatCmd.PersistentFlags().StringVar(&chatEmployee, "employee", "", "employee id (with --chain)")
	chatCmd.PersistentFlags().StringVar(&chatChain, "chain", "", "chain id (with --employee)")
	chatCmd.Flags().BoolVarP(&chatFollow, "follow", "f", false, "keep the thread live")

	chatCmd.AddCommand(chatSendCmd)
}
