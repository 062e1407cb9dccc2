package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	chatID  int64
	roundID string
	answer  string
	limit   int
)

func init() {
	playCmd.Flags().Int64Var(&chatID, "chat-id", 0, "The player's chat id")
	playCmd.MarkFlagRequired("chat-id")
	answerCmd.Flags().StringVar(&roundID, "round-id", "", "The round to answer")
	answerCmd.Flags().StringVar(&answer, "text", "", "The submitted country name")
	answerCmd.MarkFlagRequired("round-id")
	answerCmd.MarkFlagRequired("text")
	activeCmd.Flags().Int64Var(&chatID, "chat-id", 0, "The player's chat id")
	activeCmd.MarkFlagRequired("chat-id")
	abandonCmd.Flags().Int64Var(&chatID, "chat-id", 0, "The player's chat id")
	abandonCmd.MarkFlagRequired("chat-id")
	statsCmd.Flags().Int64Var(&chatID, "chat-id", 0, "The player's chat id")
	statsCmd.MarkFlagRequired("chat-id")
	leaderboardCmd.Flags().IntVar(&limit, "limit", 10, "How many players to list")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(abandonCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a new round for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/play?chat_id=" + strconv.FormatInt(chatID, 10))
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Submit an answer for a round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/answer?round_id=" + url.QueryEscape(roundID) + "&text=" + url.QueryEscape(answer))
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the player's active round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/active?chat_id=" + strconv.FormatInt(chatID, 10))
	},
}

var abandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Give up the player's active round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/abandon?chat_id=" + strconv.FormatInt(chatID, 10))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a player's statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats?chat_id=" + strconv.FormatInt(chatID, 10))
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top players by score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard?limit=" + strconv.Itoa(limit))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
