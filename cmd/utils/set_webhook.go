package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// Manually registers (or, with -d, removes) the bot webhook. Useful when
// rotating tunnel URLs during development without restarting the service.
func main() {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	method := "setWebhook"
	body := map[string]interface{}{
		"drop_pending_updates": true,
	}

	if len(os.Args) > 1 && os.Args[1] == "-d" {
		method = "deleteWebhook"
	} else {
		if len(os.Args) < 2 {
			log.Fatal("usage: set_webhook <url> | set_webhook -d")
		}
		body["url"] = os.Args[1]
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/%s", token, method)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}

	fmt.Printf("%s: ok=%v %s\n", method, result.OK, result.Description)
}
