package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"
)

const baseURL = "http://localhost:3000/api/loan/v1"

// Simplified DTOs for the script
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Data struct {
		Reply           string `json:"reply"`
		Stage           string `json:"stage"`
		AgentTransition string `json:"agent_transition"`
		DemoOTP         string `json:"demo_otp"`
		RejectionReason string `json:"rejection_reason"`
		OfferLetter     *struct {
			FileName string `json:"file_name"`
		} `json:"offer_letter"`
	} `json:"data"`
}

var demoOTPRe = regexp.MustCompile(`Demo OTP: (\d{4})`)

func main() {
	fmt.Println("=== Loan Assistant Simulation Client ===")

	sessionID := fmt.Sprintf("sim-%d", time.Now().UnixNano())
	fmt.Printf("Session: %s\n", sessionID)

	script := []string{
		"Hi, I'm looking for a loan",
		"9876543210",
		"", // placeholder, replaced with the demo OTP
		"I need 5 lakhs for my daughter's wedding",
		"Let's proceed with this plan",
		"I've uploaded the documents",
		"ok",
	}

	var otp string
	for _, text := range script {
		if text == "" {
			if otp == "" {
				log.Fatal("No demo OTP captured from the previous turn")
			}
			text = otp
		}

		fmt.Printf("\nUSER: %s\n", text)

		start := time.Now()
		res, err := sendChat(sessionID, text)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("AI (%v) [%s]: %s\n", elapsed, res.Data.Stage, res.Data.Reply)
		if res.Data.AgentTransition != "" {
			fmt.Printf(">>> %s\n", res.Data.AgentTransition)
		}
		if res.Data.OfferLetter != nil {
			fmt.Printf(">>> Sanction letter received: %s\n", res.Data.OfferLetter.FileName)
		}
		if res.Data.RejectionReason != "" {
			fmt.Printf(">>> Rejected: %s\n", res.Data.RejectionReason)
		}

		if res.Data.DemoOTP != "" {
			otp = res.Data.DemoOTP
		} else if m := demoOTPRe.FindStringSubmatch(res.Data.Reply); m != nil {
			otp = m[1]
		}

		time.Sleep(500 * time.Millisecond)
	}
}

func sendChat(sessionID, text string) (*ChatResponse, error) {
	payload := ChatRequest{
		SessionID: sessionID,
		Message:   text,
	}
	jsonBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", baseURL+"/chat", bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(body))
	}

	var res ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
