// sim-player is a scripted player for smoke testing a running game server:
// it logs in, deposits, then places a burst of random bets and reports the
// final balance.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"basketbet/internal/config"
)

func main() {
	cfg, err := config.LoadSim()
	if err != nil {
		log.Fatal(err)
	}
	client := &http.Client{Timeout: 10 * time.Second}

	if err := post(client, cfg.BaseURL+"/api/login", map[string]any{
		"name":  cfg.PlayerName,
		"phone": cfg.Phone,
	}, nil); err != nil {
		log.Fatal(err)
	}
	if err := post(client, cfg.BaseURL+"/api/deposits", map[string]any{
		"player":       cfg.PlayerName,
		"amount_cents": cfg.DepositCents,
	}, nil); err != nil {
		log.Fatal(err)
	}

	var display struct {
		MinBetCents int64 `json:"min_bet_cents"`
		MaxBetCents int64 `json:"max_bet_cents"`
	}
	if err := get(client, cfg.BaseURL+"/api/config/display", &display); err != nil {
		log.Fatal(err)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	wins := 0
	var balance int64
	for i := 0; i < cfg.Bets; i++ {
		amount := display.MinBetCents
		if spread := display.MaxBetCents/10 - display.MinBetCents; spread > 0 {
			amount += rnd.Int63n(spread)
		}
		var res struct {
			Win             bool  `json:"win"`
			WinCents        int64 `json:"win_cents"`
			NewBalanceCents int64 `json:"new_balance_cents"`
		}
		err := post(client, cfg.BaseURL+"/api/bets", map[string]any{
			"player":       cfg.PlayerName,
			"amount_cents": amount,
		}, &res)
		if err != nil {
			log.Printf("bet %d failed: %v", i+1, err)
			break
		}
		if res.Win {
			wins++
		}
		balance = res.NewBalanceCents
	}
	fmt.Printf("placed %d bets, won %d, final balance %d cents\n", cfg.Bets, wins, balance)
}

func post(client *http.Client, url string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func get(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
