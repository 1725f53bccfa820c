package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// GameView mirrors the API's render-ready projection of a session.
type GameView struct {
	Scene   string   `json:"scene"`
	Story   string   `json:"story,omitempty"`
	Choices []string `json:"choices,omitempty"`

	Dialogue        []string `json:"dialogue,omitempty"`
	DialogueChoices []string `json:"dialogue_choices,omitempty"`

	Battle *BattleView `json:"battle,omitempty"`
}

type BattleView struct {
	Enemy       string   `json:"enemy"`
	EnemyHealth int      `json:"enemy_health"`
	Log         []string `json:"log"`
}

// apiResponse is the envelope returned by gamestate and action routes.
type apiResponse struct {
	GameState     *state.GameState      `json:"game_state"`
	View          *GameView             `json:"view"`
	Message       string                `json:"message,omitempty"`
	Unlocked      []content.Achievement `json:"unlocked,omitempty"`
	BattleStarted bool                  `json:"battle_started,omitempty"`
}

func createGameState(client *http.Client, baseURL, name, gender string) (*apiResponse, error) {
	body, err := json.Marshal(map[string]string{
		"name":   name,
		"gender": gender,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/v1/gamestate", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp, http.StatusCreated)
}

func postAction(client *http.Client, baseURL string, id string, action string, payload any) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/gamestate/%s/%s", baseURL, id, action)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp, http.StatusOK)
}

func decodeAPIResponse(resp *http.Response, wantStatus int) (*apiResponse, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != wantStatus {
		var apiErr ErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.GameState == nil {
		return nil, fmt.Errorf("response missing game state")
	}
	return &out, nil
}
