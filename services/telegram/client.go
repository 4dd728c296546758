package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"spotgrab/entity"
)

func (b *Bot) apiURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.APIBase, b.Token, method)
}

func (b *Bot) getUpdates(offset int) ([]Update, error) {
	payload := map[string]any{
		"offset":  offset,
		"timeout": 30,
	}
	var response getUpdatesResponse
	if err := b.call("getUpdates", payload, &response); err != nil {
		return nil, err
	}
	if !response.OK {
		return nil, fmt.Errorf("telegram getUpdates error: %s", response.Description)
	}
	return response.Result, nil
}

func (b *Bot) sendMessage(chatID int64, text string, markup any) (int, error) {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}
	var response sendMessageResponse
	if err := b.call("sendMessage", payload, &response); err != nil {
		return 0, err
	}
	if !response.OK {
		return 0, fmt.Errorf("telegram sendMessage error: %s", response.Description)
	}
	return response.Result.MessageID, nil
}

func (b *Bot) editMessageText(chatID int64, messageID int, text string) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	var response apiResponse
	if err := b.call("editMessageText", payload, &response); err != nil {
		return err
	}
	if !response.OK {
		return fmt.Errorf("telegram editMessageText error: %s", response.Description)
	}
	return nil
}

func (b *Bot) sendChatAction(chatID int64, action string) error {
	payload := map[string]any{
		"chat_id": chatID,
		"action":  action,
	}
	var response apiResponse
	if err := b.call("sendChatAction", payload, &response); err != nil {
		return err
	}
	if !response.OK {
		return fmt.Errorf("telegram sendChatAction error: %s", response.Description)
	}
	return nil
}

func (b *Bot) answerCallbackQuery(callbackID string) error {
	if callbackID == "" {
		return nil
	}
	payload := map[string]any{
		"callback_query_id": callbackID,
	}
	var response apiResponse
	if err := b.call("answerCallbackQuery", payload, &response); err != nil {
		return err
	}
	if !response.OK {
		return fmt.Errorf("telegram answerCallbackQuery error: %s", response.Description)
	}
	return nil
}

// sendAudio uploads the file at path as an audio message with title,
// performer and caption taken from the canonical track.
func (b *Bot) sendAudio(chatID int64, path string, track entity.Track) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	if err := writer.WriteField("title", track.Title); err != nil {
		return err
	}
	if err := writer.WriteField("performer", track.Artist); err != nil {
		return err
	}
	if err := writer.WriteField("caption", audioCaption(track)); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("audio", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, b.apiURL("sendAudio"), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram sendAudio failed: %s", string(bytes.TrimSpace(responseBody)))
	}
	var response apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return err
	}
	if !response.OK {
		return fmt.Errorf("telegram sendAudio error: %s", response.Description)
	}
	return nil
}

func (b *Bot) call(method string, payload map[string]any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, b.apiURL(method), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram %s failed: %s", method, string(bytes.TrimSpace(responseBody)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func audioCaption(track entity.Track) string {
	return fmt.Sprintf("🎵 %s\n👤 %s\n💿 %s", track.Title, track.Artist, track.Album)
}
