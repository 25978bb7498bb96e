// Package notifytest provides a fake Telegram Bot API for tests.
package notifytest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// SentPhoto is one recorded sendPhoto call
type SentPhoto struct {
	ChatID      string
	Filename    string
	ContentType string
	Caption     string
	Size        int
}

// FakeTelegram records sendMessage and sendPhoto calls
type FakeTelegram struct {
	Server *httptest.Server

	mu       sync.Mutex
	messages []string
	photos   []SentPhoto
	chatIDs  []string
	failures map[string]int
}

// NewFakeTelegram starts the fake server. Close it with t.Cleanup(fake.Close).
func NewFakeTelegram() *FakeTelegram {
	f := &FakeTelegram{failures: make(map[string]int)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

// URL is the base URL to pass as the Telegram API URL
func (f *FakeTelegram) URL() string { return f.Server.URL }

// Close stops the server
func (f *FakeTelegram) Close() { f.Server.Close() }

// FailNext makes the next n calls of method answer with a 500
func (f *FakeTelegram) FailNext(method string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = n
}

// Messages returns the recorded sendMessage texts
func (f *FakeTelegram) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// Photos returns the recorded sendPhoto calls
func (f *FakeTelegram) Photos() []SentPhoto {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentPhoto(nil), f.photos...)
}

// ChatIDs returns the chat id of every recorded sendMessage call
func (f *FakeTelegram) ChatIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.chatIDs...)
}

func (f *FakeTelegram) handle(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	f.mu.Lock()
	if f.failures[method] > 0 {
		f.failures[method]--
		f.mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Internal Server Error"}`))
		return
	}
	f.mu.Unlock()

	switch method {
	case "sendMessage":
		var payload struct {
			ChatID string `json:"chat_id"`
			Text   string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			badRequest(w)
			return
		}
		f.mu.Lock()
		f.messages = append(f.messages, payload.Text)
		f.chatIDs = append(f.chatIDs, payload.ChatID)
		f.mu.Unlock()

	case "sendPhoto":
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			badRequest(w)
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			badRequest(w)
			return
		}
		data, _ := io.ReadAll(file)
		_ = file.Close()

		f.mu.Lock()
		f.photos = append(f.photos, SentPhoto{
			ChatID:      r.FormValue("chat_id"),
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Caption:     r.FormValue("caption"),
			Size:        len(data),
		})
		f.mu.Unlock()

	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
}

func badRequest(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request"}`))
}
