package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// TelegramMessage сообщение, отправленное или отредактированное ботом
type TelegramMessage struct {
	Method      string
	ChatID      string
	Text        string
	ParseMode   string
	ReplyMarkup string
}

// Telegram фейковый Bot API: принимает любой метод, запоминает sendMessage и editMessageText
type Telegram struct {
	*httptest.Server

	mu       sync.Mutex
	messages []TelegramMessage
	methods  []string
}

// NewTelegram запускает фейковый Bot API
func NewTelegram() *Telegram {
	gin.SetMode(gin.TestMode)

	tg := &Telegram{}
	r := gin.New()
	r.POST("/:bot/:method", tg.handle)
	tg.Server = httptest.NewServer(r)
	return tg
}

// Messages отправленные сообщения по порядку
func (tg *Telegram) Messages() []TelegramMessage {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	return append([]TelegramMessage(nil), tg.messages...)
}

// Methods вызванные методы Bot API
func (tg *Telegram) Methods() []string {
	tg.mu.Lock()
	defer tg.mu.Unlock()
	return append([]string(nil), tg.methods...)
}

func (tg *Telegram) handle(c *gin.Context) {
	method := c.Param("method")

	tg.mu.Lock()
	tg.methods = append(tg.methods, method)
	isMessage := method == "sendMessage" || method == "editMessageText"
	if isMessage {
		tg.messages = append(tg.messages, TelegramMessage{
			Method:      method,
			ChatID:      c.PostForm("chat_id"),
			Text:        c.PostForm("text"),
			ParseMode:   c.PostForm("parse_mode"),
			ReplyMarkup: c.PostForm("reply_markup"),
		})
	}
	tg.mu.Unlock()

	if !isMessage {
		c.JSON(http.StatusOK, gin.H{"ok": true, "result": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"result": gin.H{
			"message_id": len(tg.Messages()),
			"date":       0,
			"chat":       gin.H{"id": 1, "type": "private"},
			"text":       c.PostForm("text"),
		},
	})
}
