package services

import (
	"context"
	"html"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// TelegramService — уведомления через Bot API: личные сообщения исполнителю
// и эхо в привязанные группы компании.
type TelegramService struct {
	bot      *tgbotapi.BotAPI
	users    repositories.UserRepository
	bindings repositories.ChatBindingRepository
}

func NewTelegramService(botToken string, users repositories.UserRepository, bindings repositories.ChatBindingRepository) *TelegramService {
	if botToken == "" {
		log.Printf("[tg] bot token empty, notifications disabled")
		return &TelegramService{users: users, bindings: bindings}
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg][err] bot init failed: %v", err)
		return &TelegramService{users: users, bindings: bindings}
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot, users: users, bindings: bindings}
}

func (t *TelegramService) send(chatID int64, text string) {
	if t == nil || t.bot == nil || chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
	}
}

// NotifyAssignee — личное сообщение исполнителю, если уведомления включены.
func (t *TelegramService) NotifyAssignee(ctx context.Context, task *models.Task, prefix string) {
	if t == nil || task == nil {
		return
	}
	telegramID, allow, err := t.users.GetTelegramSettings(ctx, task.AssigneeID)
	if err != nil {
		log.Printf("[tg][notify] settings lookup failed: assignee=%d err=%v", task.AssigneeID, err)
		return
	}
	if !allow || telegramID == 0 {
		return
	}
	t.send(telegramID, formatTask(prefix, task))
}

// NotifyCompanyChats — эхо в привязанные Telegram-группы компании.
func (t *TelegramService) NotifyCompanyChats(ctx context.Context, companyID int64, task *models.Task, prefix string) {
	if t == nil || t.bot == nil || task == nil {
		return
	}
	chatIDs, err := t.bindings.ChatIDs(ctx, companyID)
	if err != nil {
		log.Printf("[tg][notify] bindings lookup failed: company=%d err=%v", companyID, err)
		return
	}
	for _, chatID := range chatIDs {
		t.send(chatID, formatTask(prefix, task))
	}
}

func formatTask(prefix string, t *models.Task) string {
	due := "—"
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02 15:04")
	}
	title := html.EscapeString(t.Title) // parse_mode=HTML
	return prefix + "\n" +
		"• <b>" + title + "</b>\n" +
		"• Статус: <code>" + string(t.Status) + "</code>\n" +
		"• Приоритет: <code>" + string(t.Priority) + "</code>\n" +
		"• Срок: <code>" + due + "</code>\n" +
		"• Задача: <code>#" + strconv.FormatInt(t.ID, 10) + "</code>"
}
