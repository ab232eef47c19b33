package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkornev/rental-bot/internal/domain/rental"
	"github.com/mkornev/rental-bot/internal/infra/metrics"
)

const startText = "Привет! Я бот для расчёта стоимости аренды теплоходов.\n\n" +
	"Формат запроса:\n" +
	"1-я строка: дата (формат дд.мм.гг)\n" +
	"2-я строка: название теплохода\n" +
	"3-я строка: времена через дефис (2 значения, либо 4 — с техническими часами)\n\n" +
	"В одном сообщении может быть несколько запросов подряд: пустые строки игнорируются, " +
	"непустые группируются по три.\n\n" +
	"Для обновления базы данных отправьте /update_data или сообщение «обнови базу»."

func (b *Bot) onMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.send(tgbotapi.NewMessage(chatID, startText))
		case "update_data":
			b.refresh(chatID)
		default:
			b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /start"))
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	if strings.EqualFold(text, "обнови базу") {
		b.refresh(chatID)
		return
	}

	reply := b.handleRequests(text)
	b.send(tgbotapi.NewMessage(chatID, reply))
}

func (b *Bot) refresh(chatID int64) {
	if err := b.store.Refresh(); err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		b.log.Error("обновление базы не удалось", "err", err)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Ошибка обновления базы: %v", err)))
		return
	}
	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	b.send(tgbotapi.NewMessage(chatID, "База данных обновлена."))
}

// handleRequests разбирает сообщение на блоки по три непустые строки
// и отвечает на каждый блок отдельно. Ошибка одного блока не мешает
// посчитать остальные.
func (b *Bot) handleRequests(text string) string {
	lines := splitLines(text)
	if len(lines) == 0 {
		return "Пустое сообщение."
	}
	if len(lines)%3 != 0 {
		return "Ошибка: число непустых строк должно быть кратно 3 (дата, название, времена для каждого запроса)."
	}

	responses := make([]string, 0, len(lines)/3)
	for i := 0; i < len(lines); i += 3 {
		block := lines[i : i+3]
		resp, err := b.quoteBlock(block)
		if err != nil {
			metrics.QuoteErrorsTotal.Inc()
			b.log.Warn("запрос отклонён", "err", err)
			resp = fmt.Sprintf("Ошибка при обработке запроса:\n%s\nОшибка: %v",
				strings.Join(block, "\n"), err)
		}
		responses = append(responses, resp)
	}
	return strings.Join(responses, "\n\n"+strings.Repeat("-", 50)+"\n\n")
}

func (b *Bot) quoteBlock(block []string) (string, error) {
	req, err := rental.Parse(block)
	if err != nil {
		return "", err
	}
	q, err := b.quotes.Quote(req)
	if err != nil {
		return "", err
	}
	metrics.QuotesTotal.Inc()
	return q.Render(), nil
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
