package bot

import (
	"github.com/m3rciful/taskbot/internal/dialog"
	tghelpers "github.com/m3rciful/taskbot/internal/telegram/helpers"
	"github.com/m3rciful/taskbot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func renderReplies(c tele.Context, replies []dialog.Reply) error {
	for _, r := range replies {
		if err := renderReply(c, r); err != nil {
			return err
		}
	}
	return nil
}

func renderReply(c tele.Context, r dialog.Reply) error {
	markup := markupFor(r)
	if r.EditInPlace {
		if markup != nil {
			return tghelpers.EditText(c, r.Text, markup)
		}
		return tghelpers.EditText(c, r.Text)
	}
	if markup != nil {
		return tghelpers.SendText(c, r.Text, markup)
	}
	return tghelpers.SendText(c, r.Text)
}

func markupFor(r dialog.Reply) *tele.ReplyMarkup {
	if r.Menu != nil {
		return renderMenu(r.Menu)
	}
	switch r.Keyboard {
	case dialog.KeyboardMain:
		return keyboard.ReplyButtons(dialog.MainKeyboardRows()...)
	case dialog.KeyboardBack:
		return keyboard.ReplyButtons(dialog.BackKeyboardRows()...)
	}
	return nil
}

func renderMenu(m *dialog.Menu) *tele.ReplyMarkup {
	rows := make([][]keyboard.RawBtn, len(m.Rows))
	for i, row := range m.Rows {
		r := make([]keyboard.RawBtn, len(row))
		for j, btn := range row {
			r[j] = keyboard.RawBtn{Text: btn.Text, Data: btn.Data}
		}
		rows[i] = r
	}
	return keyboard.InlineRaw(rows...)
}
