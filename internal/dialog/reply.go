// Package dialog implements the conversation state machine that drives
// task creation and editing. The engine is transport-independent: it
// consumes plain text or callback payloads and returns neutral Reply
// values that the Telegram layer renders.
package dialog

// KeyboardKind selects which reply keyboard accompanies a message.
type KeyboardKind int

const (
	// KeyboardNone leaves the current reply keyboard untouched.
	KeyboardNone KeyboardKind = iota
	// KeyboardMain shows the main menu keyboard.
	KeyboardMain
	// KeyboardBack shows the single-button back keyboard used mid-flow.
	KeyboardBack
)

// Button is one inline keyboard button with its callback payload.
type Button struct {
	Text string
	Data string
}

// Menu is an inline keyboard description, row by row.
type Menu struct {
	Rows [][]Button
}

// Reply is one outbound message computed by the engine. EditInPlace asks
// the transport to edit the triggering message instead of sending a new one.
type Reply struct {
	Text        string
	Keyboard    KeyboardKind
	Menu        *Menu
	EditInPlace bool
}

func textReply(text string) Reply {
	return Reply{Text: text}
}

func menuReply(text string, kb KeyboardKind) Reply {
	return Reply{Text: text, Keyboard: kb}
}
