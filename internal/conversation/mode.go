package conversation

import "github.com/m3rciful/artbot/core/telegram/state"

// Mode is the conversation step a user is in. It is stored in the session store as is.
type Mode = state.State

const (
	ModeIdle         Mode = state.StateIdle
	ModeAsk          Mode = "ask"
	ModeFreeChat     Mode = "free_chat"
	ModeCoursePicker Mode = "course_picker"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeIdle, ModeAsk, ModeFreeChat, ModeCoursePicker}

// sticky modes keep answering until the user resets; the others answer once.
func sticky(m Mode) bool {
	return m == ModeFreeChat || m == ModeCoursePicker
}

// ButtonID identifies an inline button of the bot menus.
type ButtonID string

const (
	ButtonAsk          ButtonID = "ask"
	ButtonFreeChat     ButtonID = "free_chat"
	ButtonCoursePicker ButtonID = "course_picker"
	ButtonReset        ButtonID = "reset"
	ButtonAbout        ButtonID = "about"
	ButtonPrograms     ButtonID = "programs"
	ButtonContacts     ButtonID = "contacts"
)

// ButtonIDs lists every known button.
var ButtonIDs = []ButtonID{
	ButtonAsk, ButtonFreeChat, ButtonCoursePicker,
	ButtonReset, ButtonAbout, ButtonPrograms, ButtonContacts,
}

// Known reports whether id is one of ButtonIDs.
func (id ButtonID) Known() bool {
	for _, k := range ButtonIDs {
		if k == id {
			return true
		}
	}
	return false
}

// modeButtons maps mode-select buttons to the mode they enter.
var modeButtons = map[ButtonID]Mode{
	ButtonAsk:          ModeAsk,
	ButtonFreeChat:     ModeFreeChat,
	ButtonCoursePicker: ModeCoursePicker,
}
