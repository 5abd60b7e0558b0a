package conversation

// Button is a single inline button: what the user sees and what comes back.
type Button struct {
	Label string
	ID    ButtonID
}

// Menu is a keyboard layout, one slice per row.
type Menu [][]Button

// Reply is the outbound message of a router operation.
type Reply struct {
	Text string
	Menu Menu
}

// MainMenu returns the main menu layout.
func MainMenu() Menu {
	return Menu{
		{{Label: "❓ Задать вопрос", ID: ButtonAsk}},
		{{Label: "🎨 Подобрать курс", ID: ButtonCoursePicker}, {Label: "💬 Свободный чат", ID: ButtonFreeChat}},
		{{Label: "🏛 Об институте", ID: ButtonAbout}, {Label: "📚 Программы", ID: ButtonPrograms}},
		{{Label: "📞 Контакты", ID: ButtonContacts}, {Label: "🔄 Сбросить", ID: ButtonReset}},
	}
}

// PromptMenu is shown while the bot waits for the user's text.
func PromptMenu() Menu {
	return Menu{{{Label: "❌ Отмена", ID: ButtonReset}}}
}
