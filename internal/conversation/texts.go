package conversation

import "fmt"

const (
	textGreeting = "Здравствуйте! 🎨 Я бот Института искусств.\n\n" +
		"Помогу узнать о программах обучения, стоимости, расписании и поступлении. " +
		"Выберите раздел в меню ниже."

	textHelp = "Доступные команды:\n" +
		"/start - главное меню\n" +
		"/help - эта справка\n" +
		"/cancel - выйти из текущего режима\n" +
		"/history - ваши последние вопросы\n" +
		"/health - проверка работы бота\n\n" +
		"Нажмите «❓ Задать вопрос», чтобы спросить о стоимости, курсах, расписании или поступлении."

	textCancelled    = "Действие отменено. Вы в главном меню."
	textReset        = "Режим сброшен. Чем ещё могу помочь?"
	textUnknownBtn   = "Неизвестная команда. Пожалуйста, воспользуйтесь меню."
	textNudge        = "Чтобы задать вопрос, нажмите «❓ Задать вопрос» в меню."
	textHistoryEmpty = "Вы пока не задавали вопросов."
	textHistoryHead  = "🗂 Ваши последние вопросы:"

	textAbout = "🏛 Институт искусств готовит художников, дизайнеров и иллюстраторов с 1998 года.\n" +
		"Занятия ведут практикующие художники, мастерские открыты каждый день."

	textPrograms = "📚 Программы обучения:\n" +
		"• Академический рисунок и живопись\n" +
		"• Графический дизайн\n" +
		"• Иллюстрация и скетчинг\n" +
		"• Керамика и скульптура\n" +
		"• Подготовка к поступлению в художественные вузы"

	textContacts = "📞 Контакты:\n" +
		"Телефон: +7 (495) 000-00-00\n" +
		"Почта: info@art-institute.example\n" +
		"Адрес: ул. Художников, 12. Приёмная работает пн-пт 10:00-19:00."
)

var modePrompts = map[Mode]string{
	ModeAsk:          "✍️ Напишите ваш вопрос одним сообщением: о стоимости, курсах, расписании, поступлении или материалах.",
	ModeFreeChat:     "💬 Свободный чат включён. Пишите что угодно, я отвечу. Для выхода нажмите «❌ Отмена».",
	ModeCoursePicker: "🎨 Расскажите, что вам интересно: рисунок, дизайн, керамика? Я подскажу подходящий курс.",
}

var infoTexts = map[ButtonID]string{
	ButtonAbout:    textAbout,
	ButtonPrograms: textPrograms,
	ButtonContacts: textContacts,
}

func echoFallback(text string) string {
	return fmt.Sprintf("🤖 Ответ-заглушка (не ИИ). Вы спросили: «%s».\n"+
		"Точного ответа у меня пока нет, загляните в «📚 Программы» или «📞 Контакты».", text)
}
