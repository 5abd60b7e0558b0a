package conversation

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// AnswerSelector picks the canned answer for text received in mode.
type AnswerSelector interface {
	Answer(mode Mode, text string) Answer
}

// Answer is a selected reply. Rule names the keyword rule that matched; it is
// empty for pool answers. Fallback marks the echo placeholder.
type Answer struct {
	Text     string
	Rule     string
	Fallback bool
}

// Rule is one entry of a KeywordTable. Keywords must be lower case.
type Rule struct {
	Name     string
	Keywords []string
	Answer   string
}

// KeywordTable answers with the first rule that has a keyword contained in the text.
// Matching is case-insensitive and rules are evaluated in order.
type KeywordTable struct {
	rules []Rule
}

// NewKeywordTable builds a table from rules in evaluation order.
func NewKeywordTable(rules ...Rule) *KeywordTable {
	return &KeywordTable{rules: append([]Rule(nil), rules...)}
}

// Match returns the first rule matching text.
func (t *KeywordTable) Match(text string) (Rule, bool) {
	lower := strings.ToLower(text)
	for _, r := range t.rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Answer implements AnswerSelector; the mode is ignored.
func (t *KeywordTable) Answer(_ Mode, text string) Answer {
	if r, ok := t.Match(text); ok {
		return Answer{Text: r.Answer, Rule: r.Name}
	}
	return Answer{Text: echoFallback(text), Fallback: true}
}

// DefaultRules is the institute's question table. Price comes before courses so
// "сколько стоит курс" is answered with prices.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "price",
			Keywords: []string{"стоит", "цена", "стоимость", "оплат", "price", "cost"},
			Answer: "💳 Стоимость обучения от 6 500 ₽ в месяц за групповые занятия, " +
				"индивидуальные уроки от 2 000 ₽ за занятие. Действует рассрочка и скидка 10% при оплате за семестр.",
		},
		{
			Name:     "courses",
			Keywords: []string{"курс", "программ", "направлен"},
			Answer: "📚 У нас есть курсы академического рисунка, живописи, графического дизайна, " +
				"иллюстрации и керамики. Полный список в разделе «📚 Программы».",
		},
		{
			Name:     "schedule",
			Keywords: []string{"расписан", "когда", "время", "график", "schedule"},
			Answer:   "🗓 Группы занимаются по будням с 10:00 до 21:00 и по выходным с 11:00 до 17:00. Новые потоки стартуют каждый месяц.",
		},
		{
			Name:     "admission",
			Keywords: []string{"поступ", "запис", "экзамен", "портфолио"},
			Answer:   "📝 Для записи оставьте заявку по телефону из раздела «📞 Контакты». Вступительных экзаменов нет, портфолио по желанию.",
		},
		{
			Name:     "contacts",
			Keywords: []string{"адрес", "телефон", "контакт", "где вы"},
			Answer:   textContacts,
		},
		{
			Name:     "materials",
			Keywords: []string{"материал", "краск", "кист", "pva", "пва"},
			Answer:   "🖌 Базовые материалы на занятиях предоставляем. Список для домашней работы выдаёт преподаватель на первом уроке.",
		},
	}
}

// IntSource yields uniformly distributed ints in [0, n).
type IntSource interface {
	IntN(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewPCGSource returns a goroutine-safe IntSource seeded with seed.
func NewPCGSource(seed uint64) IntSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// RandomPool answers with a uniformly chosen entry of the pool for the mode.
type RandomPool struct {
	src   IntSource
	pools map[Mode][]string
}

// NewRandomPool builds a pool selector. Modes without a pool get the echo fallback.
func NewRandomPool(src IntSource, pools map[Mode][]string) *RandomPool {
	copied := make(map[Mode][]string, len(pools))
	for m, p := range pools {
		copied[m] = append([]string(nil), p...)
	}
	return &RandomPool{src: src, pools: copied}
}

// Answer implements AnswerSelector.
func (p *RandomPool) Answer(mode Mode, text string) Answer {
	pool := p.pools[mode]
	if len(pool) == 0 || p.src == nil {
		return Answer{Text: echoFallback(text), Fallback: true}
	}
	return Answer{Text: pool[p.src.IntN(len(pool))]}
}

// DefaultPools returns the free chat and course picker pools. The ask pool is
// used only when the ask strategy is random.
func DefaultPools() map[Mode][]string {
	return map[Mode][]string{
		ModeFreeChat: {
			"Интересная мысль! Расскажите подробнее 🙂",
			"Искусство начинается с любопытства. Что вдохновляет вас сейчас?",
			"Понимаю. А вы уже пробовали рисовать с натуры?",
			"Здорово! Если захотите учиться, загляните в «📚 Программы».",
		},
		ModeCoursePicker: {
			"🎨 Вам подойдёт курс «Академический рисунок»: крепкая база для любого направления.",
			"🖥 Попробуйте «Графический дизайн»: композиция, типографика и работа в редакторах.",
			"✏️ Рекомендую «Иллюстрацию и скетчинг»: быстрые зарисовки и собственный стиль.",
			"🏺 Загляните на «Керамику»: работа руками и гончарный круг.",
		},
		ModeAsk: {
			"Хороший вопрос! Лучше всего на него ответят в приёмной, телефон в «📞 Контакты».",
			"Спасибо за вопрос! Подробности есть в разделе «📚 Программы».",
		},
	}
}
