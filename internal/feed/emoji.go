package feed

import "strings"

// DefaultEmoji — глиф для статьи, не попавшей ни под одно правило.
const DefaultEmoji = "💻"

// emojiInput — заголовок и тело статьи, подготовленные для сопоставления.
type emojiInput struct {
	title        string
	titleLower   string
	contentLower string
}

// emojiRule — пара (предикат, глиф). Group нужен только для логов и тестов.
type emojiRule struct {
	Group string
	Match func(in emojiInput) bool
	Emoji string
}

// exactTitle срабатывает на известные статьи (регистр учитывается).
func exactTitle(title string) func(emojiInput) bool {
	return func(in emojiInput) bool {
		return strings.Contains(in.title, title)
	}
}

// keyword срабатывает, если titleKW встречается в заголовке
// или contentKW — в теле статьи (без учёта регистра).
func keyword(titleKW, contentKW string) func(emojiInput) bool {
	return func(in emojiInput) bool {
		return strings.Contains(in.titleLower, titleKW) || strings.Contains(in.contentLower, contentKW)
	}
}

// emojiRules проверяются сверху вниз, побеждает первое совпадение.
// Порядок групп фиксирован: многие статьи подходят под несколько ключевых слов,
// и перестановка строк меняет результат.
var emojiRules = []emojiRule{
	{"title", exactTitle("Creating a Private GKE Cluster and Bastion VM with Terraform"), "🏰"},
	{"title", exactTitle("Pushing Docker Images to GitHub Registry"), "📦"},
	{"title", exactTitle("How to Resolve GCP Public Key SSH Error"), "🔑"},
	{"title", exactTitle("Gitlab Version Upgrade"), "⬆️"},

	{"devops", keyword("devops", "devops"), "🔄"},
	{"devops", keyword("pipeline", "pipeline"), "⚡"},
	{"devops", keyword("ci/cd", "ci/cd"), "🔁"},

	{"cloud", keyword("cloud", "cloud"), "☁️"},
	{"cloud", keyword("google cloud", "gcp"), "🌩️"},
	{"cloud", keyword("aws", "amazon"), "📦"},
	{"cloud", keyword("azure", "microsoft"), "💠"},

	{"infra", keyword("kubernetes", "kubernetes"), "🎡"},
	{"infra", keyword("docker", "container"), "🐳"},
	{"infra", keyword("terraform", "infrastructure"), "🏗️"},
	{"infra", keyword("ansible", "automation"), "🤖"},

	{"security", keyword("security", "security"), "🔒"},
	{"security", keyword("devsecops", "devsecops"), "🛡️"},

	{"observability", keyword("monitoring", "monitoring"), "📊"},
	{"observability", keyword("logging", "logs"), "📝"},
	{"observability", keyword("metrics", "metrics"), "📈"},

	{"development", keyword("git", "version control"), "🔀"},
	{"development", keyword("api", "rest"), "🔌"},
	{"development", keyword("microservice", "microservice"), "🔨"},

	{"ai", keyword("ai", "artificial intelligence"), "🤖"},
	{"ai", keyword("ml", "machine learning"), "🧠"},

	{"general", keyword("guide", "how to"), "📚"},
	{"general", keyword("tips", "best practices"), "💡"},
	{"general", keyword("tutorial", "learn"), "✏️"},
}

// ArticleEmoji выбирает декоративный глиф статьи по таблице emojiRules.
// content — сырое тело статьи (HTML допускается).
func ArticleEmoji(title, content string) string {
	emoji, _ := matchEmoji(title, content)
	return emoji
}

// matchEmoji возвращает глиф и группу сработавшего правила ("default", если ни одного).
func matchEmoji(title, content string) (string, string) {
	in := emojiInput{
		title:        title,
		titleLower:   strings.ToLower(title),
		contentLower: strings.ToLower(content),
	}

	for _, r := range emojiRules {
		if r.Match(in) {
			return r.Emoji, r.Group
		}
	}

	return DefaultEmoji, "default"
}
