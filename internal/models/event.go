package models

// Значения по умолчанию для событий без метаданных.
const (
	// EventTBD подставляется вместо отсутствующих даты и места.
	EventTBD = "TBD"
	// EventOrderLast — порядок события без явного ранга (сортируется в конец).
	EventOrderLast = 999
)

// Manifest — JSON-индекс всех найденных событий (manifest.json).
//
// Events отсортирован по дате извлечения (новые первыми); остальные поля —
// словари по слагу. Order заполняется вручную и переживает пересборку.
type Manifest struct {
	Events    []string          `json:"events"`
	Order     map[string]int    `json:"order"`
	Dates     map[string]string `json:"dates"`
	Locations map[string]string `json:"locations"`
	Images    map[string]string `json:"images"`
}

// NewManifest возвращает манифест с инициализированными словарями,
// чтобы в JSON они выводились как {} вместо null.
func NewManifest() *Manifest {
	return &Manifest{
		Events:    []string{},
		Order:     map[string]int{},
		Dates:     map[string]string{},
		Locations: map[string]string{},
		Images:    map[string]string{},
	}
}

// EventData — событие, готовое к отрисовке: метаданные манифеста + текст подписи.
type EventData struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link,omitempty"`
	Order       int    `json:"order"`
}
