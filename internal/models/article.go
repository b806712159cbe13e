// models содержит доменные сущности портфолио: статьи блога и события.
// Эти типы используются пайплайнами, сервисным слоем и HTTP-транспортом.
package models

import "time"

// Article — нормализованная статья из RSS-ленты.
//
// Особенности:
//   - ID совпадает с Link и служит ключом дедупликации;
//   - PubDate — длинная человекочитаемая дата ("January 2, 2006");
//   - Published хранит исходный момент публикации (UTC) и наружу не сериализуется.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Emoji       string    `json:"emoji"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Link        string    `json:"link"`
	PubDate     string    `json:"pubDate"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	ReadingTime string    `json:"readingTime,omitempty"`
	Publication string    `json:"publication,omitempty"`
	Published   time.Time `json:"-"`
}

// FeedSource — один источник ленты.
type FeedSource struct {
	// URL — адрес RSS-документа.
	URL string
	// Publication — подпись источника, попадает в Article.Publication.
	Publication string
}
