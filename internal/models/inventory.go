package models

// Product представляет товар магазина.
type Product struct {
	ID       string  `json:"id"`       // ID серверный (UUID) или временный (temp_<ts>) идентификатор
	Name     string  `json:"name"`     // Name название товара
	Category string  `json:"category"` // Category название категории (связь по имени)
	Image    string  `json:"image"`    // Image URL или data URI изображения
	Price    float64 `json:"price"`    // Price цена, не отрицательная
}

// GetID возвращает идентификатор товара
func (p Product) GetID() string {
	return p.ID
}

func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}

func (p Product) CategoryName() string {
	return p.Category
}

// SearchFields поиск по названию, цене и категории
func (p Product) SearchFields() []string {
	return []string{p.Name, FormatPrice(p.Price), p.Category}
}

func (p Product) CSVHeader() []string {
	return []string{"id", "name", "price", "category", "image"}
}

func (p Product) CSVRecord() []string {
	return []string{p.ID, p.Name, FormatPrice(p.Price), p.Category, p.Image}
}

// Sanitized возвращает копию с очищенными текстовыми полями
func (p Product) Sanitized(clean func(string) string) Product {
	p.Name = clean(p.Name)
	p.Category = clean(p.Category)
	return p
}

// Category представляет категорию товаров.
type Category struct {
	ID          string `json:"id"`          // ID идентификатор категории
	Name        string `json:"name"`        // Name название (например, "Plumbing")
	Description string `json:"description"` // Description описание
}

func (c Category) GetID() string {
	return c.ID
}

func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// CategoryName у категории нет родительской категории
func (c Category) CategoryName() string {
	return ""
}

func (c Category) SearchFields() []string {
	return []string{c.Name, c.Description}
}

func (c Category) CSVHeader() []string {
	return []string{"id", "name", "description"}
}

func (c Category) CSVRecord() []string {
	return []string{c.ID, c.Name, c.Description}
}

func (c Category) Sanitized(clean func(string) string) Category {
	c.Name = clean(c.Name)
	c.Description = clean(c.Description)
	return c
}

// Book представляет книгу с приложенным PDF файлом.
type Book struct {
	ID     string `json:"id"`      // ID идентификатор книги
	Name   string `json:"name"`    // Name название
	Author string `json:"author"`  // Author автор
	Genre  string `json:"genre"`   // Genre жанр
	PDFURL string `json:"pdf_url"` // PDFURL ссылка на файл в blob-хранилище
}

func (b Book) GetID() string {
	return b.ID
}

func (b Book) WithID(id string) Book {
	b.ID = id
	return b
}

// CategoryName для книг роль категории играет жанр
func (b Book) CategoryName() string {
	return b.Genre
}

func (b Book) SearchFields() []string {
	return []string{b.Name, b.Author, b.Genre, b.PDFURL}
}

func (b Book) CSVHeader() []string {
	return []string{"id", "name", "author", "genre", "pdf_url"}
}

func (b Book) CSVRecord() []string {
	return []string{b.ID, b.Name, b.Author, b.Genre, b.PDFURL}
}

func (b Book) Sanitized(clean func(string) string) Book {
	b.Name = clean(b.Name)
	b.Author = clean(b.Author)
	b.Genre = clean(b.Genre)
	return b
}

// Отправители сообщений чата
const (
	SenderUser   = "user"
	SenderSystem = "system"
)

// ChatMessage одна запись журнала чата.
// Timestamp монотонно растет в пределах журнала и служит ключом упорядочивания.
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

func (m ChatMessage) GetID() string {
	return m.ID
}

func (m ChatMessage) WithID(id string) ChatMessage {
	m.ID = id
	return m
}

// CategoryName сообщения группируются по отправителю
func (m ChatMessage) CategoryName() string {
	return m.Sender
}

func (m ChatMessage) SearchFields() []string {
	return []string{m.Text}
}

func (m ChatMessage) Sanitized(clean func(string) string) ChatMessage {
	m.Text = clean(m.Text)
	return m
}
