package lexer

// Cursor представляет собой позицию в строке сетки (в рунах)
type Cursor struct {
	Row []rune
	Off int
}

// NewCursor creates a new cursor at the start of row.
func NewCursor(row []rune) Cursor {
	return Cursor{Row: row}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Row)
}

// Peek читает текущую руну, если есть, иначе возвращает 0
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return 0
	}
	return c.Row[c.Off]
}

// Bump перемещает курсор на одну руну вперед и возвращает прочитанную руну
func (c *Cursor) Bump() rune {
	if c.EOF() {
		return 0
	}
	r := c.Row[c.Off]
	c.Off++
	return r
}

// Mark это метка начала читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Text returns the runes between m and the cursor.
func (c *Cursor) Text(m Mark) string {
	return string(c.Row[int(m):c.Off])
}
