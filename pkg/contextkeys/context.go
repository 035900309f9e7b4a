package contextkeys

// Кастомный тип ключа, чтобы не пересекаться с чужими значениями в context
type contextKey string

// DBContextKey - ключ, под которым DBMiddleware кладет *gorm.DB в gin context
const DBContextKey = contextKey("db")
