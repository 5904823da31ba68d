package database

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Kind reports which storage backend a DATABASE_URL selects.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindMongo    Kind = "mongo"
	KindSQLite   Kind = "sqlite"
)

func KindOf(dsn string) Kind {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return KindMongo
	default:
		return KindSQLite
	}
}

func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	if KindOf(dsn) == KindPostgres {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using SQLite", zap.String("dsn", dsn))

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Lazy opens a shared handle on first use. Every caller gets the same handle,
// or the same error if opening failed.
type Lazy[T any] struct {
	get func() (T, error)
}

func NewLazy[T any](open func() (T, error)) *Lazy[T] {
	return &Lazy[T]{get: sync.OnceValues(open)}
}

func (l *Lazy[T]) Get() (T, error) {
	return l.get()
}

var shared sync.Map // dsn -> *Lazy[*gorm.DB]

// Shared returns the process-wide init-once gorm handle for dsn. Every
// caller passing the same dsn gets the same handle; log is only used by
// the first caller.
func Shared(dsn string, log *zap.Logger) *Lazy[*gorm.DB] {
	if v, ok := shared.Load(dsn); ok {
		return v.(*Lazy[*gorm.DB])
	}
	v, _ := shared.LoadOrStore(dsn, NewLazy(func() (*gorm.DB, error) {
		return Connect(dsn, log)
	}))
	return v.(*Lazy[*gorm.DB])
}
