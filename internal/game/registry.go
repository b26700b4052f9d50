package game

import (
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 5

// Registry tracks every live table by its join code.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
	log    logrus.FieldLogger
}

func NewRegistry(log logrus.FieldLogger) *Registry {
	return &Registry{
		tables: make(map[string]*Table),
		log:    log,
	}
}

// CreateTable opens a new table under a fresh join code.
func (r *Registry) CreateTable(variant Variant, cfg Config, send MessageSender, onResult ResultSink) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.newCode()
	table, err := NewTable(code, variant, cfg, r.log, send, onResult)
	if err != nil {
		return nil, err
	}
	r.tables[code] = table
	r.log.WithFields(logrus.Fields{"table": code, "variant": variant}).Info("table created")
	return table, nil
}

// Get looks up a table by its code.
func (r *Registry) Get(code string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[code]
	if !ok {
		return nil, ErrNoSuchTable
	}
	return table, nil
}

// Remove drops a finished or abandoned table from the registry.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tables, code)
}

// Len returns the number of live tables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// newCode generates a join code not currently in use. Caller holds the lock.
func (r *Registry) newCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := r.tables[code]; !taken {
			return code
		}
	}
}
