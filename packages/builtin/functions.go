package builtin

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/curlspec/packages/core/env"
	"github.com/abdul-hamid-achik/curlspec/packages/core/model"
	"github.com/google/uuid"
)

// Prefix marks a placeholder name as a dynamic variable.
const Prefix = "$"

// Func generates the value of a dynamic variable.
type Func func() string

// Registry generates dynamic variable values. Each name is generated at most
// once per Registry so that repeated placeholders in one command agree.
type Registry struct {
	mu     sync.Mutex
	funcs  map[string]Func
	values map[string]string
	now    func() time.Time
	rng    *rand.Rand
}

// NewRegistry returns a registry holding the built-in dynamic variables.
func NewRegistry() *Registry {
	r := &Registry{
		funcs:  make(map[string]Func),
		values: make(map[string]string),
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	iso := func() string { return r.now().UTC().Format(time.RFC3339) }

	r.register("uuid", funcUUID)
	r.register("guid", funcUUID)
	r.register("randomUUID", funcUUID)
	r.register("timestamp", func() string { return strconv.FormatInt(r.now().Unix(), 10) })
	r.register("timestampMs", func() string { return strconv.FormatInt(r.now().UnixMilli(), 10) })
	r.register("isoTimestamp", iso)
	r.register("now", iso)
	r.register("date", func() string { return r.now().UTC().Format("2006-01-02") })
	r.register("randomInt", func() string { return strconv.Itoa(r.rng.Intn(1001)) })
	r.register("randomEmail", func() string {
		return fmt.Sprintf("%s@%s.com", r.randomString(8, lower), r.randomString(6, lower))
	})
	r.register("randomAlphanumeric", func() string { return r.randomString(8, alphanumeric) })
}

// register adds or replaces a dynamic variable. name is given without the
// leading $.
func (r *Registry) register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Names lists the registered variable names with their $ prefix.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, Prefix+name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the value for a $-prefixed name.
func (r *Registry) Lookup(name string) (string, bool) {
	if !strings.HasPrefix(name, Prefix) {
		return "", false
	}
	key := strings.TrimPrefix(name, Prefix)

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.values[key]; ok {
		return v, true
	}
	fn, ok := r.funcs[key]
	if !ok {
		return "", false
	}
	v := fn()
	r.values[key] = v
	return v, true
}

// Fill adds a value to vars for every dynamic placeholder in input that vars
// does not already define.
func (r *Registry) Fill(vars model.Variables, input string) {
	for _, name := range env.Names(input) {
		if _, ok := vars[name]; ok {
			continue
		}
		if v, ok := r.Lookup(name); ok {
			vars[name] = v
		}
	}
}

const (
	lower        = "abcdefghijklmnopqrstuvwxyz"
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func funcUUID() string {
	return uuid.New().String()
}

// randomString must be called with r.mu held.
func (r *Registry) randomString(length int, charset string) string {
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = charset[r.rng.Intn(len(charset))]
	}
	return string(result)
}
