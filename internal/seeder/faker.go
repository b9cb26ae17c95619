package seeder

import (
	"github.com/brianvoe/gofakeit/v7"

	"github.com/Rana718/orgseed/internal/apperror"
)

const (
	DefaultFakerSeed      = 73
	DefaultUniqueAttempts = 1000
)

// FakeDataProvider hands out values that are unique for the lifetime of the
// provider.
type FakeDataProvider interface {
	UniqueName() (string, error)
	UniqueCatchPhrase() (string, error)
}

// UniqueFaker draws from gofakeit and retries until it sees a value it has not
// returned before. A fixed seed makes the sequence reproducible.
type UniqueFaker struct {
	faker       *gofakeit.Faker
	maxAttempts int
	names       map[string]struct{}
	phrases     map[string]struct{}
}

func NewUniqueFaker(seed uint64, maxAttempts int) *UniqueFaker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultUniqueAttempts
	}
	return &UniqueFaker{
		faker:       gofakeit.New(seed),
		maxAttempts: maxAttempts,
		names:       make(map[string]struct{}),
		phrases:     make(map[string]struct{}),
	}
}

func (f *UniqueFaker) UniqueName() (string, error) {
	return unique(f.names, f.maxAttempts, "name", f.faker.Name)
}

func (f *UniqueFaker) UniqueCatchPhrase() (string, error) {
	return unique(f.phrases, f.maxAttempts, "catch phrase", f.faker.Slogan)
}

func unique(seen map[string]struct{}, maxAttempts int, kind string, generate func() string) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		value := generate()
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		return value, nil
	}
	return "", apperror.Wrapf(apperror.CodeUniquePoolExhausted, apperror.ErrUniquePoolExhausted,
		"no unique %s after %d attempts (%d issued)", kind, maxAttempts, len(seen))
}
