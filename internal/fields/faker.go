package fields

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/mmrzaf/rdgen/internal/domain"
)

// FakerKind names one of the go-faker producers.
type FakerKind string

const (
	FakerName      FakerKind = "name"
	FakerFirstName FakerKind = "first_name"
	FakerLastName  FakerKind = "last_name"
	FakerEmail     FakerKind = "email"
	FakerUsername  FakerKind = "username"
	FakerWord      FakerKind = "word"
	FakerSentence  FakerKind = "sentence"
	FakerURL       FakerKind = "url"
	FakerPhone     FakerKind = "phone"
	FakerIPv4      FakerKind = "ipv4"
	FakerDomain    FakerKind = "domain"
)

var fakerFuncs = map[FakerKind]func() string{
	FakerName:      func() string { return faker.Name() },
	FakerFirstName: func() string { return faker.FirstName() },
	FakerLastName:  func() string { return faker.LastName() },
	FakerEmail:     func() string { return faker.Email() },
	FakerUsername:  func() string { return faker.Username() },
	FakerWord:      func() string { return faker.Word() },
	FakerSentence:  func() string { return faker.Sentence() },
	FakerURL:       func() string { return faker.URL() },
	FakerPhone:     func() string { return faker.Phonenumber() },
	FakerIPv4:      func() string { return faker.IPv4() },
	FakerDomain:    func() string { return faker.DomainName() },
}

// FakerField produces realistic looking strings. go-faker keeps its own
// random source, so these values do not follow the generator seed.
type FakerField struct {
	kind FakerKind
	fn   func() string
}

func NewFakerField(kind FakerKind) (*FakerField, error) {
	kind = FakerKind(strings.ToLower(strings.TrimSpace(string(kind))))
	fn, ok := fakerFuncs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown faker kind %q (known: %s)",
			ErrInvalidConfiguration, kind, strings.Join(FakerKinds(), ", "))
	}
	return &FakerField{kind: kind, fn: fn}, nil
}

func (f *FakerField) Generate(_ *rand.Rand) (interface{}, error) {
	return f.fn(), nil
}

func (f *FakerField) Kind() FakerKind { return f.kind }

func (f *FakerField) ColumnType() domain.ColumnType { return domain.ColumnTypeText }

func FakerKinds() []string {
	kinds := make([]string, 0, len(fakerFuncs))
	for k := range fakerFuncs {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}
