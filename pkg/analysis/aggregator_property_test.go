package analysis

import (
	"math/rand"
	"reflect"
	"testing"

	"studymanager/pkg/notion"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func pagesFrom(texts []string) []notion.Page {
	pages := make([]notion.Page, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			pages = append(pages, page())
			continue
		}
		pages = append(pages, page(text))
	}
	return pages
}

func TestProperty_AggregateIsOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	mistake := gen.OneConstOf("", "typo", "Typo", "sign error", "off by one", " ")

	properties.Property("permuting entries does not change counts", prop.ForAll(
		func(texts []string, seed int64) bool {
			pages := pagesFrom(texts)
			shuffled := append([]notion.Page(nil), pages...)
			r := rand.New(rand.NewSource(seed))
			r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			return reflect.DeepEqual(Aggregate(pages), Aggregate(shuffled))
		},
		gen.SliceOf(mistake, reflect.TypeOf("")),
		gen.Int64(),
	))

	properties.Property("counts sum to the number of entries with mistake text", prop.ForAll(
		func(texts []string) bool {
			want := 0
			for _, text := range texts {
				if text != "" {
					want++
				}
			}
			got := 0
			for key, count := range Aggregate(pagesFrom(texts)) {
				if key == "" || count < 1 {
					return false
				}
				got += count
			}
			return got == want
		},
		gen.SliceOf(mistake, reflect.TypeOf("")),
	))

	properties.TestingRun(t)
}
