package iodiscover_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/internal/iodiscover"
	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/errcode"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

// fakeEnc satisfies client.Encyclopedia through the embedded interface;
// only CategoriesByPrefix is implemented.
type fakeEnc struct {
	client.Encyclopedia
	byPrefix func(prefix string) ([]string, error)
}

func (f *fakeEnc) CategoriesByPrefix(
	_ context.Context, prefix string,
) ([]string, error) {
	return f.byPrefix(prefix)
}

type fakeVocab struct {
	voc *vocab.Vocabulary
	err error
}

func (f *fakeVocab) Load() (*vocab.Vocabulary, error) {
	return f.voc, f.err
}

func testVocabulary() *vocab.Vocabulary {
	return &vocab.Vocabulary{
		CategoryPrefixes:        []string{"Ukrainian"},
		OccupationKeywords:      []string{"writers", "poets", "composers"},
		ExclusionKeywords:       []string{"organizations", "films"},
		LanguageMarkers:         []string{"Ukrainian", "Ukraine"},
		SupplementaryCategories: []string{"Presidents of Ukraine"},
	}
}

func TestDiscover_FiltersAndSorts(t *testing.T) {
	enc := &fakeEnc{byPrefix: func(prefix string) ([]string, error) {
		assert.Equal(t, "Ukrainian", prefix)
		return []string{
			"Ukrainian writers",
			"Ukrainian poets",
			"Ukrainian writers' organizations",
			"Ukrainian villages",
			"Ukrainian films",
		}, nil
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: testVocabulary()})
	categories, err := d.Discover(context.Background(), config.New())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Presidents of Ukraine",
		"Ukrainian poets",
		"Ukrainian writers",
	}, categories)
}

func TestDiscover_MarkerRequiredWhenPrefixUnmarked(t *testing.T) {
	voc := &vocab.Vocabulary{
		CategoryPrefixes:   []string{"Hetmans"},
		OccupationKeywords: []string{"writers", "hetmans"},
		LanguageMarkers:    []string{"Ukrainian", "Ukraine"},
	}
	enc := &fakeEnc{byPrefix: func(string) ([]string, error) {
		return []string{
			"Hetmans who were writers",
			"Hetmans of Ukraine",
		}, nil
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: voc})
	categories, err := d.Discover(context.Background(), config.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"Hetmans of Ukraine"}, categories)
}

func TestDiscover_SkipsFailedPrefix(t *testing.T) {
	voc := testVocabulary()
	voc.CategoryPrefixes = []string{"Ukrainian", "Soviet"}

	enc := &fakeEnc{byPrefix: func(prefix string) ([]string, error) {
		if prefix == "Soviet" {
			return nil, errors.New("listing timed out")
		}
		return []string{"Ukrainian writers"}, nil
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: voc})
	categories, err := d.Discover(context.Background(), config.New())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Presidents of Ukraine",
		"Ukrainian writers",
	}, categories)
}

func TestDiscover_AllPrefixesFailed(t *testing.T) {
	enc := &fakeEnc{byPrefix: func(string) ([]string, error) {
		return nil, errors.New("listing timed out")
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: testVocabulary()})
	_, err := d.Discover(context.Background(), config.New())
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DiscoverPrefixError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "all category prefixes failed")
}

func TestDiscover_NoPrefixesUsesSupplementary(t *testing.T) {
	voc := testVocabulary()
	voc.CategoryPrefixes = nil
	voc.SupplementaryCategories = []string{
		"Presidents of Ukraine",
		"Hetmans of Zaporizhian Host",
	}

	enc := &fakeEnc{byPrefix: func(string) ([]string, error) {
		t.Fatal("no prefix listing expected")
		return nil, nil
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: voc})
	categories, err := d.Discover(context.Background(), config.New())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Hetmans of Zaporizhian Host",
		"Presidents of Ukraine",
	}, categories)
}

func TestDiscover_EmptyResult(t *testing.T) {
	voc := testVocabulary()
	voc.SupplementaryCategories = nil

	enc := &fakeEnc{byPrefix: func(string) ([]string, error) {
		return []string{"Ukrainian villages"}, nil
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: voc})
	_, err := d.Discover(context.Background(), config.New())
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DiscoverEmptyError, gnErr.Code)
}

func TestDiscover_VocabLoadFails(t *testing.T) {
	loadErr := errors.New("no vocab file")
	d := iodiscover.New(&fakeEnc{}, &fakeVocab{err: loadErr})

	_, err := d.Discover(context.Background(), config.New())
	assert.ErrorIs(t, err, loadErr)
}

func TestDiscover_Dedup(t *testing.T) {
	voc := testVocabulary()
	voc.CategoryPrefixes = []string{"Ukrainian", "Ukrainian-language"}
	voc.SupplementaryCategories = []string{"Ukrainian writers"}

	enc := &fakeEnc{byPrefix: func(string) ([]string, error) {
		return []string{"Ukrainian writers"}, nil
	}}

	d := iodiscover.New(enc, &fakeVocab{voc: voc})
	categories, err := d.Discover(context.Background(), config.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"Ukrainian writers"}, categories)
}
