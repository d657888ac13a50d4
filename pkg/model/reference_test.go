package model_test

import (
	"errors"
	"testing"

	"github.com/kagehara/sonarbridge/pkg/model"
	"github.com/m-mizutani/gt"
)

func TestReferenceRoundTrip(t *testing.T) {
	queries := []model.Query{
		"cats",
		"what is the melting point of tungsten?",
		"spaces, punctuation & symbols: <>/?#[]@!$&'()*+,;=",
		"日本語のクエリでも往復できること",
		"emoji 🦔 and combining marks é",
		"multi\nline\nquery",
	}

	for _, q := range queries {
		t.Run(string(q), func(t *testing.T) {
			ref := model.NewReference(q)
			decoded := gt.R1(ref.Query()).NoError(t)
			gt.Equal(t, decoded, q)
		})
	}
}

func TestReferenceDeterminism(t *testing.T) {
	gt.Equal(t, model.NewReference("same query"), model.NewReference("same query"))
	gt.NotEqual(t, model.NewReference("query one"), model.NewReference("query two"))
}

func TestReferenceMalformed(t *testing.T) {
	testCases := []struct {
		name string
		ref  model.Reference
	}{
		{"invalid alphabet", "not-valid-base64!!"},
		{"broken padding", "YWJj="},
		{"empty payload", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.ref.Query()
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrInvalidReference))
		})
	}
}

func TestQueryValidate(t *testing.T) {
	gt.NoError(t, model.Query("x").Validate())
	gt.True(t, errors.Is(model.Query("").Validate(), model.ErrEmptyQuery))
}

func TestSearchResult(t *testing.T) {
	result := model.NewSearchResult("feline behavior")
	gt.Equal(t, result.Title, "feline behavior")
	gt.S(t, result.URL).Contains("feline+behavior")

	decoded := gt.R1(result.Reference.Query()).NoError(t)
	gt.Equal(t, decoded, model.Query("feline behavior"))
}
