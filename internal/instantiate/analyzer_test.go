package instantiate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nic-ch/hierlint/internal/model"
)

func site(template string, line int, args ...string) model.CallSite {
	return model.CallSite{
		Template: template,
		Args:     args,
		Location: model.SourceLocation{File: "unit.cpp", Line: line},
	}
}

func TestAnalyzeTemplate_StringLikeBloat(t *testing.T) {
	a := NewAnalyzer(4)

	sites := []model.CallSite{
		site("f", 10, "char[6]"),
		site("f", 11, "char[5]"),
		site("f", 12, "const char*"),
		site("f", 13, "char*"),
		site("f", 14, "std::string"),
	}

	report := a.AnalyzeTemplate("f", sites)

	assert.Equal(t, 5, report.Count)
	assert.True(t, report.Exceeded)
	assert.Equal(t, model.SuggestPointerDecay, report.Suggestion)
	assert.Equal(t, 10, report.Location.Line)
}

func TestAnalyzeTemplate_OrderInvariant(t *testing.T) {
	a := NewAnalyzer(4)

	forward := []model.CallSite{
		site("f", 10, "char[6]"),
		site("f", 11, "const char*"),
		site("f", 12, "std::string"),
		site("f", 13, "char[6]"), // duplicate signature
	}
	reversed := []model.CallSite{forward[3], forward[2], forward[1], forward[0]}

	a1 := a.AnalyzeTemplate("f", forward)
	a2 := a.AnalyzeTemplate("f", reversed)

	assert.Equal(t, a1.Count, a2.Count)
	assert.Equal(t, a1.Signatures, a2.Signatures)
	assert.Equal(t, a1.Exceeded, a2.Exceeded)
}

func TestAnalyzeTemplate_NormalizationCollapsesSpelling(t *testing.T) {
	a := NewAnalyzer(4)

	sites := []model.CallSite{
		site("g", 1, "const char *"),
		site("g", 2, "const char*"),
		site("g", 3, "const  char  *"),
	}

	report := a.AnalyzeTemplate("g", sites)
	assert.Equal(t, 1, report.Count, "spelling variants of one type must group together")
	assert.False(t, report.Exceeded)
	assert.Empty(t, report.Suggestion, "no suggestion below the threshold")
}

func TestAnalyzeTemplate_MoveCopyPair(t *testing.T) {
	a := NewAnalyzer(4)

	sites := []model.CallSite{
		site("store", 1, "Widget"),
		site("store", 2, "Widget&&"),
		site("store", 3, "const Widget&"),
		site("store", 4, "Widget&"),
	}

	report := a.AnalyzeTemplate("store", sites)
	require.True(t, report.Exceeded)
	assert.Equal(t, model.SuggestMoveCopyPair, report.Suggestion)
}

func TestAnalyzeTemplate_PrimitiveRefSplitIsGeneric(t *testing.T) {
	a := NewAnalyzer(2)

	sites := []model.CallSite{
		site("sum", 1, "int"),
		site("sum", 2, "int&"),
	}

	report := a.AnalyzeTemplate("sum", sites)
	require.True(t, report.Exceeded)
	assert.Equal(t, model.SuggestExtractCommon, report.Suggestion,
		"primitives gain nothing from a move/copy pair")
}

func TestAnalyzeTemplate_NoCommonShape(t *testing.T) {
	a := NewAnalyzer(4)

	sites := []model.CallSite{
		site("h", 1, "int"),
		site("h", 2, "double"),
		site("h", 3, "Widget"),
		site("h", 4, "std::vector<int>"),
		site("h", 5, "bool"),
	}

	report := a.AnalyzeTemplate("h", sites)
	require.True(t, report.Exceeded, "unmatched shapes still get flagged, never a silent pass")
	assert.Equal(t, model.SuggestExtractCommon, report.Suggestion)
}

func TestAnalyze_GroupsPerTemplate(t *testing.T) {
	a := NewAnalyzer(2)

	sites := []model.CallSite{
		site("f", 1, "int"),
		site("f", 2, "double"),
		site("g", 3, "int"),
		site("", 4, "int"), // vetted elsewhere, skipped here
	}

	reports, err := a.Analyze(context.Background(), sites, 4)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// Ordered by template name regardless of input order.
	assert.Equal(t, "f", reports[0].Template)
	assert.Equal(t, 2, reports[0].Count)
	assert.True(t, reports[0].Exceeded)
	assert.Equal(t, "g", reports[1].Template)
	assert.Equal(t, 1, reports[1].Count)
	assert.False(t, reports[1].Exceeded)
}

func TestAnalyzeTemplate_MultiArgStringLike(t *testing.T) {
	a := NewAnalyzer(3)

	// Second position varies across string-like types only; first
	// position is stable.
	sites := []model.CallSite{
		site("log", 1, "int", "char[8]"),
		site("log", 2, "int", "const char*"),
		site("log", 3, "int", "std::string"),
	}

	report := a.AnalyzeTemplate("log", sites)
	require.True(t, report.Exceeded)
	assert.Equal(t, model.SuggestPointerDecay, report.Suggestion)
}
