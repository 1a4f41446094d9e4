package monetary

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contalivre/contalivre/internal/accounts"
	"github.com/contalivre/contalivre/internal/model"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

func TestClassify_Cascade(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		name     string
		acct     model.Account
		class    Class
		ruleName string
	}{
		{
			"equity is never monetary",
			model.Account{Kind: model.KindEquity, Name: "Caja chica", StatementGroup: tx.CashAndBanks},
			NonMonetary, RuleKind,
		},
		{
			"group beats code prefix",
			model.Account{Kind: model.KindAsset, Code: "1.1.04.09", Name: "Otros", StatementGroup: tx.CashAndBanks},
			Monetary, RuleStatementGroup,
		},
		{
			"group non-monetary",
			model.Account{Kind: model.KindAsset, Code: "1.1.01.09", StatementGroup: tx.PropertyPlantEquipment},
			NonMonetary, RuleStatementGroup,
		},
		{
			"code prefix beats keyword",
			model.Account{Kind: model.KindAsset, Code: "1.2.02.05", Name: "Caja fuerte"},
			NonMonetary, RuleCodePrefix + ":1.2.02",
		},
		{
			"non-monetary keyword before monetary",
			model.Account{Kind: model.KindAsset, Code: "9.1", Name: "Anticipo a proveedores"},
			NonMonetary, RuleKeywordNonMonetary,
		},
		{
			"accent-insensitive keyword",
			model.Account{Kind: model.KindAsset, Code: "9.2", Name: "PRÉSTAMO a socios"},
			Monetary, RuleKeywordMonetary,
		},
		{
			"default monetary",
			model.Account{Kind: model.KindAsset, Code: "9.3", Name: "Varios"},
			Monetary, RuleDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Classify(tt.acct)
			assert.Equal(t, tt.class, r.Class)
			assert.Equal(t, tt.ruleName, r.Rule)
			assert.False(t, r.Overridden)
		})
	}
}

func TestDefaultRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultRules() {
		names = append(names, r.Name)
	}
	require.NotEmpty(t, names)
	assert.Equal(t, RuleKind, names[0])
	assert.Equal(t, RuleStatementGroup, names[1])
	assert.Equal(t, RuleStatementGroup, names[2])
	assert.Equal(t, RuleDefault, names[len(names)-1])
	assert.Equal(t, RuleKeywordMonetary, names[len(names)-2])
	assert.Equal(t, RuleKeywordNonMonetary, names[len(names)-3])

	// Prefixes with more segments come first.
	assert.Equal(t, RuleCodePrefix+":1.1.01", names[3])
	assert.Equal(t, RuleCodePrefix+":2.2", names[len(names)-4])
}

func TestClassify_Override(t *testing.T) {
	base := NewClassifier(nil)
	fx := model.Account{ID: "1.1.01.03", Code: "1.1.01.03", Kind: model.KindAsset, Name: "Moneda extranjera", StatementGroup: tx.CashAndBanks}

	assert.Equal(t, Monetary, base.Classify(fx).Class)

	over := base.WithOverride(fx.ID, NonMonetary)
	r := over.Classify(fx)
	assert.Equal(t, NonMonetary, r.Class)
	assert.True(t, r.Overridden)
	assert.Equal(t, RuleOverride, r.Rule)

	assert.Equal(t, Monetary, base.Classify(fx).Class, "the original classifier is unchanged")
}

func TestClassifyAll_DefaultChart(t *testing.T) {
	chart := accounts.DefaultChart()
	results := NewClassifier(nil).ClassifyAll(chart)

	byID := map[string]Result{}
	for _, r := range results {
		assert.False(t, r.Account.IsHeader)
		byID[r.Account.ID] = r.Result
	}
	assert.Equal(t, Monetary, byID["1.1.01.01"].Class)
	assert.Equal(t, Monetary, byID["1.1.01.03"].Class)
	assert.Equal(t, Monetary, byID["1.1.02.03"].Class)
	assert.Equal(t, NonMonetary, byID["1.1.04.01"].Class)
	assert.Equal(t, NonMonetary, byID["1.2.02.90"].Class)
	assert.Equal(t, Monetary, byID["2.1.04.01"].Class)
	assert.Equal(t, NonMonetary, byID["3.1.01"].Class)
	assert.Equal(t, NonMonetary, byID["5.1.01"].Class)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "mercaderias en transito", Fold("Mercaderías en Tránsito"))
	assert.Equal(t, "prevision", Fold("PREVISIÓN"))
}

func TestParseClass(t *testing.T) {
	c, err := ParseClass(" Non_Monetary ")
	require.NoError(t, err)
	assert.Equal(t, NonMonetary, c)

	_, err = ParseClass("mixed")
	assert.Error(t, err)
}

func TestOverrides_ReadWrite(t *testing.T) {
	in := []Override{
		{AccountID: "1.1.01.03", Class: NonMonetary, Reason: "divisas valuadas a costo"},
		{AccountID: "1.2.01.01", Class: Monetary},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteOverrides(&buf, in))
	assert.Contains(t, buf.String(), "account: 1.1.01.03")

	out, err := ReadOverrides(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	c := NewClassifier(nil).WithOverrides(out)
	assert.True(t, c.Classify(model.Account{ID: "1.1.01.03", Kind: model.KindAsset}).Overridden)
}

func TestReadOverrides_Invalid(t *testing.T) {
	_, err := ReadOverrides(strings.NewReader("overrides:\n  - account: x\n    class: maybe\n"))
	assert.ErrorContains(t, err, "invalid class")

	_, err = ReadOverrides(strings.NewReader("overrides:\n  - class: monetary\n"))
	assert.ErrorContains(t, err, "missing account")

	o, err := ReadOverrides(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, o)
}

func TestLoadOverrides_Missing(t *testing.T) {
	o, err := LoadOverrides(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Nil(t, o)
}
